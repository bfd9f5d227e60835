package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lmoralesdev/storefront-gateway/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client defines the operations the gateway uses against the remote store.
// Every record behind it is store-owned; creates return the entity with its
// assigned id_key.
type Client interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, id int64) (*models.Client, error)
	CreateClient(ctx context.Context, client *models.Client) (*models.Client, error)
	UpdateClient(ctx context.Context, id int64, client *models.Client) (*models.Client, error)
	DeleteClient(ctx context.Context, id int64) error

	ListReviews(ctx context.Context) ([]models.Review, error)
	GetReview(ctx context.Context, id int64) (*models.Review, error)
	CreateReview(ctx context.Context, review *models.Review) (*models.Review, error)
	UpdateReview(ctx context.Context, id int64, review *models.Review) (*models.Review, error)
	DeleteReview(ctx context.Context, id int64) error

	ListAddressesByClient(ctx context.Context, clientID int64) ([]models.Address, error)
	GetAddress(ctx context.Context, id int64) (*models.Address, error)
	CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error)
	UpdateAddress(ctx context.Context, id int64, address *models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, id int64) error

	ListBills(ctx context.Context) ([]models.Bill, error)
	GetBill(ctx context.Context, id int64) (*models.Bill, error)
	CreateBill(ctx context.Context, bill *models.Bill) (*models.Bill, error)
	UpdateBill(ctx context.Context, id int64, bill *models.Bill) (*models.Bill, error)
	DeleteBill(ctx context.Context, id int64) error

	ListOrders(ctx context.Context) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Order, error)
	DeleteOrder(ctx context.Context, id int64) error

	ListOrderLines(ctx context.Context) ([]models.OrderLine, error)
	GetOrderLine(ctx context.Context, id int64) (*models.OrderLine, error)
	CreateOrderLine(ctx context.Context, line *models.OrderLine) (*models.OrderLine, error)
	UpdateOrderLine(ctx context.Context, id int64, line *models.OrderLine) (*models.OrderLine, error)
	DeleteOrderLine(ctx context.Context, id int64) error

	Health(ctx context.Context) (json.RawMessage, error)
}

// APIError is any non-2xx answer from the store. The status code is kept for
// logging; callers only branch on success versus failure.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("store API %s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) Client {
	return &client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *client) doJSON(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader

	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call store API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read store API response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode store API response: %w", err)
		}
	}

	return nil
}

func (c *client) list(ctx context.Context, path string, out any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out)
}

func (c *client) get(ctx context.Context, path string, id int64, out any) error {
	return c.doJSON(ctx, http.MethodGet, path+"/"+strconv.FormatInt(id, 10), nil, out)
}

func (c *client) create(ctx context.Context, path string, in, out any) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out)
}

func (c *client) update(ctx context.Context, path string, id int64, in, out any) error {
	return c.doJSON(ctx, http.MethodPut, path+"/"+strconv.FormatInt(id, 10), in, out)
}

// delete treats 204 like any other 2xx; the store answers deletes with no body.
func (c *client) delete(ctx context.Context, path string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, path+"/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product

	return products, c.list(ctx, "/products", &products)
}

func (c *client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}

	return product, c.get(ctx, "/products", id, product)
}

func (c *client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	created := &models.Product{}

	return created, c.create(ctx, "/products", product, created)
}

func (c *client) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	updated := &models.Product{}

	return updated, c.update(ctx, "/products", id, product, updated)
}

func (c *client) DeleteProduct(ctx context.Context, id int64) error {
	return c.delete(ctx, "/products", id)
}

func (c *client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	return categories, c.list(ctx, "/categories", &categories)
}

func (c *client) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}

	return category, c.get(ctx, "/categories", id, category)
}

func (c *client) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	created := &models.Category{}

	return created, c.create(ctx, "/categories", category, created)
}

func (c *client) UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error) {
	updated := &models.Category{}

	return updated, c.update(ctx, "/categories", id, category, updated)
}

func (c *client) DeleteCategory(ctx context.Context, id int64) error {
	return c.delete(ctx, "/categories", id)
}

func (c *client) ListClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client

	return clients, c.list(ctx, "/clients", &clients)
}

func (c *client) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	storeClient := &models.Client{}

	return storeClient, c.get(ctx, "/clients", id, storeClient)
}

func (c *client) CreateClient(ctx context.Context, storeClient *models.Client) (*models.Client, error) {
	created := &models.Client{}

	return created, c.create(ctx, "/clients", storeClient, created)
}

func (c *client) UpdateClient(ctx context.Context, id int64, storeClient *models.Client) (*models.Client, error) {
	updated := &models.Client{}

	return updated, c.update(ctx, "/clients", id, storeClient, updated)
}

func (c *client) DeleteClient(ctx context.Context, id int64) error {
	return c.delete(ctx, "/clients", id)
}

func (c *client) ListReviews(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review

	return reviews, c.list(ctx, "/reviews", &reviews)
}

func (c *client) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	review := &models.Review{}

	return review, c.get(ctx, "/reviews", id, review)
}

func (c *client) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	created := &models.Review{}

	return created, c.create(ctx, "/reviews", review, created)
}

func (c *client) UpdateReview(ctx context.Context, id int64, review *models.Review) (*models.Review, error) {
	updated := &models.Review{}

	return updated, c.update(ctx, "/reviews", id, review, updated)
}

func (c *client) DeleteReview(ctx context.Context, id int64) error {
	return c.delete(ctx, "/reviews", id)
}

func (c *client) ListAddressesByClient(ctx context.Context, clientID int64) ([]models.Address, error) {
	var addresses []models.Address

	query := url.Values{"client_id": []string{strconv.FormatInt(clientID, 10)}}

	return addresses, c.list(ctx, "/addresses?"+query.Encode(), &addresses)
}

func (c *client) GetAddress(ctx context.Context, id int64) (*models.Address, error) {
	address := &models.Address{}

	return address, c.get(ctx, "/addresses", id, address)
}

func (c *client) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	created := &models.Address{}

	return created, c.create(ctx, "/addresses", address, created)
}

func (c *client) UpdateAddress(ctx context.Context, id int64, address *models.Address) (*models.Address, error) {
	updated := &models.Address{}

	return updated, c.update(ctx, "/addresses", id, address, updated)
}

func (c *client) DeleteAddress(ctx context.Context, id int64) error {
	return c.delete(ctx, "/addresses", id)
}

func (c *client) ListBills(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill

	return bills, c.list(ctx, "/bills", &bills)
}

func (c *client) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	bill := &models.Bill{}

	return bill, c.get(ctx, "/bills", id, bill)
}

func (c *client) CreateBill(ctx context.Context, bill *models.Bill) (*models.Bill, error) {
	created := &models.Bill{}

	return created, c.create(ctx, "/bills", bill, created)
}

func (c *client) UpdateBill(ctx context.Context, id int64, bill *models.Bill) (*models.Bill, error) {
	updated := &models.Bill{}

	return updated, c.update(ctx, "/bills", id, bill, updated)
}

func (c *client) DeleteBill(ctx context.Context, id int64) error {
	return c.delete(ctx, "/bills", id)
}

func (c *client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order

	return orders, c.list(ctx, "/orders", &orders)
}

func (c *client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order := &models.Order{}

	return order, c.get(ctx, "/orders", id, order)
}

func (c *client) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	created := &models.Order{}

	return created, c.create(ctx, "/orders", order, created)
}

func (c *client) UpdateOrder(ctx context.Context, id int64, order *models.Order) (*models.Order, error) {
	updated := &models.Order{}

	return updated, c.update(ctx, "/orders", id, order, updated)
}

func (c *client) DeleteOrder(ctx context.Context, id int64) error {
	return c.delete(ctx, "/orders", id)
}

func (c *client) ListOrderLines(ctx context.Context) ([]models.OrderLine, error) {
	var lines []models.OrderLine

	return lines, c.list(ctx, "/order_details", &lines)
}

func (c *client) GetOrderLine(ctx context.Context, id int64) (*models.OrderLine, error) {
	line := &models.OrderLine{}

	return line, c.get(ctx, "/order_details", id, line)
}

func (c *client) CreateOrderLine(ctx context.Context, line *models.OrderLine) (*models.OrderLine, error) {
	created := &models.OrderLine{}

	return created, c.create(ctx, "/order_details", line, created)
}

func (c *client) UpdateOrderLine(ctx context.Context, id int64, line *models.OrderLine) (*models.OrderLine, error) {
	updated := &models.OrderLine{}

	return updated, c.update(ctx, "/order_details", id, line, updated)
}

func (c *client) DeleteOrderLine(ctx context.Context, id int64) error {
	return c.delete(ctx, "/order_details", id)
}

func (c *client) Health(ctx context.Context) (json.RawMessage, error) {
	var raw json.RawMessage

	return raw, c.list(ctx, "/health_check", &raw)
}
