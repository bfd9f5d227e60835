package service

import (
	"context"
	goerrors "errors"
	"net/http"

	"github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	"github.com/lmoralesdev/storefront-gateway/internal/utils"
	"github.com/lmoralesdev/storefront-gateway/pkg/storeapi"
)

// CatalogService fronts the remote store for everything that is not the cart
// or the checkout sequence: storefront reads and the admin console's CRUD.
type CatalogService struct {
	store storeapi.Client
}

func NewCatalogService(store storeapi.Client) *CatalogService {
	return &CatalogService{store: store}
}

// mapStoreError keeps the store's 404s as not-found and folds every other
// upstream failure into a single gateway-level error.
func mapStoreError(err error, message string) *errors.AppError {
	var apiErr *storeapi.APIError
	if goerrors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
		return errors.NotFoundError(message + " not found").WithError(err)
	}

	return errors.UpstreamError("Failed to reach the store for " + message).WithError(err)
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.store.ListProducts(ctx)
	if err != nil {
		return nil, mapStoreError(err, "products")
	}

	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "product")
	}

	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.Description = utils.SanitizeText(product.Description)

	created, err := s.store.CreateProduct(ctx, product)
	if err != nil {
		return nil, mapStoreError(err, "product")
	}

	return created, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	product.Description = utils.SanitizeText(product.Description)

	updated, err := s.store.UpdateProduct(ctx, id, product)
	if err != nil {
		return nil, mapStoreError(err, "product")
	}

	return updated, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return mapStoreError(err, "product")
	}

	return nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, mapStoreError(err, "categories")
	}

	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "category")
	}

	return category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	created, err := s.store.CreateCategory(ctx, category)
	if err != nil {
		return nil, mapStoreError(err, "category")
	}

	return created, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, category *models.Category) (*models.Category, error) {
	updated, err := s.store.UpdateCategory(ctx, id, category)
	if err != nil {
		return nil, mapStoreError(err, "category")
	}

	return updated, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return mapStoreError(err, "category")
	}

	return nil
}

func (s *CatalogService) ListClients(ctx context.Context) ([]models.Client, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, mapStoreError(err, "clients")
	}

	return clients, nil
}

func (s *CatalogService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	client, err := s.store.GetClient(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "client")
	}

	return client, nil
}

func (s *CatalogService) CreateClient(ctx context.Context, client *models.Client) (*models.Client, error) {
	created, err := s.store.CreateClient(ctx, client)
	if err != nil {
		return nil, mapStoreError(err, "client")
	}

	return created, nil
}

func (s *CatalogService) UpdateClient(ctx context.Context, id int64, client *models.Client) (*models.Client, error) {
	updated, err := s.store.UpdateClient(ctx, id, client)
	if err != nil {
		return nil, mapStoreError(err, "client")
	}

	return updated, nil
}

func (s *CatalogService) DeleteClient(ctx context.Context, id int64) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		return mapStoreError(err, "client")
	}

	return nil
}

func (s *CatalogService) ListReviews(ctx context.Context) ([]models.Review, error) {
	reviews, err := s.store.ListReviews(ctx)
	if err != nil {
		return nil, mapStoreError(err, "reviews")
	}

	return reviews, nil
}

func (s *CatalogService) GetReview(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.store.GetReview(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "review")
	}

	return review, nil
}

func (s *CatalogService) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	review.Comment = utils.SanitizeText(review.Comment)

	created, err := s.store.CreateReview(ctx, review)
	if err != nil {
		return nil, mapStoreError(err, "review")
	}

	return created, nil
}

func (s *CatalogService) UpdateReview(ctx context.Context, id int64, review *models.Review) (*models.Review, error) {
	review.Comment = utils.SanitizeText(review.Comment)

	updated, err := s.store.UpdateReview(ctx, id, review)
	if err != nil {
		return nil, mapStoreError(err, "review")
	}

	return updated, nil
}

func (s *CatalogService) DeleteReview(ctx context.Context, id int64) error {
	if err := s.store.DeleteReview(ctx, id); err != nil {
		return mapStoreError(err, "review")
	}

	return nil
}

func (s *CatalogService) ListAddressesByClient(ctx context.Context, clientID int64) ([]models.Address, error) {
	addresses, err := s.store.ListAddressesByClient(ctx, clientID)
	if err != nil {
		return nil, mapStoreError(err, "addresses")
	}

	return addresses, nil
}

func (s *CatalogService) CreateAddress(ctx context.Context, address *models.Address) (*models.Address, error) {
	created, err := s.store.CreateAddress(ctx, address)
	if err != nil {
		return nil, mapStoreError(err, "address")
	}

	return created, nil
}

func (s *CatalogService) UpdateAddress(ctx context.Context, id int64, address *models.Address) (*models.Address, error) {
	updated, err := s.store.UpdateAddress(ctx, id, address)
	if err != nil {
		return nil, mapStoreError(err, "address")
	}

	return updated, nil
}

func (s *CatalogService) DeleteAddress(ctx context.Context, id int64) error {
	if err := s.store.DeleteAddress(ctx, id); err != nil {
		return mapStoreError(err, "address")
	}

	return nil
}

func (s *CatalogService) ListBills(ctx context.Context) ([]models.Bill, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, mapStoreError(err, "bills")
	}

	return bills, nil
}

func (s *CatalogService) GetBill(ctx context.Context, id int64) (*models.Bill, error) {
	bill, err := s.store.GetBill(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "bill")
	}

	return bill, nil
}

func (s *CatalogService) DeleteBill(ctx context.Context, id int64) error {
	if err := s.store.DeleteBill(ctx, id); err != nil {
		return mapStoreError(err, "bill")
	}

	return nil
}

func (s *CatalogService) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, mapStoreError(err, "orders")
	}

	return orders, nil
}

func (s *CatalogService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "order")
	}

	return order, nil
}

// GetOrderLines filters the store's flat order-line collection down to one
// order; the store has no per-order listing endpoint.
func (s *CatalogService) GetOrderLines(ctx context.Context, orderID int64) ([]models.OrderLine, error) {
	lines, err := s.store.ListOrderLines(ctx)
	if err != nil {
		return nil, mapStoreError(err, "order lines")
	}

	filtered := make([]models.OrderLine, 0, len(lines))

	for _, line := range lines {
		if line.OrderID == orderID {
			filtered = append(filtered, line)
		}
	}

	return filtered, nil
}

// UpdateOrderStatus re-submits the order with only its status changed.
func (s *CatalogService) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, mapStoreError(err, "order")
	}

	order.Status = status

	updated, err := s.store.UpdateOrder(ctx, id, order)
	if err != nil {
		return nil, mapStoreError(err, "order")
	}

	return updated, nil
}

func (s *CatalogService) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return mapStoreError(err, "order")
	}

	return nil
}

func (s *CatalogService) StoreHealth(ctx context.Context) (any, error) {
	raw, err := s.store.Health(ctx)
	if err != nil {
		return nil, mapStoreError(err, "store health")
	}

	return raw, nil
}
