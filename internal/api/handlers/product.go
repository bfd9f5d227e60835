package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lmoralesdev/storefront-gateway/internal/api/middleware"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/utils"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

type ProductHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := h.catalogService.ListProducts(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

func (h *ProductHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		var req models.Product
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.catalogService.CreateProduct(r.Context(), &req)
		if err != nil {
			logger.Error("Failed to create product", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Product created", slog.Int64("product_id", created.IDKey))
		response.Success(w, http.StatusCreated, created)
	}
}

func (h *ProductHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.Product
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		updated, err := h.catalogService.UpdateProduct(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, updated)
	}
}

func (h *ProductHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteProduct(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}
