package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/utils"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

type CategoryHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewCategoryHandler(catalogService *service.CatalogService) *CategoryHandler {
	return &CategoryHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *CategoryHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

func (h *CategoryHandler) GetCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		category, err := h.catalogService.GetCategory(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, category)
	}
}

func (h *CategoryHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Category
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.catalogService.CreateCategory(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, created)
	}
}

func (h *CategoryHandler) UpdateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.Category
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		updated, err := h.catalogService.UpdateCategory(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, updated)
	}
}

func (h *CategoryHandler) DeleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteCategory(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}
