package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/utils"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

type ReviewHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewReviewHandler(catalogService *service.CatalogService) *ReviewHandler {
	return &ReviewHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reviews, err := h.catalogService.ListReviews(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

func (h *ReviewHandler) GetReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		review, err := h.catalogService.GetReview(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Review
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.catalogService.CreateReview(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, created)
	}
}

func (h *ReviewHandler) UpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.Review
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		updated, err := h.catalogService.UpdateReview(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, updated)
	}
}

func (h *ReviewHandler) DeleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteReview(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}
