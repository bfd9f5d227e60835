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

type OrderHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewOrderHandler(catalogService *service.CatalogService) *OrderHandler {
	return &OrderHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := h.catalogService.ListOrders(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, orders)
	}
}

func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		order, err := h.catalogService.GetOrder(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

func (h *OrderHandler) GetOrderLines() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		lines, err := h.catalogService.GetOrderLines(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, lines)
	}
}

func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		updated, err := h.catalogService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated",
			slog.Int64("order_id", id),
			slog.Int("status", int(updated.Status)),
		)
		response.Success(w, http.StatusOK, updated)
	}
}

func (h *OrderHandler) DeleteOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteOrder(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}
