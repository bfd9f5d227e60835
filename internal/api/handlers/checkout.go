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

type CheckoutHandler struct {
	checkoutService *service.CheckoutService
	validator       *validator.Validate
}

func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		validator:       validator.New(),
	}
}

func (h *CheckoutHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.CheckoutRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		result, err := h.checkoutService.Checkout(r.Context(), session, &req)
		if err != nil {
			logger.Error("Checkout failed", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Checkout completed",
			slog.Int64("order_id", result.OrderID),
			slog.Int64("bill_id", result.BillID),
			slog.Float64("total", result.Total),
		)
		response.Success(w, http.StatusCreated, result)
	}
}
