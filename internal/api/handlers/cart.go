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

type CartHandler struct {
	cartService *service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		validator:   validator.New(),
	}
}

func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		cart, err := h.cartService.GetCart(r.Context(), session)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewCartResponse(cart))
	}
}

func (h *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.AddItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.AddItem(r.Context(), session, &req)
		if err != nil {
			logger.Error("Failed to add item to cart", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		logger.Info("Item added to cart",
			slog.Int64("product_id", req.ProductID),
			slog.Int("quantity", req.Quantity),
		)
		response.Success(w, http.StatusOK, models.NewCartResponse(cart))
	}
}

func (h *CartHandler) UpdateQuantity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		var req models.UpdateQuantityRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		cart, err := h.cartService.UpdateQuantity(r.Context(), session, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewCartResponse(cart))
	}
}

func (h *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		productID, ok := pathID(w, r, "productID")
		if !ok {
			return
		}

		cart, err := h.cartService.RemoveItem(r.Context(), session, productID)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewCartResponse(cart))
	}
}

func (h *CartHandler) ClearCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionID(w, r)
		if !ok {
			return
		}

		if err := h.cartService.ClearCart(r.Context(), session); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]string{"status": "cleared"})
	}
}
