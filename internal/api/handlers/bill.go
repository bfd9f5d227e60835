package handlers

import (
	"net/http"

	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

// BillHandler is read-mostly: bills are written by the checkout sequence, the
// admin console only inspects or voids them.
type BillHandler struct {
	catalogService *service.CatalogService
}

func NewBillHandler(catalogService *service.CatalogService) *BillHandler {
	return &BillHandler{catalogService: catalogService}
}

func (h *BillHandler) ListBills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bills, err := h.catalogService.ListBills(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, bills)
	}
}

func (h *BillHandler) GetBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		bill, err := h.catalogService.GetBill(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, bill)
	}
}

func (h *BillHandler) DeleteBill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteBill(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}
