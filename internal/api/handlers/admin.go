package handlers

import (
	"net/http"

	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

type AdminHandler struct {
	catalogService *service.CatalogService
}

func NewAdminHandler(catalogService *service.CatalogService) *AdminHandler {
	return &AdminHandler{catalogService: catalogService}
}

// StoreHealth relays the upstream store's own health endpoint so operators can
// tell a gateway problem from a store problem.
func (h *AdminHandler) StoreHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := h.catalogService.StoreHealth(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, status)
	}
}
