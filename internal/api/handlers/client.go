package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/utils"
	"github.com/lmoralesdev/storefront-gateway/internal/utils/response"
)

// ClientHandler serves the store's customer records: the storefront needs
// the list to pick a checkout customer, the admin console manages them.
type ClientHandler struct {
	catalogService *service.CatalogService
	validator      *validator.Validate
}

func NewClientHandler(catalogService *service.CatalogService) *ClientHandler {
	return &ClientHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

func (h *ClientHandler) ListClients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clients, err := h.catalogService.ListClients(r.Context())
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, clients)
	}
}

func (h *ClientHandler) GetClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		client, err := h.catalogService.GetClient(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, client)
	}
}

func (h *ClientHandler) CreateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Client
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.catalogService.CreateClient(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, created)
	}
}

func (h *ClientHandler) UpdateClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.Client
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		updated, err := h.catalogService.UpdateClient(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, updated)
	}
}

func (h *ClientHandler) DeleteClient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteClient(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}

func (h *ClientHandler) ListClientAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		addresses, err := h.catalogService.ListAddressesByClient(r.Context(), id)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, addresses)
	}
}

func (h *ClientHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.Address
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		created, err := h.catalogService.CreateAddress(r.Context(), &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusCreated, created)
	}
}

func (h *ClientHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		var req models.Address
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		updated, err := h.catalogService.UpdateAddress(r.Context(), id, &req)
		if err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, updated)
	}
}

func (h *ClientHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "id")
		if !ok {
			return
		}

		if err := h.catalogService.DeleteAddress(r.Context(), id); err != nil {
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, map[string]int64{"deleted": id})
	}
}
