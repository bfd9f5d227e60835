package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lmoralesdev/storefront-gateway/internal/api/handlers"
	"github.com/lmoralesdev/storefront-gateway/internal/config"
	appErrors "github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	repoMocks "github.com/lmoralesdev/storefront-gateway/internal/repositories/mocks"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	"github.com/lmoralesdev/storefront-gateway/internal/testutils"
	storeMocks "github.com/lmoralesdev/storefront-gateway/pkg/storeapi/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupCheckoutTest(t *testing.T) (*repoMocks.CartRepository, *storeMocks.Client, *handlers.CheckoutHandler) {
	t.Helper()

	mockRepo := repoMocks.NewCartRepository(t)
	mockStore := storeMocks.NewClient(t)
	cfg := &config.Checkout{PaymentType: int(models.PaymentTypeCash), DeliveryMethod: int(models.DeliveryMethodHomeDelivery)}
	checkoutHandler := handlers.NewCheckoutHandler(service.NewCheckoutService(mockRepo, mockStore, nil, cfg))

	return mockRepo, mockStore, checkoutHandler
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockRepo, mockStore, checkoutHandler := setupCheckoutTest(t)
		body, _ := json.Marshal(models.CheckoutRequest{ClientID: 3})
		req := testutils.CreateSessionRequest("POST", "/api/v1/checkout", bytes.NewReader(body), testSession, nil)
		recorder := httptest.NewRecorder()

		mockRepo.On("GetCart", mock.Anything, testSession).Return(&models.Cart{
			SessionID: testSession,
			Lines: []models.CartLine{
				{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
			},
		}, nil).Once()
		mockStore.On("CreateBill", mock.Anything, mock.AnythingOfType("*models.Bill")).Return(&models.Bill{IDKey: 77}, nil).Once()
		mockStore.On("CreateOrder", mock.Anything, mock.AnythingOfType("*models.Order")).Return(&models.Order{IDKey: 99}, nil).Once()
		mockStore.On("CreateOrderLine", mock.Anything, mock.AnythingOfType("*models.OrderLine")).Return(&models.OrderLine{IDKey: 1}, nil).Once()
		mockRepo.On("DeleteCart", mock.Anything, testSession).Return(nil).Once()

		// Act
		checkoutHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusCreated, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.True(t, resp.Success)

		payload, err := json.Marshal(resp.Data)
		require.NoError(t, err)

		var result models.CheckoutResult

		require.NoError(t, json.Unmarshal(payload, &result))
		assert.Equal(t, int64(99), result.OrderID)
		assert.Equal(t, int64(77), result.BillID)
	})

	t.Run("Failure - Missing Session Header", func(t *testing.T) {
		// Arrange
		_, _, checkoutHandler := setupCheckoutTest(t)
		body, _ := json.Marshal(models.CheckoutRequest{ClientID: 3})
		req := testutils.CreateRequest("POST", "/api/v1/checkout", bytes.NewReader(body), nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("Failure - Missing Customer Fails Validation", func(t *testing.T) {
		// Arrange
		_, _, checkoutHandler := setupCheckoutTest(t)
		req := testutils.CreateSessionRequest("POST", "/api/v1/checkout", bytes.NewReader([]byte(`{}`)), testSession, nil)
		recorder := httptest.NewRecorder()

		// Act
		checkoutHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeValidation, resp.Error.Code)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockRepo, _, checkoutHandler := setupCheckoutTest(t)
		body, _ := json.Marshal(models.CheckoutRequest{ClientID: 3})
		req := testutils.CreateSessionRequest("POST", "/api/v1/checkout", bytes.NewReader(body), testSession, nil)
		recorder := httptest.NewRecorder()

		mockRepo.On("GetCart", mock.Anything, testSession).Return(&models.Cart{SessionID: testSession, Lines: []models.CartLine{}}, nil).Once()

		// Act
		checkoutHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, resp.Error.Code)
	})

	t.Run("Failure - Remote Write Error Surfaces As Bad Gateway", func(t *testing.T) {
		// Arrange
		mockRepo, mockStore, checkoutHandler := setupCheckoutTest(t)
		body, _ := json.Marshal(models.CheckoutRequest{ClientID: 3})
		req := testutils.CreateSessionRequest("POST", "/api/v1/checkout", bytes.NewReader(body), testSession, nil)
		recorder := httptest.NewRecorder()

		mockRepo.On("GetCart", mock.Anything, testSession).Return(&models.Cart{
			SessionID: testSession,
			Lines: []models.CartLine{
				{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
			},
		}, nil).Once()
		mockStore.On("CreateBill", mock.Anything, mock.AnythingOfType("*models.Bill")).Return(nil, errors.New("store down")).Once()

		// Act
		checkoutHandler.Checkout()(recorder, req)

		// Assert
		assert.Equal(t, http.StatusBadGateway, recorder.Code)
		resp := decodeResponse(t, recorder)
		assert.Equal(t, appErrors.ErrCodeRemoteWrite, resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "step: bill")
	})
}
