package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lmoralesdev/storefront-gateway/internal/config"
	appErrors "github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	repoMocks "github.com/lmoralesdev/storefront-gateway/internal/repositories/mocks"
	service "github.com/lmoralesdev/storefront-gateway/internal/services"
	emailMocks "github.com/lmoralesdev/storefront-gateway/pkg/sendGrid/mocks"
	storeMocks "github.com/lmoralesdev/storefront-gateway/pkg/storeapi/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func checkoutConfig() *config.Checkout {
	return &config.Checkout{PaymentType: int(models.PaymentTypeCash), DeliveryMethod: int(models.DeliveryMethodHomeDelivery)}
}

func twoLineCart() *models.Cart {
	return &models.Cart{
		SessionID: testSession,
		Lines: []models.CartLine{
			{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
			{ProductID: 9, Name: "Filter Paper", UnitPrice: 5.00, Quantity: 1},
		},
	}
}

func TestCheckout_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	mockRepo := repoMocks.NewCartRepository(t)
	mockStore := storeMocks.NewClient(t)
	checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
	req := &models.CheckoutRequest{ClientID: 3}

	mockRepo.On("GetCart", ctx, testSession).Return(twoLineCart(), nil).Once()

	mockStore.On("CreateBill", ctx, mock.MatchedBy(func(bill *models.Bill) bool {
		return bill.ClientID == 3 &&
			bill.Total == 25.00 &&
			bill.PaymentType == models.PaymentTypeCash &&
			bill.Discount == 0 &&
			strings.HasPrefix(bill.BillNumber, "BILL-TEMP-")
	})).Return(&models.Bill{IDKey: 77, ClientID: 3, Total: 25.00}, nil).Once()

	mockStore.On("CreateOrder", ctx, mock.MatchedBy(func(order *models.Order) bool {
		return order.ClientID == 3 &&
			order.BillID == 77 &&
			order.Status == models.OrderStatusPending &&
			order.DeliveryMethod == models.DeliveryMethodHomeDelivery &&
			order.Total == 25.00
	})).Return(&models.Order{IDKey: 99, ClientID: 3, BillID: 77}, nil).Once()

	mockStore.On("CreateOrderLine", mock.Anything, mock.MatchedBy(func(line *models.OrderLine) bool {
		return line.OrderID == 99 && line.ProductID == 7 && line.Quantity == 2 && line.Price == 10.00
	})).Return(&models.OrderLine{IDKey: 1}, nil).Once()
	mockStore.On("CreateOrderLine", mock.Anything, mock.MatchedBy(func(line *models.OrderLine) bool {
		return line.OrderID == 99 && line.ProductID == 9 && line.Quantity == 1 && line.Price == 5.00
	})).Return(&models.OrderLine{IDKey: 2}, nil).Once()

	mockRepo.On("DeleteCart", ctx, testSession).Return(nil).Once()

	// Act
	result, err := checkoutService.Checkout(ctx, testSession, req)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, int64(99), result.OrderID)
	assert.Equal(t, int64(77), result.BillID)
	assert.Equal(t, 25.00, result.Total)
	assert.Equal(t, 2, result.Lines)
}

func TestCheckout_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - No Customer Selected", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{})

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeNoCustomerSelected, appErr.Code)
		mockRepo.AssertNotCalled(t, "GetCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty Cart", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
		mockRepo.On("GetCart", ctx, testSession).Return(cartWith(), nil).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeEmptyCart, appErr.Code)
		mockStore.AssertNotCalled(t, "CreateBill", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Cart Load Error", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
		storageErr := errors.New("redis connection refused")
		mockRepo.On("GetCart", ctx, testSession).Return(nil, storageErr).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeStorageError, appErr.Code)
		assert.ErrorIs(t, err, storageErr)
	})
}

func TestCheckout_StepFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("Failure - Bill Creation Fails, Nothing Else Happens", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
		storeErr := errors.New("store rejected the bill")
		mockRepo.On("GetCart", ctx, testSession).Return(twoLineCart(), nil).Once()
		mockStore.On("CreateBill", ctx, mock.AnythingOfType("*models.Bill")).Return(nil, storeErr).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeRemoteWrite, appErr.Code)
		assert.Equal(t, "step: bill", appErr.Detail)
		assert.ErrorIs(t, err, storeErr)
		mockStore.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "DeleteCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Order Creation Fails, Cart Stays Intact", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
		storeErr := errors.New("store rejected the order")
		mockRepo.On("GetCart", ctx, testSession).Return(twoLineCart(), nil).Once()
		mockStore.On("CreateBill", ctx, mock.AnythingOfType("*models.Bill")).Return(&models.Bill{IDKey: 77}, nil).Once()
		mockStore.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(nil, storeErr).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeRemoteWrite, appErr.Code)
		assert.Equal(t, "step: order", appErr.Detail)
		// No compensating delete of the bill and no cart clear.
		mockStore.AssertNotCalled(t, "DeleteBill", mock.Anything, mock.Anything)
		mockRepo.AssertNotCalled(t, "DeleteCart", mock.Anything, mock.Anything)
	})

	t.Run("Failure - Order Line Creation Fails, Cart Stays Intact", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
		storeErr := errors.New("store rejected the order line")
		singleLineCart := cartWith(models.CartLine{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2})
		mockRepo.On("GetCart", ctx, testSession).Return(singleLineCart, nil).Once()
		mockStore.On("CreateBill", ctx, mock.AnythingOfType("*models.Bill")).Return(&models.Bill{IDKey: 77}, nil).Once()
		mockStore.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(&models.Order{IDKey: 99}, nil).Once()
		mockStore.On("CreateOrderLine", mock.Anything, mock.AnythingOfType("*models.OrderLine")).Return(nil, storeErr).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		assert.Nil(t, result)
		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeRemoteWrite, appErr.Code)
		assert.Equal(t, "step: order_lines", appErr.Detail)
		mockRepo.AssertNotCalled(t, "DeleteCart", mock.Anything, mock.Anything)
	})

	t.Run("Success - Cart Clear Failure Does Not Fail The Checkout", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())
		singleLineCart := cartWith(models.CartLine{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2})
		mockRepo.On("GetCart", ctx, testSession).Return(singleLineCart, nil).Once()
		mockStore.On("CreateBill", ctx, mock.AnythingOfType("*models.Bill")).Return(&models.Bill{IDKey: 77}, nil).Once()
		mockStore.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(&models.Order{IDKey: 99}, nil).Once()
		mockStore.On("CreateOrderLine", mock.Anything, mock.AnythingOfType("*models.OrderLine")).Return(&models.OrderLine{IDKey: 1}, nil).Once()
		mockRepo.On("DeleteCart", ctx, testSession).Return(errors.New("redis DEL failed")).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, int64(99), result.OrderID)
	})
}

func TestCheckout_SingleFlightPerSession(t *testing.T) {
	// Arrange: the first checkout blocks inside the cart load; a second
	// checkout for the same session must be rejected immediately.
	ctx := context.Background()
	mockRepo := repoMocks.NewCartRepository(t)
	mockStore := storeMocks.NewClient(t)
	checkoutService := service.NewCheckoutService(mockRepo, mockStore, nil, checkoutConfig())

	started := make(chan struct{})
	release := make(chan struct{})

	mockRepo.On("GetCart", mock.Anything, testSession).Run(func(args mock.Arguments) {
		close(started)
		<-release
	}).Return(cartWith(), nil).Once()

	firstDone := make(chan error, 1)

	go func() {
		_, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})
		firstDone <- err
	}()

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first checkout never reached the cart load")
	}

	// Act
	result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

	// Assert
	assert.Nil(t, result)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeCheckoutInProgress, appErr.Code)

	close(release)

	// The first attempt finishes on its own terms (empty cart here).
	firstErr := <-firstDone
	firstAppErr, ok := appErrors.IsAppError(firstErr)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeEmptyCart, firstAppErr.Code)

	// The guard is released; a fresh checkout for the session proceeds.
	mockRepo.On("GetCart", ctx, testSession).Return(cartWith(), nil).Once()
	_, err = checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})
	thirdAppErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeEmptyCart, thirdAppErr.Code)
}

func TestCheckout_ConfirmationEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - Confirmation Sent To The Customer", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		mockEmail := emailMocks.NewEmailService(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, mockEmail, checkoutConfig())
		singleLineCart := cartWith(models.CartLine{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2})
		mockRepo.On("GetCart", ctx, testSession).Return(singleLineCart, nil).Once()
		mockStore.On("CreateBill", ctx, mock.AnythingOfType("*models.Bill")).Return(&models.Bill{IDKey: 77}, nil).Once()
		mockStore.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(&models.Order{IDKey: 99}, nil).Once()
		mockStore.On("CreateOrderLine", mock.Anything, mock.AnythingOfType("*models.OrderLine")).Return(&models.OrderLine{IDKey: 1}, nil).Once()
		mockRepo.On("DeleteCart", ctx, testSession).Return(nil).Once()
		mockStore.On("GetClient", ctx, int64(3)).Return(&models.Client{IDKey: 3, Name: "Laura", Email: "laura@example.com"}, nil).Once()
		mockEmail.On("Send", ctx, mock.MatchedBy(func(req *models.EmailNotificationRequest) bool {
			return req.To == "laura@example.com" && strings.Contains(req.Subject, "Order #99")
		})).Return(nil).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(99), result.OrderID)
	})

	t.Run("Success - Client Lookup Failure Does Not Fail The Checkout", func(t *testing.T) {
		// Arrange
		mockRepo := repoMocks.NewCartRepository(t)
		mockStore := storeMocks.NewClient(t)
		mockEmail := emailMocks.NewEmailService(t)
		checkoutService := service.NewCheckoutService(mockRepo, mockStore, mockEmail, checkoutConfig())
		singleLineCart := cartWith(models.CartLine{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2})
		mockRepo.On("GetCart", ctx, testSession).Return(singleLineCart, nil).Once()
		mockStore.On("CreateBill", ctx, mock.AnythingOfType("*models.Bill")).Return(&models.Bill{IDKey: 77}, nil).Once()
		mockStore.On("CreateOrder", ctx, mock.AnythingOfType("*models.Order")).Return(&models.Order{IDKey: 99}, nil).Once()
		mockStore.On("CreateOrderLine", mock.Anything, mock.AnythingOfType("*models.OrderLine")).Return(&models.OrderLine{IDKey: 1}, nil).Once()
		mockRepo.On("DeleteCart", ctx, testSession).Return(nil).Once()
		mockStore.On("GetClient", ctx, int64(3)).Return(nil, errors.New("client lookup failed")).Once()

		// Act
		result, err := checkoutService.Checkout(ctx, testSession, &models.CheckoutRequest{ClientID: 3})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(99), result.OrderID)
		mockEmail.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}
