package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lmoralesdev/storefront-gateway/internal/config"
	"github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/metrics"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	repository "github.com/lmoralesdev/storefront-gateway/internal/repositories"
	"github.com/lmoralesdev/storefront-gateway/pkg/sendGrid"
	"github.com/lmoralesdev/storefront-gateway/pkg/storeapi"
	"golang.org/x/sync/errgroup"
)

// CheckoutService turns a session cart into remote bill, order, and
// order-line records. The sequence is ordered and not transactional: a
// mid-sequence failure leaves earlier records behind (no compensating
// deletes), reports the failed step, and keeps the cart intact so the user
// can retry.
type CheckoutService struct {
	cartRepo repository.CartRepository
	store    storeapi.Client
	email    sendGrid.EmailService
	cfg      *config.Checkout

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// email may be nil; confirmation mails are best-effort.
func NewCheckoutService(cartRepo repository.CartRepository, store storeapi.Client, email sendGrid.EmailService, cfg *config.Checkout) *CheckoutService {
	return &CheckoutService{
		cartRepo: cartRepo,
		store:    store,
		email:    email,
		cfg:      cfg,
		inFlight: make(map[string]struct{}),
	}
}

// acquire admits at most one running checkout per session.
func (s *CheckoutService) acquire(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[sessionID]; busy {
		return false
	}

	s.inFlight[sessionID] = struct{}{}

	return true
}

func (s *CheckoutService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inFlight, sessionID)
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req *models.CheckoutRequest) (*models.CheckoutResult, error) {
	if !s.acquire(sessionID) {
		return nil, errors.CheckoutInProgressError()
	}
	defer s.release(sessionID)

	if req == nil || req.ClientID == 0 {
		return nil, errors.NoCustomerSelectedError()
	}

	cart, err := s.cartRepo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	if len(cart.Lines) == 0 {
		return nil, errors.EmptyCartError()
	}

	total := cart.Total()
	now := time.Now()

	// Step 1: the bill. The placeholder number is not guaranteed unique; the
	// store is the authority on rejecting duplicates.
	bill := &models.Bill{
		ClientID:    req.ClientID,
		Date:        now.Format("2006-01-02"),
		Total:       total,
		PaymentType: models.PaymentType(s.cfg.PaymentType),
		BillNumber:  fmt.Sprintf("BILL-TEMP-%d", now.UnixMilli()),
		Discount:    0,
	}

	createdBill, err := s.store.CreateBill(ctx, bill)
	if err != nil {
		metrics.CheckoutFailure(errors.StepBill)

		return nil, errors.RemoteWriteError(errors.StepBill).WithError(err)
	}

	// Step 2: the order, linked to the bill. From here on a failure leaves an
	// orphan bill behind; a retry creates a fresh one.
	order := &models.Order{
		ClientID:       req.ClientID,
		Date:           now.Format(time.RFC3339),
		Status:         models.OrderStatusPending,
		Total:          total,
		DeliveryMethod: models.DeliveryMethod(s.cfg.DeliveryMethod),
		BillID:         createdBill.IDKey,
	}

	createdOrder, err := s.store.CreateOrder(ctx, order)
	if err != nil {
		metrics.CheckoutFailure(errors.StepOrder)

		return nil, errors.RemoteWriteError(errors.StepOrder).WithError(err)
	}

	// Step 3: one order line per cart line, issued concurrently and joined.
	// A single failed line fails the step; lines that did succeed stay.
	g, lineCtx := errgroup.WithContext(ctx)

	for _, line := range cart.Lines {
		g.Go(func() error {
			_, err := s.store.CreateOrderLine(lineCtx, &models.OrderLine{
				OrderID:   createdOrder.IDKey,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.UnitPrice,
			})

			return err
		})
	}

	if err := g.Wait(); err != nil {
		metrics.CheckoutFailure(errors.StepOrderLines)

		return nil, errors.RemoteWriteError(errors.StepOrderLines).WithError(err)
	}

	// Step 4: all remote records exist, so the purchase succeeded. A failed
	// local clear is logged but does not fail the checkout.
	if err := s.cartRepo.DeleteCart(ctx, sessionID); err != nil {
		slog.Error("Checkout succeeded but cart could not be cleared",
			slog.String("session_id", sessionID),
			slog.Int64("order_id", createdOrder.IDKey),
			slog.String("error", err.Error()),
		)
	}

	metrics.CheckoutSuccess()

	result := &models.CheckoutResult{
		OrderID: createdOrder.IDKey,
		BillID:  createdBill.IDKey,
		Total:   total,
		Lines:   len(cart.Lines),
	}

	s.sendConfirmation(ctx, req.ClientID, result)

	return result, nil
}

// sendConfirmation emails the customer after a successful checkout. Failures
// are logged only; the order already exists.
func (s *CheckoutService) sendConfirmation(ctx context.Context, clientID int64, result *models.CheckoutResult) {
	if s.email == nil {
		return
	}

	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		slog.Warn("Skipping order confirmation email",
			slog.Int64("client_id", clientID),
			slog.String("error", err.Error()),
		)

		return
	}

	if client.Email == "" {
		slog.Warn("Skipping order confirmation email, client has no address",
			slog.Int64("client_id", clientID),
		)

		return
	}

	notification := &models.EmailNotificationRequest{
		To:      client.Email,
		Subject: fmt.Sprintf("Order #%d confirmed", result.OrderID),
		Content: fmt.Sprintf("Hi %s, your order #%d for a total of %.2f has been placed.", client.Name, result.OrderID, result.Total),
	}

	if err := s.email.Send(ctx, notification); err != nil {
		slog.Warn("Failed to send order confirmation email",
			slog.Int64("order_id", result.OrderID),
			slog.String("error", err.Error()),
		)
	}
}
