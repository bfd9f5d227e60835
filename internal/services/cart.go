package service

import (
	"context"

	"github.com/lmoralesdev/storefront-gateway/internal/errors"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	repository "github.com/lmoralesdev/storefront-gateway/internal/repositories"
)

// CartService holds the per-session cart. Every mutation persists the full
// line list before returning, so a restarted gateway (or a reloaded page)
// sees the same cart.
type CartService struct {
	repo repository.CartRepository
}

func NewCartService(repo repository.CartRepository) *CartService {
	return &CartService{repo: repo}
}

func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	return cart, nil
}

// AddItem merges the quantity into an existing line for the same product, or
// appends a new line at the end.
func (s *CartService) AddItem(ctx context.Context, sessionID string, req *models.AddItemRequest) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	if i := cart.FindLine(req.ProductID); i >= 0 {
		cart.Lines[i].Quantity += req.Quantity
	} else {
		cart.Lines = append(cart.Lines, models.CartLine{
			ProductID: req.ProductID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			Quantity:  req.Quantity,
		})
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, errors.StorageError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// UpdateQuantity sets a line's quantity exactly. A quantity of zero or less
// removes the line; a line with quantity ≤ 0 is never persisted.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	i := cart.FindLine(req.ProductID)

	if req.Quantity <= 0 {
		if i >= 0 {
			cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
		}
	} else {
		if i < 0 {
			return nil, errors.BadRequestError("Item not found in the cart")
		}

		cart.Lines[i].Quantity = req.Quantity
	}

	if err := s.repo.SaveCart(ctx, cart); err != nil {
		return nil, errors.StorageError("Failed to update cart").WithError(err)
	}

	return cart, nil
}

// RemoveItem is idempotent; removing an absent product leaves the cart as is.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		return nil, errors.StorageError("Failed to load cart").WithError(err)
	}

	if i := cart.FindLine(productID); i >= 0 {
		cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)

		if err := s.repo.SaveCart(ctx, cart); err != nil {
			return nil, errors.StorageError("Failed to update cart").WithError(err)
		}
	}

	return cart, nil
}

func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	if err := s.repo.DeleteCart(ctx, sessionID); err != nil {
		return errors.StorageError("Failed to clear cart").WithError(err)
	}

	return nil
}
