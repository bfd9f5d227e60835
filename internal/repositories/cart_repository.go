package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/lmoralesdev/storefront-gateway/internal/models"
	"github.com/lmoralesdev/storefront-gateway/internal/utils"
	"github.com/redis/go-redis/v9"
)

// Carts survive a browser session but not forever; the key is refreshed on
// every mutation.
const cartTTL = 30 * 24 * time.Hour

type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	client *redis.Client
}

func NewCartRepo(client *redis.Client) CartRepository {
	return &cartRepository{client: client}
}

func cartKey(sessionID string) string {
	return "cart:session:" + sessionID
}

// GetCart restores the persisted cart for a session. A missing key yields an
// empty cart; so does an unparseable payload, which is logged and dropped
// rather than surfaced (corrupt local state must never break the storefront).
func (r *cartRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {
	storageCtx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	emptyCart := &models.Cart{SessionID: sessionID, Lines: []models.CartLine{}}

	data, err := r.client.Get(storageCtx, cartKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return emptyCart, nil
		}

		return nil, fmt.Errorf("failed to get cart for session %s: %w", sessionID, err)
	}

	cart := &models.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		slog.Warn("Discarding corrupt cart payload",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)

		return emptyCart, nil
	}

	cart.SessionID = sessionID
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}

	return cart, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	storageCtx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart for session %s: %w", cart.SessionID, err)
	}

	if err := r.client.Set(storageCtx, cartKey(cart.SessionID), string(data), cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to persist cart for session %s: %w", cart.SessionID, err)
	}

	return nil
}

func (r *cartRepository) DeleteCart(ctx context.Context, sessionID string) error {
	storageCtx, cancel := utils.WithStorageTimeout(ctx)
	defer cancel()

	if err := r.client.Del(storageCtx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart for session %s: %w", sessionID, err)
	}

	return nil
}
