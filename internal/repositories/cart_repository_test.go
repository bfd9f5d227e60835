package repository_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/lmoralesdev/storefront-gateway/internal/models"
	repository "github.com/lmoralesdev/storefront-gateway/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSession = "session-abc-123"
	testKey     = "cart:session:session-abc-123"
	cartTTL     = 30 * 24 * time.Hour
)

func setup(t *testing.T) (repository.CartRepository, redismock.ClientMock) {
	t.Helper()

	client, mock := redismock.NewClientMock()

	return repository.NewCartRepo(client), mock
}

func TestGetCart(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Missing Key Yields Empty Cart", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)

		mock.ExpectGet(testKey).RedisNil()

		// Act
		cart, err := repo.GetCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		require.NotNil(t, cart)
		assert.Equal(t, testSession, cart.SessionID)
		assert.Empty(t, cart.Lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Stored Cart Is Restored", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)

		stored := &models.Cart{
			SessionID: testSession,
			Lines: []models.CartLine{
				{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
			},
		}
		payload, err := json.Marshal(stored)
		require.NoError(t, err)

		mock.ExpectGet(testKey).SetVal(string(payload))

		// Act
		cart, err := repo.GetCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, int64(7), cart.Lines[0].ProductID)
		assert.Equal(t, 20.00, cart.Total())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - Corrupt Payload Yields Empty Cart", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)

		mock.ExpectGet(testKey).SetVal("{not valid json")

		// Act
		cart, err := repo.GetCart(ctx, testSession)

		// Assert
		require.NoError(t, err, "corrupt local state must not surface as an error")
		require.NotNil(t, cart)
		assert.Empty(t, cart.Lines)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectedErr := errors.New("redis connection error")

		mock.ExpectGet(testKey).SetErr(expectedErr)

		// Act
		cart, err := repo.GetCart(ctx, testSession)

		// Assert
		require.Error(t, err)
		assert.Nil(t, cart)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to get cart for session "+testSession)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSaveCart(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Persists With TTL", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)

		cart := &models.Cart{
			SessionID: testSession,
			Lines: []models.CartLine{
				{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
			},
		}

		// UpdatedAt is stamped inside SaveCart, so the exact payload is not
		// known up front.
		mock.Regexp().ExpectSet(testKey, `.*"product_id":7.*`, cartTTL).SetVal("OK")

		// Act
		err := repo.SaveCart(ctx, cart)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), cart.UpdatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectedErr := errors.New("redis SET failed")

		cart := &models.Cart{SessionID: testSession, Lines: []models.CartLine{}}

		mock.Regexp().ExpectSet(testKey, `.*`, cartTTL).SetErr(expectedErr)

		// Act
		err := repo.SaveCart(ctx, cart)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to persist cart for session "+testSession)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteCart(t *testing.T) {
	ctx := t.Context()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)

		mock.ExpectDel(testKey).SetVal(1)

		// Act
		err := repo.DeleteCart(ctx, testSession)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Redis Error", func(t *testing.T) {
		// Arrange
		repo, mock := setup(t)
		expectedErr := errors.New("redis DEL failed")

		mock.ExpectDel(testKey).SetErr(expectedErr)

		// Act
		err := repo.DeleteCart(ctx, testSession)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
		assert.Contains(t, err.Error(), "failed to delete cart for session "+testSession)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
