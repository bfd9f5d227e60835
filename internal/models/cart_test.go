package models_test

import (
	"testing"

	"github.com/lmoralesdev/storefront-gateway/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	t.Run("Empty Cart", func(t *testing.T) {
		cart := &models.Cart{SessionID: "s1", Lines: []models.CartLine{}}

		assert.Equal(t, 0.0, cart.Total())
		assert.Equal(t, 0, cart.ItemCount())
	})

	t.Run("Total And Item Count Follow The Lines", func(t *testing.T) {
		cart := &models.Cart{
			SessionID: "s1",
			Lines: []models.CartLine{
				{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
				{ProductID: 9, Name: "Filter Paper", UnitPrice: 5.00, Quantity: 1},
			},
		}

		assert.Equal(t, 25.00, cart.Total())
		assert.Equal(t, 3, cart.ItemCount())
	})
}

func TestCartFindLine(t *testing.T) {
	cart := &models.Cart{
		SessionID: "s1",
		Lines: []models.CartLine{
			{ProductID: 7, Quantity: 2},
			{ProductID: 9, Quantity: 1},
		},
	}

	assert.Equal(t, 0, cart.FindLine(7))
	assert.Equal(t, 1, cart.FindLine(9))
	assert.Equal(t, -1, cart.FindLine(42))
}

func TestNewCartResponse(t *testing.T) {
	cart := &models.Cart{
		SessionID: "s1",
		Lines: []models.CartLine{
			{ProductID: 7, Name: "Espresso Beans", UnitPrice: 10.00, Quantity: 2},
		},
	}

	resp := models.NewCartResponse(cart)

	assert.Same(t, cart, resp.Cart)
	assert.Equal(t, 20.00, resp.Total)
	assert.Equal(t, 2, resp.ItemCount)
}
