package models

import "time"

// CartLine is one selected product inside a session cart. Lines keep
// insertion order for display; at most one line exists per product.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total is recomputed from the current lines on every call.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}

	return total
}

func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}

	return count
}

// FindLine returns the index of the line holding productID, or -1.
func (c *Cart) FindLine(productID int64) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}

	return -1
}

type AddItemRequest struct {
	ProductID int64   `json:"product_id" validate:"required"`
	Name      string  `json:"name"       validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
}

type UpdateQuantityRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity"`
}

type CartResponse struct {
	Cart      *Cart   `json:"cart"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
}

func NewCartResponse(cart *Cart) *CartResponse {
	return &CartResponse{
		Cart:      cart,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
	}
}
