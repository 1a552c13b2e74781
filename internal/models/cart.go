package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one cart line. At most one line exists per
// (UserID, ProductID) pair; adding the same product again increments
// the existing line instead of creating a second one.
type CartItem struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Product   *Product  `json:"product,omitempty"`
}

// LineTotal is Product.Price * Quantity. Zero when the product is not loaded.
func (ci *CartItem) LineTotal() decimal.Decimal {
	if ci.Product == nil {
		return decimal.Zero
	}

	return ci.Product.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}

type AddToCartRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity" validate:"required,min=1"`
}

// UpdateCartItemRequest sets an absolute quantity. Zero or negative
// removes the line.
type UpdateCartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int   `json:"quantity"`
}

type CartSummary struct {
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	LineCount int64           `json:"line_count"`
}
