package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

// PENDING is the only status the pipeline ever creates. The remaining
// values are labels for downstream fulfilment; status updates are not
// validated against a transition graph, so new labels can be introduced
// without code changes here.
const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem snapshots a product at commit time: UnitPrice is copied
// from Product.Price and does not track later price changes.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	CreatedAt time.Time       `json:"created_at"`
	Product   *Product        `json:"product,omitempty"`
}

// LineTotal is UnitPrice * Quantity.
func (oi *OrderItem) LineTotal() decimal.Decimal {
	return oi.UnitPrice.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

// Order is immutable after commit except for Status.
// TotalAmount always equals the sum of its items' line totals.
type Order struct {
	ID              int64           `json:"id"`
	UserID          string          `json:"user_id"`
	Status          OrderStatus     `json:"status"`
	ShippingAddress string          `json:"shipping_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Items           []OrderItem     `json:"items"`
}

type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" validate:"required,min=5"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required"`
}
