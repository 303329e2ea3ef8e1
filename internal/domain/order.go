package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a cart line captured on the order.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Order is the persisted outcome of a checkout.
// Invariant: Total = Subtotal + ShippingCost - DiscountAmount, floored at 0.
type Order struct {
	ID               uuid.UUID
	CustomerName     string
	CustomerPhone    string
	City             string
	Country          string
	Items            []OrderItem
	Subtotal         int64
	ShippingCost     int64
	DiscountAmount   int64
	Total            int64
	PromoCode        *string
	PromoCodeID      *uuid.UUID
	ShippingRateID   string
	ShippingRateName string
	Status           OrderStatus
	PaymentStatus    PaymentStatus
	PaymentGateway   *string
	PaymentRef       *string
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
