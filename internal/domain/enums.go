package domain

// OrderStatus represents the fulfillment status of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusFailed    OrderStatus = "failed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFulfilled,
		OrderStatusDelivered, OrderStatusFailed, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusPaid || next == OrderStatusFailed || next == OrderStatusCancelled
	case OrderStatusPaid:
		return next == OrderStatusFulfilled || next == OrderStatusCancelled
	case OrderStatusFulfilled:
		return next == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusFailed, OrderStatusCancelled:
		return false // terminal
	default:
		return false
	}
}

// PaymentStatus represents the payment state of an order.
// It only moves forward: a paid order never becomes pending or failed again,
// so replayed gateway webhooks are harmless.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
	PaymentFailed  PaymentStatus = "failed"
)

// IsValid checks if the payment status is valid.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a payment status transition is valid.
// A failed payment may still be retried and succeed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentPaid || next == PaymentFailed
	case PaymentFailed:
		return next == PaymentPaid
	case PaymentPaid:
		return false
	default:
		return false
	}
}
