package domain

import (
	"time"

	"github.com/google/uuid"
)

// DiscountType describes how a promo code discounts a cart.
type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixedAmount  DiscountType = "fixed_amount"
	DiscountFreeShipping DiscountType = "free_shipping"
	DiscountBuyXGetY     DiscountType = "buy_x_get_y"
)

// IsValid checks if the discount type is one we know how to apply.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercentage, DiscountFixedAmount, DiscountFreeShipping, DiscountBuyXGetY:
		return true
	default:
		return false
	}
}

// PromoCode is a redeemable code entitling a cart to a discount under
// validity and usage constraints. Codes are stored uppercased and matched
// case-insensitively.
type PromoCode struct {
	ID                uuid.UUID
	Code              string
	DiscountType      DiscountType
	DiscountValue     int64 // percent for percentage, FCFA otherwise
	MinOrderAmount    *int64
	MaxDiscountAmount *int64
	BuyQuantity       *int
	GetQuantity       *int
	ValidFrom         time.Time
	ValidUntil        *time.Time
	MaxUses           *int
	UsesCount         int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
