package checkout

import "github.com/belvieshop/checkout-service/internal/domain"

// Discount is the outcome of applying a validated promo code to a cart.
type Discount struct {
	Amount       int64 `json:"amount"`
	FreeShipping bool  `json:"free_shipping"`
}

// CalculateDiscount computes the discount a validated promo code grants a
// cart. Returns nil when the cart subtotal is below the code's minimum order
// amount: the code is still valid, it just does nothing for this cart, which
// callers must report differently from a rejected code.
//
// buy_x_get_y always yields a zero discount; the per-line computation was
// never specified and is left as a placeholder.
func CalculateDiscount(promo *domain.PromoCode, subtotal int64, itemCount int) *Discount {
	if promo.MinOrderAmount != nil && subtotal < *promo.MinOrderAmount {
		return nil
	}

	switch promo.DiscountType {
	case domain.DiscountPercentage:
		amount := subtotal * promo.DiscountValue / 100
		if promo.MaxDiscountAmount != nil && amount > *promo.MaxDiscountAmount {
			amount = *promo.MaxDiscountAmount
		}
		return &Discount{Amount: amount}
	case domain.DiscountFixedAmount:
		amount := promo.DiscountValue
		if amount > subtotal {
			amount = subtotal
		}
		return &Discount{Amount: amount}
	case domain.DiscountFreeShipping:
		return &Discount{FreeShipping: true}
	case domain.DiscountBuyXGetY:
		return &Discount{}
	default:
		return &Discount{}
	}
}
