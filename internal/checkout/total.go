package checkout

// Totals is the final price breakdown of a cart.
type Totals struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingCost   int64 `json:"shipping_cost"`
	DiscountAmount int64 `json:"discount_amount"`
	Total          int64 `json:"total"`
}

// AssembleTotal composes the payable total from the subtotal, the selected
// shipping quote and an optional discount. A free-shipping discount zeroes
// the shipping cost. The total is floored at zero so a fixed discount larger
// than subtotal plus shipping can never produce a negative order.
func AssembleTotal(subtotal int64, rate RateQuote, discount *Discount) Totals {
	shipping := rate.Price
	var amount int64
	if discount != nil {
		amount = discount.Amount
		if discount.FreeShipping {
			shipping = 0
		}
	}

	total := subtotal + shipping - amount
	if total < 0 {
		total = 0
	}
	return Totals{
		Subtotal:       subtotal,
		ShippingCost:   shipping,
		DiscountAmount: amount,
		Total:          total,
	}
}
