package checkout

import (
	"sort"

	"github.com/belvieshop/checkout-service/internal/domain"
)

// DefaultRateID identifies the synthetic rate returned when no zone matches
// the destination or the matched zone has no usable rates.
const DefaultRateID = "default"

// DefaultRate is the fallback applied when zone resolution fails.
type DefaultRate struct {
	Price            int64
	DeliveryEstimate string
}

// RateQuote is a shipping option priced for a specific cart.
type RateQuote struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Price            int64  `json:"price"`
	IsFree           bool   `json:"is_free"`
	DeliveryEstimate string `json:"delivery_estimate"`
}

// SelectRates returns the shipping options applicable to a cart subtotal
// within the matched zone, cheapest first. Rates whose minimum order amount
// exceeds the subtotal are dropped. A rate above its free-shipping threshold
// quotes at zero but keeps IsFree so callers can tell "free" from "costs 0".
// A nil zone, or a zone with no surviving active rates, yields the single
// fallback rate.
func SelectRates(zone *domain.ShippingZone, subtotal int64, fallback DefaultRate) []RateQuote {
	if zone == nil {
		return []RateQuote{fallbackQuote(fallback)}
	}

	quotes := make([]RateQuote, 0, len(zone.Rates))
	for _, r := range zone.Rates {
		if !r.IsActive {
			continue
		}
		if r.MinOrderAmount != nil && subtotal < *r.MinOrderAmount {
			continue
		}
		isFree := r.FreeShippingThreshold != nil && subtotal >= *r.FreeShippingThreshold
		price := r.Price
		if isFree {
			price = 0
		}
		quotes = append(quotes, RateQuote{
			ID:               r.ID.String(),
			Name:             r.Name,
			Price:            price,
			IsFree:           isFree,
			DeliveryEstimate: r.DeliveryEstimate,
		})
	}

	if len(quotes) == 0 {
		return []RateQuote{fallbackQuote(fallback)}
	}

	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })
	return quotes
}

func fallbackQuote(fallback DefaultRate) RateQuote {
	return RateQuote{
		ID:               DefaultRateID,
		Name:             "Livraison standard",
		Price:            fallback.Price,
		DeliveryEstimate: fallback.DeliveryEstimate,
	}
}
