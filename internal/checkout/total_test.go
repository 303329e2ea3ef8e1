package checkout

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belvieshop/checkout-service/internal/domain"
)

func TestAssembleTotal(t *testing.T) {
	standard := RateQuote{ID: "r1", Price: 1500}

	tests := []struct {
		name     string
		subtotal int64
		rate     RateQuote
		discount *Discount
		want     Totals
	}{
		{
			"no discount",
			10000, standard, nil,
			Totals{Subtotal: 10000, ShippingCost: 1500, Total: 11500},
		},
		{
			"amount discount",
			10000, standard, &Discount{Amount: 1000},
			Totals{Subtotal: 10000, ShippingCost: 1500, DiscountAmount: 1000, Total: 10500},
		},
		{
			"free shipping discount zeroes shipping",
			10000, standard, &Discount{FreeShipping: true},
			Totals{Subtotal: 10000, ShippingCost: 0, Total: 10000},
		},
		{
			"oversized discount floors total at zero",
			3000, standard, &Discount{Amount: 10000},
			Totals{Subtotal: 3000, ShippingCost: 1500, DiscountAmount: 10000, Total: 0},
		},
		{
			"zero cart",
			0, RateQuote{ID: DefaultRateID, Price: 2000}, nil,
			Totals{ShippingCost: 2000, Total: 2000},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssembleTotal(tt.subtotal, tt.rate, tt.discount))
		})
	}
}

// Full pipeline: 10000 FCFA cart shipped to Cotonou with BIENVENUE10.
func TestCheckoutScenarioCotonou(t *testing.T) {
	zones := []domain.ShippingZone{
		{
			ID:        uuid.New(),
			Name:      "Bénin national",
			Countries: []string{"Bénin"},
			Cities:    []string{"Cotonou"},
			IsActive:  true,
			Rates: []domain.ShippingRate{
				rate("Standard", 1500, i64(50000), nil, true),
			},
		},
	}
	p := promo(func(p *domain.PromoCode) {
		p.Code = "BIENVENUE10"
		p.DiscountType = domain.DiscountPercentage
		p.DiscountValue = 10
	})

	z := MatchZone(zones, "Cotonou", "Bénin")
	require.NotNil(t, z)

	quotes := SelectRates(z, 10000, testFallback)
	require.Len(t, quotes, 1)
	assert.Equal(t, int64(1500), quotes[0].Price)
	assert.False(t, quotes[0].IsFree)

	require.Nil(t, ValidatePromo("BIENVENUE10", p, p.ValidFrom.Add(time.Hour)))
	d := CalculateDiscount(p, 10000, 2)
	require.NotNil(t, d)
	assert.Equal(t, int64(1000), d.Amount)

	totals := AssembleTotal(10000, quotes[0], d)
	assert.Equal(t, Totals{Subtotal: 10000, ShippingCost: 1500, DiscountAmount: 1000, Total: 10500}, totals)
}
