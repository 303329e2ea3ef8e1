package checkout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belvieshop/checkout-service/internal/domain"
)

var testFallback = DefaultRate{Price: 2000, DeliveryEstimate: "3-7 jours"}

func i64(v int64) *int64 { return &v }

func rate(name string, price int64, freeAbove, minOrder *int64, active bool) domain.ShippingRate {
	return domain.ShippingRate{
		ID:                    uuid.New(),
		Name:                  name,
		Price:                 price,
		FreeShippingThreshold: freeAbove,
		MinOrderAmount:        minOrder,
		DeliveryEstimate:      "24-48h",
		IsActive:              active,
	}
}

func TestSelectRatesNilZoneFallsBack(t *testing.T) {
	quotes := SelectRates(nil, 10000, testFallback)

	require.Len(t, quotes, 1)
	assert.Equal(t, DefaultRateID, quotes[0].ID)
	assert.Equal(t, int64(2000), quotes[0].Price)
	assert.False(t, quotes[0].IsFree)
	assert.Equal(t, "3-7 jours", quotes[0].DeliveryEstimate)
}

func TestSelectRatesZoneWithoutActiveRatesFallsBack(t *testing.T) {
	z := &domain.ShippingZone{
		ID:       uuid.New(),
		IsActive: true,
		Rates:    []domain.ShippingRate{rate("Express", 3000, nil, nil, false)},
	}

	quotes := SelectRates(z, 10000, testFallback)

	require.Len(t, quotes, 1)
	assert.Equal(t, DefaultRateID, quotes[0].ID)
}

func TestSelectRatesFiltersByMinOrder(t *testing.T) {
	z := &domain.ShippingZone{
		ID:       uuid.New(),
		IsActive: true,
		Rates: []domain.ShippingRate{
			rate("Standard", 1500, nil, nil, true),
			rate("Gros panier", 500, nil, i64(25000), true),
		},
	}

	quotes := SelectRates(z, 10000, testFallback)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Standard", quotes[0].Name)

	quotes = SelectRates(z, 30000, testFallback)
	require.Len(t, quotes, 2)
	// cheapest first
	assert.Equal(t, "Gros panier", quotes[0].Name)
	assert.Equal(t, "Standard", quotes[1].Name)
}

func TestSelectRatesFreeShippingThreshold(t *testing.T) {
	z := &domain.ShippingZone{
		ID:       uuid.New(),
		IsActive: true,
		Rates:    []domain.ShippingRate{rate("Standard", 1500, i64(50000), nil, true)},
	}

	tests := []struct {
		name      string
		subtotal  int64
		wantPrice int64
		wantFree  bool
	}{
		{"below threshold", 49999, 1500, false},
		{"at threshold", 50000, 0, true},
		{"above threshold", 80000, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := SelectRates(z, tt.subtotal, testFallback)
			require.Len(t, quotes, 1)
			assert.Equal(t, tt.wantPrice, quotes[0].Price)
			assert.Equal(t, tt.wantFree, quotes[0].IsFree)
		})
	}
}

func TestSelectRatesNilThresholdNeverFree(t *testing.T) {
	z := &domain.ShippingZone{
		ID:       uuid.New(),
		IsActive: true,
		Rates:    []domain.ShippingRate{rate("Standard", 1500, nil, nil, true)},
	}

	for _, subtotal := range []int64{0, 1, 10000, 1_000_000_000} {
		quotes := SelectRates(z, subtotal, testFallback)
		require.Len(t, quotes, 1)
		assert.False(t, quotes[0].IsFree)
		assert.Equal(t, int64(1500), quotes[0].Price)
	}
}
