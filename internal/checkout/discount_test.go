package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belvieshop/checkout-service/internal/domain"
)

func TestCalculateDiscountPercentage(t *testing.T) {
	p := promo(func(p *domain.PromoCode) {
		p.DiscountType = domain.DiscountPercentage
		p.DiscountValue = 10
	})

	d := CalculateDiscount(p, 10000, 3)
	require.NotNil(t, d)
	assert.Equal(t, int64(1000), d.Amount)
	assert.False(t, d.FreeShipping)
}

func TestCalculateDiscountPercentageClamp(t *testing.T) {
	p := promo(func(p *domain.PromoCode) {
		p.DiscountType = domain.DiscountPercentage
		p.DiscountValue = 50
		p.MaxDiscountAmount = i64(1000)
	})

	d := CalculateDiscount(p, 5000, 1)
	require.NotNil(t, d)
	// raw discount would be 2500
	assert.Equal(t, int64(1000), d.Amount)
}

func TestCalculateDiscountFixedAmount(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		subtotal int64
		want     int64
	}{
		{"below subtotal", 500, 3000, 500},
		{"exceeds subtotal, capped", 10000, 3000, 3000},
		{"equal to subtotal", 3000, 3000, 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := promo(func(p *domain.PromoCode) {
				p.DiscountType = domain.DiscountFixedAmount
				p.DiscountValue = tt.value
			})
			d := CalculateDiscount(p, tt.subtotal, 1)
			require.NotNil(t, d)
			assert.Equal(t, tt.want, d.Amount)
			assert.False(t, d.FreeShipping)
		})
	}
}

func TestCalculateDiscountFreeShipping(t *testing.T) {
	p := promo(func(p *domain.PromoCode) {
		p.DiscountType = domain.DiscountFreeShipping
		p.DiscountValue = 0
	})

	d := CalculateDiscount(p, 8000, 2)
	require.NotNil(t, d)
	assert.Equal(t, int64(0), d.Amount)
	assert.True(t, d.FreeShipping)
}

func TestCalculateDiscountBuyXGetYPlaceholder(t *testing.T) {
	p := promo(func(p *domain.PromoCode) {
		p.DiscountType = domain.DiscountBuyXGetY
		p.BuyQuantity = intp(2)
		p.GetQuantity = intp(1)
	})

	d := CalculateDiscount(p, 12000, 6)
	require.NotNil(t, d)
	assert.Equal(t, int64(0), d.Amount)
	assert.False(t, d.FreeShipping)
}

func TestCalculateDiscountMinOrderGate(t *testing.T) {
	p := promo(func(p *domain.PromoCode) {
		p.DiscountType = domain.DiscountPercentage
		p.DiscountValue = 10
		p.MinOrderAmount = i64(20000)
	})

	assert.Nil(t, CalculateDiscount(p, 15000, 1))

	d := CalculateDiscount(p, 20000, 1)
	require.NotNil(t, d)
	assert.Equal(t, int64(2000), d.Amount)
}
