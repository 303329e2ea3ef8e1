package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/belvieshop/checkout-service/internal/domain"
)

// ZoneRepository reads and writes shipping zones and their rates.
type ZoneRepository interface {
	// ListActiveZones returns active zones in ascending id order, each with
	// its rates attached.
	ListActiveZones(ctx context.Context) ([]domain.ShippingZone, error)
	CreateZone(ctx context.Context, zone *domain.ShippingZone) error
	CreateRate(ctx context.Context, rate *domain.ShippingRate) error
}

// PromoRepository reads promo codes and consumes their usage budget.
type PromoRepository interface {
	// GetActiveByCode looks up an active promo by normalized code.
	// Returns (nil, nil) when absent.
	GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error)
	Create(ctx context.Context, promo *domain.PromoCode) error
	List(ctx context.Context) ([]domain.PromoCode, error)
	// ConsumeUsage atomically increments uses_count if the cap allows it.
	// Returns false when the cap was already reached. Never implemented as
	// read-modify-write in application code.
	ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderRepository persists checkout outcomes.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	// SetPaymentStatus applies a forward-only payment transition and returns
	// whether a row changed. Replays and backward transitions are no-ops.
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, gateway, ref string) (bool, error)
}
