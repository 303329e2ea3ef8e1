package postgres

import (
	"database/sql"

	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/repository"
)

// Repositories bundles the postgres implementations for wiring.
type Repositories struct {
	Zones  repository.ZoneRepository
	Promos repository.PromoRepository
	Orders repository.OrderRepository
}

// NewRepositories creates all repositories against one connection pool.
func NewRepositories(db *sql.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		Zones:  NewZoneRepository(db, logger),
		Promos: NewPromoRepository(db, logger),
		Orders: NewOrderRepository(db, logger),
	}
}
