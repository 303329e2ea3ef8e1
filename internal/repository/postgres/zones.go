package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/domain"
)

type zoneRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewZoneRepository creates a postgres-backed zone repository.
func NewZoneRepository(db *sql.DB, logger *zap.Logger) *zoneRepository {
	return &zoneRepository{db: db, logger: logger}
}

func (r *zoneRepository) ListActiveZones(ctx context.Context) ([]domain.ShippingZone, error) {
	// Stable order keeps zone matching deterministic: oldest zone wins.
	query := `
		SELECT id, name, countries, cities, is_active, created_at, updated_at
		FROM shipping_zones
		WHERE is_active = TRUE
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list shipping zones", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var zones []domain.ShippingZone
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var z domain.ShippingZone
		if err := rows.Scan(&z.ID, &z.Name, pq.Array(&z.Countries), pq.Array(&z.Cities), &z.IsActive, &z.CreatedAt, &z.UpdatedAt); err != nil {
			return nil, err
		}
		byID[z.ID] = len(zones)
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return zones, nil
	}

	rateQuery := `
		SELECT id, zone_id, name, price, free_shipping_threshold, min_order_amount,
			delivery_estimate, is_active, created_at, updated_at
		FROM shipping_rates
		WHERE is_active = TRUE
		ORDER BY zone_id, price ASC
	`
	rateRows, err := r.db.QueryContext(ctx, rateQuery)
	if err != nil {
		r.logger.Error("Failed to list shipping rates", zap.Error(err))
		return nil, err
	}
	defer rateRows.Close()

	for rateRows.Next() {
		var rt domain.ShippingRate
		var freeAbove, minOrder sql.NullInt64
		if err := rateRows.Scan(&rt.ID, &rt.ZoneID, &rt.Name, &rt.Price, &freeAbove, &minOrder,
			&rt.DeliveryEstimate, &rt.IsActive, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		if freeAbove.Valid {
			v := freeAbove.Int64
			rt.FreeShippingThreshold = &v
		}
		if minOrder.Valid {
			v := minOrder.Int64
			rt.MinOrderAmount = &v
		}
		if idx, ok := byID[rt.ZoneID]; ok {
			zones[idx].Rates = append(zones[idx].Rates, rt)
		}
	}
	return zones, rateRows.Err()
}

func (r *zoneRepository) CreateZone(ctx context.Context, zone *domain.ShippingZone) error {
	now := time.Now().UTC()
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	if zone.CreatedAt.IsZero() {
		zone.CreatedAt = now
	}
	zone.UpdatedAt = now

	query := `
		INSERT INTO shipping_zones (id, name, countries, cities, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		zone.ID, zone.Name, pq.Array(zone.Countries), pq.Array(zone.Cities),
		zone.IsActive, zone.CreatedAt, zone.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create shipping zone", zap.Error(err), zap.String("name", zone.Name))
	}
	return err
}

func (r *zoneRepository) CreateRate(ctx context.Context, rate *domain.ShippingRate) error {
	now := time.Now().UTC()
	if rate.ID == uuid.Nil {
		rate.ID = uuid.New()
	}
	if rate.CreatedAt.IsZero() {
		rate.CreatedAt = now
	}
	rate.UpdatedAt = now

	query := `
		INSERT INTO shipping_rates (id, zone_id, name, price, free_shipping_threshold,
			min_order_amount, delivery_estimate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		rate.ID, rate.ZoneID, rate.Name, rate.Price, rate.FreeShippingThreshold,
		rate.MinOrderAmount, rate.DeliveryEstimate, rate.IsActive, rate.CreatedAt, rate.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create shipping rate", zap.Error(err), zap.String("zone_id", rate.ZoneID.String()))
	}
	return err
}
