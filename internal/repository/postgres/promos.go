package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/domain"
)

type promoRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPromoRepository creates a postgres-backed promo code repository.
func NewPromoRepository(db *sql.DB, logger *zap.Logger) *promoRepository {
	return &promoRepository{db: db, logger: logger}
}

const promoColumns = `id, code, discount_type, discount_value, min_order_amount,
	max_discount_amount, buy_quantity, get_quantity, valid_from, valid_until,
	max_uses, uses_count, is_active, created_at, updated_at`

func (r *promoRepository) GetActiveByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = $1 AND is_active = TRUE`

	p, err := scanPromo(r.db.QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get promo code", zap.Error(err), zap.String("code", code))
		return nil, err
	}
	return p, nil
}

func (r *promoRepository) Create(ctx context.Context, promo *domain.PromoCode) error {
	now := time.Now().UTC()
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	if promo.CreatedAt.IsZero() {
		promo.CreatedAt = now
	}
	promo.UpdatedAt = now

	query := `
		INSERT INTO promo_codes (id, code, discount_type, discount_value, min_order_amount,
			max_discount_amount, buy_quantity, get_quantity, valid_from, valid_until,
			max_uses, uses_count, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err := r.db.ExecContext(ctx, query,
		promo.ID, promo.Code, promo.DiscountType, promo.DiscountValue, promo.MinOrderAmount,
		promo.MaxDiscountAmount, promo.BuyQuantity, promo.GetQuantity, promo.ValidFrom, promo.ValidUntil,
		promo.MaxUses, promo.UsesCount, promo.IsActive, promo.CreatedAt, promo.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create promo code", zap.Error(err), zap.String("code", promo.Code))
	}
	return err
}

func (r *promoRepository) List(ctx context.Context) ([]domain.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list promo codes", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var promos []domain.PromoCode
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		promos = append(promos, *p)
	}
	return promos, rows.Err()
}

// ConsumeUsage is the one write the checkout core issues against promo
// codes: a single conditional increment, so two concurrent checkouts can
// never push uses_count past max_uses.
func (r *promoRepository) ConsumeUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE promo_codes
		SET uses_count = uses_count + 1, updated_at = $2
		WHERE id = $1 AND (max_uses IS NULL OR uses_count < max_uses)
	`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		r.logger.Error("Failed to consume promo usage", zap.Error(err), zap.String("promo_id", id.String()))
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPromo(row rowScanner) (*domain.PromoCode, error) {
	var p domain.PromoCode
	var minOrder, maxDiscount sql.NullInt64
	var buyQty, getQty, maxUses sql.NullInt64
	var validUntil sql.NullTime

	err := row.Scan(
		&p.ID, &p.Code, &p.DiscountType, &p.DiscountValue, &minOrder,
		&maxDiscount, &buyQty, &getQty, &p.ValidFrom, &validUntil,
		&maxUses, &p.UsesCount, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minOrder.Valid {
		v := minOrder.Int64
		p.MinOrderAmount = &v
	}
	if maxDiscount.Valid {
		v := maxDiscount.Int64
		p.MaxDiscountAmount = &v
	}
	if buyQty.Valid {
		v := int(buyQty.Int64)
		p.BuyQuantity = &v
	}
	if getQty.Valid {
		v := int(getQty.Int64)
		p.GetQuantity = &v
	}
	if maxUses.Valid {
		v := int(maxUses.Int64)
		p.MaxUses = &v
	}
	return &p, nil
}
