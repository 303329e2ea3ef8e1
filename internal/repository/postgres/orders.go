package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/belvieshop/checkout-service/internal/domain"
)

type orderRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOrderRepository creates a postgres-backed order repository.
func NewOrderRepository(db *sql.DB, logger *zap.Logger) *orderRepository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (id, customer_name, customer_phone, city, country, items,
			subtotal, shipping_cost, discount_amount, total, promo_code, promo_code_id,
			shipping_rate_id, shipping_rate_name, status, payment_status,
			payment_gateway, payment_ref, paid_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`
	_, err = r.db.ExecContext(ctx, query,
		order.ID, order.CustomerName, order.CustomerPhone, order.City, order.Country, itemsJSON,
		order.Subtotal, order.ShippingCost, order.DiscountAmount, order.Total, order.PromoCode, order.PromoCodeID,
		order.ShippingRateID, order.ShippingRateName, order.Status, order.PaymentStatus,
		order.PaymentGateway, order.PaymentRef, order.PaidAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create order", zap.Error(err), zap.String("order_id", order.ID.String()))
	}
	return err
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, customer_name, customer_phone, city, country, items,
			subtotal, shipping_cost, discount_amount, total, promo_code, promo_code_id,
			shipping_rate_id, shipping_rate_name, status, payment_status,
			payment_gateway, payment_ref, paid_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var o domain.Order
	var itemsJSON []byte
	var promoCode, gateway, ref sql.NullString
	var promoCodeID uuid.NullUUID
	var paidAt sql.NullTime

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.CustomerName, &o.CustomerPhone, &o.City, &o.Country, &itemsJSON,
		&o.Subtotal, &o.ShippingCost, &o.DiscountAmount, &o.Total, &promoCode, &promoCodeID,
		&o.ShippingRateID, &o.ShippingRateName, &o.Status, &o.PaymentStatus,
		&gateway, &ref, &paidAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, err
		}
	}
	if promoCode.Valid {
		o.PromoCode = &promoCode.String
	}
	if promoCodeID.Valid {
		v := promoCodeID.UUID
		o.PromoCodeID = &v
	}
	if gateway.Valid {
		o.PaymentGateway = &gateway.String
	}
	if ref.Valid {
		o.PaymentRef = &ref.String
	}
	if paidAt.Valid {
		t := paidAt.Time
		o.PaidAt = &t
	}
	return &o, nil
}

// SetPaymentStatus applies a forward-only transition in a single statement.
// The WHERE clause admits exactly the transitions PaymentStatus allows, so a
// replayed webhook or an out-of-order "pending" after "paid" changes nothing
// and reports false.
func (r *orderRepository) SetPaymentStatus(ctx context.Context, id uuid.UUID, status domain.PaymentStatus, gateway, ref string) (bool, error) {
	now := time.Now().UTC()
	query := `
		UPDATE orders
		SET payment_status = $2,
		    payment_gateway = $3,
		    payment_ref = $4,
		    status = CASE WHEN $2 = 'paid' THEN 'paid' WHEN $2 = 'failed' THEN 'failed' ELSE status END,
		    paid_at = CASE WHEN $2 = 'paid' THEN $5 ELSE paid_at END,
		    updated_at = $5
		WHERE id = $1
		  AND payment_status <> $2
		  AND (payment_status = 'pending' OR (payment_status = 'failed' AND $2 = 'paid'))
	`
	res, err := r.db.ExecContext(ctx, query, id, status, gateway, ref, now)
	if err != nil {
		r.logger.Error("Failed to set payment status", zap.Error(err),
			zap.String("order_id", id.String()), zap.String("status", string(status)))
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
