package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the tables the service needs. Statements are
// idempotent so a restart against an existing database is harmless.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS shipping_zones (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			countries TEXT[] NOT NULL DEFAULT '{}',
			cities TEXT[] NOT NULL DEFAULT '{}',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS shipping_rates (
			id UUID PRIMARY KEY,
			zone_id UUID NOT NULL REFERENCES shipping_zones(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			price BIGINT NOT NULL CHECK (price >= 0),
			free_shipping_threshold BIGINT,
			min_order_amount BIGINT,
			delivery_estimate TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_shipping_rates_zone ON shipping_rates (zone_id)`,
		`CREATE TABLE IF NOT EXISTS promo_codes (
			id UUID PRIMARY KEY,
			code TEXT NOT NULL UNIQUE,
			discount_type TEXT NOT NULL,
			discount_value BIGINT NOT NULL,
			min_order_amount BIGINT,
			max_discount_amount BIGINT,
			buy_quantity INT,
			get_quantity INT,
			valid_from TIMESTAMPTZ NOT NULL,
			valid_until TIMESTAMPTZ,
			max_uses INT,
			uses_count INT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CHECK (max_uses IS NULL OR uses_count <= max_uses)
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name TEXT NOT NULL DEFAULT '',
			customer_phone TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL,
			country TEXT NOT NULL,
			items JSONB NOT NULL DEFAULT '[]',
			subtotal BIGINT NOT NULL,
			shipping_cost BIGINT NOT NULL,
			discount_amount BIGINT NOT NULL DEFAULT 0,
			total BIGINT NOT NULL CHECK (total >= 0),
			promo_code TEXT,
			promo_code_id UUID,
			shipping_rate_id TEXT NOT NULL DEFAULT '',
			shipping_rate_name TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'pending',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			payment_gateway TEXT,
			payment_ref TEXT,
			paid_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_created ON orders (created_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
