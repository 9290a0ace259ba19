package database

import "context"

// Migrate crée les tables au démarrage si elles n'existent pas.
// Pas de contrainte d'unicité sur (user_id, product_id) des avis :
// la règle "un avis par couple" est appliquée au niveau applicatif.
func Migrate(ctx context.Context) error {
	_, err := Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			email      TEXT NOT NULL UNIQUE,
			username   TEXT NOT NULL DEFAULT '',
			password   TEXT NOT NULL DEFAULT '',
			is_admin   BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS user_addresses (
			user_id  TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			address  TEXT NOT NULL DEFAULT '',
			city     TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT '',
			country  TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS products (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			name           TEXT NOT NULL DEFAULT '',
			image          TEXT NOT NULL DEFAULT '',
			brand          TEXT NOT NULL DEFAULT '',
			category       TEXT NOT NULL DEFAULT '',
			description    TEXT NOT NULL DEFAULT '',
			rating         DOUBLE PRECISION NOT NULL DEFAULT 0,
			num_reviews    INT NOT NULL DEFAULT 0,
			price          DOUBLE PRECISION NOT NULL DEFAULT 0,
			count_in_stock INT NOT NULL DEFAULT 0,
			active         BOOLEAN NOT NULL DEFAULT FALSE,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS reviews (
			id         TEXT PRIMARY KEY,
			product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			user_id    TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			rating     INT NOT NULL,
			comment    TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id             TEXT PRIMARY KEY,
			user_id        TEXT NOT NULL,
			payment_method TEXT NOT NULL DEFAULT '',
			shipping_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
			is_paid        BOOLEAN NOT NULL DEFAULT FALSE,
			paid_at        TIMESTAMPTZ,
			is_delivered   BOOLEAN NOT NULL DEFAULT FALSE,
			delivered_at   TIMESTAMPTZ,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id         TEXT PRIMARY KEY,
			order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id TEXT NOT NULL,
			name       TEXT NOT NULL DEFAULT '',
			qty        INT NOT NULL DEFAULT 1,
			price      DOUBLE PRECISION NOT NULL DEFAULT 0,
			image      TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS shipping_addresses (
			order_id TEXT PRIMARY KEY REFERENCES orders(id) ON DELETE CASCADE,
			address  TEXT NOT NULL DEFAULT '',
			city     TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id);
		CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
	`)
	return err
}
