package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

type orderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) repository.OrderRepository {
	return &orderRepository{pool: pool}
}

const orderColumns = "id, user_id, payment_method, shipping_price, total_price, is_paid, paid_at, is_delivered, delivered_at, created_at"

// Place écrit l'en-tête, l'adresse de livraison et les lignes en une seule
// transaction et décrémente le stock de chaque produit. Pas de plancher sur
// le stock : il peut passer en négatif, la rupture est un problème métier.
func (r *orderRepository) Place(ctx context.Context, o *models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ouverture transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, payment_method, shipping_price, total_price,
			is_paid, is_delivered, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, FALSE, $6)
	`, o.ID, o.UserID, o.PaymentMethod, o.ShippingPrice, o.TotalPrice, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertion commande: %w", err)
	}

	if o.ShippingAddress != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO shipping_addresses (order_id, address, city, zip_code)
			VALUES ($1, $2, $3, $4)
		`, o.ID, o.ShippingAddress.Address, o.ShippingAddress.City, o.ShippingAddress.ZipCode)
		if err != nil {
			return fmt.Errorf("insertion adresse de livraison: %w", err)
		}
	}

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, qty, price, image)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, item.ID, o.ID, item.ProductID, item.Name, item.Qty, item.Price, item.Image)
		if err != nil {
			return fmt.Errorf("insertion ligne de commande: %w", err)
		}

		// Décrément atomique, dans la même transaction que les lignes.
		tag, err := tx.Exec(ctx,
			"UPDATE products SET count_in_stock = count_in_stock - $1 WHERE id = $2",
			item.Qty, item.ProductID)
		if err != nil {
			return fmt.Errorf("décrément stock: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	err := r.pool.QueryRow(ctx,
		"SELECT "+orderColumns+" FROM orders WHERE id = $1", id,
	).Scan(&o.ID, &o.UserID, &o.PaymentMethod, &o.ShippingPrice, &o.TotalPrice,
		&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture commande: %w", err)
	}

	if err := r.populate(ctx, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders WHERE user_id = $1 ORDER BY created_at", userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at")
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("liste commandes: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.PaymentMethod, &o.ShippingPrice, &o.TotalPrice,
			&o.IsPaid, &o.PaidAt, &o.IsDelivered, &o.DeliveredAt, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture commande: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		if err := r.populate(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// populate charge les lignes et l'adresse de livraison d'une commande.
func (r *orderRepository) populate(ctx context.Context, o *models.Order) error {
	rows, err := r.pool.Query(ctx, `
		SELECT id, order_id, product_id, name, qty, price, image
		FROM order_items WHERE order_id = $1
	`, o.ID)
	if err != nil {
		return fmt.Errorf("lecture lignes de commande: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Name, &item.Qty, &item.Price, &item.Image); err != nil {
			return fmt.Errorf("lecture ligne de commande: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var addr models.ShippingAddress
	err = r.pool.QueryRow(ctx, `
		SELECT order_id, address, city, zip_code
		FROM shipping_addresses WHERE order_id = $1
	`, o.ID).Scan(&addr.OrderID, &addr.Address, &addr.City, &addr.ZipCode)
	if err == nil {
		o.ShippingAddress = &addr
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("lecture adresse de livraison: %w", err)
	}
	return nil
}

// MarkPaid est idempotent : re-marquer une commande payée réécrit le même état.
func (r *orderRepository) MarkPaid(ctx context.Context, id string, at time.Time) error {
	return r.mark(ctx, "UPDATE orders SET is_paid = TRUE, paid_at = $2 WHERE id = $1", id, at)
}

func (r *orderRepository) MarkDelivered(ctx context.Context, id string, at time.Time) error {
	return r.mark(ctx, "UPDATE orders SET is_delivered = TRUE, delivered_at = $2 WHERE id = $1", id, at)
}

func (r *orderRepository) mark(ctx context.Context, query, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("mise à jour commande: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}
