package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

type productRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) repository.ProductRepository {
	return &productRepository{pool: pool}
}

const productColumns = "id, user_id, name, image, brand, category, description, rating, num_reviews, price, count_in_stock, active, created_at"

func scanProducts(rows pgx.Rows) ([]models.Product, error) {
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Image, &p.Brand, &p.Category,
			&p.Description, &p.Rating, &p.NumReviews, &p.Price, &p.CountInStock, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture produit: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productRepository) Create(ctx context.Context, p *models.Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO products (id, user_id, name, image, brand, category, description,
			rating, num_reviews, price, count_in_stock, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, p.ID, p.UserID, p.Name, p.Image, p.Brand, p.Category, p.Description,
		p.Rating, p.NumReviews, p.Price, p.CountInStock, p.Active, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertion produit: %w", err)
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := r.pool.QueryRow(ctx,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Image, &p.Brand, &p.Category,
		&p.Description, &p.Rating, &p.NumReviews, &p.Price, &p.CountInStock, &p.Active, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture produit: %w", err)
	}
	return &p, nil
}

func (r *productRepository) Update(ctx context.Context, p *models.Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE products SET name = $2, image = $3, brand = $4, category = $5, description = $6,
			rating = $7, num_reviews = $8, price = $9, count_in_stock = $10, active = $11
		WHERE id = $1
	`, p.ID, p.Name, p.Image, p.Brand, p.Category, p.Description,
		p.Rating, p.NumReviews, p.Price, p.CountInStock, p.Active)
	if err != nil {
		return fmt.Errorf("mise à jour produit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("suppression produit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) ListActive(ctx context.Context, keyword string, limit, offset int) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE active = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, keyword, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("liste produits actifs: %w", err)
	}
	return scanProducts(rows)
}

func (r *productRepository) CountActive(ctx context.Context, keyword string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM products
		WHERE active = TRUE AND ($1 = '' OR name ILIKE '%' || $1 || '%')
	`, keyword).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("comptage produits actifs: %w", err)
	}
	return count, nil
}

func (r *productRepository) Top(ctx context.Context, minRating float64, limit int) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE active = TRUE AND rating >= $1
		ORDER BY rating DESC
		LIMIT $2
	`, minRating, limit)
	if err != nil {
		return nil, fmt.Errorf("top produits: %w", err)
	}
	return scanProducts(rows)
}

func (r *productRepository) ListAll(ctx context.Context, inactiveOnly bool) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE $1 = FALSE OR active = FALSE
		ORDER BY created_at DESC
	`, inactiveOnly)
	if err != nil {
		return nil, fmt.Errorf("liste produits admin: %w", err)
	}
	return scanProducts(rows)
}

func (r *productRepository) Search(ctx context.Context, query string) ([]models.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE active = TRUE
		  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%' OR brand ILIKE '%' || $1 || '%')
		ORDER BY created_at DESC
	`, query)
	if err != nil {
		return nil, fmt.Errorf("recherche produits: %w", err)
	}
	return scanProducts(rows)
}
