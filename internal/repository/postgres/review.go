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

type reviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) repository.ReviewRepository {
	return &reviewRepository{pool: pool}
}

// Create insère l'avis puis recalcule la moyenne et le compteur du produit
// dans la même transaction : un échec à n'importe quelle étape annule tout.
func (r *reviewRepository) Create(ctx context.Context, rev *models.Review) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("ouverture transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO reviews (id, product_id, user_id, name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, rev.ID, rev.ProductID, rev.UserID, rev.Name, rev.Rating, rev.Comment, rev.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertion avis: %w", err)
	}

	// Re-scan complet des avis du produit, O(numReviews) par soumission.
	tag, err := tx.Exec(ctx, `
		UPDATE products SET
			rating      = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE product_id = $1),
			num_reviews = (SELECT COUNT(*) FROM reviews WHERE product_id = $1)
		WHERE id = $1
	`, rev.ProductID)
	if err != nil {
		return fmt.Errorf("recalcul note produit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *reviewRepository) GetByUserAndProduct(ctx context.Context, userID, productID string) (*models.Review, error) {
	var rev models.Review
	err := r.pool.QueryRow(ctx, `
		SELECT id, product_id, user_id, name, rating, comment, created_at
		FROM reviews WHERE user_id = $1 AND product_id = $2
		LIMIT 1
	`, userID, productID).Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Name, &rev.Rating, &rev.Comment, &rev.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture avis: %w", err)
	}
	return &rev, nil
}

func (r *reviewRepository) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, product_id, user_id, name, rating, comment, created_at
		FROM reviews WHERE product_id = $1
		ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("liste avis: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rev models.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.Name, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("lecture avis: %w", err)
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}
