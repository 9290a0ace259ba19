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

type addressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) repository.AddressRepository {
	return &addressRepository{pool: pool}
}

func (r *addressRepository) GetByUser(ctx context.Context, userID string) (*models.UserAddress, error) {
	var a models.UserAddress
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, address, city, zip_code, country
		FROM user_addresses WHERE user_id = $1
	`, userID).Scan(&a.UserID, &a.Address, &a.City, &a.ZipCode, &a.Country)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture adresse: %w", err)
	}
	return &a, nil
}

func (r *addressRepository) Upsert(ctx context.Context, a *models.UserAddress) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_addresses (user_id, address, city, zip_code, country)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET address = $2, city = $3, zip_code = $4, country = $5
	`, a.UserID, a.Address, a.City, a.ZipCode, a.Country)
	if err != nil {
		return fmt.Errorf("upsert adresse: %w", err)
	}
	return nil
}
