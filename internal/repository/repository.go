package repository

import (
	"context"
	"errors"
	"time"

	"velora_back_end/internal/models"
)

// Erreurs sentinelles remontées par toutes les implémentations,
// à traduire en erreurs métier dans la couche services.
var (
	ErrNotFound  = errors.New("enregistrement introuvable")
	ErrDuplicate = errors.New("enregistrement déjà existant")
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
}

type AddressRepository interface {
	GetByUser(ctx context.Context, userID string) (*models.UserAddress, error)
	// Upsert crée l'adresse si absente, sinon l'écrase (une par utilisateur).
	Upsert(ctx context.Context, a *models.UserAddress) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error

	// ListActive ne renvoie que les produits actifs, filtrés par sous-chaîne
	// de nom insensible à la casse quand keyword est non vide.
	ListActive(ctx context.Context, keyword string, limit, offset int) ([]models.Product, error)
	CountActive(ctx context.Context, keyword string) (int, error)
	Top(ctx context.Context, minRating float64, limit int) ([]models.Product, error)
	ListAll(ctx context.Context, inactiveOnly bool) ([]models.Product, error)
	Search(ctx context.Context, query string) ([]models.Product, error)
}

type ReviewRepository interface {
	// Create insère l'avis puis recalcule rating et num_reviews du produit
	// dans la même transaction (re-scan complet des avis).
	Create(ctx context.Context, r *models.Review) error
	GetByUserAndProduct(ctx context.Context, userID, productID string) (*models.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type OrderRepository interface {
	// Place persiste l'en-tête, l'adresse de livraison et les lignes comme
	// une seule unité, et décrémente le stock de chaque produit. Tout ou rien.
	Place(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	MarkPaid(ctx context.Context, id string, at time.Time) error
	MarkDelivered(ctx context.Context, id string, at time.Time) error
}
