package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

type ReviewService struct {
	reviews  repository.ReviewRepository
	products repository.ProductRepository
}

func NewReviewService(reviews repository.ReviewRepository, products repository.ProductRepository) *ReviewService {
	return &ReviewService{reviews: reviews, products: products}
}

// Submit crée un avis puis laisse le dépôt recalculer la note moyenne et le
// compteur du produit dans la même transaction. Un seul avis par couple
// (utilisateur, produit), règle appliquée ici, pas en base.
func (s *ReviewService) Submit(ctx context.Context, userID, userName, productID string, rating int, comment string) (*models.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Produit introuvable")
		}
		return nil, Internal("erreur lecture produit", err)
	}

	// Le doublon prime sur la note : une re-soumission répond toujours
	// Conflict, même avec une note invalide.
	if _, err := s.reviews.GetByUserAndProduct(ctx, userID, productID); err == nil {
		return nil, Conflict("Produit déjà évalué")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, Internal("erreur vérification avis", err)
	}

	if rating == 0 {
		return nil, Validation("Veuillez choisir une note")
	}
	if rating < 1 || rating > 5 {
		return nil, Validation("La note doit être comprise entre 1 et 5")
	}

	review := &models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		Name:      userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, Internal("erreur création avis", err)
	}
	return review, nil
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Produit introuvable")
		}
		return nil, Internal("erreur lecture produit", err)
	}

	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, Internal("erreur liste avis", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}
