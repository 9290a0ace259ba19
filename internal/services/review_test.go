package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/repository/memory"
	"velora_back_end/internal/services"
)

func newReviewService(store *memory.Store) *services.ReviewService {
	return services.NewReviewService(store.Reviews(), store.Products())
}

func TestSubmitReviewRecomputesAggregate(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newReviewService(store)

	product := seedProduct(t, store, "Clavier", 89, 3)

	_, err := svc.Submit(ctx, "user-1", "Alice", product.ID, 5, "Excellent")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "user-2", "Bob", product.ID, 4, "Très bien")
	require.NoError(t, err)

	// rating = moyenne exacte, numReviews = compte.
	got, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.5, got.Rating, 0.001)
	assert.Equal(t, 2, got.NumReviews)
}

func TestSubmitReviewOncePerUser(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newReviewService(store)

	product := seedProduct(t, store, "Clavier", 89, 3)

	_, err := svc.Submit(ctx, "user-1", "Alice", product.ID, 5, "Excellent")
	require.NoError(t, err)

	_, err = svc.Submit(ctx, "user-1", "Alice", product.ID, 3, "Je change d'avis")
	assert.Equal(t, services.KindConflict, services.KindOf(err))

	// L'agrégat n'a pas bougé.
	got, err := store.Products().GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.NumReviews)
	assert.InDelta(t, 5, got.Rating, 0.001)
}

func TestSubmitReviewDuplicateWinsOverBadRating(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newReviewService(store)

	product := seedProduct(t, store, "Clavier", 89, 3)

	_, err := svc.Submit(ctx, "user-1", "Alice", product.ID, 5, "Excellent")
	require.NoError(t, err)

	// Re-soumission avec une note absente : Conflict, pas Validation.
	_, err = svc.Submit(ctx, "user-1", "Alice", product.ID, 0, "")
	assert.Equal(t, services.KindConflict, services.KindOf(err))

	_, err = svc.Submit(ctx, "user-1", "Alice", product.ID, 6, "")
	assert.Equal(t, services.KindConflict, services.KindOf(err))
}

func TestSubmitReviewValidatesRating(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newReviewService(store)

	product := seedProduct(t, store, "Clavier", 89, 3)

	// Note absente et note hors bornes : messages distincts, même classe.
	_, errZero := svc.Submit(ctx, "user-1", "Alice", product.ID, 0, "")
	assert.Equal(t, services.KindValidation, services.KindOf(errZero))
	assert.Equal(t, "Veuillez choisir une note", errZero.Error())

	_, errHigh := svc.Submit(ctx, "user-1", "Alice", product.ID, 6, "")
	assert.Equal(t, services.KindValidation, services.KindOf(errHigh))
	assert.Equal(t, "La note doit être comprise entre 1 et 5", errHigh.Error())
}

func TestSubmitReviewUnknownProduct(t *testing.T) {
	svc := newReviewService(memory.NewStore())
	_, err := svc.Submit(context.Background(), "user-1", "Alice", "inconnu", 4, "")
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestListReviewsByProduct(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newReviewService(store)

	product := seedProduct(t, store, "Clavier", 89, 3)

	reviews, err := svc.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.NotNil(t, reviews)
	assert.Empty(t, reviews)

	_, err = svc.Submit(ctx, "user-1", "Alice", product.ID, 5, "Excellent")
	require.NoError(t, err)

	reviews, err = svc.ListByProduct(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "Alice", reviews[0].Name)

	_, err = svc.ListByProduct(ctx, "inconnu")
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
