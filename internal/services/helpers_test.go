package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/models"
	"velora_back_end/internal/repository/memory"
)

func addr(userID, street, city string) *models.UserAddress {
	return &models.UserAddress{
		UserID:  userID,
		Address: street,
		City:    city,
		ZipCode: "75000",
		Country: "France",
	}
}

// seedProduct insère un produit actif directement dans le dépôt.
func seedProduct(t *testing.T, store *memory.Store, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:           uuid.NewString(),
		UserID:       "admin-1",
		Name:         name,
		Brand:        "Velora",
		Category:     "Divers",
		Price:        price,
		CountInStock: stock,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.Products().Create(context.Background(), product))
	return product
}

// seedProducts insère n produits actifs numérotés.
func seedProducts(t *testing.T, store *memory.Store, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedProduct(t, store, fmt.Sprintf("Produit %02d", i), 10, 5)
	}
}
