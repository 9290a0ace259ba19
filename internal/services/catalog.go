package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"velora_back_end/internal/cache"
	"velora_back_end/internal/models"
	"velora_back_end/internal/repository"
)

const (
	// PageSize est la taille fixe des pages du catalogue public.
	PageSize = 8

	TopMinRating = 4.0
	TopLimit     = 5
)

type CatalogService struct {
	products repository.ProductRepository
	cache    *cache.ProductCache // optionnel
	search   *ElasticIndex       // optionnel
	storage  ImageStore          // optionnel
}

func NewCatalogService(products repository.ProductRepository, c *cache.ProductCache, search *ElasticIndex, storage ImageStore) *CatalogService {
	return &CatalogService{products: products, cache: c, search: search, storage: storage}
}

// List renvoie une page de produits actifs. page est borné à [1, pages] :
// une page hors limites est silencieusement ramenée dans l'intervalle.
func (s *CatalogService) List(ctx context.Context, keyword string, page int) (*models.ProductPage, error) {
	// Seules les pages non filtrées passent par le cache.
	if keyword == "" {
		if cached, ok := s.cache.GetPage(ctx, page); ok {
			return cached, nil
		}
	}

	count, err := s.products.CountActive(ctx, keyword)
	if err != nil {
		return nil, Internal("erreur comptage produits", err)
	}

	pages := (count + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	products, err := s.products.ListActive(ctx, keyword, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, Internal("erreur liste produits", err)
	}
	if products == nil {
		products = []models.Product{}
	}

	result := &models.ProductPage{Products: products, Page: page, Pages: pages}
	if keyword == "" {
		s.cache.SetPage(ctx, page, result)
	}
	return result, nil
}

func (s *CatalogService) Top(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.Top(ctx, TopMinRating, TopLimit)
	if err != nil {
		return nil, Internal("erreur top produits", err)
	}
	return products, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound("Produit introuvable")
		}
		return nil, Internal("erreur lecture produit", err)
	}
	return product, nil
}

// Search interroge Elasticsearch en priorité et retombe sur SQL quand
// l'index est vide ou indisponible.
func (s *CatalogService) Search(ctx context.Context, query string) ([]models.Product, error) {
	if query == "" {
		return nil, Validation("Paramètre 'q' manquant")
	}

	if results, err := s.search.Search(ctx, query); err == nil && len(results) > 0 {
		return results, nil
	}

	products, err := s.products.Search(ctx, query)
	if err != nil {
		return nil, Internal("erreur recherche produits", err)
	}
	return products, nil
}

// --- Administration ---

// ProductUpdate est une mise à jour partielle explicite : tout champ nil
// conserve la valeur stockée.
type ProductUpdate struct {
	Name         *string  `json:"name"`
	Brand        *string  `json:"brand"`
	Category     *string  `json:"category"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	CountInStock *int     `json:"countInStock"`
	Active       *bool    `json:"active"`
}

func (s *CatalogService) AdminList(ctx context.Context, inactiveOnly bool) ([]models.Product, error) {
	products, err := s.products.ListAll(ctx, inactiveOnly)
	if err != nil {
		return nil, Internal("erreur liste produits admin", err)
	}
	return products, nil
}

// AdminCreate crée un produit avec des valeurs de remplissage, propriété de
// l'admin qui agit. Le produit naît inactif : l'appelant enchaîne avec une
// mise à jour avant publication.
func (s *CatalogService) AdminCreate(ctx context.Context, adminID string) (*models.Product, error) {
	product := &models.Product{
		ID:        uuid.NewString(),
		UserID:    adminID,
		Name:      "Produit exemple",
		Brand:     "Marque exemple",
		Category:  "Catégorie exemple",
		CreatedAt: time.Now(),
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, Internal("erreur création produit", err)
	}

	s.cache.Invalidate(ctx)
	s.search.IndexProduct(ctx, *product)
	return product, nil
}

func (s *CatalogService) AdminUpdate(ctx context.Context, id string, update ProductUpdate) (*models.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		product.Name = *update.Name
	}
	if update.Brand != nil {
		product.Brand = *update.Brand
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Description != nil {
		product.Description = *update.Description
	}
	if update.Price != nil {
		product.Price = *update.Price
	}
	if update.CountInStock != nil {
		product.CountInStock = *update.CountInStock
	}
	if update.Active != nil {
		product.Active = *update.Active
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, Internal("erreur mise à jour produit", err)
	}

	s.cache.Invalidate(ctx)
	s.search.IndexProduct(ctx, *product)
	return product, nil
}

// AdminDelete supprime d'abord l'image stockée du produit, puis le produit.
func (s *CatalogService) AdminDelete(ctx context.Context, id string) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if product.Image != "" && s.storage != nil {
		if err := s.storage.RemoveImage(ctx, product.Image); err != nil {
			log.Printf("⚠️ Échec suppression image %s: %v", product.Image, err)
		}
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return Internal("erreur suppression produit", err)
	}

	s.cache.Invalidate(ctx)
	s.search.DeleteProduct(ctx, id)
	return nil
}

// AttachImage remplace l'image du produit : l'ancien objet est supprimé du
// bucket après l'upload du nouveau.
func (s *CatalogService) AttachImage(ctx context.Context, productID string, file *multipart.FileHeader) (*models.Product, error) {
	if s.storage == nil {
		return nil, Internal("stockage d'images non configuré", nil)
	}

	product, err := s.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.UploadProductImage(ctx, file)
	if err != nil {
		return nil, Internal("erreur upload image", err)
	}

	if product.Image != "" {
		if err := s.storage.RemoveImage(ctx, product.Image); err != nil {
			log.Printf("⚠️ Échec suppression ancienne image %s: %v", product.Image, err)
		}
	}

	product.Image = url
	if err := s.products.Update(ctx, product); err != nil {
		return nil, Internal("erreur mise à jour produit", err)
	}

	s.cache.Invalidate(ctx)
	s.search.IndexProduct(ctx, *product)
	return product, nil
}
