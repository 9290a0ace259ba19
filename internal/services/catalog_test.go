package services_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/repository/memory"
	"velora_back_end/internal/services"
)

// imageStoreRecorder remplace MinIO dans les tests et note les
// suppressions d'objets.
type imageStoreRecorder struct {
	uploads int
	removed []string
}

func (r *imageStoreRecorder) UploadProductImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	r.uploads++
	return fmt.Sprintf("http://minio.local/velora/products/img-%d.png", r.uploads), nil
}

func (r *imageStoreRecorder) RemoveImage(ctx context.Context, imageURL string) error {
	r.removed = append(r.removed, imageURL)
	return nil
}

// imageFileHeader fabrique un *multipart.FileHeader comme le ferait un
// vrai upload de formulaire.
func imageFileHeader(t *testing.T, name string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write([]byte("contenu-image"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	_, header, err := req.FormFile("image")
	require.NoError(t, err)
	return header
}

func newCatalog(store *memory.Store) *services.CatalogService {
	// Cache, recherche et stockage absents : tous nil-tolérants.
	return services.NewCatalogService(store.Products(), nil, nil, nil)
}

func TestListPagination(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	seedProducts(t, store, 17)

	page, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Products, services.PageSize)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)

	// Dernière page : le reste.
	page, err = svc.List(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, page.Products, 1)
}

func TestListClampsPage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	seedProducts(t, store, 17)

	// Hors bornes des deux côtés : ramené dans [1, pages].
	page, err := svc.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)

	page, err = svc.List(ctx, "", 99)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Products, 1)
}

func TestListEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(memory.NewStore())

	page, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	assert.NotNil(t, page.Products)
	assert.Empty(t, page.Products)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.Pages)
}

func TestListKeywordFilter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	seedProduct(t, store, "Clavier mécanique", 89, 3)
	seedProduct(t, store, "Souris sans fil", 39, 3)

	page, err := svc.List(ctx, "clavier", 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, "Clavier mécanique", page.Products[0].Name)
}

func TestListExcludesInactive(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	active := seedProduct(t, store, "Visible", 10, 5)
	hidden := seedProduct(t, store, "Caché", 10, 5)
	hidden.Active = false
	require.NoError(t, store.Products().Update(ctx, hidden))

	page, err := svc.List(ctx, "", 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	assert.Equal(t, active.ID, page.Products[0].ID)

	// Le produit inactif reste lisible à l'unité.
	got, err := svc.Get(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
}

func TestTopProducts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	ratings := []float64{4.8, 3.9, 4.2, 5, 4.5, 4.1, 2, 4.9}
	for _, r := range ratings {
		p := seedProduct(t, store, "Produit", 10, 5)
		p.Rating = r
		require.NoError(t, store.Products().Update(ctx, p))
	}

	top, err := svc.Top(ctx)
	require.NoError(t, err)
	require.Len(t, top, services.TopLimit)
	for i := range top {
		assert.GreaterOrEqual(t, top[i].Rating, services.TopMinRating)
		if i > 0 {
			assert.GreaterOrEqual(t, top[i-1].Rating, top[i].Rating)
		}
	}
}

func TestGetNotFound(t *testing.T) {
	svc := newCatalog(memory.NewStore())
	_, err := svc.Get(context.Background(), "inconnu")
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}

func TestSearchFallsBackToSQL(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	p := seedProduct(t, store, "Casque audio", 120, 4)
	p.Description = "Réduction de bruit active"
	require.NoError(t, store.Products().Update(ctx, p))

	// Sans Elasticsearch, la recherche retombe sur le dépôt.
	results, err := svc.Search(ctx, "bruit")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, p.ID, results[0].ID)

	_, err = svc.Search(ctx, "")
	assert.Equal(t, services.KindValidation, services.KindOf(err))
}

func TestAdminCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := newCatalog(memory.NewStore())

	product, err := svc.AdminCreate(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Produit exemple", product.Name)
	assert.Equal(t, "Marque exemple", product.Brand)
	assert.Equal(t, "Catégorie exemple", product.Category)
	assert.Equal(t, "admin-1", product.UserID)
	assert.Zero(t, product.Price)
	assert.Zero(t, product.CountInStock)
	assert.False(t, product.Active)
}

func TestAdminUpdatePartial(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	product := seedProduct(t, store, "Clavier", 89, 3)

	price := 79.0
	updated, err := svc.AdminUpdate(ctx, product.ID, services.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 79.0, updated.Price)
	assert.Equal(t, "Clavier", updated.Name)
	assert.Equal(t, 3, updated.CountInStock)
	assert.True(t, updated.Active)
}

func TestAdminListInactiveOnly(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	seedProduct(t, store, "Actif", 10, 5)
	draft, err := svc.AdminCreate(ctx, "admin-1")
	require.NoError(t, err)

	all, err := svc.AdminList(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	inactive, err := svc.AdminList(ctx, true)
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, draft.ID, inactive[0].ID)
}

func TestAttachImageReplacesOldObject(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	images := &imageStoreRecorder{}
	svc := services.NewCatalogService(store.Products(), nil, nil, images)

	product := seedProduct(t, store, "Clavier", 89, 3)

	updated, err := svc.AttachImage(ctx, product.ID, imageFileHeader(t, "avant.png"))
	require.NoError(t, err)
	first := updated.Image
	assert.NotEmpty(t, first)
	assert.Empty(t, images.removed)

	// Le second upload supprime l'ancien objet, pas le nouveau.
	updated, err = svc.AttachImage(ctx, product.ID, imageFileHeader(t, "apres.png"))
	require.NoError(t, err)
	assert.NotEqual(t, first, updated.Image)
	assert.Equal(t, []string{first}, images.removed)

	got, err := svc.Get(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Image, got.Image)
}

func TestAdminDeleteRemovesImage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	images := &imageStoreRecorder{}
	svc := services.NewCatalogService(store.Products(), nil, nil, images)

	product := seedProduct(t, store, "Clavier", 89, 3)
	updated, err := svc.AttachImage(ctx, product.ID, imageFileHeader(t, "photo.png"))
	require.NoError(t, err)

	require.NoError(t, svc.AdminDelete(ctx, product.ID))
	assert.Contains(t, images.removed, updated.Image)
}

func TestAdminDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newCatalog(store)

	product := seedProduct(t, store, "Éphémère", 10, 5)
	require.NoError(t, svc.AdminDelete(ctx, product.ID))

	_, err := svc.Get(ctx, product.ID)
	assert.Equal(t, services.KindNotFound, services.KindOf(err))
}
