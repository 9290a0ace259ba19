package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

// AdminProductHandler couvre la gestion du catalogue par les admins.
type AdminProductHandler struct {
	catalog *services.CatalogService
}

func NewAdminProductHandler(catalog *services.CatalogService) *AdminProductHandler {
	return &AdminProductHandler{catalog: catalog}
}

func (h *AdminProductHandler) ListProducts(c *gin.Context) {
	inactiveOnly := c.Query("inactive") == "true"
	products, err := h.catalog.AdminList(c.Request.Context(), inactiveOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct crée un brouillon inactif avec des valeurs de
// remplissage ; le front enchaîne avec un PUT avant publication.
func (h *AdminProductHandler) CreateProduct(c *gin.Context) {
	product, err := h.catalog.AdminCreate(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *AdminProductHandler) UpdateProduct(c *gin.Context) {
	var update services.ProductUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Corps de requête invalide"})
		return
	}

	product, err := h.catalog.AdminUpdate(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *AdminProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalog.AdminDelete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// UploadProductImage attend un multipart avec les champs product_id et
// image, remplace l'image existante et renvoie le produit mis à jour.
func (h *AdminProductHandler) UploadProductImage(c *gin.Context) {
	productID := c.PostForm("product_id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Champ product_id manquant"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Fichier image manquant"})
		return
	}

	product, err := h.catalog.AttachImage(c.Request.Context(), productID, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}
