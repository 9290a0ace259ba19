package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

// ProductHandler couvre le catalogue public et les avis produits.
type ProductHandler struct {
	catalog *services.CatalogService
	reviews *services.ReviewService
	users   *services.UserService
}

func NewProductHandler(catalog *services.CatalogService, reviews *services.ReviewService, users *services.UserService) *ProductHandler {
	return &ProductHandler{catalog: catalog, reviews: reviews, users: users}
}

// ListProducts renvoie une page du catalogue actif. Un paramètre page
// illisible vaut 1.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil {
		page = 1
	}

	result, err := h.catalog.List(c.Request.Context(), c.Query("keyword"), page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ProductHandler) TopProducts(c *gin.Context) {
	products, err := h.catalog.Top(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	products, err := h.catalog.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) ListProductReviews(c *gin.Context) {
	reviews, err := h.reviews.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// SubmitReview enregistre l'avis de l'utilisateur connecté sur le
// produit :id. L'avis porte le nom affiché de l'auteur, figé au moment
// de la soumission.
func (h *ProductHandler) SubmitReview(c *gin.Context) {
	var input struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Corps de requête invalide"})
		return
	}

	user, err := h.users.Profile(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	review, err := h.reviews.Submit(c.Request.Context(), user.ID, user.Name, c.Param("id"), input.Rating, input.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
