package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
	"velora_back_end/internal/utils"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

func authPayload(user *models.User) (gin.H, error) {
	token, err := utils.GenerateJWT(*user)
	if err != nil {
		return nil, err
	}
	return gin.H{"token": token, "user": user}, nil
}

// Register crée un compte et renvoie directement un token : pas de
// second appel login après inscription.
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Corps de requête invalide"})
		return
	}

	user, err := h.users.Register(c.Request.Context(), input.Name, input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	payload, err := authPayload(user)
	if err != nil {
		respondError(c, services.Internal("erreur génération token", err))
		return
	}
	c.JSON(http.StatusCreated, payload)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Corps de requête invalide"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	payload, err := authPayload(user)
	if err != nil {
		respondError(c, services.Internal("erreur génération token", err))
		return
	}
	c.JSON(http.StatusOK, payload)
}
