package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

// respondError traduit une erreur métier en réponse HTTP. Conflit et
// introuvable sortent volontairement en 400, comme le reste des erreurs
// de requête.
func respondError(c *gin.Context, err error) {
	message := "Erreur interne du serveur"
	var appErr *services.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch services.KindOf(err) {
	case services.KindValidation, services.KindConflict, services.KindNotFound:
		c.JSON(http.StatusBadRequest, gin.H{"detail": message})
	case services.KindForbidden:
		c.JSON(http.StatusForbidden, gin.H{"detail": message})
	case services.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"detail": message})
	default:
		log.Printf("❌ %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Erreur interne du serveur"})
	}
}
