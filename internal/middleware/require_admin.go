package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin vérifie que l'utilisateur authentifié porte le rôle admin.
func RequireAdmin(c *gin.Context) {
	if !c.GetBool("is_admin") {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Accès réservé aux administrateurs"})
		c.Abort()
		return
	}
	c.Next()
}
