package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"timelineforum/internal/core/apperr"
)

// respondError maps core errors to HTTP statuses. Persistence details are
// never echoed to clients.
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case apperr.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// actingUser pulls the authenticated user id set by the JWT middleware.
func actingUser(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found in context"})
		return "", false
	}
	return userID.(string), true
}
