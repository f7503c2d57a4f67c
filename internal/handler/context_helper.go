package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ediary-dev/ediary-api/internal/middleware"
	"github.com/ediary-dev/ediary-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func viewerFromContext(c *gin.Context) models.Viewer {
	return models.ViewerFromClaims(claimsFromContext(c))
}
