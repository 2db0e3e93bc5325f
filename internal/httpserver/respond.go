package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/domain"
)

// respondError maps the domain error taxonomy onto HTTP statuses. Nothing is
// fatal to the gateway: a failed upstream call degrades one endpoint to an
// error payload the client can retry from.
func respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": vErr.Fields})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrUnreachable):
		c.JSON(http.StatusBadGateway, gin.H{"error": "service unavailable, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
