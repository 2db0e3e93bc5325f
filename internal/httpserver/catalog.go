package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/domain"
)

func (h *handlers) listMenu(c *gin.Context) {
	items, err := h.deps.API.ListMenu(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) getMenuItem(c *gin.Context) {
	item, err := h.deps.API.GetMenuItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) listReviews(c *gin.Context) {
	reviews, err := h.deps.API.ListReviews(c.Request.Context(), c.Query("menuItemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
