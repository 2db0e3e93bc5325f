package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/domain"
	"kebuli-storefront/internal/remote"
)

func (h *handlers) dashboard(c *gin.Context) {
	stats, err := h.deps.API.FetchDashboard(c.Request.Context(), sessionFrom(c).AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *handlers) listAllOrders(c *gin.Context) {
	orders, err := h.deps.API.ListAllOrders(c.Request.Context(), sessionFrom(c).AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *handlers) updateOrderStatus(c *gin.Context) {
	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
		return
	}
	order, err := h.deps.API.UpdateOrderStatus(c.Request.Context(), sessionFrom(c).AuthToken, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) createMenuItem(c *gin.Context) {
	var req remote.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	item, err := h.deps.API.CreateMenuItem(c.Request.Context(), sessionFrom(c).AuthToken, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *handlers) updateMenuItem(c *gin.Context) {
	var req remote.MenuItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	item, err := h.deps.API.UpdateMenuItem(c.Request.Context(), sessionFrom(c).AuthToken, c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *handlers) deleteMenuItem(c *gin.Context) {
	if err := h.deps.API.DeleteMenuItem(c.Request.Context(), sessionFrom(c).AuthToken, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listCustomers(c *gin.Context) {
	customers, err := h.deps.API.ListCustomers(c.Request.Context(), sessionFrom(c).AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *handlers) listAllReviews(c *gin.Context) {
	reviews, err := h.deps.API.ListAllReviews(c.Request.Context(), sessionFrom(c).AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
