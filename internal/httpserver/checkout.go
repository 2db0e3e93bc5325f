package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/service/checkout"
	"kebuli-storefront/internal/service/payment"
)

func (h *handlers) checkoutSummary(c *gin.Context) {
	summary, err := h.deps.CheckoutSvc.Summary(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type toggleSelectionRequest struct {
	LineKey  string `json:"lineKey" binding:"required"`
	Selected *bool  `json:"selected" binding:"required"`
}

func (h *handlers) toggleSelection(c *gin.Context) {
	var req toggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lineKey and selected required"})
		return
	}
	sess := sessionFrom(c)
	if err := h.deps.CheckoutSvc.ToggleLine(c.Request.Context(), sess, req.LineKey, *req.Selected); err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.deps.CheckoutSvc.Summary(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type selectAllRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

func (h *handlers) selectAll(c *gin.Context) {
	var req selectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "selected required"})
		return
	}
	sess := sessionFrom(c)
	if err := h.deps.CheckoutSvc.SelectAll(c.Request.Context(), sess, *req.Selected); err != nil {
		respondError(c, err)
		return
	}
	summary, err := h.deps.CheckoutSvc.Summary(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) submitOrder(c *gin.Context) {
	var req checkout.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	order, err := h.deps.CheckoutSvc.Submit(c.Request.Context(), sessionFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

type paymentCallbackRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

func (h *handlers) paymentCallback(c *gin.Context) {
	var req paymentCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "orderId and status required"})
		return
	}
	if err := h.deps.PaymentSvc.HandleCallback(c.Request.Context(), req.OrderID, req.Status); err != nil {
		if errors.Is(err, payment.ErrUnknownStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "acknowledged"})
}
