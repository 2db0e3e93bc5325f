package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/domain"
)

func (h *handlers) getProfile(c *gin.Context) {
	profile, err := h.deps.AccountSvc.Profile(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *handlers) updateProfile(c *gin.Context) {
	var req domain.Profile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	profile, err := h.deps.AccountSvc.UpdateProfile(c.Request.Context(), sessionFrom(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *handlers) listOwnOrders(c *gin.Context) {
	orders, err := h.deps.API.ListOwnOrders(c.Request.Context(), sessionFrom(c).AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) getOwnOrder(c *gin.Context) {
	order, err := h.deps.API.GetOrder(c.Request.Context(), sessionFrom(c).AuthToken, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *handlers) listAddresses(c *gin.Context) {
	addresses, err := h.deps.API.ListAddresses(c.Request.Context(), sessionFrom(c).AuthToken)
	if err != nil {
		respondError(c, err)
		return
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func (h *handlers) addAddress(c *gin.Context) {
	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	address, err := h.deps.API.AddAddress(c.Request.Context(), sessionFrom(c).AuthToken, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, address)
}

func (h *handlers) updateAddress(c *gin.Context) {
	var req domain.Address
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	sess := sessionFrom(c)
	address, err := h.deps.API.UpdateAddress(c.Request.Context(), sess.AuthToken, c.Param("id"), req)
	if err != nil {
		h.respondAddressError(c, sess.AuthToken, err)
		return
	}
	c.JSON(http.StatusOK, address)
}

func (h *handlers) deleteAddress(c *gin.Context) {
	sess := sessionFrom(c)
	if err := h.deps.API.DeleteAddress(c.Request.Context(), sess.AuthToken, c.Param("id")); err != nil {
		h.respondAddressError(c, sess.AuthToken, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) setPrimaryAddress(c *gin.Context) {
	sess := sessionFrom(c)
	if err := h.deps.API.SetPrimaryAddress(c.Request.Context(), sess.AuthToken, c.Param("id")); err != nil {
		h.respondAddressError(c, sess.AuthToken, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// respondAddressError resyncs on 404: the address list the client holds is
// stale, so the fresh server truth rides along with the error.
func (h *handlers) respondAddressError(c *gin.Context, token string, err error) {
	if !errors.Is(err, domain.ErrNotFound) {
		respondError(c, err)
		return
	}
	addresses, listErr := h.deps.API.ListAddresses(c.Request.Context(), token)
	if listErr != nil {
		h.logger.Printf("resync addresses after 404: %v", listErr)
		respondError(c, err)
		return
	}
	if addresses == nil {
		addresses = []domain.Address{}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "address no longer exists", "addresses": addresses})
}

func (h *handlers) submitReview(c *gin.Context) {
	var req domain.Review
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	review, err := h.deps.API.SubmitReview(c.Request.Context(), sessionFrom(c).AuthToken, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
