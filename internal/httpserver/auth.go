package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/remote"
	sessionrepo "kebuli-storefront/internal/repository/session"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionResponse struct {
	Role    string      `json:"role"`
	Profile interface{} `json:"profile"`
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
		return
	}

	sess, err := h.deps.AccountSvc.Login(c.Request.Context(), c.GetString(deviceKey), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.mergeGuestCart(c, sess)
	c.JSON(http.StatusOK, sessionResponse{Role: sess.Role, Profile: sess.Profile})
}

func (h *handlers) register(c *gin.Context) {
	var req remote.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	sess, err := h.deps.AccountSvc.Register(c.Request.Context(), c.GetString(deviceKey), req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.mergeGuestCart(c, sess)
	c.JSON(http.StatusCreated, sessionResponse{Role: sess.Role, Profile: sess.Profile})
}

// mergeGuestCart migrates guest lines after authentication. Migration trouble
// never fails the sign-in itself.
func (h *handlers) mergeGuestCart(c *gin.Context, sess sessionrepo.Session) {
	if err := h.deps.CartSvc.MergeGuestCart(c.Request.Context(), sess); err != nil {
		h.logger.Printf("device %s: merge guest cart: %v", sess.DeviceID, err)
	}
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.AccountSvc.Logout(c.Request.Context(), sessionFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
