package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"kebuli-storefront/internal/domain"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

type cartResponse struct {
	Lines      []domain.CartLine `json:"lines"`
	TotalCount int               `json:"totalCount"`
}

func (h *handlers) respondCart(c *gin.Context, cart domain.Cart) {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, cartResponse{Lines: lines, TotalCount: cart.TotalCount()})
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.CartSvc.Cart(c.Request.Context(), sessionFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, cart)
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
}

func (h *handlers) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sess := sessionFrom(c)
	if err := h.deps.CartSvc.AddLine(c.Request.Context(), sess, req.ProductID, req.Quantity, req.Size); err != nil {
		respondError(c, err)
		return
	}

	// The session may have dropped to guest mode mid-operation; reload so the
	// response reflects whichever store now owns the cart.
	sess, err := h.deps.AccountSvc.Session(c.Request.Context(), sess.DeviceID)
	if err != nil {
		respondError(c, err)
		return
	}
	cart, err := h.deps.CartSvc.Cart(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, cart)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	size := c.Query("size")

	sess := sessionFrom(c)
	if err := h.deps.CartSvc.RemoveLine(c.Request.Context(), sess, productID, size); err != nil {
		respondError(c, err)
		return
	}
	cart, err := h.deps.CartSvc.Cart(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, cart)
}

type setQuantityRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Size      string `json:"size"`
	Quantity  int    `json:"quantity"`
}

func (h *handlers) setCartItemQuantity(c *gin.Context) {
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}

	sess := sessionFrom(c)
	if err := h.deps.CartSvc.SetQuantity(c.Request.Context(), sess, req.ProductID, req.Size, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	cart, err := h.deps.CartSvc.Cart(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondCart(c, cart)
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.CartSvc.ClearCart(c.Request.Context(), sessionFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
