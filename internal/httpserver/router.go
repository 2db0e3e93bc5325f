package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"kebuli-storefront/internal/remote"
	"kebuli-storefront/internal/service/account"
	"kebuli-storefront/internal/service/cart"
	"kebuli-storefront/internal/service/checkout"
	"kebuli-storefront/internal/service/payment"
)

// Deps carries the services the routes depend on.
type Deps struct {
	AccountSvc  *account.Service
	CartSvc     *cart.Service
	CheckoutSvc *checkout.Service
	PaymentSvc  *payment.Service
	API         *remote.Client
}

// buildRouter wires routes for the storefront gateway.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.Use(deviceMiddleware(), sessionMiddleware(deps.AccountSvc, logger))

	// Public storefront.
	api.GET("/menu", h.listMenu)
	api.GET("/menu/:id", h.getMenuItem)
	api.GET("/reviews", h.listReviews)

	// Cart: uniform surface over guest and remote carts.
	api.GET("/cart", h.getCart)
	api.POST("/cart/items", h.addCartItem)
	api.DELETE("/cart/items", h.removeCartItem)
	api.PUT("/cart/items/quantity", h.setCartItemQuantity)
	api.DELETE("/cart", h.clearCart)

	// Checkout projection and submission.
	api.GET("/checkout/summary", h.checkoutSummary)
	api.PUT("/checkout/selection", h.toggleSelection)
	api.PUT("/checkout/selection/all", h.selectAll)
	api.POST("/checkout", h.submitOrder)

	// Asynchronous re-entry point for the payment widget.
	api.POST("/payment/callback", h.paymentCallback)

	// Session lifecycle.
	api.POST("/auth/login", h.login)
	api.POST("/auth/register", h.register)
	api.POST("/auth/logout", h.logout)

	// Account pages.
	authed := api.Group("")
	authed.Use(requireAuth())
	authed.GET("/profile", h.getProfile)
	authed.PUT("/profile", h.updateProfile)
	authed.GET("/orders", h.listOwnOrders)
	authed.GET("/orders/:id", h.getOwnOrder)
	authed.GET("/addresses", h.listAddresses)
	authed.POST("/addresses", h.addAddress)
	authed.PUT("/addresses/:id", h.updateAddress)
	authed.DELETE("/addresses/:id", h.deleteAddress)
	authed.PUT("/addresses/:id/primary", h.setPrimaryAddress)
	authed.POST("/reviews", h.submitReview)

	// Admin console.
	admin := api.Group("/admin")
	admin.Use(requireAuth(), requireAdmin())
	admin.GET("/dashboard", h.dashboard)
	admin.GET("/orders", h.listAllOrders)
	admin.PUT("/orders/:id/status", h.updateOrderStatus)
	admin.POST("/menu", h.createMenuItem)
	admin.PUT("/menu/:id", h.updateMenuItem)
	admin.DELETE("/menu/:id", h.deleteMenuItem)
	admin.GET("/customers", h.listCustomers)
	admin.GET("/reviews", h.listAllReviews)

	return router
}
