package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sessionrepo "kebuli-storefront/internal/repository/session"
	"kebuli-storefront/internal/service/account"
)

const (
	deviceCookie       = "store_device_id"
	deviceCookieMaxAge = 60 * 60 * 24 * 365

	deviceKey  = "deviceID"
	sessionKey = "session"
)

// deviceMiddleware mints a durable device id cookie on first contact. The id
// keys everything the gateway persists for the browser: guest cart, session,
// selection, pending operations.
func deviceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(deviceCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(deviceCookie, id, deviceCookieMaxAge, "/", "", false, true)
		}
		c.Set(deviceKey, id)
		c.Next()
	}
}

// sessionMiddleware loads the typed session for the device once per request.
func sessionMiddleware(accounts *account.Service, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetString(deviceKey)
		sess, err := accounts.Session(c.Request.Context(), deviceID)
		if err != nil {
			logger.Printf("device %s: load session: %v", deviceID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) sessionrepo.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(sessionrepo.Session); ok {
			return sess
		}
	}
	return sessionrepo.Session{DeviceID: c.GetString(deviceKey)}
}

// requireAuth redirects unauthenticated sessions to sign-in territory: the
// operation has no guest fallback.
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessionFrom(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "sign in required"})
			return
		}
		c.Next()
	}
}

// requireAdmin gates the admin console on the cached role without touching
// the upstream API.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessionFrom(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
