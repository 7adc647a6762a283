package middleware

import (
	"crypto/subtle"
	"net/http"

	"storefront-api/internal/response"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards admin routes with a static API key supplied in the
// X-API-Key header. With no key configured the routes are disabled.
func AdminAuth(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			response.ErrorJSON(c, http.StatusServiceUnavailable, "Admin API is not configured")
			c.Abort()
			return
		}

		provided := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.ErrorJSON(c, http.StatusUnauthorized, "Invalid API key")
			c.Abort()
			return
		}

		c.Next()
	}
}
