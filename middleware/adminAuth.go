package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	AdminKeyHeader = "X-Admin-Key"
	AdminKeyQuery  = "adminKey"
)

// AdminKeyMiddleware admits requests carrying the shared admin key in the
// X-Admin-Key header or the adminKey query parameter. An empty configured key
// locks the admin surface entirely.
func AdminKeyMiddleware(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			zap.L().Warn("Admin request rejected: no admin key configured", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin access is not configured"})
			return
		}

		provided := c.GetHeader(AdminKeyHeader)
		if provided == "" {
			provided = c.Query(AdminKeyQuery)
		}
		if provided == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing admin key"})
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
			zap.L().Warn("Invalid admin key", zap.String("ip", getClientIP(c)))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}

		c.Set("isAdmin", true)
		c.Next()
	}
}
