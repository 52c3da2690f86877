package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BearerAuthMiddleware requires "Authorization: Bearer <token>" matching the
// configured token. When disabled every request passes.
func BearerAuthMiddleware(logger *zap.Logger, enabled bool, token string) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		start := time.Now()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			unauthorized(c, "Invalid Authorization header format")
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(token)) != 1 {
			logger.Warn("Rejected bearer token", zap.String("path", c.Request.URL.Path))
			unauthorized(c, "Invalid token")
			return
		}

		logger.Debug("Bearer auth validated",
			zap.String("path", c.Request.URL.Path),
			zap.Duration("auth_duration", time.Since(start)),
		)
		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error":  message,
		"status": http.StatusUnauthorized,
	})
	c.Abort()
}
