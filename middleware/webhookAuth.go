package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"glowdesk/config"

	"github.com/gin-gonic/gin"
)

// WebhookAuthMiddleware guards the channel webhook endpoints with the shared
// token the SMS/voice/email gateways are provisioned with.
func WebhookAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		expected := config.AppConfig.WebhookToken
		if expected == "" || subtle.ConstantTimeCompare([]byte(token), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized webhook access"})
			return
		}

		c.Next()
	}
}
