package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RelaySecret gates the send-email endpoint behind a single shared bearer
// token. The three failure cases are distinguished on purpose so callers can
// tell a misconfigured client from a wrong secret.
func RelaySecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortRelayAuth(c, "Missing authorization header")
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortRelayAuth(c, "Invalid authorization format")
			return
		}

		provided := authHeader[len("Bearer "):]
		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			abortRelayAuth(c, "Invalid relay secret")
			return
		}

		c.Next()
	}
}

func abortRelayAuth(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   msg,
	})
}
