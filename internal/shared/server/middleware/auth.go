package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/shared/server/respond"
)

// PasswordGate enforces the shared-secret access password on API routes.
// The gate is disabled when no password is configured. The auth endpoint
// itself and liveness probes are always reachable.
func PasswordGate(password string) gin.HandlerFunc {
	password = strings.TrimSpace(password)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		if password == "" {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/health") || strings.HasSuffix(path, "/metrics") || strings.HasSuffix(path, "/auth") {
			c.Next()
			return
		}

		supplied := strings.TrimSpace(c.GetHeader("X-Access-Password"))
		if supplied == "" {
			if header := strings.TrimSpace(c.GetHeader("Authorization")); strings.HasPrefix(header, "Bearer ") {
				supplied = strings.TrimSpace(strings.TrimPrefix(header, "Bearer"))
			}
		}

		if subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid password", nil)
			return
		}
		c.Next()
	}
}
