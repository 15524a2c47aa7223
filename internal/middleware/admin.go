package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminHeader carries the back-office shared secret.
const AdminHeader = "x-admin-key"

// RequireAdmin guards admin routes with a shared-secret header. The
// key is injected rather than read from global config so tests can
// substitute it. An empty key rejects everything.
func RequireAdmin(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(AdminHeader)
		if adminKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(adminKey)) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}
