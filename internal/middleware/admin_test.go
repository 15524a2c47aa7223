package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func guardedRequest(adminKey, headerKey string) int {
	r := gin.New()
	r.GET("/admin/ping", RequireAdmin(adminKey), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if headerKey != "" {
		req.Header.Set(AdminHeader, headerKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAdmin(t *testing.T) {
	assert.Equal(t, http.StatusOK, guardedRequest("s3cret", "s3cret"))
	assert.Equal(t, http.StatusUnauthorized, guardedRequest("s3cret", "wrong"))
	assert.Equal(t, http.StatusUnauthorized, guardedRequest("s3cret", ""))
}

func TestRequireAdminEmptyKeyRejectsAll(t *testing.T) {
	// an unset key must fail closed, never open
	assert.Equal(t, http.StatusUnauthorized, guardedRequest("", ""))
	assert.Equal(t, http.StatusUnauthorized, guardedRequest("", "anything"))
}
