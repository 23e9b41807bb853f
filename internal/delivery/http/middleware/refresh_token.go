package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/internal/domain"
	"portfolio-website/pkg/security"

	"github.com/gin-gonic/gin"
)

// RefreshTokenAuth guards operator endpoints with a shared bearer token.
// An empty token closes the endpoint for everyone.
func RefreshTokenAuth(token string, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			response.Error(c, http.StatusNotFound, "Not found", nil)
			c.Abort()
			return
		}

		sent := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			secLog.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventRefreshDenied,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: c.GetString(string(domain.KeyRequestID)),
				Details:   map[string]interface{}{"path": c.Request.URL.Path, "missing": sent == ""},
			})
			c.Header("WWW-Authenticate", `Bearer realm="content"`)
			response.Error(c, http.StatusUnauthorized, "Authorization required", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
