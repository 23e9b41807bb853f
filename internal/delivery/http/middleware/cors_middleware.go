package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the configured origins to call the JSON API.
// Same-origin requests carry no Origin header and pass through. In
// development, localhost origins are allowed as well.
func CORSMiddleware(allowedOrigins []string, isProduction bool) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}

	isAllowed := func(origin string) bool {
		if origin == "" || allowed[origin] {
			return true
		}
		if !isProduction {
			return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
		}
		return false
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		ok := isAllowed(origin)

		if ok && origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Accept, X-CSRF-Token, X-Request-ID")
			c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			c.Header("Access-Control-Max-Age", "86400")
		}
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			if ok {
				c.AbortWithStatus(http.StatusNoContent)
			} else {
				c.AbortWithStatus(http.StatusForbidden)
			}
			return
		}
		c.Next()
	}
}
