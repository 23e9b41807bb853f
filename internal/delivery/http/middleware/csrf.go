package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
	"time"

	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/pkg/security"

	"github.com/gin-gonic/gin"
)

const (
	// CSRFTokenCookieName is the name of the cookie that stores the CSRF token
	CSRFTokenCookieName = "csrf_token"
	// CSRFTokenHeaderName carries the token on JSON requests
	CSRFTokenHeaderName = "X-CSRF-Token"
	// CSRFTokenFormField carries the token on HTML form posts
	CSRFTokenFormField = "csrf_token"
	// CSRFTokenLength is the length of the generated token in bytes (32 bytes = 64 hex chars)
	CSRFTokenLength = 32
	// CSRFTokenExpiry is how long the token is valid
	CSRFTokenExpiry = 24 * time.Hour

	csrfContextKey = "csrf_token"
)

// generateCSRFToken creates a cryptographically secure random token
func generateCSRFToken() (string, error) {
	bytes := make([]byte, CSRFTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. Every visitor
// gets a csrf_token cookie; state-changing requests must echo it back in the
// X-CSRF-Token header or, for HTML forms, in the csrf_token field.
func CSRFMiddleware(secure bool, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || len(token) != CSRFTokenLength*2 {
			token, err = generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(
				CSRFTokenCookieName,
				token,
				int(CSRFTokenExpiry.Seconds()),
				"/",
				"",     // Domain (empty = current domain)
				secure, // Secure (HTTPS only)
				false,  // HttpOnly = false so JS can read it
			)
		}
		c.Set(csrfContextKey, token)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		sent := c.GetHeader(CSRFTokenHeaderName)
		if sent == "" {
			sent = c.PostForm(CSRFTokenFormField)
		}
		if sent == "" || subtle.ConstantTimeCompare([]byte(sent), []byte(token)) != 1 {
			secLog.Log(c.Request.Context(), security.SecurityEvent{
				Event:     security.EventCSRFViolation,
				IP:        c.ClientIP(),
				UserAgent: c.GetHeader("User-Agent"),
				RequestID: requestMeta(c).RequestID,
				Details:   map[string]interface{}{"path": c.Request.URL.Path, "missing": sent == ""},
			})
			if wantsJSON(c) {
				response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
				c.Abort()
				return
			}
			renderErrorPage(c, http.StatusForbidden, "Your session expired. Please reload the page and try again.")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CSRFToken returns the token for embedding in forms.
func CSRFToken(c *gin.Context) string {
	return c.GetString(csrfContextKey)
}
