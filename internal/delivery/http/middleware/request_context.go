package middleware

import (
	"net/http"
	"strings"

	"portfolio-website/internal/domain"
	"portfolio-website/internal/repository/cms"
	"portfolio-website/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// RequestID tags every request with an ID, reusing a well-formed incoming one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(string(domain.KeyRequestID), id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// SessionConfig controls the visitor session cookie.
type SessionConfig struct {
	CookieName string
	Secure     bool
}

// Session makes sure the visitor has a session cookie. The cookie has no
// Max-Age so it ends with the browser session; server-side state expires
// on its own TTL.
func Session(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(cfg.CookieName)
		if _, perr := uuid.Parse(id); err != nil || perr != nil {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}
		c.Set(string(domain.KeySessionID), id)
		c.Next()
	}
}

// RequestContext copies request details into the request context so the
// CMS client can forward the visitor's cookies and security logging below
// the HTTP layer has request metadata.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := cms.WithCookies(c.Request.Context(), c.Request.Cookies())
		ctx = security.WithRequestMeta(ctx, requestMeta(c))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// SessionID returns the session set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(string(domain.KeySessionID))
}

func requestMeta(c *gin.Context) security.RequestMeta {
	return security.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		RequestID: c.GetString(string(domain.KeyRequestID)),
		SessionID: SessionID(c),
	}
}

func wantsJSON(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") ||
		strings.Contains(c.GetHeader("Accept"), "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}
