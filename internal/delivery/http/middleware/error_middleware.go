package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/internal/domain"
	"portfolio-website/pkg/apperror"
	"portfolio-website/pkg/logger"
	"portfolio-website/pkg/security"

	"github.com/gin-gonic/gin"
)

// ErrorTemplate is the page rendered for failed HTML requests.
const ErrorTemplate = "error.html"

// ErrorHandler turns errors attached with c.Error into JSON responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Err != nil {
				logger.Log.Warn("Request failed", "status", appErr.Code, "error", appErr.Err, "request_id", c.GetString(string(domain.KeyRequestID)))
			}
			var details interface{}
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}
		// Never expose internal error details to clients.
		logger.Log.Error("Internal Server Error", "error", err, "request_id", c.GetString(string(domain.KeyRequestID)))
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}

// Recovery is the error boundary: a panic while handling or rendering is
// logged and answered with the generic failure page (or JSON for the API),
// which lets the visitor retry or reload.
func Recovery(secLog *security.SecurityLogger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		meta := requestMeta(c)
		logger.Log.Error("Recovered from panic",
			"panic", fmt.Sprint(recovered),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"request_id", meta.RequestID,
		)
		secLog.Log(c.Request.Context(), security.SecurityEvent{
			Event:     security.EventServerError,
			IP:        meta.IP,
			UserAgent: meta.UserAgent,
			RequestID: meta.RequestID,
			Details:   map[string]interface{}{"path": c.Request.URL.Path},
		})

		if c.Writer.Written() {
			c.Abort()
			return
		}
		if wantsJSON(c) {
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			c.Abort()
			return
		}
		renderErrorPage(c, http.StatusInternalServerError, "Something went wrong on our side.")
		c.Abort()
	})
}

func renderErrorPage(c *gin.Context, code int, message string) {
	c.HTML(code, ErrorTemplate, gin.H{
		"Status":    code,
		"Title":     http.StatusText(code),
		"Message":   message,
		"RequestID": c.GetString(string(domain.KeyRequestID)),
		"RetryPath": c.Request.URL.RequestURI(),
	})
}
