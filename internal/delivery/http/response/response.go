package response

import (
	"portfolio-website/internal/domain"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}

// Error sends an error response. err carries field messages or the
// backend's answer, never internal error text.
func Error(c *gin.Context, code int, message string, err interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: c.GetString(string(domain.KeyRequestID)),
	})
}
