package apperror

import (
	"fmt"
	"net/http"
)

type AppError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Err     error    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// Validation reports user-correctable field errors. The messages keep the
// order in which the fields were checked.
func Validation(messages []string) *AppError {
	e := New(http.StatusUnprocessableEntity, "Please correct the highlighted fields.", nil)
	e.Details = messages
	return e
}

// RateLimited reports a submission attempted before the interval elapsed.
func RateLimited(seconds int) *AppError {
	return New(http.StatusTooManyRequests,
		fmt.Sprintf("Please wait %d seconds before submitting again.", seconds), nil)
}

// Transport reports a failed write to the content backend. The cause is kept
// for logging only.
func Transport(err error) *AppError {
	return New(http.StatusBadGateway, "Failed to send your message. Please try again later.", err)
}
