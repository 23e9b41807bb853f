package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":    "Name",
	"Email":   "Email",
	"Subject": "Subject",
	"Message": "Message",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)

	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, param)

	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, param)

	case "inquiry_email", "email":
		return "Please enter a valid email address"

	case "valid_phone":
		return fmt.Sprintf("%s must be a valid phone number (7-15 digits, optional +)", label)

	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i == 0 && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		} else if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
