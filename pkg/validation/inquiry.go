package validation

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"portfolio-website/internal/domain"
)

// inquiryRules carries the bounds of each inquiry field. Field order is the
// order in which errors are reported.
type inquiryRules struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,inquiry_email,max=254"`
	Subject string `validate:"required,min=3,max=200"`
	Message string `validate:"required,min=10,max=5000"`
}

// ValidateInquiry checks raw form input. Lengths are measured on trimmed values.
func ValidateInquiry(data *domain.InquiryFormData) domain.ValidationResult {
	rules := inquiryRules{
		Name:    strings.TrimSpace(data.Name),
		Email:   strings.TrimSpace(data.Email),
		Subject: strings.TrimSpace(data.Subject),
		Message: strings.TrimSpace(data.Message),
	}

	errs := []string{}
	if err := validate.Struct(rules); err != nil {
		errs = FormatValidationErrors(err)
	}

	return domain.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// ValidateField checks the value of a CMS-defined form field, dispatching on
// its kind. It returns nil when the value is acceptable.
func ValidateField(field domain.FormField, value string) []string {
	value = strings.TrimSpace(value)
	label := field.Label
	if label == "" {
		label = formatCamelCase(field.Name)
	}

	if value == "" {
		if field.Required {
			return []string{fmt.Sprintf("%s is required", label)}
		}
		return nil
	}

	var errs []string
	length := utf8.RuneCountInString(value)
	if field.MinLength > 0 && length < field.MinLength {
		errs = append(errs, fmt.Sprintf("%s must be at least %d characters", label, field.MinLength))
	}
	if field.MaxLength > 0 && length > field.MaxLength {
		errs = append(errs, fmt.Sprintf("%s must be at most %d characters", label, field.MaxLength))
	}

	switch field.Kind {
	case domain.FieldText, domain.FieldTextarea:
	case domain.FieldEmail:
		if validate.Var(value, "inquiry_email") != nil {
			errs = append(errs, "Please enter a valid email address")
		}
	case domain.FieldPhone:
		if validate.Var(value, "valid_phone") != nil {
			errs = append(errs, fmt.Sprintf("%s must be a valid phone number (7-15 digits, optional +)", label))
		}
	case domain.FieldSelect:
		if !slices.Contains(field.Options, value) {
			errs = append(errs, fmt.Sprintf("%s must be one of: %s", label, strings.Join(field.Options, ", ")))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s has an unsupported field type %q", label, field.Kind))
	}

	return errs
}
