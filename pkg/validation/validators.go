package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// local-part@domain: no whitespace, exactly one "@", at least one "." in the domain
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// Separators people type inside phone numbers
	phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	RegisterValidators(v)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("inquiry_email", InquiryEmail)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
}

// IsValidEmail checks the local-part@domain shape used by the contact form.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// InquiryEmail is the validator.Func form of IsValidEmail.
func InquiryEmail(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(phoneSeparators.Replace(val))
}
