package validation_test

import (
	"strings"
	"testing"

	"portfolio-website/internal/domain"
	"portfolio-website/pkg/validation"

	"github.com/stretchr/testify/assert"
)

func validInquiry() *domain.InquiryFormData {
	return &domain.InquiryFormData{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Subject: "New website",
		Message: "We would like a quote for a redesign.",
	}
}

func TestValidateInquiry(t *testing.T) {
	t.Run("Should accept data within all bounds", func(t *testing.T) {
		res := validation.ValidateInquiry(validInquiry())
		assert.True(t, res.IsValid)
		assert.Empty(t, res.Errors)
		assert.NotNil(t, res.Errors)
	})

	t.Run("Should accept values exactly at the bounds", func(t *testing.T) {
		data := &domain.InquiryFormData{
			Name:    "Al",
			Email:   "a@b.co",
			Subject: "Hey",
			Message: strings.Repeat("m", 5000),
		}
		res := validation.ValidateInquiry(data)
		assert.True(t, res.IsValid, res.Errors)
	})

	t.Run("Should reject a one character name", func(t *testing.T) {
		data := validInquiry()
		data.Name = "A"
		res := validation.ValidateInquiry(data)
		assert.False(t, res.IsValid)
		assert.Contains(t, res.Errors, "Name must be at least 2 characters")
	})

	t.Run("Should measure trimmed length", func(t *testing.T) {
		data := validInquiry()
		data.Name = "  A   "
		res := validation.ValidateInquiry(data)
		assert.Contains(t, res.Errors, "Name must be at least 2 characters")
	})

	t.Run("Should reject an invalid email", func(t *testing.T) {
		data := validInquiry()
		data.Email = "not-an-email"
		res := validation.ValidateInquiry(data)
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{"Please enter a valid email address"}, res.Errors)
	})

	t.Run("Should reject an email longer than 254 characters", func(t *testing.T) {
		data := validInquiry()
		data.Email = strings.Repeat("a", 250) + "@example.com"
		res := validation.ValidateInquiry(data)
		assert.Equal(t, []string{"Email must be at most 254 characters"}, res.Errors)
	})

	t.Run("Should report every failing field in order", func(t *testing.T) {
		res := validation.ValidateInquiry(&domain.InquiryFormData{
			Name:    strings.Repeat("n", 101),
			Email:   "",
			Subject: "Hi",
			Message: "too short",
		})
		assert.False(t, res.IsValid)
		assert.Equal(t, []string{
			"Name must be at most 100 characters",
			"Email is required",
			"Subject must be at least 3 characters",
			"Message must be at least 10 characters",
		}, res.Errors)
	})

	t.Run("Should treat whitespace-only fields as missing", func(t *testing.T) {
		res := validation.ValidateInquiry(&domain.InquiryFormData{
			Name: "   ", Email: " ", Subject: "\t", Message: "\n",
		})
		assert.Equal(t, []string{
			"Name is required",
			"Email is required",
			"Subject is required",
			"Message is required",
		}, res.Errors)
	})
}

func TestIsValidEmail(t *testing.T) {
	cases := map[string]bool{
		"user@example.com":     true,
		"first.last@sub.io":    true,
		"not-an-email":         false,
		"two@@example.com":     false,
		"a@b@example.com":      false,
		"no-dot@localhost":     false,
		"space in@example.com": false,
		"user@exa mple.com":    false,
		"@example.com":         false,
		"user@.":               false,
	}
	for email, want := range cases {
		assert.Equal(t, want, validation.IsValidEmail(email), email)
	}
}

func TestValidateField(t *testing.T) {
	t.Run("Should skip empty optional fields", func(t *testing.T) {
		f := domain.FormField{Name: "phone", Label: "Phone", Kind: domain.FieldPhone}
		assert.Nil(t, validation.ValidateField(f, "  "))
	})

	t.Run("Should require required fields", func(t *testing.T) {
		f := domain.FormField{Name: "budget", Label: "Budget", Kind: domain.FieldSelect, Required: true}
		assert.Equal(t, []string{"Budget is required"}, validation.ValidateField(f, ""))
	})

	t.Run("Should validate phone numbers with separators", func(t *testing.T) {
		f := domain.FormField{Name: "phone", Label: "Phone", Kind: domain.FieldPhone}
		assert.Nil(t, validation.ValidateField(f, "+1 (555) 123-4567"))
		assert.Len(t, validation.ValidateField(f, "call me"), 1)
	})

	t.Run("Should restrict select values to options", func(t *testing.T) {
		f := domain.FormField{Name: "budget", Label: "Budget", Kind: domain.FieldSelect, Options: []string{"< $5k", "$5k - $20k"}}
		assert.Nil(t, validation.ValidateField(f, "$5k - $20k"))
		assert.Equal(t, []string{"Budget must be one of: < $5k, $5k - $20k"}, validation.ValidateField(f, "$1M"))
	})

	t.Run("Should validate email fields", func(t *testing.T) {
		f := domain.FormField{Name: "altEmail", Kind: domain.FieldEmail}
		assert.Equal(t, []string{"Please enter a valid email address"}, validation.ValidateField(f, "nope"))
	})

	t.Run("Should enforce length bounds on text fields", func(t *testing.T) {
		f := domain.FormField{Name: "company", Label: "Company", Kind: domain.FieldText, MinLength: 2, MaxLength: 5}
		assert.Equal(t, []string{"Company must be at least 2 characters"}, validation.ValidateField(f, "a"))
		assert.Equal(t, []string{"Company must be at most 5 characters"}, validation.ValidateField(f, "abcdef"))
	})

	t.Run("Should reject unknown kinds", func(t *testing.T) {
		f := domain.FormField{Name: "file", Label: "File", Kind: "upload"}
		assert.Len(t, validation.ValidateField(f, "x"), 1)
	})
}
