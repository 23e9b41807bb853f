package domain

import "context"

// InquiryFormData is a contact form submission.
type InquiryFormData struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Subject string `json:"subject" form:"subject"`
	Message string `json:"message" form:"message"`
	// Extra holds values of CMS-defined fields beyond the four above.
	Extra map[string]string `json:"extra,omitempty" form:"-"`
	// Honeypot is a hidden input that only bots fill in.
	Honeypot string `json:"_website,omitempty" form:"_website"`
}

// ValidationResult is built once per validation call.
type ValidationResult struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// InquiryResponse mirrors the CMS answer to a submission.
type InquiryResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RateLimitStatus describes the visitor's submission eligibility.
type RateLimitStatus struct {
	CanSubmit     bool `json:"canSubmit"`
	IsRateLimited bool `json:"isRateLimited"`
	TimeRemaining int  `json:"timeRemaining"`
}

// InquiryUsecase runs the submission pipeline for one visitor session.
type InquiryUsecase interface {
	Submit(ctx context.Context, sessionID string, data *InquiryFormData) (*InquiryResponse, error)
	Status(ctx context.Context, sessionID string) RateLimitStatus
}
