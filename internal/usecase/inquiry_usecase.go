package usecase

import (
	"context"
	"sort"
	"time"

	"portfolio-website/internal/domain"
	"portfolio-website/internal/repository/session"
	"portfolio-website/pkg/apperror"
	"portfolio-website/pkg/logger"
	"portfolio-website/pkg/ratelimit"
	"portfolio-website/pkg/sanitizer"
	"portfolio-website/pkg/security"
	"portfolio-website/pkg/validation"
)

// InquiryConfig holds the per-session submission limits.
type InquiryConfig struct {
	RateLimit    time.Duration
	RateLimitKey string
	SessionTTL   time.Duration
	// SubmitLockTTL bounds how long one in-flight submission holds its
	// session. It must outlast the CMS timeout.
	SubmitLockTTL time.Duration
}

const submitLockKey = "inquiryLock"

type inquiryUsecase struct {
	repo     domain.ContentRepository
	content  domain.ContentProvider
	sessions session.KV
	cfg      InquiryConfig
	secLog   *security.SecurityLogger
	limitOps []ratelimit.Option
}

// NewInquiryUsecase creates the contact form pipeline. content supplies the
// CMS-defined form fields used to validate extra inputs; it may be nil.
func NewInquiryUsecase(
	repo domain.ContentRepository,
	content domain.ContentProvider,
	sessions session.KV,
	cfg InquiryConfig,
	secLog *security.SecurityLogger,
	opts ...ratelimit.Option,
) domain.InquiryUsecase {
	if cfg.RateLimitKey == "" {
		cfg.RateLimitKey = "lastSubmitTime"
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = ratelimit.DefaultLimit
	}
	if cfg.SubmitLockTTL <= 0 {
		cfg.SubmitLockTTL = 30 * time.Second
	}
	return &inquiryUsecase{
		repo:     repo,
		content:  content,
		sessions: sessions,
		cfg:      cfg,
		secLog:   secLog,
		limitOps: opts,
	}
}

func (uc *inquiryUsecase) limiter(sessionID string) *ratelimit.Limiter {
	var store ratelimit.Store
	if uc.sessions != nil && sessionID != "" {
		store = session.NewScoped(uc.sessions, sessionID, uc.cfg.SessionTTL)
	}
	return ratelimit.New(store, uc.cfg.RateLimitKey, uc.cfg.RateLimit, uc.limitOps...)
}

// lockSession serializes submissions of one session. A store failure does not
// block the visitor; the limiter alone applies then.
func (uc *inquiryUsecase) lockSession(ctx context.Context, sessionID string) (func(), bool) {
	if uc.sessions == nil || sessionID == "" {
		return func() {}, true
	}
	scoped := session.NewScoped(uc.sessions, sessionID, uc.cfg.SessionTTL)
	unlock, ok, err := scoped.TryLock(ctx, submitLockKey, uc.cfg.SubmitLockTTL)
	if err != nil {
		logger.Log.Warn("Session lock unavailable", "store", uc.sessions.Name(), "error", err)
		return func() {}, true
	}
	return unlock, ok
}

// Submit runs honeypot, validation, rate limit, sanitization and delivery in
// that order. Validation and rate limit failures never reach the CMS.
func (uc *inquiryUsecase) Submit(ctx context.Context, sessionID string, data *domain.InquiryFormData) (*domain.InquiryResponse, error) {
	meta := security.MetaFromContext(ctx)
	meta.SessionID = sessionID

	if data.Honeypot != "" {
		uc.secLog.LogHoneypotTriggered(ctx, meta)
		return &domain.InquiryResponse{Success: true}, nil
	}

	data = uc.withKnownExtras(data)

	result := validation.ValidateInquiry(data)
	errs := append(result.Errors, uc.validateExtras(data)...)
	if len(errs) > 0 {
		uc.secLog.LogValidationFailed(ctx, meta, data.Email, len(errs))
		return nil, apperror.Validation(errs)
	}

	// The check, the delivery and the stamp form one step per session.
	unlock, locked := uc.lockSession(ctx, sessionID)
	if !locked {
		wait := int((uc.cfg.RateLimit + time.Second - 1) / time.Second)
		uc.secLog.LogRateLimitTriggered(ctx, meta, "inquiry", wait)
		return nil, apperror.RateLimited(wait)
	}
	defer unlock()

	limiter := uc.limiter(sessionID)
	if !limiter.CanSubmit(ctx) {
		wait := limiter.TimeRemaining(ctx)
		uc.secLog.LogRateLimitTriggered(ctx, meta, "inquiry", wait)
		return nil, apperror.RateLimited(wait)
	}

	clean := sanitizer.SanitizeInquiry(data)
	if fields := strippedFields(data); len(fields) > 0 {
		uc.secLog.LogMarkupStripped(ctx, meta, fields)
	}

	resp, err := uc.repo.SubmitInquiry(ctx, clean)
	if err != nil {
		logger.Log.Error("Inquiry delivery failed", "error", err, "request_id", meta.RequestID)
		uc.secLog.LogInquiry(ctx, meta, clean.Email, false, err.Error())
		return nil, apperror.Transport(err)
	}
	if !resp.Success {
		uc.secLog.LogInquiry(ctx, meta, clean.Email, false, resp.Error)
		return resp, nil
	}

	limiter.RecordSubmit(ctx)
	uc.secLog.LogInquiry(ctx, meta, clean.Email, true, "")
	return resp, nil
}

func (uc *inquiryUsecase) Status(ctx context.Context, sessionID string) domain.RateLimitStatus {
	limiter := uc.limiter(sessionID)
	can := limiter.CanSubmit(ctx)
	return domain.RateLimitStatus{
		CanSubmit:     can,
		IsRateLimited: !can,
		TimeRemaining: limiter.TimeRemaining(ctx),
	}
}

func (uc *inquiryUsecase) extraFields() []domain.FormField {
	if uc.content == nil {
		return nil
	}
	content := uc.content.Content()
	if content == nil {
		return nil
	}
	var out []domain.FormField
	for _, f := range content.Contact.FormFields {
		// Fields of unknown kind are not rendered, so they cannot be required.
		if !f.IsCore() && f.Kind.Known() {
			out = append(out, f)
		}
	}
	return out
}

// withKnownExtras drops extra values the current form does not define.
func (uc *inquiryUsecase) withKnownExtras(data *domain.InquiryFormData) *domain.InquiryFormData {
	out := *data
	out.Extra = nil
	for _, f := range uc.extraFields() {
		if v, ok := data.Extra[f.Name]; ok {
			if out.Extra == nil {
				out.Extra = make(map[string]string)
			}
			out.Extra[f.Name] = v
		}
	}
	return &out
}

func (uc *inquiryUsecase) validateExtras(data *domain.InquiryFormData) []string {
	var errs []string
	for _, f := range uc.extraFields() {
		errs = append(errs, validation.ValidateField(f, data.Extra[f.Name])...)
	}
	return errs
}

func strippedFields(data *domain.InquiryFormData) []string {
	var fields []string
	for name, v := range map[string]string{
		"name": data.Name, "email": data.Email, "subject": data.Subject, "message": data.Message,
	} {
		if sanitizer.StrippedMarkup(v) {
			fields = append(fields, name)
		}
	}
	for k, v := range data.Extra {
		if sanitizer.StrippedMarkup(v) {
			fields = append(fields, k)
		}
	}
	sort.Strings(fields)
	return fields
}
