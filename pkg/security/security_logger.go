package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventIPThrottled        EventType = "ip_throttled"
	EventValidationFailed   EventType = "validation_failed"
	EventMarkupStripped     EventType = "markup_stripped"
	EventHoneypotTriggered  EventType = "honeypot_triggered"
	EventCSRFViolation      EventType = "csrf_violation"
	EventInquirySubmitted   EventType = "inquiry_submitted"
	EventInquiryFailed      EventType = "inquiry_failed"
	EventServerError        EventType = "server_error"
	EventRefreshDenied      EventType = "refresh_denied"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "ip", "session"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	IP           string                 `json:"ip,omitempty"`
	UserAgent    string                 `json:"user_agent,omitempty"`
	RequestID    string                 `json:"request_id,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SecurityLogger writes abuse-relevant events through zap, separate from
// the application log.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

// InitSecurityLogger initializes the security logger with Zap
func InitSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	// Set output to stdout for container environments
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return NewSecurityLogger(logger, serviceName, environment)
}

// NewSecurityLogger wraps an existing zap logger.
func NewSecurityLogger(logger *zap.Logger, serviceName, environment string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventInquirySubmitted:
		return zapcore.InfoLevel
	case EventInquiryFailed, EventServerError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = sl.serviceName
	event.Environment = sl.environment

	level := levelFor(event.Event)
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)
}

// RequestMeta is the request information attached to every event.
type RequestMeta struct {
	IP        string
	UserAgent string
	RequestID string
	SessionID string
}

type metaKey struct{}

// WithRequestMeta attaches meta to ctx so code below the HTTP layer can log
// with request details.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// MetaFromContext returns the meta stored by WithRequestMeta, if any.
func MetaFromContext(ctx context.Context) RequestMeta {
	meta, _ := ctx.Value(metaKey{}).(RequestMeta)
	return meta
}

// LogRateLimitTriggered logs a submission blocked by the session limiter
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, meta RequestMeta, endpoint string, retryAfter int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "session",
		SubjectValue: HashValue(meta.SessionID),
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      map[string]interface{}{"endpoint": endpoint, "retry_after": retryAfter},
	})
}

// LogIPThrottled logs a request rejected by the per-IP token bucket
func (sl *SecurityLogger) LogIPThrottled(ctx context.Context, meta RequestMeta, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventIPThrottled,
		SubjectType:  "ip",
		SubjectValue: meta.IP,
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// LogValidationFailed logs rejected inquiry input
func (sl *SecurityLogger) LogValidationFailed(ctx context.Context, meta RequestMeta, email string, errorCount int) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventValidationFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      map[string]interface{}{"error_count": errorCount},
	})
}

// LogMarkupStripped logs an inquiry whose fields carried markup
func (sl *SecurityLogger) LogMarkupStripped(ctx context.Context, meta RequestMeta, fields []string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventMarkupStripped,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
		Details:   map[string]interface{}{"fields": fields},
	})
}

// LogHoneypotTriggered logs a bot-filled honeypot field
func (sl *SecurityLogger) LogHoneypotTriggered(ctx context.Context, meta RequestMeta) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventHoneypotTriggered,
		IP:        meta.IP,
		UserAgent: meta.UserAgent,
		RequestID: meta.RequestID,
	})
}

// LogInquiry logs the outcome of a submission that reached the backend
func (sl *SecurityLogger) LogInquiry(ctx context.Context, meta RequestMeta, email string, success bool, reason string) {
	event := EventInquirySubmitted
	details := map[string]interface{}{}
	if !success {
		event = EventInquiryFailed
		details["reason"] = reason
	}
	sl.Log(ctx, SecurityEvent{
		Event:        event,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		IP:           meta.IP,
		UserAgent:    meta.UserAgent,
		RequestID:    meta.RequestID,
		Details:      details,
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex < 0 {
		return HashValue(email)
	}
	if atIndex <= 1 {
		return "***" + email[atIndex:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	if value == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}
