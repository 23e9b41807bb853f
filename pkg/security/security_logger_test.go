package security

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*SecurityLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewSecurityLogger(zap.New(core), "portfolio-website", "test"), logs
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "a***@example.com", MaskEmail("ada@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("a@example.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, HashValue("no-at-sign"), MaskEmail("no-at-sign"))
}

func TestHashValue(t *testing.T) {
	assert.Len(t, HashValue("session-id"), 16)
	assert.Equal(t, HashValue("x"), HashValue("x"))
	assert.Empty(t, HashValue(""))
}

func TestLogRateLimitTriggered(t *testing.T) {
	sl, logs := newObserved()
	meta := RequestMeta{IP: "203.0.113.9", UserAgent: "curl", RequestID: "req-1", SessionID: "sess-1"}

	sl.LogRateLimitTriggered(context.Background(), meta, "/contact", 42)

	entries := logs.All()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, zapcore.WarnLevel, e.Level)
	assert.Equal(t, string(EventRateLimitTriggered), e.Message)

	fields := e.ContextMap()
	assert.Equal(t, "session", fields["subject_type"])
	assert.Equal(t, HashValue("sess-1"), fields["subject_value"])
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Contains(t, fields["details"], `"retry_after":42`)
}

func TestLogInquiryLevels(t *testing.T) {
	sl, logs := newObserved()
	ctx := context.Background()

	sl.LogInquiry(ctx, RequestMeta{}, "ada@example.com", true, "")
	sl.LogInquiry(ctx, RequestMeta{}, "ada@example.com", false, "upstream down")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, "a***@example.com", entries[1].ContextMap()["subject_value"])
}

func TestNilLoggerIsNoop(t *testing.T) {
	var sl *SecurityLogger
	assert.NotPanics(t, func() {
		sl.LogHoneypotTriggered(context.Background(), RequestMeta{})
	})
}
