// Package ratelimit gates inquiry resubmission per visitor session. The only
// state is the timestamp of the last accepted submission, kept in a
// session-scoped store.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultLimit is the minimum interval between accepted submissions.
const DefaultLimit = 60 * time.Second

// Store persists the last-submit timestamp (milliseconds since epoch) for
// the current session. Values must expire together with the session.
type Store interface {
	GetInt(ctx context.Context, key string) (int64, bool, error)
	SetInt(ctx context.Context, key string, value int64) error
}

// Limiter is bound to one session. It reads the persisted timestamp lazily
// on first use and writes it back on every RecordSubmit.
type Limiter struct {
	store Store
	key   string
	limit time.Duration
	now   func() time.Time

	once sync.Once
	mu   sync.Mutex
	last int64
}

type Option func(*Limiter)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a limiter for the session whose store and key are given.
// A non-positive limit falls back to DefaultLimit.
func New(store Store, key string, limit time.Duration, opts ...Option) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	l := &Limiter{
		store: store,
		key:   key,
		limit: limit,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) load(ctx context.Context) {
	l.once.Do(func() {
		if l.store == nil {
			return
		}
		// Read errors are treated as "never submitted".
		v, ok, err := l.store.GetInt(ctx, l.key)
		if err != nil || !ok || v < 0 {
			return
		}
		l.mu.Lock()
		if v > l.last {
			l.last = v
		}
		l.mu.Unlock()
	})
}

func (l *Limiter) elapsed(ctx context.Context) time.Duration {
	l.load(ctx)
	l.mu.Lock()
	last := l.last
	l.mu.Unlock()
	return time.Duration(l.now().UnixMilli()-last) * time.Millisecond
}

// CanSubmit reports whether more than the limit has passed since the last
// accepted submission.
func (l *Limiter) CanSubmit(ctx context.Context) bool {
	return l.elapsed(ctx) > l.limit
}

// IsRateLimited is the negation of CanSubmit.
func (l *Limiter) IsRateLimited(ctx context.Context) bool {
	return !l.CanSubmit(ctx)
}

// TimeRemaining returns the wait in whole seconds, rounded up, never negative.
func (l *Limiter) TimeRemaining(ctx context.Context) int {
	remaining := l.limit - l.elapsed(ctx)
	if remaining <= 0 {
		return 0
	}
	ms := remaining.Milliseconds()
	return int((ms + 999) / 1000)
}

// RecordSubmit stamps the current time and persists it. Call it only after
// the submission has been confirmed. Write errors are ignored; the in-memory
// value still applies for the lifetime of this limiter.
func (l *Limiter) RecordSubmit(ctx context.Context) {
	l.load(ctx)
	now := l.now().UnixMilli()

	l.mu.Lock()
	if now > l.last {
		l.last = now
	}
	last := l.last
	l.mu.Unlock()

	if l.store != nil {
		_ = l.store.SetInt(ctx, l.key, last)
	}
}

// LastSubmit returns the last accepted submission time, zero if none.
func (l *Limiter) LastSubmit(ctx context.Context) time.Time {
	l.load(ctx)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.last == 0 {
		return time.Time{}
	}
	return time.UnixMilli(l.last)
}
