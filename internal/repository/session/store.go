// Package session keeps per-visitor key/value state that expires with the
// visitor's browsing session.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// KV is the backing store shared by all sessions.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// SetNX sets key only when it is absent and reports whether it did.
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	// DeleteIfValue removes key only while it still holds value.
	DeleteIfValue(ctx context.Context, key, value string) error
	Name() string
}

// Scoped exposes one session's slice of a KV. Every write renews the TTL.
type Scoped struct {
	kv        KV
	sessionID string
	ttl       time.Duration
}

func NewScoped(kv KV, sessionID string, ttl time.Duration) *Scoped {
	return &Scoped{kv: kv, sessionID: sessionID, ttl: ttl}
}

func (s *Scoped) fullKey(key string) string {
	return "sess:" + s.sessionID + ":" + key
}

func (s *Scoped) GetInt(ctx context.Context, key string) (int64, bool, error) {
	raw, ok, err := s.kv.Get(ctx, s.fullKey(key))
	if err != nil || !ok {
		return 0, false, err
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("session: value of %q is not an integer: %w", key, err)
	}
	return v, true, nil
}

func (s *Scoped) SetInt(ctx context.Context, key string, value int64) error {
	return s.kv.Set(ctx, s.fullKey(key), strconv.FormatInt(value, 10), s.ttl)
}

func (s *Scoped) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, s.fullKey(key))
}

// TryLock takes the named lock for this session. The lock expires after ttl
// if never released. ok is false while another holder has it.
func (s *Scoped) TryLock(ctx context.Context, name string, ttl time.Duration) (unlock func(), ok bool, err error) {
	key := s.fullKey(name)
	token := uuid.NewString()
	ok, err = s.kv.SetNX(ctx, key, token, ttl)
	if err != nil || !ok {
		return nil, false, err
	}
	return func() {
		// Detached so a cancelled request still releases its lock.
		_ = s.kv.DeleteIfValue(context.WithoutCancel(ctx), key, token)
	}, true, nil
}
