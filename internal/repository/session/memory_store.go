package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when Redis is not configured.
type MemoryStore struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	now       func() time.Time
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore starts a janitor that drops expired entries every
// cleanupEvery. Call Close to stop it.
func NewMemoryStore(cleanupEvery time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if cleanupEvery <= 0 {
		close(s.done)
		return s
	}
	go s.janitor(cleanupEvery)
	return s
}

func (s *MemoryStore) janitor(every time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Cleanup()
		}
	}
}

// Cleanup removes expired entries.
func (s *MemoryStore) Cleanup() {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.IsZero() && s.now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && (e.expiresAt.IsZero() || !now.After(e.expiresAt)) {
		return false, nil
	}
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	s.entries[key] = e
	return true, nil
}

func (s *MemoryStore) DeleteIfValue(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok && e.value == value {
		delete(s.entries, key)
	}
	return nil
}

func (s *MemoryStore) Name() string { return "memory" }

// Len returns the number of stored entries, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the janitor and waits for it to exit.
func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() { close(s.stop) })
	<-s.done
	return nil
}
