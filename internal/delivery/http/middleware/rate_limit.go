package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/pkg/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPLimiterStore keeps one token bucket per client IP. Idle buckets are
// dropped by the janitor.
type IPLimiterStore struct {
	mu      sync.Mutex
	entries map[string]*ipEntry
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

type ipEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// NewIPLimiterStore creates a store allowing rps requests per second per IP
// with the given burst.
func NewIPLimiterStore(rps float64, burst int) *IPLimiterStore {
	if burst < 1 {
		burst = 1
	}
	return &IPLimiterStore{
		entries: make(map[string]*ipEntry),
		rps:     rate.Limit(rps),
		burst:   burst,
		idleTTL: 15 * time.Minute,
		now:     time.Now,
	}
}

func (s *IPLimiterStore) get(key string) *rate.Limiter {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if ent, ok := s.entries[key]; ok {
		ent.lastSeen = now
		return ent.lim
	}
	lim := rate.NewLimiter(s.rps, s.burst)
	s.entries[key] = &ipEntry{lim: lim, lastSeen: now}
	return lim
}

// Cleanup removes buckets not used within the idle TTL.
func (s *IPLimiterStore) Cleanup() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for k, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			delete(s.entries, k)
		}
	}
}

// Len returns the number of tracked IPs.
func (s *IPLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// StartJanitor cleans up periodically until ctx is cancelled.
func (s *IPLimiterStore) StartJanitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}

// IPRateLimit throttles requests per client IP with a token bucket. It sits
// in front of the per-session limiter, which a client can reset by dropping
// its cookie.
func IPRateLimit(store *IPLimiterStore, secLog *security.SecurityLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lim := store.get(c.ClientIP())
		res := lim.Reserve()
		if !res.OK() {
			rejectThrottled(c, secLog, time.Second)
			return
		}
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			rejectThrottled(c, secLog, delay)
			return
		}
		c.Next()
	}
}

func rejectThrottled(c *gin.Context, secLog *security.SecurityLogger, retryAfter time.Duration) {
	secs := int(math.Ceil(retryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.Itoa(secs))

	secLog.LogIPThrottled(c.Request.Context(), requestMeta(c), c.FullPath())

	if wantsJSON(c) {
		response.Error(c, http.StatusTooManyRequests, "Too many requests. Please try again later.", nil)
		c.Abort()
		return
	}
	renderErrorPage(c, http.StatusTooManyRequests, "Too many requests. Please try again in a moment.")
	c.Abort()
}
