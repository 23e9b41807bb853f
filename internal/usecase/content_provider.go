package usecase

import (
	"context"
	"sync"
	"time"

	"portfolio-website/internal/domain"
	"portfolio-website/pkg/logger"
)

// ContentProvider holds the site content snapshot served to every page.
// A snapshot is never modified once published; Refresh swaps in a new one
// and the last refresh to complete wins.
type ContentProvider struct {
	repo domain.ContentRepository
	now  func() time.Time

	mu        sync.RWMutex
	snapshot  *domain.SiteContent
	loading   bool
	lastErr   error
	fetchedAt time.Time
}

// NewContentProvider starts out serving fallback (the bundled defaults) in
// the loading state until the first Refresh completes.
func NewContentProvider(repo domain.ContentRepository, fallback *domain.SiteContent) *ContentProvider {
	return &ContentProvider{
		repo:     repo,
		now:      time.Now,
		snapshot: fallback,
		loading:  true,
	}
}

func (p *ContentProvider) Content() *domain.SiteContent {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *ContentProvider) State() domain.ContentState {
	p.mu.RLock()
	defer p.mu.RUnlock()

	state := domain.ContentState{
		Content: p.snapshot,
		Loading: p.loading,
	}
	if p.lastErr != nil {
		state.Error = p.lastErr.Error()
	}
	if !p.fetchedAt.IsZero() {
		state.FetchedAt = p.fetchedAt.UTC().Format(time.RFC3339)
	}
	return state
}

// FetchedAt returns when the held snapshot was fetched, zero if it is still
// the fallback.
func (p *ContentProvider) FetchedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.fetchedAt
}

// Refresh fetches a full snapshot. On failure the current snapshot stays in
// place and the error is kept until the next successful refresh.
func (p *ContentProvider) Refresh(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	content, err := p.repo.FetchSiteContent(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.lastErr = err
		logger.Log.Warn("Content refresh failed, keeping current snapshot", "error", err)
		return err
	}
	p.snapshot = content
	p.lastErr = nil
	p.fetchedAt = p.now()
	return nil
}

// Run refreshes every interval until ctx is cancelled. A non-positive
// interval returns immediately.
func (p *ContentProvider) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = p.Refresh(ctx)
		}
	}
}

var _ domain.ContentProvider = (*ContentProvider)(nil)
