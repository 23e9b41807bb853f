package usecase

import (
	"context"
	"time"
)

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// HealthDeps are the parts of the site whose state is reported.
type HealthDeps struct {
	CMSEnabled bool
	StoreName  string
	// StorePing is nil when the session store has nothing to ping.
	StorePing func(ctx context.Context) error
	Content   *ContentProvider
}

type healthUsecase struct {
	deps HealthDeps
}

func NewHealthUsecase(deps HealthDeps) HealthUsecase {
	return &healthUsecase{deps: deps}
}

func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	out := map[string]string{
		"status":  "ok",
		"cms":     "disabled",
		"store":   u.deps.StoreName,
		"content": "defaults",
	}
	if u.deps.CMSEnabled {
		out["cms"] = "enabled"
	}

	if u.deps.StorePing != nil {
		if err := u.deps.StorePing(ctx); err != nil {
			out["status"] = "degraded"
			out["store_error"] = err.Error()
		}
	}

	if u.deps.Content != nil {
		state := u.deps.Content.State()
		if fetched := u.deps.Content.FetchedAt(); !fetched.IsZero() {
			if u.deps.CMSEnabled {
				out["content"] = "cms"
			}
			out["content_age"] = time.Since(fetched).Round(time.Second).String()
		}
		if state.Error != "" {
			out["status"] = "degraded"
			out["content_error"] = state.Error
		}
	}
	return out
}
