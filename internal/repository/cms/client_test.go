package cms_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-website/internal/domain"
	"portfolio-website/internal/repository/cms"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingServer struct {
	*httptest.Server
	hits atomic.Int32
}

func newServer(t *testing.T, handler http.HandlerFunc) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(rs.Close)
	return rs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestDisabledClientServesDefaults(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"title": "remote"}})
	})
	c := cms.NewClient(cms.Config{Enabled: false, BaseURL: srv.URL})
	ctx := context.Background()

	assert.Equal(t, &cms.Defaults().Hero, c.GetHeroContent(ctx))
	assert.Equal(t, &cms.Defaults().Navigation, c.GetNavigation(ctx))
	assert.Equal(t, cms.Defaults(), c.GetSiteContent(ctx))
	assert.False(t, c.Enabled())
	assert.Zero(t, srv.hits.Load())
}

func TestEnabledWithoutURLIsDisabled(t *testing.T) {
	c := cms.NewClient(cms.Config{Enabled: true})
	assert.False(t, c.Enabled())
	assert.Equal(t, &cms.Defaults().Footer, c.GetFooterContent(context.Background()))
}

func TestServerErrorFallsBackToDefaults(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
	ctx := context.Background()

	assert.Equal(t, &cms.Defaults().Projects, c.GetProjectsContent(ctx))
	assert.Equal(t, cms.Defaults().Projects.Projects, c.GetProjects(ctx))
	assert.Equal(t, &cms.Defaults().Contact, c.GetContactContent(ctx))
	assert.Equal(t, cms.Defaults(), c.GetSiteContent(ctx))
	assert.Equal(t, int32(4), srv.hits.Load())
}

func TestMalformedAndUnsuccessfulBodiesFallBack(t *testing.T) {
	t.Run("Should fall back on invalid JSON", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
		assert.Equal(t, &cms.Defaults().Hero, c.GetHeroContent(context.Background()))
	})

	t.Run("Should fall back when the envelope says unsuccessful", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"success": false, "error": "draft only"})
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
		assert.Equal(t, &cms.Defaults().Services, c.GetServicesContent(context.Background()))
	})

	for _, body := range []string{`{"success":true}`, `{"success":true,"data":null}`} {
		t.Run("Should fall back when data is missing: "+body, func(t *testing.T) {
			srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			})
			c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
			ctx := context.Background()

			assert.Equal(t, &cms.Defaults().Hero, c.GetHeroContent(ctx))
			assert.Equal(t, cms.Defaults().Services.Services, c.GetServices(ctx))

			_, err := c.FetchSiteContent(ctx)
			var terr *cms.TransportError
			assert.True(t, errors.As(err, &terr))
		})
	}
}

func TestFetchSiteContentRejectsEmptySnapshot(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})
	})
	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})

	content, err := c.FetchSiteContent(context.Background())
	assert.Nil(t, content)
	var terr *cms.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, cms.Defaults(), c.GetSiteContent(context.Background()))
}

func TestFetchSiteContentFillsMissingSections(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"hero": domain.HeroContent{Title: "From the CMS"}},
		})
	})
	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})

	content, err := c.FetchSiteContent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "From the CMS", content.Hero.Title)
	assert.Equal(t, cms.Defaults().Footer, content.Footer)
	assert.Equal(t, cms.Defaults().Contact, content.Contact)
}

func TestTimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL, Timeout: 20 * time.Millisecond})
	assert.Equal(t, &cms.Defaults().Hero, c.GetHeroContent(context.Background()))
}

func TestEnabledClientReturnsRemoteContent(t *testing.T) {
	var gotCookie string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("cms_session"); err == nil {
			gotCookie = ck.Value
		}
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		switch r.URL.Path {
		case "/api/content/hero":
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    domain.HeroContent{Title: "From the CMS", PrimaryCTA: domain.CallToAction{Label: "Go", Href: "/go"}},
			})
		case "/api/projects":
			assert.Equal(t, "true", r.URL.Query().Get("featured"))
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"data":    []domain.Project{{ID: "9", Slug: "remote", Title: "Remote", Featured: true}},
			})
		default:
			http.NotFound(w, r)
		}
	})

	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
	ctx := cms.WithCookies(context.Background(), []*http.Cookie{{Name: "cms_session", Value: "abc"}})

	hero := c.GetHeroContent(ctx)
	assert.Equal(t, "From the CMS", hero.Title)
	assert.Equal(t, "abc", gotCookie)

	featured := c.GetFeaturedProjects(ctx)
	require.Len(t, featured, 1)
	assert.Equal(t, "remote", featured[0].Slug)
}

func TestCookieAllowList(t *testing.T) {
	var names []string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		for _, ck := range r.Cookies() {
			names = append(names, ck.Name)
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": domain.FooterContent{Tagline: "x"}})
	})

	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL, ForwardCookies: []string{"cms_session"}})
	ctx := cms.WithCookies(context.Background(), []*http.Cookie{
		{Name: "cms_session", Value: "1"},
		{Name: "site_session", Value: "2"},
	})
	c.GetFooterContent(ctx)
	assert.Equal(t, []string{"cms_session"}, names)
}

func TestSiteCookiesNeverForwarded(t *testing.T) {
	var seen []string
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		for _, ck := range r.Cookies() {
			seen = append(seen, ck.Name+"="+ck.Value)
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": domain.FooterContent{Tagline: "x"}})
	})
	ctx := cms.WithCookies(context.Background(), []*http.Cookie{
		{Name: "site_session", Value: "S"},
		{Name: "csrf_token", Value: "T"},
		{Name: "visitor_sid", Value: "V"},
		{Name: "cms_session", Value: "C"},
	})

	t.Run("Should withhold site cookies with no allow-list", func(t *testing.T) {
		seen = nil
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL, WithholdCookies: []string{"visitor_sid"}})
		c.GetFooterContent(ctx)
		assert.Equal(t, []string{"cms_session=C"}, seen)
	})

	t.Run("Should withhold site cookies even when allow-listed", func(t *testing.T) {
		seen = nil
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL, ForwardCookies: []string{"csrf_token", "cms_session"}})
		c.GetFooterContent(ctx)
		assert.Equal(t, []string{"cms_session=C"}, seen)
	})
}

func TestSingleItemLookups(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/services/remote-only":
			writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": domain.Service{ID: "remote-only", Title: "Remote"}})
		default:
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "not found"})
		}
	})
	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
	ctx := context.Background()

	svc, ok := c.GetService(ctx, "remote-only")
	require.True(t, ok)
	assert.Equal(t, "Remote", svc.Title)

	svc, ok = c.GetService(ctx, "web-design")
	require.True(t, ok, "falls back to the bundled list")
	assert.Equal(t, "Web design", svc.Title)

	_, ok = c.GetService(ctx, "nope")
	assert.False(t, ok)

	p, ok := c.GetProject(ctx, "harbor-coffee")
	require.True(t, ok)
	assert.Equal(t, "Harbor Coffee", p.Title)

	_, ok = c.GetProject(ctx, "missing")
	assert.False(t, ok)
}

func TestFeaturedFallbackFiltersDefaults(t *testing.T) {
	c := cms.NewClient(cms.Config{})
	featured := c.GetFeaturedProjects(context.Background())
	require.NotEmpty(t, featured)
	for _, p := range featured {
		assert.True(t, p.Featured)
	}
	assert.Less(t, len(featured), len(cms.Defaults().Projects.Projects))
}

func TestPagination(t *testing.T) {
	t.Run("Should wrap defaults as a single page", func(t *testing.T) {
		c := cms.NewClient(cms.Config{})
		page := c.GetProjectsPaginated(context.Background(), 3, 1)

		all := cms.Defaults().Projects.Projects
		assert.Equal(t, all, page.Data)
		assert.Equal(t, domain.Pagination{Page: 1, PageSize: len(all), Total: len(all), TotalPages: 1}, page.Pagination)
	})

	t.Run("Should pass page parameters and keep server metadata", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "2", r.URL.Query().Get("page"))
			assert.Equal(t, "5", r.URL.Query().Get("pageSize"))
			writeJSON(w, http.StatusOK, map[string]any{
				"success":    true,
				"data":       []domain.Project{{Slug: "a"}},
				"pagination": domain.Pagination{Page: 2, PageSize: 5, Total: 6, TotalPages: 2},
			})
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
		page := c.GetProjectsPaginated(context.Background(), 2, 5)
		assert.Len(t, page.Data, 1)
		assert.Equal(t, 2, page.Pagination.TotalPages)
	})

	t.Run("Should fall back on failure", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})
		page := c.GetProjectsPaginated(context.Background(), 0, 0)
		assert.Equal(t, 1, page.Pagination.TotalPages)
		assert.Equal(t, cms.Defaults().Projects.Projects, page.Data)
	})
}

func TestFetchSiteContentReportsFailures(t *testing.T) {
	srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})

	content, err := c.FetchSiteContent(context.Background())
	assert.Nil(t, content)

	var terr *cms.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, http.StatusServiceUnavailable, terr.StatusCode)
	assert.Equal(t, "/api/content/site", terr.Path)
}

func TestSubmitInquiry(t *testing.T) {
	data := &domain.InquiryFormData{Name: "Ada", Email: "ada@example.com", Subject: "Hello", Message: "Plain text message"}

	t.Run("Should synthesize success without a request when disabled", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {})
		c := cms.NewClient(cms.Config{BaseURL: srv.URL})

		resp, err := c.SubmitInquiry(context.Background(), data)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Zero(t, srv.hits.Load())
	})

	t.Run("Should post the inquiry and return the backend answer", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/inquiries", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, map[string]any{"name": "Ada", "email": "ada@example.com", "subject": "Hello", "message": "Plain text message"}, body)

			writeJSON(w, http.StatusCreated, domain.InquiryResponse{Success: true, Message: "Received"})
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})

		resp, err := c.SubmitInquiry(context.Background(), data)
		require.NoError(t, err)
		assert.Equal(t, &domain.InquiryResponse{Success: true, Message: "Received"}, resp)
	})

	t.Run("Should surface backend rejection verbatim", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, domain.InquiryResponse{Success: true, Error: "Spam detected"})
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})

		resp, err := c.SubmitInquiry(context.Background(), data)
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Equal(t, "Spam detected", resp.Error)
	})

	t.Run("Should return a transport error when no usable answer arrives", func(t *testing.T) {
		srv := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})
		c := cms.NewClient(cms.Config{Enabled: true, BaseURL: srv.URL})

		resp, err := c.SubmitInquiry(context.Background(), data)
		assert.Nil(t, resp)
		var terr *cms.TransportError
		assert.True(t, errors.As(err, &terr))
	})
}
