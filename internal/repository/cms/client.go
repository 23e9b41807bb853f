package cms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"portfolio-website/internal/domain"
	"portfolio-website/pkg/logger"
)

const maxBodyBytes = 4 << 20

var errMissingData = errors.New("response has no data")

// Config holds what the client needs from the application config.
type Config struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
	// Cookie names forwarded from the visitor; empty forwards all but the
	// withheld ones.
	ForwardCookies []string
	// Cookie names never sent to the CMS, on top of the site's own
	// session and CSRF cookies.
	WithholdCookies []string
}

// siteCookies belong to this site and never leave it.
var siteCookies = []string{"site_session", "csrf_token"}

// Client reads content from the CMS and falls back to the bundled defaults
// when the CMS is disabled or a request fails.
type Client struct {
	enabled  bool
	baseURL  string
	http     *http.Client
	forward  map[string]bool
	withheld map[string]bool
}

// envelope is the CMS response wrapper.
type envelope[T any] struct {
	Success    *bool              `json:"success"`
	Data       json.RawMessage    `json:"data"`
	Pagination *domain.Pagination `json:"pagination,omitempty"`
	Message    string             `json:"message,omitempty"`
	Error      string             `json:"error,omitempty"`

	data T
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	c := &Client{
		enabled: cfg.Enabled && cfg.BaseURL != "",
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
	}
	c.withheld = make(map[string]bool, len(siteCookies)+len(cfg.WithholdCookies))
	for _, name := range append(append([]string{}, siteCookies...), cfg.WithholdCookies...) {
		c.withheld[name] = true
	}
	if len(cfg.ForwardCookies) > 0 {
		c.forward = make(map[string]bool, len(cfg.ForwardCookies))
		for _, name := range cfg.ForwardCookies {
			c.forward[name] = true
		}
	}
	return c
}

// Enabled reports whether remote calls are attempted.
func (c *Client) Enabled() bool {
	return c.enabled
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range cookiesFrom(ctx) {
		if c.withheld[ck.Name] {
			continue
		}
		if c.forward == nil || c.forward[ck.Name] {
			req.AddCookie(&http.Cookie{Name: ck.Name, Value: ck.Value})
		}
	}
	return req, nil
}

// get performs a GET and decodes the envelope.
func get[T any](ctx context.Context, c *Client, path string) (*envelope[T], error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &TransportError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
	}

	var env envelope[T]
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&env); err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	if env.Success != nil && !*env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return nil, &TransportError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("unsuccessful response: %s", msg)}
	}
	if len(env.Data) == 0 || bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		return nil, &TransportError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Err: errMissingData}
	}
	if err := json.Unmarshal(env.Data, &env.data); err != nil {
		return nil, &TransportError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode data: %w", err)}
	}
	return &env, nil
}

// fetch returns the remote data, or def() when the CMS is disabled or the
// request fails. Failures are logged, never returned.
func fetch[T any](ctx context.Context, c *Client, section, path string, def func() T) T {
	if !c.enabled {
		return def()
	}
	env, err := get[T](ctx, c, path)
	if err != nil {
		logger.Log.Warn("CMS fetch failed, serving bundled content", "section", section, "path", path, "error", err)
		return def()
	}
	return env.data
}

// FetchSiteContent returns the full snapshot and reports failures. With the
// CMS disabled it returns the defaults and no error.
func (c *Client) FetchSiteContent(ctx context.Context) (*domain.SiteContent, error) {
	if !c.enabled {
		return Defaults(), nil
	}
	env, err := get[*domain.SiteContent](ctx, c, "/api/content/site")
	if err != nil {
		return nil, err
	}
	content := env.data
	if content == nil {
		return nil, &TransportError{Method: http.MethodGet, Path: "/api/content/site", Err: errMissingData}
	}
	missing := content.MissingSections()
	if len(missing) == len(domain.SiteSections) {
		return nil, &TransportError{Method: http.MethodGet, Path: "/api/content/site", Err: errors.New("snapshot has no sections")}
	}
	if len(missing) > 0 {
		logger.Log.Warn("CMS snapshot incomplete, filling from bundled content", "sections", missing)
		fillMissing(content, missing)
	}
	return content, nil
}

func fillMissing(content *domain.SiteContent, missing []string) {
	def := Defaults()
	for _, name := range missing {
		switch name {
		case "navigation":
			content.Navigation = def.Navigation
		case "hero":
			content.Hero = def.Hero
		case "services":
			content.Services = def.Services
		case "projects":
			content.Projects = def.Projects
		case "contact":
			content.Contact = def.Contact
		case "footer":
			content.Footer = def.Footer
		}
	}
}

func (c *Client) GetSiteContent(ctx context.Context) *domain.SiteContent {
	content, err := c.FetchSiteContent(ctx)
	if err != nil {
		logger.Log.Warn("CMS fetch failed, serving bundled content", "section", "site", "path", "/api/content/site", "error", err)
		return Defaults()
	}
	return content
}

func (c *Client) GetNavigation(ctx context.Context) *domain.Navigation {
	return fetch(ctx, c, "navigation", "/api/content/navigation", func() *domain.Navigation {
		return &Defaults().Navigation
	})
}

func (c *Client) GetHeroContent(ctx context.Context) *domain.HeroContent {
	return fetch(ctx, c, "hero", "/api/content/hero", func() *domain.HeroContent {
		return &Defaults().Hero
	})
}

func (c *Client) GetServicesContent(ctx context.Context) *domain.ServicesContent {
	return fetch(ctx, c, "services", "/api/content/services", func() *domain.ServicesContent {
		return &Defaults().Services
	})
}

func (c *Client) GetServices(ctx context.Context) []domain.Service {
	return fetch(ctx, c, "services", "/api/services", func() []domain.Service {
		return Defaults().Services.Services
	})
}

// GetService looks a service up by id. The bool is false when neither the
// CMS nor the defaults know it.
func (c *Client) GetService(ctx context.Context, id string) (*domain.Service, bool) {
	if c.enabled {
		path := "/api/services/" + url.PathEscape(id)
		env, err := get[*domain.Service](ctx, c, path)
		if err == nil && env.data != nil {
			return env.data, true
		}
		if err == nil {
			err = errors.New("empty service")
		}
		logger.Log.Warn("CMS fetch failed, looking up bundled service", "section", "service", "path", path, "error", err)
	}
	return defaultService(id)
}

func (c *Client) GetProjectsContent(ctx context.Context) *domain.ProjectsContent {
	return fetch(ctx, c, "projects", "/api/content/projects", func() *domain.ProjectsContent {
		return &Defaults().Projects
	})
}

func (c *Client) GetProjects(ctx context.Context) []domain.Project {
	return fetch(ctx, c, "projects", "/api/projects", func() []domain.Project {
		return Defaults().Projects.Projects
	})
}

func (c *Client) GetFeaturedProjects(ctx context.Context) []domain.Project {
	return fetch(ctx, c, "projects", "/api/projects?featured=true", defaultFeatured)
}

// GetProject looks a project up by slug.
func (c *Client) GetProject(ctx context.Context, slug string) (*domain.Project, bool) {
	if c.enabled {
		path := "/api/projects/" + url.PathEscape(slug)
		env, err := get[*domain.Project](ctx, c, path)
		if err == nil && env.data != nil {
			return env.data, true
		}
		if err == nil {
			err = errors.New("empty project")
		}
		logger.Log.Warn("CMS fetch failed, looking up bundled project", "section", "project", "path", path, "error", err)
	}
	return defaultProject(slug)
}

// GetProjectsPaginated asks the CMS for one page. The fallback is a single
// page holding the full default list.
func (c *Client) GetProjectsPaginated(ctx context.Context, page, pageSize int) *domain.PaginatedProjects {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if !c.enabled {
		return defaultPage()
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	path := "/api/projects?" + q.Encode()

	env, err := get[[]domain.Project](ctx, c, path)
	if err != nil {
		logger.Log.Warn("CMS fetch failed, serving bundled content", "section", "projects", "path", path, "error", err)
		return defaultPage()
	}

	result := &domain.PaginatedProjects{Data: env.data}
	if result.Data == nil {
		result.Data = []domain.Project{}
	}
	if env.Pagination != nil {
		result.Pagination = *env.Pagination
	} else {
		// CMS sent no metadata; describe what was returned.
		result.Pagination = domain.Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      len(result.Data),
			TotalPages: 1,
		}
	}
	return result
}

func (c *Client) GetContactContent(ctx context.Context) *domain.ContactContent {
	return fetch(ctx, c, "contact", "/api/content/contact", func() *domain.ContactContent {
		return &Defaults().Contact
	})
}

func (c *Client) GetFooterContent(ctx context.Context) *domain.FooterContent {
	return fetch(ctx, c, "footer", "/api/content/footer", func() *domain.FooterContent {
		return &Defaults().Footer
	})
}

// SubmitInquiry posts an already validated and sanitized inquiry. With the
// CMS disabled no request is made and success is reported. Otherwise the
// backend's own success flag and message are returned as-is; an error is
// returned only when no usable answer arrived.
func (c *Client) SubmitInquiry(ctx context.Context, data *domain.InquiryFormData) (*domain.InquiryResponse, error) {
	if !c.enabled {
		logger.Log.Info("CMS disabled, inquiry accepted locally", "subject", data.Subject)
		return &domain.InquiryResponse{Success: true}, nil
	}

	const path = "/api/inquiries"
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("cms: encode inquiry: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Method: http.MethodPost, Path: path, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Method: http.MethodPost, Path: path, Err: err}
	}
	defer resp.Body.Close()

	var out domain.InquiryResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&out); err != nil {
		return nil, &TransportError{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out.Success = false
		if out.Error == "" && out.Message == "" {
			return nil, &TransportError{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Err: errors.New(http.StatusText(resp.StatusCode))}
		}
	}
	return &out, nil
}

var _ domain.ContentRepository = (*Client)(nil)
