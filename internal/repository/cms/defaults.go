package cms

import (
	_ "embed"
	"fmt"

	"portfolio-website/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Defaults returns a fresh copy of the bundled content. Each call decodes the
// embedded document again so callers can never alter the shared defaults.
func Defaults() *domain.SiteContent {
	content, err := parseDefaults(defaultsYAML)
	if err != nil {
		// The document is compiled into the binary; tests keep it valid.
		panic(err)
	}
	return content
}

func parseDefaults(raw []byte) (*domain.SiteContent, error) {
	var content domain.SiteContent
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return nil, fmt.Errorf("cms: invalid bundled content: %w", err)
	}
	return &content, nil
}

func defaultFeatured() []domain.Project {
	featured := []domain.Project{}
	for _, p := range Defaults().Projects.Projects {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}

func defaultService(id string) (*domain.Service, bool) {
	for _, s := range Defaults().Services.Services {
		if s.ID == id {
			return &s, true
		}
	}
	return nil, false
}

func defaultProject(slug string) (*domain.Project, bool) {
	for _, p := range Defaults().Projects.Projects {
		if p.Slug == slug {
			return &p, true
		}
	}
	return nil, false
}

// defaultPage wraps the whole default list as a single page, whatever page
// was requested.
func defaultPage() *domain.PaginatedProjects {
	projects := Defaults().Projects.Projects
	return &domain.PaginatedProjects{
		Data: projects,
		Pagination: domain.Pagination{
			Page:       1,
			PageSize:   len(projects),
			Total:      len(projects),
			TotalPages: 1,
		},
	}
}
