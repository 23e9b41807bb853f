// Package view renders the site's HTML pages.
package view

import (
	"html/template"
	"io/fs"
	"strings"
	"time"

	"portfolio-website/internal/domain"
	"portfolio-website/pkg/richtext"
	"portfolio-website/pkg/sanitizer"
)

// Page is the data every page template receives.
type Page struct {
	Site      *domain.SiteContent
	Title     string
	Path      string
	CSRFToken string
	RequestID string
	Contact   *ContactForm

	// Set by individual pages.
	Service  *domain.Service
	Project  *domain.Project
	Projects *domain.PaginatedProjects
	Featured []domain.Project
}

// ContactForm is the state of the contact form on a rendered page.
type ContactForm struct {
	Fields    []domain.FormField
	Values    map[string]string
	Errors    []string
	Notice    string
	Sent      bool
	RateLimit domain.RateLimitStatus
}

// Value returns the submitted value of a field for re-rendering.
func (f *ContactForm) Value(name string) string {
	if f == nil {
		return ""
	}
	return f.Values[name]
}

// Funcs returns the template helpers. md renders project case studies.
func Funcs(md *richtext.Renderer) template.FuncMap {
	return template.FuncMap{
		"richText": func(s string) template.HTML {
			return template.HTML(sanitizer.SanitizeRichText(s))
		},
		"svgIcon": func(s string) template.HTML {
			return template.HTML(sanitizer.SanitizeSVG(s))
		},
		"markdown": func(s string) (template.HTML, error) {
			out, err := md.Render(s)
			return template.HTML(out), err
		},
		"field": RenderField,
		"join":  strings.Join,
		"year":  func() int { return time.Now().Year() },
		"add":   func(a, b int) int { return a + b },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
	}
}

// Load parses every template under templates/ in fsys.
func Load(fsys fs.FS, md *richtext.Renderer) (*template.Template, error) {
	return template.New("").Funcs(Funcs(md)).ParseFS(fsys, "templates/*.html")
}
