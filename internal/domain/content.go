package domain

import (
	"context"
	"reflect"
)

// NavItem is a single navigation or footer link.
type NavItem struct {
	Label    string `json:"label" yaml:"label"`
	Href     string `json:"href" yaml:"href"`
	External bool   `json:"external,omitempty" yaml:"external,omitempty"`
}

type Navigation struct {
	Logo     string    `json:"logo" yaml:"logo"`
	LogoText string    `json:"logoText" yaml:"logoText"`
	Items    []NavItem `json:"items" yaml:"items"`
	CTA      *NavItem  `json:"cta,omitempty" yaml:"cta,omitempty"`
}

type CallToAction struct {
	Label string `json:"label" yaml:"label"`
	Href  string `json:"href" yaml:"href"`
}

type HeroContent struct {
	Title           string        `json:"title" yaml:"title"`
	Subtitle        string        `json:"subtitle" yaml:"subtitle"`
	Description     string        `json:"description" yaml:"description"`
	PrimaryCTA      CallToAction  `json:"primaryCta" yaml:"primaryCta"`
	SecondaryCTA    *CallToAction `json:"secondaryCta,omitempty" yaml:"secondaryCta,omitempty"`
	BackgroundImage string        `json:"backgroundImage,omitempty" yaml:"backgroundImage,omitempty"`
}

// Service is an offered service. Icon holds SVG markup supplied by the CMS.
type Service struct {
	ID          string   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Icon        string   `json:"icon,omitempty" yaml:"icon,omitempty"`
	Features    []string `json:"features,omitempty" yaml:"features,omitempty"`
}

type ServicesContent struct {
	Title    string    `json:"title" yaml:"title"`
	Subtitle string    `json:"subtitle" yaml:"subtitle"`
	Services []Service `json:"services" yaml:"services"`
}

// Project is a portfolio entry. Body is a Markdown case study.
type Project struct {
	ID       string   `json:"id" yaml:"id"`
	Slug     string   `json:"slug" yaml:"slug"`
	Title    string   `json:"title" yaml:"title"`
	Summary  string   `json:"summary" yaml:"summary"`
	Body     string   `json:"body,omitempty" yaml:"body,omitempty"`
	Image    string   `json:"image,omitempty" yaml:"image,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
	Year     int      `json:"year,omitempty" yaml:"year,omitempty"`
	Featured bool     `json:"featured" yaml:"featured"`
}

type ProjectsContent struct {
	Title    string    `json:"title" yaml:"title"`
	Subtitle string    `json:"subtitle" yaml:"subtitle"`
	Projects []Project `json:"projects" yaml:"projects"`
}

type ContactContent struct {
	Title          string      `json:"title" yaml:"title"`
	Subtitle       string      `json:"subtitle" yaml:"subtitle"`
	Email          string      `json:"email" yaml:"email"`
	Phone          string      `json:"phone,omitempty" yaml:"phone,omitempty"`
	Address        string      `json:"address,omitempty" yaml:"address,omitempty"`
	SubmitLabel    string      `json:"submitLabel" yaml:"submitLabel"`
	SuccessMessage string      `json:"successMessage" yaml:"successMessage"`
	FormFields     []FormField `json:"formFields" yaml:"formFields"`
}

type SocialLink struct {
	Platform string `json:"platform" yaml:"platform"`
	URL      string `json:"url" yaml:"url"`
	Icon     string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

type FooterContent struct {
	Tagline   string       `json:"tagline" yaml:"tagline"`
	Copyright string       `json:"copyright" yaml:"copyright"`
	Links     []NavItem    `json:"links" yaml:"links"`
	Social    []SocialLink `json:"social,omitempty" yaml:"social,omitempty"`
}

// SiteContent is a full snapshot of every section. Snapshots are replaced
// wholesale and never mutated after they are published.
type SiteContent struct {
	Navigation Navigation      `json:"navigation" yaml:"navigation"`
	Hero       HeroContent     `json:"hero" yaml:"hero"`
	Services   ServicesContent `json:"services" yaml:"services"`
	Projects   ProjectsContent `json:"projects" yaml:"projects"`
	Contact    ContactContent  `json:"contact" yaml:"contact"`
	Footer     FooterContent   `json:"footer" yaml:"footer"`
}

// SiteSections lists the sections of a snapshot in page order.
var SiteSections = []string{"navigation", "hero", "services", "projects", "contact", "footer"}

// MissingSections names the sections that arrived with no fields set.
func (s *SiteContent) MissingSections() []string {
	var missing []string
	values := []any{s.Navigation, s.Hero, s.Services, s.Projects, s.Contact, s.Footer}
	for i, v := range values {
		if reflect.ValueOf(v).IsZero() {
			missing = append(missing, SiteSections[i])
		}
	}
	return missing
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type PaginatedProjects struct {
	Data       []Project  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ContentRepository reads site content. Read methods never fail: any
// problem reaching the CMS degrades to the bundled defaults.
type ContentRepository interface {
	GetSiteContent(ctx context.Context) *SiteContent
	// FetchSiteContent is the strict variant used by the content provider;
	// it reports CMS failures instead of hiding them.
	FetchSiteContent(ctx context.Context) (*SiteContent, error)
	GetNavigation(ctx context.Context) *Navigation
	GetHeroContent(ctx context.Context) *HeroContent
	GetServicesContent(ctx context.Context) *ServicesContent
	GetServices(ctx context.Context) []Service
	GetService(ctx context.Context, id string) (*Service, bool)
	GetProjectsContent(ctx context.Context) *ProjectsContent
	GetProjects(ctx context.Context) []Project
	GetFeaturedProjects(ctx context.Context) []Project
	GetProject(ctx context.Context, slug string) (*Project, bool)
	GetProjectsPaginated(ctx context.Context, page, pageSize int) *PaginatedProjects
	GetContactContent(ctx context.Context) *ContactContent
	GetFooterContent(ctx context.Context) *FooterContent
	SubmitInquiry(ctx context.Context, data *InquiryFormData) (*InquiryResponse, error)
}

// ContentState is what the presentation layer sees of the held snapshot.
type ContentState struct {
	Content   *SiteContent `json:"content"`
	Loading   bool         `json:"loading"`
	Error     string       `json:"error,omitempty"`
	FetchedAt string       `json:"fetchedAt,omitempty"`
}

// ContentProvider owns the session-lifetime snapshot.
type ContentProvider interface {
	Content() *SiteContent
	State() ContentState
	Refresh(ctx context.Context) error
}
