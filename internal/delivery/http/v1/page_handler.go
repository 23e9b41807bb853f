package v1

import (
	"errors"
	"net/http"
	"strconv"

	"portfolio-website/internal/delivery/http/middleware"
	"portfolio-website/internal/delivery/http/view"
	"portfolio-website/internal/domain"
	"portfolio-website/pkg/apperror"
	"portfolio-website/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 9
	maxPageSize     = 50
)

type PageHandler struct {
	content   domain.ContentProvider
	repo      domain.ContentRepository
	inquiryUC domain.InquiryUsecase
}

// NewPageHandler registers the HTML routes
func NewPageHandler(r gin.IRoutes, throttled gin.IRoutes, content domain.ContentProvider, repo domain.ContentRepository, inquiryUC domain.InquiryUsecase) {
	handler := &PageHandler{
		content:   content,
		repo:      repo,
		inquiryUC: inquiryUC,
	}

	r.GET("/", handler.Home)
	r.GET("/services/:id", handler.Service)
	r.GET("/projects", handler.Projects)
	r.GET("/projects/:slug", handler.Project)
	throttled.POST("/contact", handler.SubmitContact)
}

func (h *PageHandler) page(c *gin.Context, title string) *view.Page {
	return &view.Page{
		Site:      h.content.Content(),
		Title:     title,
		Path:      c.Request.URL.Path,
		CSRFToken: middleware.CSRFToken(c),
		RequestID: c.GetString(string(domain.KeyRequestID)),
	}
}

func (h *PageHandler) contactForm(c *gin.Context, site *domain.SiteContent) *view.ContactForm {
	return &view.ContactForm{
		Fields:    view.FormFields(site.Contact),
		Values:    map[string]string{},
		RateLimit: h.inquiryUC.Status(c.Request.Context(), middleware.SessionID(c)),
	}
}

func featured(projects []domain.Project) []domain.Project {
	var out []domain.Project
	for _, p := range projects {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (h *PageHandler) renderHome(c *gin.Context, status int, form *view.ContactForm) {
	page := h.page(c, "")
	page.Featured = featured(page.Site.Projects.Projects)
	if form == nil {
		form = h.contactForm(c, page.Site)
	}
	page.Contact = form
	c.HTML(status, "home.html", page)
}

func (h *PageHandler) Home(c *gin.Context) {
	form := h.contactForm(c, h.content.Content())
	form.Sent = c.Query("inquiry") == "sent"
	h.renderHome(c, http.StatusOK, form)
}

func (h *PageHandler) notFound(c *gin.Context, what string) {
	c.HTML(http.StatusNotFound, middleware.ErrorTemplate, gin.H{
		"Status":  http.StatusNotFound,
		"Title":   "Not Found",
		"Message": "We couldn't find that " + what + ".",
	})
}

func (h *PageHandler) Service(c *gin.Context) {
	service, ok := h.repo.GetService(c.Request.Context(), c.Param("id"))
	if !ok {
		h.notFound(c, "service")
		return
	}
	page := h.page(c, service.Title)
	page.Service = service
	c.HTML(http.StatusOK, "service.html", page)
}

func (h *PageHandler) Projects(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if pageNum < 1 {
		pageNum = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	page := h.page(c, projectsTitle(h.content.Content()))
	page.Projects = h.repo.GetProjectsPaginated(c.Request.Context(), pageNum, pageSize)
	c.HTML(http.StatusOK, "projects.html", page)
}

func projectsTitle(site *domain.SiteContent) string {
	if site.Projects.Title != "" {
		return site.Projects.Title
	}
	return "Projects"
}

func (h *PageHandler) Project(c *gin.Context) {
	project, ok := h.repo.GetProject(c.Request.Context(), c.Param("slug"))
	if !ok {
		h.notFound(c, "project")
		return
	}
	page := h.page(c, project.Title)
	page.Project = project
	c.HTML(http.StatusOK, "project.html", page)
}

// SubmitContact handles the HTML contact form. Success redirects back to
// the form (post/redirect/get); any failure re-renders it with the
// submitted values.
func (h *PageHandler) SubmitContact(c *gin.Context) {
	site := h.content.Content()
	form := h.contactForm(c, site)

	var req domain.InquiryFormData
	if err := c.ShouldBind(&req); err != nil {
		form.Notice = "We couldn't read your message. Please try again."
		h.renderHome(c, http.StatusBadRequest, form)
		return
	}
	for _, f := range form.Fields {
		value := c.PostForm(f.Name)
		form.Values[f.Name] = value
		if !f.IsCore() && value != "" {
			if req.Extra == nil {
				req.Extra = make(map[string]string)
			}
			req.Extra[f.Name] = value
		}
	}

	resp, err := h.inquiryUC.Submit(c.Request.Context(), middleware.SessionID(c), &req)
	if err != nil {
		status := http.StatusInternalServerError
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status = appErr.Code
			form.Errors = appErr.Details
			if len(appErr.Details) == 0 {
				form.Notice = appErr.Message
			}
		} else {
			logger.Log.Error("Inquiry submission failed", "error", err)
			form.Notice = "An unexpected error occurred. Please try again later."
		}
		form.RateLimit = h.inquiryUC.Status(c.Request.Context(), middleware.SessionID(c))
		h.renderHome(c, status, form)
		return
	}
	if !resp.Success {
		form.Notice = resp.Error
		if form.Notice == "" {
			form.Notice = resp.Message
		}
		h.renderHome(c, http.StatusBadGateway, form)
		return
	}

	c.Redirect(http.StatusSeeOther, "/?inquiry=sent#contact")
}
