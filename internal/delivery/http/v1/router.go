package v1

import (
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"portfolio-website/config"
	"portfolio-website/internal/delivery/http/middleware"
	"portfolio-website/internal/delivery/http/response"
	"portfolio-website/internal/domain"
	"portfolio-website/internal/usecase"
	"portfolio-website/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Content     domain.ContentProvider
	ContentRepo domain.ContentRepository
	InquiryUC   domain.InquiryUsecase
	HealthUC    usecase.HealthUsecase
	IPLimiter   *middleware.IPLimiterStore
	SecurityLog *security.SecurityLogger
	Templates   *template.Template
	Static      fs.FS
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(deps.Templates)

	secure := deps.Config.IsProduction()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins, secure)) // CORS must be first!
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.SecurityLog))
	r.Use(middleware.SecurityHeadersMiddleware(secure))

	r.StaticFS("/static", http.FS(deps.Static))

	throttle := middleware.IPRateLimit(deps.IPLimiter, deps.SecurityLog)

	// Operator API: no visitor session, bearer token instead of CSRF
	operator := r.Group("/api",
		middleware.ErrorHandler(),
		throttle,
		middleware.RefreshTokenAuth(deps.Config.ContentRefreshToken, deps.SecurityLog),
	)

	site := r.Group("")
	site.Use(middleware.Session(middleware.SessionConfig{
		CookieName: deps.Config.SessionCookieName,
		Secure:     secure,
	}))
	site.Use(middleware.CSRFMiddleware(secure, deps.SecurityLog))
	site.Use(middleware.RequestContext())

	// HTML pages
	NewPageHandler(site, site.Group("", throttle), deps.Content, deps.ContentRepo, deps.InquiryUC)

	// JSON API
	api := site.Group("/api")
	api.Use(middleware.ErrorHandler())
	{
		api.GET("/health", healthHandler(deps.HealthUC))
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		throttled := api.Group("", throttle)
		NewInquiryHandler(api, throttled, deps.InquiryUC)
		NewContentHandler(api, operator, deps.Content)
	}

	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Error(c, http.StatusNotFound, "Not found", nil)
			return
		}
		c.HTML(http.StatusNotFound, middleware.ErrorTemplate, gin.H{
			"Status":  http.StatusNotFound,
			"Title":   "Not Found",
			"Message": "The page you're looking for doesn't exist.",
		})
	})

	return r
}
