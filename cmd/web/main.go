package main

import (
	"context"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-website/config"
	_ "portfolio-website/docs" // Important for Swagger
	"portfolio-website/internal/delivery/http/middleware"
	v1 "portfolio-website/internal/delivery/http/v1"
	"portfolio-website/internal/delivery/http/view"
	"portfolio-website/internal/repository/cms"
	"portfolio-website/internal/repository/session"
	"portfolio-website/internal/usecase"
	"portfolio-website/pkg/logger"
	"portfolio-website/pkg/redis"
	"portfolio-website/pkg/richtext"
	"portfolio-website/pkg/security"
	"portfolio-website/pkg/validation"
	"portfolio-website/web"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// @title           Portfolio Website API
// @version         1.0
// @description     Content snapshot, inquiry submission and health endpoints of the portfolio site.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.SiteName, cfg.AppEnv)
	logger.Log.Info("Starting portfolio website", "port", cfg.Port, "cms_enabled", cfg.CMSActive())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	secLog := security.InitSecurityLogger(cfg.SiteName, cfg.AppEnv)
	defer secLog.Sync()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Setup Session Store (Redis when configured, memory otherwise)
	var (
		sessions  session.KV
		storePing func(context.Context) error
	)
	if rdb, err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err == nil {
		sessions = session.NewRedisStore(rdb, cfg.SiteName+":")
		storePing = redis.HealthCheck
		defer redis.Close()
	} else {
		if cfg.UpstashRedisURL != "" {
			logger.Log.Error("Redis unavailable, using in-memory sessions", "error", err)
		}
		mem := session.NewMemoryStore(5 * time.Minute)
		defer mem.Close()
		sessions = mem
	}

	// 4. Setup Repositories
	cmsClient := cms.NewClient(cms.Config{
		Enabled:         cfg.CMSEnabled,
		BaseURL:         cfg.CMSAPIURL,
		Timeout:         cfg.CMSTimeout,
		ForwardCookies:  cfg.CMSForwardCookies,
		WithholdCookies: []string{cfg.SessionCookieName},
	})

	// 5. Setup UseCases
	content := usecase.NewContentProvider(cmsClient, cms.Defaults())
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.CMSTimeout+time.Second)
	if err := content.Refresh(loadCtx); err != nil {
		logger.Log.Warn("Initial content fetch failed, serving bundled content", "error", err)
	}
	cancelLoad()
	go content.Run(ctx, cfg.ContentRefreshInterval)

	inquiryUC := usecase.NewInquiryUsecase(cmsClient, content, sessions, usecase.InquiryConfig{
		RateLimit:     time.Duration(cfg.InquiryRateLimitMs) * time.Millisecond,
		RateLimitKey:  cfg.InquiryRateLimitKey,
		SessionTTL:    cfg.SessionTTL,
		SubmitLockTTL: cfg.CMSTimeout + 5*time.Second,
	}, secLog)

	healthUC := usecase.NewHealthUsecase(usecase.HealthDeps{
		CMSEnabled: cfg.CMSActive(),
		StoreName:  sessions.Name(),
		StorePing:  storePing,
		Content:    content,
	})

	ipLimiter := middleware.NewIPLimiterStore(cfg.IPRateLimitRPS, cfg.IPRateLimitBurst)
	ipLimiter.StartJanitor(ctx, 2*time.Minute)

	// 6. Setup Views
	templates, err := view.Load(web.FS, richtext.NewRenderer())
	if err != nil {
		logger.Log.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}
	static, err := fs.Sub(web.FS, "static")
	if err != nil {
		logger.Log.Error("Failed to open static assets", "error", err)
		os.Exit(1)
	}

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		Content:     content,
		ContentRepo: cmsClient,
		InquiryUC:   inquiryUC,
		HealthUC:    healthUC,
		IPLimiter:   ipLimiter,
		SecurityLog: secLog,
		Templates:   templates,
		Static:      static,
		Config:      cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
