package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	AppEnv   string
	SiteName string
	// CMS Configuration
	CMSEnabled bool
	CMSAPIURL  string
	CMSTimeout time.Duration
	// Visitor cookies forwarded to the CMS; empty forwards all
	CMSForwardCookies []string
	// Inquiry rate limiting (per visitor session)
	InquiryRateLimitMs  int
	InquiryRateLimitKey string
	// Session Configuration
	SessionCookieName string
	SessionTTL        time.Duration
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Per-IP throttle on POST routes
	IPRateLimitRPS   float64
	IPRateLimitBurst int
	// Content snapshot refresh (0 disables the background loop)
	ContentRefreshInterval time.Duration
	// Bearer token for POST /api/content/refresh; empty disables the endpoint
	ContentRefreshToken string
	// CORS
	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		AppEnv:   getEnv("APP_ENV", "development"),
		SiteName: getEnv("SITE_NAME", "portfolio-website"),
		// Trailing slash removed so paths can be joined as base + "/api/..."
		CMSEnabled:        getEnvBool("CMS_ENABLED", false),
		CMSAPIURL:         strings.TrimRight(getEnv("CMS_API_URL", ""), "/"),
		CMSTimeout:        getEnvDuration("CMS_TIMEOUT", 10*time.Second),
		CMSForwardCookies: splitList(getEnv("CMS_FORWARD_COOKIES", "")),
		// Inquiry rate limiting
		InquiryRateLimitMs:  getEnvInt("INQUIRY_RATE_LIMIT_MS", 60000),
		InquiryRateLimitKey: getEnv("INQUIRY_RATE_LIMIT_KEY", "lastSubmitTime"),
		// Session
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "site_session"),
		SessionTTL:        getEnvDuration("SESSION_TTL", 24*time.Hour),
		// Redis/Upstash
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Per-IP throttle: one request every 5 seconds, bursts of 5
		IPRateLimitRPS:   getEnvFloat("IP_RATE_LIMIT_RPS", 0.2),
		IPRateLimitBurst: getEnvInt("IP_RATE_LIMIT_BURST", 5),
		// Content refresh
		ContentRefreshInterval: getEnvDuration("CONTENT_REFRESH_INTERVAL", 0),
		ContentRefreshToken:    getEnv("CONTENT_REFRESH_TOKEN", ""),
		AllowedOrigins:         splitList(getEnv("ALLOWED_ORIGINS", "")),
	}

	if cfg.CMSEnabled && cfg.CMSAPIURL == "" {
		log.Println("WARNING: CMS_ENABLED is true but CMS_API_URL is empty. Bundled content will be served.")
	}

	if cfg.InquiryRateLimitMs <= 0 {
		cfg.InquiryRateLimitMs = 60000
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Session state will use in-memory storage.")
	}

	return cfg, nil
}

// CMSActive reports whether remote CMS calls should be attempted.
func (c *Config) CMSActive() bool {
	return c.CMSEnabled && c.CMSAPIURL != ""
}

// IsProduction reports whether the site runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production" || os.Getenv("GIN_MODE") == "release"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("30s", "5m")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
