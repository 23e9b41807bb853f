package redis

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	client     *redis.Client
	clientOnce sync.Once
	clientErr  error
)

// ErrNotConfigured is returned when no Redis URL is set.
var ErrNotConfigured = errors.New("redis: UPSTASH_REDIS_URL not configured")

// Config holds Redis connection configuration
type Config struct {
	URL      string // redis://... or rediss://... for TLS
	Password string // overrides the password embedded in URL
}

// Client returns the shared client, nil when Redis is not in use.
func Client() *redis.Client {
	return client
}

// Options converts cfg into go-redis options.
func Options(cfg Config) (*redis.Options, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}

	parsedURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	if parsedURL.Scheme != "redis" && parsedURL.Scheme != "rediss" {
		return nil, fmt.Errorf("redis: unsupported scheme %q", parsedURL.Scheme)
	}

	useTLS := parsedURL.Scheme == "rediss"

	addr := parsedURL.Host
	if parsedURL.Port() == "" {
		addr = parsedURL.Hostname() + ":6379"
	}

	password := cfg.Password
	if password == "" && parsedURL.User != nil {
		password, _ = parsedURL.User.Password()
	}

	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	}
	if parsedURL.User != nil {
		opts.Username = parsedURL.User.Username()
	}

	if useTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}
	return opts, nil
}

// Initialize connects once and pings the server. Later calls return the
// result of the first one.
func Initialize(cfg Config) (*redis.Client, error) {
	clientOnce.Do(func() {
		opts, err := Options(cfg)
		if err != nil {
			clientErr = err
			return
		}

		c := redis.NewClient(opts)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := c.Ping(ctx).Err(); err != nil {
			_ = c.Close()
			clientErr = fmt.Errorf("redis: connection failed: %w", err)
			return
		}
		client = c
	})

	return client, clientErr
}

// Close closes the Redis connection gracefully.
func Close() error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// HealthCheck pings the server.
func HealthCheck(ctx context.Context) error {
	if client == nil {
		return errors.New("redis: client not initialized")
	}
	return client.Ping(ctx).Err()
}
