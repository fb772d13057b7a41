// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// SessionConfig provides session token validation settings for middleware.
type SessionConfig interface {
	GetSessionSecret() string
	GetSessionCookieName() string
}

// BackendConfig provides settings for the upstream content API.
type BackendConfig interface {
	GetBackendBaseURL() string
	GetBackendTimeout() time.Duration
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RedisConfig provides settings for the view-tracking cache.
type RedisConfig interface {
	GetRedisURL() string
	GetViewDedupTTL() time.Duration
}

// SiteConfig provides public site metadata.
type SiteConfig interface {
	GetSiteURL() string
	GetPublicAPIURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	BackendBaseURL    string
	BackendTimeout    time.Duration
	SessionSecret     string
	SessionCookieName string
	SiteURL           string
	PublicAPIURL      string
	CORSAllowAll      bool
	CORSOrigins       []string
	CORSAllowCreds    bool
	RedisURL          string
	ViewDedupTTL      time.Duration
	RateLimitRPS      float64
	RateLimitBurst    int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// SessionConfig implementation
func (c *Config) GetSessionSecret() string     { return c.SessionSecret }
func (c *Config) GetSessionCookieName() string { return c.SessionCookieName }

// BackendConfig implementation
func (c *Config) GetBackendBaseURL() string        { return c.BackendBaseURL }
func (c *Config) GetBackendTimeout() time.Duration { return c.BackendTimeout }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RedisConfig implementation
func (c *Config) GetRedisURL() string            { return c.RedisURL }
func (c *Config) GetViewDedupTTL() time.Duration { return c.ViewDedupTTL }

// SiteConfig implementation
func (c *Config) GetSiteURL() string      { return c.SiteURL }
func (c *Config) GetPublicAPIURL() string { return c.PublicAPIURL }

// Load reads configuration from environment variables.
// Env var names follow the frontend deployment contract: DJANGO_API_URL is the
// backend base, NEXTAUTH_SECRET signs session tokens, NEXTAUTH_URL is the
// public site URL.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		HTTPAddr:          getEnv("HTTP_ADDR", ":3000"),
		BackendBaseURL:    strings.TrimRight(getEnv("DJANGO_API_URL", "http://localhost:8000/api"), "/"),
		BackendTimeout:    mustDuration(getEnv("BACKEND_TIMEOUT", "10s")),
		SessionSecret:     getEnv("NEXTAUTH_SECRET", ""),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session-token"),
		SiteURL:           getEnv("NEXTAUTH_URL", "http://localhost:3000"),
		PublicAPIURL:      getEnv("NEXT_PUBLIC_API_URL", "http://localhost:8000/api"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		CORSAllowCreds:    strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RedisURL:          getEnv("REDIS_URL", ""),
		ViewDedupTTL:      mustDuration(getEnv("VIEW_DEDUP_TTL", "30m")),
		RateLimitRPS:      mustFloat(getEnv("RATE_LIMIT_RPS", "50")),
		RateLimitBurst:    int(mustInt64(getEnv("RATE_LIMIT_BURST", "100"))),
	}

	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("NEXTAUTH_SECRET is required")
	}
	if cfg.BackendTimeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
