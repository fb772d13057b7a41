// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"hwreview_gateway/platform/config"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.SessionConfig
	config.SiteConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP and session settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health is used for readiness checks (backend reachability).
	Health HealthChecker
	// Sessions resolves caller identity on every request.
	Sessions *httpkit.SessionResolver
	// RateLimit applies per-IP request limits; nil disables limiting.
	RateLimit *httpkit.IPRateLimiter
	// Modules contains all HTTP-facing resource modules.
	Modules []Module
}
