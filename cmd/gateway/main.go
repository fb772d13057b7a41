package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hwreview_gateway/internal/analytics"
	"hwreview_gateway/internal/articles"
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/comments"
	"hwreview_gateway/internal/favorites"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/internal/http/router"
	"hwreview_gateway/internal/products"
	"hwreview_gateway/internal/settings"
	"hwreview_gateway/internal/taxonomy"
	"hwreview_gateway/internal/users"
	"hwreview_gateway/internal/views"
	"hwreview_gateway/platform/config"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"

	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting gateway", "env", cfg.Env, "addr", cfg.HTTPAddr, "backend", cfg.BackendBaseURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	proxy := backend.NewClient(cfg, log)

	tracker, err := views.NewTracker(cfg)
	if err != nil {
		log.Error("failed to initialize view tracker", "error", err)
		panic("failed to initialize view tracker: " + err.Error())
	}
	if tracker == nil {
		log.Warn("REDIS_URL not configured; view dedup disabled")
	} else {
		defer func() { _ = tracker.Close() }()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	sessions := httpkit.NewSessionResolver(cfg)

	var limiter *httpkit.IPRateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = httpkit.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, log)
	}

	// ========================================================================
	// Resource Modules (Composition Root)
	// ========================================================================

	articlesModule := articles.NewModule(proxy, tracker, log)
	productsModule := products.NewModule(proxy, log)
	taxonomyModule := taxonomy.NewModule(proxy, val, log)
	commentsModule := comments.NewModule(proxy, val, log)
	favoritesModule := favorites.NewModule(proxy, val, log)
	usersModule := users.NewModule(proxy, val, log)
	settingsModule := settings.NewModule(proxy, log)
	analyticsModule := analytics.NewModule(proxy, log)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:    cfg,
		Logger:    log,
		Health:    proxy,
		Sessions:  sessions,
		RateLimit: limiter,
		Modules: []apphttp.Module{
			articlesModule,
			productsModule,
			taxonomyModule,
			commentsModule,
			favoritesModule,
			usersModule,
			settingsModule,
			analyticsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("gateway listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}
