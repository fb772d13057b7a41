// Package router assembles the Gin engine: global middleware, health
// endpoints, and route registration for every resource module.
package router

import (
	"context"
	"net/http"
	"time"

	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// New builds the engine from the composed application.
func New(app *apphttp.App) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(corsMiddleware(app.Config))
	if app.RateLimit != nil {
		engine.Use(app.RateLimit.RateLimit())
	}
	engine.Use(httpkit.SessionMiddleware(app.Sessions))

	engine.GET("/api/health", healthHandler(app.Health, app.Config))

	api := engine.Group("/api")
	admin := api.Group("/admin")

	ctx := &apphttp.RouterContext{
		Engine: engine,
		API:    api,
		Admin:  admin,
	}

	for _, module := range app.Modules {
		module.RegisterRoutes(ctx)
		app.Logger.Info("routes registered", "module", module.Name())
	}

	engine.NoRoute(func(c *gin.Context) {
		httpkit.Fail(c, http.StatusNotFound, "Not found")
	})

	return engine
}

func healthHandler(health apphttp.HealthChecker, cfg apphttp.RouterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		backendUp := true
		if health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			backendUp = health.Ping(ctx) == nil
		}
		httpkit.OK(c, gin.H{
			"status":  "ok",
			"backend": backendUp,
			"siteUrl": cfg.GetSiteURL(),
			"apiUrl":  cfg.GetPublicAPIURL(),
		})
	}
}

func corsMiddleware(cfg apphttp.RouterConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", httpkit.RequestIDHeader},
		AllowCredentials: cfg.GetCORSAllowCreds(),
		MaxAge:           12 * time.Hour,
	}

	if cfg.GetCORSAllowAll() {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.GetCORSOrigins()
	}

	return cors.New(corsCfg)
}
