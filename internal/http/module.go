// Package http provides HTTP server infrastructure including the Module
// interface that all resource modules implement for route registration.
package http

import (
	"github.com/gin-gonic/gin"
)

// Module represents a proxied resource that can register its HTTP routes.
// Each module encapsulates its own route setup and per-route access policies,
// keeping the main router decoupled from specific endpoints.
type Module interface {
	// Name returns the module's identifier for logging purposes.
	Name() string
	// RegisterRoutes mounts the module's routes on the provided router context.
	RegisterRoutes(ctx *RouterContext)
}

// RouterContext provides shared route groups for module registration.
// Access control is not attached here: every route declares its own policy
// explicitly, so an unguarded route is a visible declaration, not an omission.
type RouterContext struct {
	// Engine is the root Gin engine for modules that need engine-level access.
	Engine *gin.Engine
	// API is the public /api route group.
	API *gin.RouterGroup
	// Admin is the /api/admin route group (prefix only; policies per route).
	Admin *gin.RouterGroup
}
