// Package favorites proxies the current user's product favorites.
package favorites

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"
)

// Module is the favorites resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the favorites module.
func NewModule(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, val, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "favorites"
}

// RegisterRoutes mounts favorite routes on the provided router context.
// Every route requires a session; favorites are always scoped to the caller.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authed := guard.Middleware(guard.Authenticated(), m.log)

	group := ctx.API.Group("/favorites")
	group.GET("", authed, m.handler.List)
	group.POST("", authed, m.handler.Add)
	group.DELETE("/:productId", authed, m.handler.Remove)
}

var _ apphttp.Module = (*Module)(nil)
