// Package analytics proxies the admin dashboard aggregation.
package analytics

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
)

// Module is the analytics resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the analytics module.
func NewModule(proxy *backend.Client, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "analytics"
}

// RegisterRoutes mounts analytics routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := guard.Middleware(guard.Require(guard.RoleAdmin, guard.RoleSuperAdmin), m.log)

	group := ctx.Admin.Group("/analytics")
	group.GET("/dashboard", admin, m.handler.Dashboard)
}

var _ apphttp.Module = (*Module)(nil)
