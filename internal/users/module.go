// Package users proxies the admin user-management resources. Role changes and
// account removal are reserved for SUPER_ADMIN; a compromised ADMIN session
// must not be able to mint more admins.
package users

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"
)

// Module is the users resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the users module.
func NewModule(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, val, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "users"
}

// RegisterRoutes mounts user-management routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	super := guard.Middleware(guard.Require(guard.RoleSuperAdmin), m.log)

	group := ctx.Admin.Group("/users")
	group.GET("", super, m.handler.List)
	group.GET("/:id", super, m.handler.Get)
	group.PUT("/:id/role", super, m.handler.UpdateRole)
	group.POST("/:id/avatar", super, m.handler.UploadAvatar)
	group.DELETE("/:id", super, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
