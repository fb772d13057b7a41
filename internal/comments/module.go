// Package comments proxies the comment resources: public reads per article,
// authenticated posting, and admin moderation.
package comments

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"
)

// Module is the comments resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the comments module.
func NewModule(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, val, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "comments"
}

// RegisterRoutes mounts comment routes on the provided router context.
// Posting requires any session; moderation requires the admin roles.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := guard.Middleware(guard.Require(guard.RoleAdmin, guard.RoleSuperAdmin), m.log)

	group := ctx.API.Group("/comments")
	group.GET("", guard.Middleware(guard.Public(), m.log), m.handler.List)
	group.POST("", guard.Middleware(guard.Authenticated(), m.log), m.handler.Create)

	adminGroup := ctx.Admin.Group("/comments")
	adminGroup.GET("", admin, m.handler.AdminList)
	adminGroup.PUT("/:id", admin, m.handler.UpdateStatus)
	adminGroup.DELETE("/:id", admin, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
