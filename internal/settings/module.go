// Package settings proxies the site-settings resource. The public route
// exposes the subset the backend marks public; the admin routes manage the
// full set.
package settings

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
)

// Module is the settings resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the settings module.
func NewModule(proxy *backend.Client, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "settings"
}

// RegisterRoutes mounts settings routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	admin := guard.Middleware(guard.Require(guard.RoleAdmin, guard.RoleSuperAdmin), m.log)

	ctx.API.GET("/settings", guard.Middleware(guard.Public(), m.log), m.handler.Public)

	group := ctx.Admin.Group("/settings")
	group.GET("", admin, m.handler.AdminList)
	group.PUT("/bulk", admin, m.handler.BulkUpdate)
	group.POST("/logo", admin, m.handler.UploadLogo)
	group.POST("/favicon", admin, m.handler.UploadFavicon)
}

var _ apphttp.Module = (*Module)(nil)
