// Package articles proxies article resources: public reads with dual id/slug
// resolution, view tracking, and editorial CRUD.
package articles

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/internal/views"
	"hwreview_gateway/platform/logger"
)

// Module is the articles resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the articles module.
func NewModule(proxy *backend.Client, tracker *views.Tracker, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, tracker, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "articles"
}

// RegisterRoutes mounts article routes on the provided router context.
// Article writes are an editorial action: EDITOR is allowed alongside the
// admin roles, unlike tag or settings management.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := guard.Middleware(guard.Public(), m.log)
	editorial := guard.Middleware(guard.Require(guard.RoleEditor, guard.RoleAdmin, guard.RoleSuperAdmin), m.log)

	group := ctx.API.Group("/articles")
	group.GET("", public, m.handler.List)
	group.GET("/:idOrSlug", public, m.handler.Get)
	group.POST("/:idOrSlug/view", public, m.handler.TrackView)

	admin := ctx.Admin.Group("/articles")
	admin.GET("", editorial, m.handler.AdminList)
	admin.POST("", editorial, m.handler.Create)
	admin.PUT("/:idOrSlug", editorial, m.handler.Update)
	admin.DELETE("/:idOrSlug", editorial, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
