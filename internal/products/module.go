// Package products proxies product resources: public catalog reads with dual
// id/slug resolution and admin CRUD.
package products

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
)

// Module is the products resource module implementing http.Module.
type Module struct {
	handler *Handler
	log     *logger.Logger
}

// NewModule creates and initializes the products module.
func NewModule(proxy *backend.Client, log *logger.Logger) *Module {
	return &Module{
		handler: NewHandler(proxy, log),
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "products"
}

// RegisterRoutes mounts product routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := guard.Middleware(guard.Public(), m.log)
	admin := guard.Middleware(guard.Require(guard.RoleAdmin, guard.RoleSuperAdmin), m.log)

	group := ctx.API.Group("/products")
	group.GET("", public, m.handler.List)
	group.GET("/by-slug/:idOrSlug", public, m.handler.Get)

	adminGroup := ctx.Admin.Group("/products")
	adminGroup.GET("", admin, m.handler.List)
	adminGroup.POST("", admin, m.handler.Create)
	adminGroup.PUT("/:idOrSlug", admin, m.handler.Update)
	adminGroup.DELETE("/:idOrSlug", admin, m.handler.Delete)
}

var _ apphttp.Module = (*Module)(nil)
