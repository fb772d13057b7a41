// Package taxonomy proxies the categorization resources: categories and tags.
// Reads are public; management requires the admin roles (unlike articles,
// editors do not manage taxonomy).
package taxonomy

import (
	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"
)

// Module is the taxonomy resource module implementing http.Module.
type Module struct {
	categories *Handler
	tags       *Handler
	log        *logger.Logger
}

// NewModule creates and initializes the taxonomy module.
func NewModule(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Module {
	return &Module{
		categories: NewHandler(proxy, val, log, Resource{
			Name:        "categories",
			Path:        "/categories/",
			IDPath:      "/categories/%s/",
			SlugPath:    "/categories/slug/%s/",
			FetchFailed: "Failed to fetch categories",
			SaveFailed:  "Failed to save category",
			DeleteOK:    "Category deleted",
		}),
		tags: NewHandler(proxy, val, log, Resource{
			Name:        "tags",
			Path:        "/tags/",
			IDPath:      "/tags/%s/",
			SlugPath:    "/tags/slug/%s/",
			FetchFailed: "Failed to fetch tags",
			SaveFailed:  "Failed to save tag",
			DeleteOK:    "Tag deleted",
		}),
		log: log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "taxonomy"
}

// RegisterRoutes mounts category and tag routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	public := guard.Middleware(guard.Public(), m.log)
	admin := guard.Middleware(guard.Require(guard.RoleAdmin, guard.RoleSuperAdmin), m.log)

	for _, entry := range []struct {
		prefix  string
		handler *Handler
	}{
		{"/categories", m.categories},
		{"/tags", m.tags},
	} {
		group := ctx.API.Group(entry.prefix)
		group.GET("", public, entry.handler.List)
		group.GET("/:idOrSlug", public, entry.handler.Get)

		adminGroup := ctx.Admin.Group(entry.prefix)
		adminGroup.POST("", admin, entry.handler.Create)
		adminGroup.PUT("/:idOrSlug", admin, entry.handler.Update)
		adminGroup.DELETE("/:idOrSlug", admin, entry.handler.Delete)
	}
}

var _ apphttp.Module = (*Module)(nil)
