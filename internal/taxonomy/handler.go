package taxonomy

import (
	"net/http"
	"strconv"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

// fields is shared by categories and tags; both carry the same audit columns.
var fields = backend.FieldMap{
	"created_at":    "createdAt",
	"updated_at":    "updatedAt",
	"article_count": "articleCount",
	"parent_id":     "parentId",
}

var reverseFields = fields.Reverse()

// Resource parameterizes the handler for one taxonomy resource.
type Resource struct {
	Name        string
	Path        string
	IDPath      string
	SlugPath    string
	FetchFailed string
	SaveFailed  string
	DeleteOK    string
}

// upsertRequest is the create/update body for a category or tag.
type upsertRequest struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description"`
	ParentID    *int   `json:"parentId"`
}

// Handler proxies one taxonomy resource to the content API.
type Handler struct {
	proxy    *backend.Client
	val      *validator.Validator
	log      *logger.Logger
	resource Resource
}

// NewHandler creates a handler for one taxonomy resource.
func NewHandler(proxy *backend.Client, val *validator.Validator, log *logger.Logger, resource Resource) *Handler {
	return &Handler{proxy: proxy, val: val, log: log, resource: resource}
}

// List retrieves all entries of the resource.
// GET /api/categories, GET /api/tags
func (h *Handler) List(c *gin.Context) {
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           h.resource.Path,
		Query:          query,
		FailureMessage: h.resource.FetchFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	envelope, err := backend.Normalize(resp.Body, page, limit, fields)
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.OKWithMeta(c, envelope.Data, envelope.Meta)
}

// Get retrieves one entry by numeric ID or slug.
// GET /api/categories/:idOrSlug, GET /api/tags/:idOrSlug
func (h *Handler) Get(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), h.resource.IDPath, h.resource.SlugPath)

	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           path,
		FailureMessage: h.resource.FetchFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	envelope, err := backend.Normalize(resp.Body, 0, 0, fields)
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.OK(c, envelope.Data)
}

// Create creates an entry. Name and slug are required; the backend is never
// called with an invalid body.
// POST /api/admin/categories, POST /api/admin/tags
func (h *Handler) Create(c *gin.Context) {
	h.save(c, http.MethodPost, h.resource.Path)
}

// Update updates an entry by ID or slug.
// PUT /api/admin/categories/:idOrSlug, PUT /api/admin/tags/:idOrSlug
func (h *Handler) Update(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), h.resource.IDPath, h.resource.SlugPath)
	h.save(c, http.MethodPut, path)
}

func (h *Handler) save(c *gin.Context, method, path string) {
	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Name and slug are required")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Name and slug are required")
		return
	}

	body := map[string]interface{}{
		"name":        req.Name,
		"slug":        req.Slug,
		"description": req.Description,
	}
	if req.ParentID != nil {
		body["parentId"] = *req.ParentID
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         method,
		Path:           path,
		Token:          identity.AccessToken,
		JSON:           reverseFields.Apply(body),
		FailureMessage: h.resource.SaveFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	envelope, err := backend.Normalize(resp.Body, 0, 0, fields)
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	c.JSON(resp.Status, envelope)
}

// Delete removes an entry by ID or slug.
// DELETE /api/admin/categories/:idOrSlug, DELETE /api/admin/tags/:idOrSlug
func (h *Handler) Delete(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), h.resource.IDPath, h.resource.SlugPath)

	identity := httpkit.GetIdentity(c)
	_, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodDelete,
		Path:           path,
		Token:          identity.AccessToken,
		FailureMessage: h.resource.SaveFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.Message(c, h.resource.DeleteOK)
}
