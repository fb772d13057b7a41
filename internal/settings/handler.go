package settings

import (
	"net/http"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	msgFetchFailed = "Failed to fetch settings"
	msgSaveFailed  = "Failed to save settings"
)

// fields is the declared snake_case-to-camelCase mapping for settings payloads.
var fields = backend.FieldMap{
	"site_name":        "siteName",
	"site_description": "siteDescription",
	"site_url":         "siteUrl",
	"logo_url":         "logoUrl",
	"favicon_url":      "faviconUrl",
	"contact_email":    "contactEmail",
	"social_links":     "socialLinks",
	"analytics_id":     "analyticsId",
	"updated_at":       "updatedAt",
}

var reverseFields = fields.Reverse()

// Handler proxies site-settings requests to the content API.
type Handler struct {
	proxy *backend.Client
	log   *logger.Logger
}

// NewHandler creates a new settings handler.
func NewHandler(proxy *backend.Client, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, log: log}
}

// Public retrieves the public subset of site settings.
// GET /api/settings
func (h *Handler) Public(c *gin.Context) {
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/settings/",
		Query:          httpkit.PassthroughQuery(c),
		FailureMessage: msgFetchFailed,
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

// AdminList retrieves all settings, including non-public ones.
// GET /api/admin/settings
func (h *Handler) AdminList(c *gin.Context) {
	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/settings/",
		Query:          httpkit.PassthroughQuery(c),
		Token:          identity.AccessToken,
		FailureMessage: msgFetchFailed,
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

// BulkUpdate applies a batch of settings in one request.
// PUT /api/admin/settings/bulk
func (h *Handler) BulkUpdate(c *gin.Context) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		httpkit.Fail(c, http.StatusBadRequest, "No settings provided")
		return
	}
	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPut,
		Path:           "/settings/bulk/",
		Token:          identity.AccessToken,
		JSON:           reverseFields.Apply(body),
		FailureMessage: msgSaveFailed,
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

// UploadLogo replaces the site logo.
// POST /api/admin/settings/logo
func (h *Handler) UploadLogo(c *gin.Context) {
	h.upload(c, "/settings/logo/", "Logo file is required")
}

// UploadFavicon replaces the site favicon.
// POST /api/admin/settings/favicon
func (h *Handler) UploadFavicon(c *gin.Context) {
	h.upload(c, "/settings/favicon/", "Favicon file is required")
}

func (h *Handler) upload(c *gin.Context, path, missing string) {
	m, err := c.MultipartForm()
	if err != nil {
		httpkit.Fail(c, http.StatusBadRequest, missing)
		return
	}
	form, err := backend.FormFromMultipart(m)
	if err != nil || len(form.Files) == 0 {
		httpkit.Fail(c, http.StatusBadRequest, missing)
		return
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPost,
		Path:           path,
		Token:          identity.AccessToken,
		Form:           form,
		FailureMessage: msgSaveFailed,
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
