package articles

import (
	"net/http"
	"strconv"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/views"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	msgFetchFailed  = "Failed to fetch articles"
	msgSaveFailed   = "Failed to save article"
	msgDeleteFailed = "Failed to delete article"
	msgViewFailed   = "Failed to record view"

	articleIDPath   = "/articles/%s/"
	articleSlugPath = "/articles/slug/%s/"
)

// fields is the declared snake_case-to-camelCase mapping for article payloads.
// Keys not listed here pass through unchanged.
var fields = backend.FieldMap{
	"created_at":       "createdAt",
	"updated_at":       "updatedAt",
	"published_at":     "publishedAt",
	"hero_image":       "heroImage",
	"is_featured":      "isFeatured",
	"view_count":       "viewCount",
	"author_name":      "authorName",
	"category_name":    "categoryName",
	"reading_time":     "readingTime",
	"meta_title":       "metaTitle",
	"meta_description": "metaDescription",
}

var reverseFields = fields.Reverse()

// Handler proxies article requests to the content API.
type Handler struct {
	proxy   *backend.Client
	tracker *views.Tracker
	log     *logger.Logger
}

// NewHandler creates a new articles handler.
func NewHandler(proxy *backend.Client, tracker *views.Tracker, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, tracker: tracker, log: log}
}

// List retrieves published articles.
// GET /api/articles
func (h *Handler) List(c *gin.Context) {
	h.list(c, false)
}

// AdminList retrieves articles in any status for the editorial panel.
// GET /api/admin/articles
func (h *Handler) AdminList(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, editorial bool) {
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	if status := query.Get("status"); status != "" && !validStatus(status) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid article status")
		return
	}
	if articleType := query.Get("type"); articleType != "" && !validType(articleType) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid article type")
		return
	}

	// Public callers only ever see published articles, whatever they ask for.
	if !editorial {
		query.Set("status", "PUBLISHED")
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/articles/",
		Query:          query,
		Token:          identity.AccessToken,
		FailureMessage: msgFetchFailed,
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

// Get retrieves one article by numeric ID or slug.
// GET /api/articles/:idOrSlug
func (h *Handler) Get(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), articleIDPath, articleSlugPath)

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           path,
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

// TrackView records a view event, deduplicated per viewer within the TTL
// window. Dedup is best-effort: with no tracker every view forwards.
// POST /api/articles/:idOrSlug/view
func (h *Handler) TrackView(c *gin.Context) {
	id := c.Param("idOrSlug")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid article ID")
		return
	}

	identity := httpkit.GetIdentity(c)
	viewer := views.ViewerKey(identity.UserID, c.ClientIP())
	if !h.tracker.FirstSight(c.Request.Context(), "article", id, viewer) {
		httpkit.Message(c, "View already recorded")
		return
	}

	_, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPost,
		Path:           "/articles/" + id + "/view/",
		FailureMessage: msgViewFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.Message(c, "View recorded")
}

// Create creates an article. Accepts JSON or multipart (hero image upload).
// POST /api/admin/articles
func (h *Handler) Create(c *gin.Context) {
	h.save(c, http.MethodPost, "/articles/", true)
}

// Update updates an article by ID or slug.
// PUT /api/admin/articles/:idOrSlug
func (h *Handler) Update(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), articleIDPath, articleSlugPath)
	h.save(c, http.MethodPut, path, false)
}

func (h *Handler) save(c *gin.Context, method, path string, creating bool) {
	identity := httpkit.GetIdentity(c)
	req := backend.Request{
		Method:         method,
		Path:           path,
		Token:          identity.AccessToken,
		FailureMessage: msgSaveFailed,
	}

	var title, articleType, status string
	if isMultipart(c) {
		m, err := c.MultipartForm()
		if err != nil {
			httpkit.Fail(c, http.StatusBadRequest, "Invalid form data")
			return
		}
		form, err := backend.FormFromMultipart(m)
		if err != nil {
			httpkit.Fail(c, http.StatusBadRequest, "Invalid form data")
			return
		}
		req.Form = form
		title, articleType, status = form.Fields["title"], form.Fields["type"], form.Fields["status"]
	} else {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			httpkit.Fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		title, _ = body["title"].(string)
		articleType, _ = body["type"].(string)
		status, _ = body["status"].(string)
		req.JSON = reverseFields.Apply(body)
	}

	if creating && (title == "" || articleType == "") {
		httpkit.Fail(c, http.StatusBadRequest, "Title and type are required")
		return
	}
	if articleType != "" && !validType(articleType) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid article type")
		return
	}
	if status != "" && !validStatus(status) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid article status")
		return
	}

	resp, err := h.proxy.Do(c.Request.Context(), req)
	if httpkit.HandleError(c, h.log, err) {
		return
	}

	envelope, err := backend.Normalize(resp.Body, 0, 0, fields)
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	c.JSON(resp.Status, envelope)
}

// Delete removes an article by ID or slug.
// DELETE /api/admin/articles/:idOrSlug
func (h *Handler) Delete(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), articleIDPath, articleSlugPath)

	identity := httpkit.GetIdentity(c)
	_, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodDelete,
		Path:           path,
		Token:          identity.AccessToken,
		FailureMessage: msgDeleteFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.Message(c, "Article deleted")
}

func validType(value string) bool {
	switch value {
	case "REVIEW", "GUIDE", "NEWS", "COMPARISON", "BEST_LIST":
		return true
	}
	return false
}

func validStatus(value string) bool {
	switch value {
	case "DRAFT", "PUBLISHED", "ARCHIVED":
		return true
	}
	return false
}

func isMultipart(c *gin.Context) bool {
	return c.ContentType() == "multipart/form-data"
}
