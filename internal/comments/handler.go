package comments

import (
	"net/http"
	"strconv"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgFetchFailed  = "Failed to fetch comments"
	msgSaveFailed   = "Failed to save comment"
	msgDeleteFailed = "Failed to delete comment"
)

// fields is the declared snake_case-to-camelCase mapping for comment payloads.
var fields = backend.FieldMap{
	"article_id": "articleId",
	"parent_id":  "parentId",
	"user_name":  "userName",
	"created_at": "createdAt",
	"updated_at": "updatedAt",
	"is_edited":  "isEdited",
}

// createRequest is the body for posting a comment.
type createRequest struct {
	ArticleID int    `json:"articleId" validate:"required"`
	Content   string `json:"content" validate:"required"`
	ParentID  *int   `json:"parentId"`
}

// statusRequest is the body for a moderation decision.
type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED SPAM"`
}

// Handler proxies comment requests to the content API.
type Handler struct {
	proxy *backend.Client
	val   *validator.Validator
	log   *logger.Logger
}

// NewHandler creates a new comments handler.
func NewHandler(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, val: val, log: log}
}

// List retrieves approved comments for an article.
// GET /api/comments?article=<id>
func (h *Handler) List(c *gin.Context) {
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	// Public readers only see approved comments.
	query.Set("status", "APPROVED")

	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/comments/",
		Query:          query,
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

// AdminList retrieves comments in any status for moderation.
// GET /api/admin/comments
func (h *Handler) AdminList(c *gin.Context) {
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	if status := query.Get("status"); status != "" {
		if err := h.val.Var(status, "oneof=PENDING APPROVED REJECTED SPAM"); err != nil {
			httpkit.Fail(c, http.StatusBadRequest, "Invalid comment status")
			return
		}
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/comments/",
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

// Create posts a comment as the current user.
// POST /api/comments
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Article ID and content are required")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Article ID and content are required")
		return
	}

	body := map[string]interface{}{
		"article": req.ArticleID,
		"content": req.Content,
	}
	if req.ParentID != nil {
		body["parent_id"] = *req.ParentID
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPost,
		Path:           "/comments/",
		Token:          identity.AccessToken,
		JSON:           body,
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

// UpdateStatus applies a moderation decision to a comment.
// PUT /api/admin/comments/:id
func (h *Handler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid comment status")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid comment status")
		return
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPatch,
		Path:           "/comments/" + id + "/",
		Token:          identity.AccessToken,
		JSON:           map[string]interface{}{"status": req.Status},
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

// Delete removes a comment.
// DELETE /api/admin/comments/:id
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	identity := httpkit.GetIdentity(c)
	_, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodDelete,
		Path:           "/comments/" + id + "/",
		Token:          identity.AccessToken,
		FailureMessage: msgDeleteFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.Message(c, "Comment deleted")
}
