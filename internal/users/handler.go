package users

import (
	"net/http"
	"strconv"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/internal/guard"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgFetchFailed  = "Failed to fetch users"
	msgSaveFailed   = "Failed to update user"
	msgDeleteFailed = "Failed to delete user"
)

// fields is the declared snake_case-to-camelCase mapping for user payloads.
var fields = backend.FieldMap{
	"date_joined":    "dateJoined",
	"last_login":     "lastLogin",
	"is_active":      "isActive",
	"avatar_url":     "avatarUrl",
	"favorite_count": "favoriteCount",
	"first_name":     "firstName",
	"last_name":      "lastName",
}

// roleRequest is the body for a role change.
type roleRequest struct {
	Role string `json:"role" validate:"required"`
}

// Handler proxies user-management requests to the content API.
type Handler struct {
	proxy *backend.Client
	val   *validator.Validator
	log   *logger.Logger
}

// NewHandler creates a new users handler.
func NewHandler(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, val: val, log: log}
}

// List retrieves users with search/role filters.
// GET /api/admin/users
func (h *Handler) List(c *gin.Context) {
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	if role := query.Get("role"); role != "" {
		if _, ok := guard.ParseRole(role); !ok {
			httpkit.Fail(c, http.StatusBadRequest, "Invalid role")
			return
		}
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/users/",
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

// Get retrieves one user.
// GET /api/admin/users/:id
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/users/" + id + "/",
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

// UpdateRole changes a user's role. The role must be one the gateway knows.
// PUT /api/admin/users/:id/role
func (h *Handler) UpdateRole(c *gin.Context) {
	id := c.Param("id")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Role is required")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Role is required")
		return
	}
	role, ok := guard.ParseRole(req.Role)
	if !ok {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid role")
		return
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPatch,
		Path:           "/users/" + id + "/role/",
		Token:          identity.AccessToken,
		JSON:           map[string]interface{}{"role": string(role)},
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

// UploadAvatar forwards an avatar image as multipart form data.
// POST /api/admin/users/:id/avatar
func (h *Handler) UploadAvatar(c *gin.Context) {
	id := c.Param("id")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	m, err := c.MultipartForm()
	if err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Avatar file is required")
		return
	}
	form, err := backend.FormFromMultipart(m)
	if err != nil || len(form.Files) == 0 {
		httpkit.Fail(c, http.StatusBadRequest, "Avatar file is required")
		return
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPost,
		Path:           "/users/" + id + "/avatar/",
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

// Delete removes a user account.
// DELETE /api/admin/users/:id
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !backend.IsNumericID(id) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	identity := httpkit.GetIdentity(c)
	_, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodDelete,
		Path:           "/users/" + id + "/",
		Token:          identity.AccessToken,
		FailureMessage: msgDeleteFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.Message(c, "User deleted")
}
