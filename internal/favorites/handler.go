package favorites

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
	msgFetchFailed  = "Failed to fetch favorites"
	msgSaveFailed   = "Failed to save favorite"
	msgRemoveFailed = "Failed to remove favorite"
)

// fields is the declared snake_case-to-camelCase mapping for favorite payloads.
var fields = backend.FieldMap{
	"product_id":   "productId",
	"product_name": "productName",
	"product_slug": "productSlug",
	"image_url":    "imageUrl",
	"created_at":   "createdAt",
}

// addRequest is the body for adding a favorite.
type addRequest struct {
	ProductID int `json:"productId" validate:"required"`
}

// Handler proxies favorite requests to the content API, always scoped to the
// session's own user.
type Handler struct {
	proxy *backend.Client
	val   *validator.Validator
	log   *logger.Logger
}

// NewHandler creates a new favorites handler.
func NewHandler(proxy *backend.Client, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, val: val, log: log}
}

// List retrieves the caller's favorites.
// GET /api/favorites
func (h *Handler) List(c *gin.Context) {
	identity := httpkit.GetIdentity(c)
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/users/" + identity.UserID + "/favorites/",
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

// Add marks a product as a favorite of the caller.
// POST /api/favorites
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Fail(c, http.StatusBadRequest, "Product ID is required")
		return
	}

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodPost,
		Path:           "/users/" + identity.UserID + "/favorites/",
		Token:          identity.AccessToken,
		JSON:           map[string]interface{}{"product": req.ProductID},
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

// Remove deletes a favorite by product ID.
// DELETE /api/favorites/:productId
func (h *Handler) Remove(c *gin.Context) {
	productID := c.Param("productId")
	if !backend.IsNumericID(productID) {
		httpkit.Fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	identity := httpkit.GetIdentity(c)
	_, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodDelete,
		Path:           "/users/" + identity.UserID + "/favorites/" + productID + "/",
		Token:          identity.AccessToken,
		FailureMessage: msgRemoveFailed,
	})
	if httpkit.HandleError(c, h.log, err) {
		return
	}
	httpkit.Message(c, "Favorite removed")
}
