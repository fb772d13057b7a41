package products

import (
	"net/http"
	"strconv"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

const (
	msgFetchFailed  = "Failed to fetch products"
	msgSaveFailed   = "Failed to save product"
	msgDeleteFailed = "Failed to delete product"

	productIDPath   = "/products/%s/"
	productSlugPath = "/products/slug/%s/"
)

// fields is the declared snake_case-to-camelCase mapping for product payloads.
var fields = backend.FieldMap{
	"created_at":     "createdAt",
	"updated_at":     "updatedAt",
	"image_url":      "imageUrl",
	"affiliate_url":  "affiliateUrl",
	"price_range":    "priceRange",
	"average_rating": "averageRating",
	"review_count":   "reviewCount",
	"category_name":  "categoryName",
	"is_active":      "isActive",
	"best_price":     "bestPrice",
}

var reverseFields = fields.Reverse()

// Handler proxies product requests to the content API.
type Handler struct {
	proxy *backend.Client
	log   *logger.Logger
}

// NewHandler creates a new products handler.
func NewHandler(proxy *backend.Client, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, log: log}
}

// List retrieves products with search/category/ordering filters.
// GET /api/products, GET /api/admin/products
func (h *Handler) List(c *gin.Context) {
	page, limit := httpkit.ParsePagination(c)
	query := httpkit.PassthroughQuery(c)
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           "/products/",
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

// Get retrieves one product by numeric ID or slug. Both paths return the same
// normalized shape.
// GET /api/products/by-slug/:idOrSlug
func (h *Handler) Get(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), productIDPath, productSlugPath)

	identity := httpkit.GetIdentity(c)
	resp, err := h.proxy.Do(c.Request.Context(), backend.Request{
		Method:         http.MethodGet,
		Path:           path,
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

// Create creates a product. Accepts JSON or multipart (product image).
// POST /api/admin/products
func (h *Handler) Create(c *gin.Context) {
	h.save(c, http.MethodPost, "/products/", true)
}

// Update updates a product by ID or slug.
// PUT /api/admin/products/:idOrSlug
func (h *Handler) Update(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), productIDPath, productSlugPath)
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

	var name, slug string
	if c.ContentType() == "multipart/form-data" {
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
		name, slug = form.Fields["name"], form.Fields["slug"]
	} else {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			httpkit.Fail(c, http.StatusBadRequest, "Invalid request body")
			return
		}
		name, _ = body["name"].(string)
		slug, _ = body["slug"].(string)
		req.JSON = reverseFields.Apply(body)
	}

	if creating && (name == "" || slug == "") {
		httpkit.Fail(c, http.StatusBadRequest, "Name and slug are required")
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

// Delete removes a product by ID or slug.
// DELETE /api/admin/products/:idOrSlug
func (h *Handler) Delete(c *gin.Context) {
	path := backend.ResolvePath(c.Param("idOrSlug"), productIDPath, productSlugPath)

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
	httpkit.Message(c, "Product deleted")
}
