package analytics

import (
	"encoding/json"
	"net/http"
	"sync"

	"hwreview_gateway/internal/backend"
	"hwreview_gateway/platform/apperr"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const msgFetchFailed = "Failed to fetch analytics"

// fields is the declared snake_case-to-camelCase mapping for analytics payloads.
var fields = backend.FieldMap{
	"total_articles":   "totalArticles",
	"total_products":   "totalProducts",
	"total_users":      "totalUsers",
	"total_comments":   "totalComments",
	"total_views":      "totalViews",
	"pending_comments": "pendingComments",
	"view_count":       "viewCount",
	"published_at":     "publishedAt",
	"created_at":       "createdAt",
	"user_name":        "userName",
	"article_title":    "articleTitle",
	"average_rating":   "averageRating",
}

// sections are the backend endpoints merged into the dashboard response.
// The key becomes the top-level field in the merged data object.
var sections = []struct {
	Key  string
	Path string
}{
	{Key: "overview", Path: "/analytics/overview/"},
	{Key: "topArticles", Path: "/analytics/top-articles/"},
	{Key: "topProducts", Path: "/analytics/top-products/"},
	{Key: "recentComments", Path: "/analytics/recent-comments/"},
}

// Handler aggregates analytics endpoints from the content API.
type Handler struct {
	proxy *backend.Client
	log   *logger.Logger
}

// NewHandler creates a new analytics handler.
func NewHandler(proxy *backend.Client, log *logger.Logger) *Handler {
	return &Handler{proxy: proxy, log: log}
}

// Dashboard fans out to every analytics section concurrently and merges the
// results into a single object. One failed section fails the whole request;
// a partially filled dashboard would be worse than an honest error.
// GET /api/admin/analytics/dashboard
func (h *Handler) Dashboard(c *gin.Context) {
	identity := httpkit.GetIdentity(c)

	merged := make(map[string]interface{}, len(sections))
	var mu sync.Mutex

	group, ctx := errgroup.WithContext(c.Request.Context())
	for _, section := range sections {
		section := section
		group.Go(func() error {
			resp, err := h.proxy.Do(ctx, backend.Request{
				Method:         http.MethodGet,
				Path:           section.Path,
				Token:          identity.AccessToken,
				FailureMessage: msgFetchFailed,
			})
			if err != nil {
				return err
			}

			var decoded interface{}
			if len(resp.Body) > 0 {
				if err := json.Unmarshal(resp.Body, &decoded); err != nil {
					return apperr.Wrap(apperr.KindInternal, "Invalid backend response", err).WithOp("analytics.dashboard")
				}
			}

			mu.Lock()
			merged[section.Key] = fields.Apply(decoded)
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		httpkit.HandleError(c, h.log, err)
		return
	}

	httpkit.OK(c, merged)
}
