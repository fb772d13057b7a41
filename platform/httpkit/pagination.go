package httpkit

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination defaults shared by every list route.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParsePagination reads page/limit query params with clamped defaults.
// These are the values pagination metadata is computed from, regardless of
// what the backend echoes.
func ParsePagination(c *gin.Context) (page, limit int) {
	page = parseClamped(c.Query("page"), DefaultPage, 1, 0)
	limit = parseClamped(c.Query("limit"), DefaultLimit, 1, MaxLimit)
	return page, limit
}

func parseClamped(raw string, fallback, min, max int) int {
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min {
		return fallback
	}
	if max > 0 && value > max {
		return max
	}
	return value
}

// PassthroughQuery copies the caller's query parameters for forwarding,
// dropping any explicitly filtered keys.
func PassthroughQuery(c *gin.Context, drop ...string) url.Values {
	query := url.Values{}
	for key, values := range c.Request.URL.Query() {
		if contains(drop, key) {
			continue
		}
		for _, value := range values {
			query.Add(key, value)
		}
	}
	return query
}

func contains(keys []string, key string) bool {
	for _, item := range keys {
		if item == key {
			return true
		}
	}
	return false
}
