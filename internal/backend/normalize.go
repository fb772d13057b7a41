package backend

import (
	"encoding/json"

	"hwreview_gateway/platform/apperr"
	"hwreview_gateway/platform/httpkit"
)

// FieldMap declares snake_case-to-camelCase renames for one resource.
// Only declared keys are renamed; everything else passes through unchanged.
// Tables live in each module's transport package so the full mapping surface
// is reviewable in one place per resource.
type FieldMap map[string]string

// Normalize converts a raw backend JSON body into the response envelope:
// a raw array becomes data with no meta; a paginated {results, count} body
// becomes data plus computed meta; anything else is a single object passed
// through as data. Page and limit are the values the caller requested, not
// whatever the backend may echo.
func Normalize(body []byte, page, limit int, fields FieldMap) (httpkit.Envelope, error) {
	if len(body) == 0 {
		return httpkit.Envelope{Success: true}, nil
	}

	var decoded interface{}
	if err := json.Unmarshal(body, &decoded); err != nil {
		return httpkit.Envelope{}, apperr.Wrap(apperr.KindInternal, "Invalid backend response", err).WithOp("backend.normalize")
	}

	switch value := decoded.(type) {
	case []interface{}:
		return httpkit.Envelope{Success: true, Data: fields.Apply(value)}, nil
	case map[string]interface{}:
		if results, count, ok := paginatedShape(value); ok {
			return httpkit.Envelope{
				Success: true,
				Data:    fields.Apply(results),
				Meta:    PageMeta(page, limit, count),
			}, nil
		}
		return httpkit.Envelope{Success: true, Data: fields.Apply(value)}, nil
	default:
		return httpkit.Envelope{Success: true, Data: decoded}, nil
	}
}

// PageMeta computes pagination metadata from the requested page/limit and the
// backend's total count.
func PageMeta(page, limit, total int) *httpkit.Meta {
	if limit < 1 {
		limit = 1
	}
	if page < 1 {
		page = 1
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &httpkit.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// paginatedShape detects the backend's list shape: a "results" array plus an
// integer "count".
func paginatedShape(body map[string]interface{}) ([]interface{}, int, bool) {
	results, ok := body["results"].([]interface{})
	if !ok {
		return nil, 0, false
	}

	count, ok := body["count"].(float64)
	if !ok {
		return nil, 0, false
	}

	return results, int(count), true
}

// Reverse returns the camelCase-to-snake_case inverse of the table, used when
// forwarding client-supplied JSON bodies to the backend.
func (f FieldMap) Reverse() FieldMap {
	reversed := make(FieldMap, len(f))
	for snake, camel := range f {
		reversed[camel] = snake
	}
	return reversed
}

// Apply renames declared keys recursively through objects and arrays.
// A nil map is a no-op.
func (f FieldMap) Apply(value interface{}) interface{} {
	if len(f) == 0 {
		return value
	}

	switch typed := value.(type) {
	case map[string]interface{}:
		renamed := make(map[string]interface{}, len(typed))
		for key, inner := range typed {
			target := key
			if mapped, ok := f[key]; ok {
				target = mapped
			}
			renamed[target] = f.Apply(inner)
		}
		return renamed
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, inner := range typed {
			out[i] = f.Apply(inner)
		}
		return out
	default:
		return value
	}
}
