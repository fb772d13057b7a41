package backend

import (
	"fmt"
	"net/url"
	"regexp"
)

var numericID = regexp.MustCompile(`^\d+$`)

// ResolvePath maps a resource identifier to the right backend path: an
// all-digit identifier resolves by numeric ID, anything else by slug. This is
// the single place the dual-resolution rule lives; resources pass their own
// path patterns (e.g. "/articles/%s/" and "/articles/slug/%s/").
func ResolvePath(identifier, idPattern, slugPattern string) string {
	if numericID.MatchString(identifier) {
		return fmt.Sprintf(idPattern, identifier)
	}
	return fmt.Sprintf(slugPattern, url.PathEscape(identifier))
}

// IsNumericID reports whether an identifier resolves by numeric ID.
func IsNumericID(identifier string) bool {
	return numericID.MatchString(identifier)
}
