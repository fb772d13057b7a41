package guard

import (
	"strings"

	"hwreview_gateway/platform/apperr"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

// Policy is a route's declared access requirement. Every route carries one at
// registration, so "no check" is an explicit Public declaration rather than a
// missing line of code.
type Policy struct {
	public bool
	roles  []Role
}

// Public allows anonymous callers.
func Public() Policy {
	return Policy{public: true}
}

// Require allows only sessions whose role is in the given set.
// With no roles, any authenticated session passes.
func Require(roles ...Role) Policy {
	return Policy{roles: roles}
}

// Authenticated allows any session regardless of role.
func Authenticated() Policy {
	return Require()
}

// IsPublic reports whether the policy admits anonymous callers.
func (p Policy) IsPublic() bool {
	return p.public
}

// forbiddenMessage renders "<Role-set> access required" for a role set,
// e.g. "Admin or Super Admin access required".
func (p Policy) forbiddenMessage() string {
	names := make([]string, len(p.roles))
	for i, role := range p.roles {
		names[i] = role.DisplayName()
	}

	var set string
	switch len(names) {
	case 1:
		set = names[0]
	default:
		set = strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
	}
	return set + " access required"
}

// Authorize is the pure access decision: given a resolved identity and a
// route policy, return nil to admit or a typed error to reject. It has no
// side effects and never talks to the backend.
func Authorize(id httpkit.Identity, p Policy) *apperr.Error {
	if p.public {
		return nil
	}

	if !id.IsAuthenticated() {
		return apperr.Unauthorized("Unauthorized")
	}

	if len(p.roles) == 0 {
		return nil
	}

	for _, role := range p.roles {
		if Role(id.Role) == role {
			return nil
		}
	}

	return apperr.Forbidden(p.forbiddenMessage())
}

// Middleware adapts a Policy into gin middleware that writes the failure
// envelope on rejection. Rejections are logged as auth events.
func Middleware(p Policy, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := httpkit.GetIdentity(c)
		if err := Authorize(id, p); err != nil {
			if log != nil {
				log.AuthEvent("authorize", id.UserID, false, err.Message)
			}
			httpkit.AbortFail(c, err.HTTPStatus(), err.Message)
			return
		}
		c.Next()
	}
}
