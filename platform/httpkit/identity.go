// Package httpkit provides HTTP utilities including session identity resolution.
package httpkit

import (
	"errors"
	"net/http"
	"strings"

	"hwreview_gateway/platform/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ContextIdentityKey is the gin context key for the resolved identity.
const ContextIdentityKey = "identity"

// Identity is the caller's resolved session: who they are, what role they
// hold, and the opaque token used to authenticate against the content API.
// The zero value is the anonymous identity.
type Identity struct {
	UserID      string
	Name        string
	Email       string
	Role        string
	AccessToken string
}

// IsAuthenticated reports whether a session was resolved for the request.
func (i Identity) IsAuthenticated() bool {
	return i.UserID != ""
}

// SessionResolver extracts the caller's identity from an inbound request.
// Two resolution paths are supported, both yielding the same Identity shape:
// a bearer token in the Authorization header, and the signed session cookie
// set at login. Both carry the same HS256-signed claims.
type SessionResolver struct {
	secret     []byte
	cookieName string
}

// NewSessionResolver creates a resolver from session config.
func NewSessionResolver(cfg config.SessionConfig) *SessionResolver {
	return &SessionResolver{
		secret:     []byte(cfg.GetSessionSecret()),
		cookieName: cfg.GetSessionCookieName(),
	}
}

// Resolve returns the identity for the request, or the anonymous identity.
// An absent or invalid session is not an error here; protected routes decide
// what to do with an anonymous caller.
func (r *SessionResolver) Resolve(req *http.Request) Identity {
	raw, ok := bearerToken(req.Header.Get("Authorization"))
	if !ok {
		cookie, err := req.Cookie(r.cookieName)
		if err != nil || cookie.Value == "" {
			return Identity{}
		}
		raw = cookie.Value
	}

	claims, err := r.parseClaims(raw)
	if err != nil {
		return Identity{}
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	apiToken, _ := claims["apiToken"].(string)

	return Identity{
		UserID:      sub,
		Name:        name,
		Email:       email,
		Role:        role,
		AccessToken: apiToken,
	}
}

func (r *SessionResolver) parseClaims(raw string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return r.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errors.New("invalid session token")
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

func bearerToken(authHeader string) (string, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if raw == "" {
		return "", false
	}

	return raw, true
}

// SessionMiddleware resolves the session fresh on every request and stores
// the identity in the gin context. It never rejects; guards do that.
func SessionMiddleware(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextIdentityKey, resolver.Resolve(c.Request))
		c.Next()
	}
}

// GetIdentity extracts the resolved Identity from a gin context.
// Returns the anonymous identity when the session middleware did not run.
func GetIdentity(c *gin.Context) Identity {
	value, ok := c.Get(ContextIdentityKey)
	if !ok {
		return Identity{}
	}

	id, ok := value.(Identity)
	if !ok {
		return Identity{}
	}
	return id
}
