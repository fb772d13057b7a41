package guard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"

	"github.com/gin-gonic/gin"
)

func TestAuthorizePublicAdmitsAnonymous(t *testing.T) {
	if err := Authorize(httpkit.Identity{}, Public()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestAuthorizeRejectsAnonymousOnProtectedRoute(t *testing.T) {
	err := Authorize(httpkit.Identity{}, Require(RoleAdmin, RoleSuperAdmin))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.HTTPStatus() != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", err.HTTPStatus())
	}
	if err.Message != "Unauthorized" {
		t.Fatalf("expected Unauthorized message, got %q", err.Message)
	}
}

func TestAuthorizeAuthenticatedPassesAnyRole(t *testing.T) {
	id := httpkit.Identity{UserID: "7", Role: "USER"}
	if err := Authorize(id, Authenticated()); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestAuthorizeRoleOutsideSet(t *testing.T) {
	id := httpkit.Identity{UserID: "7", Role: "USER"}
	err := Authorize(id, Require(RoleAdmin, RoleSuperAdmin))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.HTTPStatus() != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", err.HTTPStatus())
	}
	if err.Message != "Admin or Super Admin access required" {
		t.Fatalf("unexpected message: %q", err.Message)
	}
}

func TestAuthorizeRoleInSet(t *testing.T) {
	cases := []struct {
		name   string
		role   string
		policy Policy
	}{
		{"admin in admin set", "ADMIN", Require(RoleAdmin, RoleSuperAdmin)},
		{"super admin in admin set", "SUPER_ADMIN", Require(RoleAdmin, RoleSuperAdmin)},
		{"editor in editorial set", "EDITOR", Require(RoleEditor, RoleAdmin, RoleSuperAdmin)},
		{"super admin alone", "SUPER_ADMIN", Require(RoleSuperAdmin)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := httpkit.Identity{UserID: "7", Role: tc.role}
			if err := Authorize(id, tc.policy); err != nil {
				t.Fatalf("expected nil, got %v", err)
			}
		})
	}
}

func TestForbiddenMessageFormats(t *testing.T) {
	cases := []struct {
		name    string
		policy  Policy
		role    string
		message string
	}{
		{"single role", Require(RoleSuperAdmin), "ADMIN", "Super Admin access required"},
		{"two roles", Require(RoleAdmin, RoleSuperAdmin), "EDITOR", "Admin or Super Admin access required"},
		{"three roles", Require(RoleEditor, RoleAdmin, RoleSuperAdmin), "USER", "Editor, Admin or Super Admin access required"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id := httpkit.Identity{UserID: "7", Role: tc.role}
			err := Authorize(id, tc.policy)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if err.Message != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, err.Message)
			}
		})
	}
}

func TestMiddlewareAbortsOnRejection(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextIdentityKey, httpkit.Identity{UserID: "7", Role: "USER"})
	})
	handlerCalled := false
	engine.GET("/guarded",
		Middleware(Require(RoleAdmin, RoleSuperAdmin), logger.New("development")),
		func(c *gin.Context) { handlerCalled = true },
	)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if handlerCalled {
		t.Fatal("expected handler chain to abort")
	}
}

func TestMiddlewareAdmitsMatchingRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(httpkit.ContextIdentityKey, httpkit.Identity{UserID: "7", Role: "ADMIN"})
	})
	engine.GET("/guarded",
		Middleware(Require(RoleAdmin, RoleSuperAdmin), nil),
		func(c *gin.Context) { c.Status(http.StatusNoContent) },
	)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/guarded", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestParseRole(t *testing.T) {
	if role, ok := ParseRole("SUPER_ADMIN"); !ok || role != RoleSuperAdmin {
		t.Fatalf("expected RoleSuperAdmin, got %v ok=%v", role, ok)
	}
	if _, ok := ParseRole("OWNER"); ok {
		t.Fatal("expected unknown role to be rejected")
	}
}
