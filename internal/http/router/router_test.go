package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hwreview_gateway/internal/articles"
	"hwreview_gateway/internal/backend"
	apphttp "hwreview_gateway/internal/http"
	"hwreview_gateway/internal/products"
	"hwreview_gateway/internal/taxonomy"
	"hwreview_gateway/platform/httpkit"
	"hwreview_gateway/platform/logger"
	"hwreview_gateway/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-session-secret"

type testRouterConfig struct{}

func (testRouterConfig) GetHTTPAddr() string          { return ":0" }
func (testRouterConfig) GetCORSAllowAll() bool        { return true }
func (testRouterConfig) GetCORSOrigins() []string     { return nil }
func (testRouterConfig) GetCORSAllowCreds() bool      { return false }
func (testRouterConfig) GetSessionSecret() string     { return testSecret }
func (testRouterConfig) GetSessionCookieName() string { return "session-token" }
func (testRouterConfig) GetSiteURL() string           { return "http://localhost:3000" }
func (testRouterConfig) GetPublicAPIURL() string      { return "http://localhost:8000/api" }

type testBackendConfig struct {
	url string
}

func (c testBackendConfig) GetBackendBaseURL() string        { return c.url }
func (c testBackendConfig) GetBackendTimeout() time.Duration { return 5 * time.Second }

// newTestEngine wires a real router against a fake content API.
func newTestEngine(t *testing.T, fake http.HandlerFunc) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	log := logger.New("development")
	proxy := backend.NewClient(testBackendConfig{url: server.URL}, log)
	val := validator.New()

	app := &apphttp.App{
		Config:   testRouterConfig{},
		Logger:   log,
		Health:   proxy,
		Sessions: httpkit.NewSessionResolver(testRouterConfig{}),
		Modules: []apphttp.Module{
			articles.NewModule(proxy, nil, log),
			products.NewModule(proxy, log),
			taxonomy.NewModule(proxy, val, log),
		},
	}
	return New(app)
}

func signSession(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      "7",
		"name":     "Test User",
		"email":    "test@example.com",
		"role":     role,
		"apiToken": "backend-token",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign session: %v", err)
	}
	return token
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) httpkit.Envelope {
	t.Helper()
	var envelope httpkit.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return envelope
}

func TestHealthReportsBackendReachability(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	data := envelope.Data.(map[string]interface{})
	if data["status"] != "ok" || data["backend"] != true {
		t.Fatalf("unexpected health payload: %#v", data)
	}
	if data["apiUrl"] != "http://localhost:8000/api" {
		t.Fatalf("expected public API URL echoed, got %#v", data["apiUrl"])
	}
}

func TestPublicArticleListForcesPublishedStatus(t *testing.T) {
	var gotStatus, gotAuth string
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		gotStatus = r.URL.Query().Get("status")
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count": 41, "results": [{"id": 1, "view_count": 9}]}`))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles?status=DRAFT&page=2&limit=20", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotStatus != "PUBLISHED" {
		t.Fatalf("expected forced PUBLISHED filter, got %q", gotStatus)
	}
	if gotAuth != "" {
		t.Fatalf("expected anonymous backend call, got auth %q", gotAuth)
	}

	envelope := decodeEnvelope(t, rec)
	if !envelope.Success {
		t.Fatal("expected success envelope")
	}
	if envelope.Meta == nil || envelope.Meta.Page != 2 || envelope.Meta.Total != 41 || envelope.Meta.TotalPages != 3 {
		t.Fatalf("unexpected meta: %+v", envelope.Meta)
	}
	first := envelope.Data.([]interface{})[0].(map[string]interface{})
	if first["viewCount"] != float64(9) {
		t.Fatalf("expected camelCase keys, got %#v", first)
	}
}

func TestAdminRouteRejectsAnonymous(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for rejected requests")
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/products", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Success || envelope.Error != "Unauthorized" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestAdminRouteRejectsInsufficientRole(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for rejected requests")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, "USER"))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error != "Admin or Super Admin access required" {
		t.Fatalf("unexpected message: %q", envelope.Error)
	}
}

func TestAdminRouteForwardsBackendToken(t *testing.T) {
	var gotAuth string
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"count": 0, "results": []}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+signSession(t, "ADMIN"))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotAuth != "Token backend-token" {
		t.Fatalf("expected backend token scheme, got %q", gotAuth)
	}
}

func TestSessionResolvesFromCookie(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count": 0, "results": []}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/articles", nil)
	req.AddCookie(&http.Cookie{Name: "session-token", Value: signSession(t, "EDITOR")})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected cookie session to authorize editor, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTamperedSessionIsAnonymous(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for rejected requests")
	})

	token := signSession(t, "ADMIN")
	tampered := token[:len(token)-2] + "xx"
	req := httptest.NewRequest(http.MethodGet, "/api/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+tampered)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rec.Code)
	}
}

func TestTagCreateValidationFailure(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend must not be called for invalid input")
	})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/tags", strings.NewReader(`{"name": "GPUs"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+signSession(t, "ADMIN"))
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error != "Name and slug are required" {
		t.Fatalf("unexpected message: %q", envelope.Error)
	}
}

func TestBackendServerErrorIsSanitized(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "IntegrityError: duplicate key value violates unique constraint"}`))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 passthrough, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error != "Failed to fetch products" {
		t.Fatalf("expected sanitized message, got %q", envelope.Error)
	}
}

func TestBackendNotFoundPassesThrough(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found."}`))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/nonexistent-slug", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUnknownRouteReturnsEnvelope(t *testing.T) {
	engine := newTestEngine(t, func(w http.ResponseWriter, r *http.Request) {})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Success || envelope.Error != "Not found" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}
