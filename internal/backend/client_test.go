package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"hwreview_gateway/platform/apperr"
	"hwreview_gateway/platform/logger"
)

type testBackendConfig struct {
	url     string
	timeout time.Duration
}

func (c testBackendConfig) GetBackendBaseURL() string        { return c.url }
func (c testBackendConfig) GetBackendTimeout() time.Duration { return c.timeout }

func newTestClient(url string, timeout time.Duration) *Client {
	return NewClient(testBackendConfig{url: url, timeout: timeout}, logger.New("development"))
}

func TestDoSetsTokenHeaderAndPassesQuery(t *testing.T) {
	var gotAuth, gotQuery, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	query := url.Values{}
	query.Set("status", "PUBLISHED")

	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodGet,
		Path:   "/articles/",
		Query:  query,
		Token:  "abc123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Status)
	}
	if gotAuth != "Token abc123" {
		t.Fatalf("expected backend token scheme, got %q", gotAuth)
	}
	if gotAccept != "application/json" {
		t.Fatalf("expected JSON accept header, got %q", gotAccept)
	}
	if gotQuery != "status=PUBLISHED" {
		t.Fatalf("expected query passthrough, got %q", gotQuery)
	}
}

func TestDoOmitsAuthorizationWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	if _, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/articles/"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header for public call, got %q", gotAuth)
	}
}

func TestDoEncodesJSONBody(t *testing.T) {
	var gotContentType string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 9}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	resp, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/comments/",
		JSON:   map[string]interface{}{"content": "great card"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Status)
	}
	if gotContentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", gotContentType)
	}
	if gotBody["content"] != "great card" {
		t.Fatalf("unexpected body: %#v", gotBody)
	}
}

func TestDoEncodesMultipartForm(t *testing.T) {
	var gotField, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotField = r.FormValue("title")
		if files := r.MultipartForm.File["hero_image"]; len(files) == 1 {
			gotFile = files[0].Filename
		}
		w.Write([]byte(`{"id": 1}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/articles/",
		Form: &Form{
			Fields: map[string]string{"title": "RTX review"},
			Files: []FormFile{
				{Field: "hero_image", Name: "hero.png", Content: []byte("png-bytes")},
			},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotField != "RTX review" {
		t.Fatalf("expected form field forwarded, got %q", gotField)
	}
	if gotFile != "hero.png" {
		t.Fatalf("expected file forwarded, got %q", gotFile)
	}
}

func TestDoMapsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "Not found."}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/articles/99/"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found kind, got %v", err)
	}
	if err.(*apperr.Error).Message != "Not found." {
		t.Fatalf("expected backend detail surfaced, got %q", err.(*apperr.Error).Message)
	}
}

func TestDoSurfacesClientErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Slug already in use"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Do(context.Background(), Request{
		Method:         http.MethodPost,
		Path:           "/products/",
		FailureMessage: "Failed to save product",
	})
	gwErr, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected typed error, got %v", err)
	}
	if gwErr.HTTPStatus() != http.StatusBadRequest {
		t.Fatalf("expected 400 passthrough, got %d", gwErr.HTTPStatus())
	}
	if gwErr.Message != "Slug already in use" {
		t.Fatalf("expected backend message, got %q", gwErr.Message)
	}
}

func TestDoSanitizesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "IntegrityError at /products/: duplicate key"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Do(context.Background(), Request{
		Method:         http.MethodGet,
		Path:           "/products/",
		FailureMessage: "Failed to fetch products",
	})
	gwErr, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected typed error, got %v", err)
	}
	if gwErr.HTTPStatus() != http.StatusInternalServerError {
		t.Fatalf("expected 500 passthrough, got %d", gwErr.HTTPStatus())
	}
	if gwErr.Message != "Failed to fetch products" {
		t.Fatalf("expected sanitized message, got %q", gwErr.Message)
	}
}

func TestDoMapsUnreachableBackend(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, 5*time.Second)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/articles/"})
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable kind, got %v", err)
	}
	if err.(*apperr.Error).HTTPStatus() != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", err.(*apperr.Error).HTTPStatus())
	}
}

func TestDoMapsTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		server.Close()
	}()

	client := newTestClient(server.URL, 50*time.Millisecond)
	_, err := client.Do(context.Background(), Request{Method: http.MethodGet, Path: "/articles/"})
	if !apperr.Is(err, apperr.KindTimeout) {
		t.Fatalf("expected timeout kind, got %v", err)
	}
	if err.(*apperr.Error).HTTPStatus() != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", err.(*apperr.Error).HTTPStatus())
	}
}
