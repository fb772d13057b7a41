// Package backend implements the forwarding layer between gateway routes and
// the Django content API: request building, error mapping, response
// normalization, and resource path resolution.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"hwreview_gateway/platform/apperr"
	"hwreview_gateway/platform/config"
	"hwreview_gateway/platform/logger"
)

const defaultFailureMessage = "Request failed"

// maximum backend error body retained for server-side logs
const maxLoggedBody = 2048

// FormFile is a file part of a multipart forward (image uploads).
type FormFile struct {
	Field       string
	Name        string
	ContentType string
	Content     []byte
}

// Form is a multipart form body forwarded verbatim to the backend.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// Request describes one outbound call to the content API. Built fresh per
// inbound request, never persisted.
type Request struct {
	Method string
	Path   string     // resource path, e.g. "/articles/"
	Query  url.Values // caller-supplied query params, passed through
	Token  string     // opaque backend token; empty for public calls
	JSON   interface{}
	Form   *Form // multipart body; takes precedence over JSON

	// FailureMessage is the sanitized error returned to clients when the
	// backend fails in a way whose detail must not be echoed.
	FailureMessage string
}

// Response is a successful (2xx) backend response.
type Response struct {
	Status int
	Body   []byte
}

// Client issues calls to the content API. It holds no per-request state;
// concurrent calls are fully independent. No retries are performed.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *logger.Logger
}

// NewClient creates a forwarder for the configured backend.
func NewClient(cfg config.BackendConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL: cfg.GetBackendBaseURL(),
		timeout: cfg.GetBackendTimeout(),
		http:    &http.Client{},
		log:     log,
	}
}

// Do issues the call and maps every failure mode to a typed error:
// unreachable backend to 502, deadline to 504, backend 404 passthrough,
// other backend statuses passed through with a parsed-or-sanitized message.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	failMsg := req.FailureMessage
	if failMsg == "" {
		failMsg = defaultFailureMessage
	}

	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, failMsg, err).WithOp("backend.encode")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, failMsg, err).WithOp("backend.request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Token "+req.Token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.log.BackendError(req.Method, req.Path, http.StatusGatewayTimeout, err)
			return nil, apperr.Timeout(failMsg, err)
		}
		c.log.BackendError(req.Method, req.Path, http.StatusBadGateway, err)
		return nil, apperr.Unavailable(failMsg, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, failMsg, err).WithOp("backend.read")
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{Status: resp.StatusCode, Body: respBody}, nil
	}

	return nil, c.mapFailure(req, resp.StatusCode, respBody, failMsg)
}

// Ping reports backend reachability for health checks. Any HTTP response,
// including an error status, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

func (c *Client) mapFailure(req Request, status int, body []byte, failMsg string) *apperr.Error {
	detail := errors.New("backend responded " + http.StatusText(status) + ": " + string(truncate(body, maxLoggedBody)))
	c.log.BackendError(req.Method, req.Path, status, detail)

	if status == http.StatusNotFound {
		gwErr := apperr.NotFound(messageOr(body, failMsg))
		gwErr.Err = detail
		return gwErr
	}

	// Client errors surface the backend's own message (e.g. field errors);
	// server errors are sanitized to the route's generic message.
	message := failMsg
	if status < 500 {
		message = messageOr(body, failMsg)
	}

	gwErr := apperr.Backend(status, message)
	gwErr.Err = detail
	return gwErr
}

// messageOr extracts a human-readable message from a backend JSON error body,
// falling back to the sanitized default.
func messageOr(body []byte, fallback string) string {
	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fallback
	}

	for _, key := range []string{"error", "detail", "message"} {
		if text, ok := parsed[key].(string); ok && text != "" {
			return text
		}
	}
	return fallback
}

func encodeBody(req Request) (io.Reader, string, error) {
	if req.Form != nil {
		return encodeForm(req.Form)
	}

	if req.JSON != nil {
		raw, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}

	return nil, "", nil
}

func encodeForm(form *Form) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for field, value := range form.Fields {
		if err := writer.WriteField(field, value); err != nil {
			return nil, "", err
		}
	}

	for _, file := range form.Files {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}

func truncate(body []byte, limit int) []byte {
	if len(body) <= limit {
		return body
	}
	return body[:limit]
}
