// ABOUTME: HTTP client for the assistant service: POST /chat, POST /uploadFile/, GET /health
// ABOUTME: Single attempt per call; optional per-request timeout; every request tagged with X-Request-ID

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mailru/easyjson"
	"github.com/mauromedda/academic-assistant/internal/log"
)

// Service paths.
const (
	ChatPath   = "/chat"
	UploadPath = "/uploadFile/"
	HealthPath = "/health"

	// UploadField is the multipart field carrying the transcript.
	UploadField = "file"

	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 8 << 20
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// ErrUnexpectedBody is returned when a response body has the wrong JSON shape.
var ErrUnexpectedBody = errors.New("unexpected response body")

// Client issues requests against the assistant service.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a client for the service at baseURL.
// Proxy support comes from the stdlib's default transport (HTTP_PROXY, HTTPS_PROXY).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL configured on this client.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the per-request timeout (zero when unbounded).
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// PostChat sends one chat turn and returns the assistant's reply text.
func (c *Client) PostChat(ctx context.Context, req ChatRequest) (string, error) {
	body, err := easyjson.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	data, err := c.do(ctx, http.MethodPost, ChatPath, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	var resp ChatResponse
	if err := easyjson.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decoding chat response: %w: %w", ErrUnexpectedBody, err)
	}
	return resp.Response, nil
}

// PostUpload sends the file at path as multipart field "file" and returns the
// extracted document. A missing or falsy body yields (nil, nil).
func (c *Client) PostUpload(ctx context.Context, path string) (*Document, error) {
	body, contentType, err := multipartBody(path)
	if err != nil {
		return nil, err
	}

	data, err := c.do(ctx, http.MethodPost, UploadPath, contentType, body)
	if err != nil {
		return nil, err
	}
	return decodeDocument(data)
}

// Health queries the service status endpoint.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var h HealthStatus
	data, err := c.do(ctx, http.MethodGet, HealthPath, "", nil)
	if err != nil {
		return h, err
	}
	if err := easyjson.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("decoding health response: %w: %w", ErrUnexpectedBody, err)
	}
	return h, nil
}

// do performs a single request and returns the response body of a 2xx reply.
func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)

	start := time.Now()
	log.Debug("transport: %s %s id=%s", method, path, reqID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("transport: %s %s id=%s failed after %s: %v", method, path, reqID, time.Since(start), err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	log.Debug("transport: %s %s id=%s status=%d in %s", method, path, reqID, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(data)),
		}
	}
	return data, nil
}

// multipartBody buffers the file into a multipart form with a single field.
func multipartBody(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening upload file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, UploadField, filepath.Base(path)))
	h.Set("Content-Type", contentTypeFor(path))
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", fmt.Errorf("reading upload file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func contentTypeFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return "application/pdf"
	}
	return "application/octet-stream"
}

// decodeDocument maps the upload response to a Document. Empty bodies and
// falsy JSON values (null, false, 0, "") mean no data is available.
func decodeDocument(data []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	switch string(trimmed) {
	case "null", "false", `""`:
		return nil, nil
	}
	if f, err := strconv.ParseFloat(string(trimmed), 64); err == nil && f == 0 {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("decoding upload response: %w", ErrUnexpectedBody)
	}

	var doc Document
	if err := easyjson.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("decoding upload response: %w: %w", ErrUnexpectedBody, err)
	}
	if doc.CompletedCourses == nil {
		doc.CompletedCourses = []string{}
	}
	if doc.Requirements == nil {
		doc.Requirements = map[string]json.RawMessage{}
	}
	return &doc, nil
}
