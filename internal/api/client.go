// Package api is the gateway to the marketplace REST service. Every call
// resolves to a uniform Result envelope: transport failures, timeouts and
// unparseable bodies all collapse into the same shape, so callers have one
// failure path instead of three.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Result is the uniform call envelope. Data is always valid JSON; when the
// response body cannot be parsed it degrades to "{}".
type Result struct {
	OK     bool
	Status int
	Data   []byte
}

// Get extracts a field from the payload by gjson path.
func (r Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Data, path)
}

// Msg returns the API-reported message, if any.
func (r Result) Msg() string {
	return r.Get("msg").String()
}

// ErrText returns a human-readable failure string: the API message when one
// exists, a generic communication error otherwise.
func (r Result) ErrText() string {
	if msg := r.Msg(); msg != "" {
		return msg
	}
	if r.Status == 0 {
		return "Error de comunicación con el servidor."
	}
	return fmt.Sprintf("Error del servidor (HTTP %d).", r.Status)
}

// Config holds gateway client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL: baseURL,
		Timeout: 20 * time.Second,
	}
}

// Client wraps the remote API. Requests carry the session cookie jar and a
// fixed timeout; there is no retry policy, a single attempt per call.
type Client struct {
	base       string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a gateway client with default config.
func NewClient(baseURL string, log *zap.Logger) *Client {
	return NewClientWithConfig(DefaultConfig(baseURL), log)
}

// NewClientWithConfig creates a gateway client with custom config.
func NewClientWithConfig(cfg Config, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		base: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		log: log,
	}
}

// BaseURL returns the configured API base.
func (c *Client) BaseURL() string { return c.base }

func (c *Client) url(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.base + path
}

// failure maps a transport-level error into the envelope.
func failure(err error) Result {
	data, _ := json.Marshal(map[string]string{"msg": err.Error()})
	return Result{OK: false, Status: 0, Data: data}
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) Result {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return failure(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return failure(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(err)
	}
	if !gjson.ValidBytes(raw) {
		raw = []byte("{}")
	}

	c.log.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return Result{OK: ok, Status: resp.StatusCode, Data: raw}
}

// GetJSON performs a GET.
func (c *Client) GetJSON(ctx context.Context, path string) Result {
	return c.do(ctx, http.MethodGet, path, nil, "")
}

// PostJSON performs a POST with a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, body any) Result {
	return c.send(ctx, http.MethodPost, path, body)
}

// PutJSON performs a PUT with a JSON body.
func (c *Client) PutJSON(ctx context.Context, path string, body any) Result {
	return c.send(ctx, http.MethodPut, path, body)
}

// DeleteJSON performs a DELETE.
func (c *Client) DeleteJSON(ctx context.Context, path string) Result {
	return c.do(ctx, http.MethodDelete, path, nil, "")
}

func (c *Client) send(ctx context.Context, method, path string, body any) Result {
	payload, err := json.Marshal(body)
	if err != nil {
		return failure(err)
	}
	return c.do(ctx, method, path, bytes.NewReader(payload), "application/json")
}

// PostMultipart uploads a single file under field name "imagen".
func (c *Client) PostMultipart(ctx context.Context, path, filename string, content []byte) Result {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("imagen", filename)
	if err != nil {
		return failure(err)
	}
	if _, err := part.Write(content); err != nil {
		return failure(err)
	}
	if err := w.Close(); err != nil {
		return failure(err)
	}
	return c.do(ctx, http.MethodPost, path, &buf, w.FormDataContentType())
}
