// Package apiclient is the single choke point between the console and the admin REST API.
//
// Every call attaches the session's bearer token, normalizes failures into
// internal/errors codes, and tears the session down when the API answers 401.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	domainauth "github.com/stepcontest/contest-admin/internal/domain/auth"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
	"github.com/stepcontest/contest-admin/internal/observability/metrics"
	"github.com/stepcontest/contest-admin/internal/observability/statsd"
	"github.com/stepcontest/contest-admin/internal/ports"
)

const (
	// DefaultBasePath prefixes every admin endpoint.
	DefaultBasePath = "/api/admin"
	// DefaultTimeout bounds a single round trip when no HTTP client is injected.
	DefaultTimeout = 30 * time.Second

	// RequestIDHeader correlates console requests with backend logs.
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 32 << 20
)

// Config groups dependencies for Client.
type Config struct {
	// BaseURL is the scheme and authority of the backend, e.g. http://127.0.0.1:8080.
	BaseURL  string
	BasePath string
	// HTTPClient performs the round trip; defaults to an *http.Client with Timeout.
	HTTPClient ports.HTTPDoer
	Timeout    time.Duration
	// Session supplies the token and is deauthorized on 401. Required.
	Session   ports.SessionAuthority
	Metrics   statsd.Sink
	Logger    *slog.Logger
	UserAgent string
}

// Request describes one admin API call. It lives only for the duration of the call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    any
	Headers http.Header
}

// Client dispatches admin API requests.
type Client struct {
	endpoint  string
	http      ports.HTTPDoer
	session   ports.SessionAuthority
	metrics   statsd.Sink
	logger    *slog.Logger
	userAgent string
}

// New builds a Client. BaseURL and Session are required.
func New(cfg Config) (*Client, error) {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, errors.New("admin API base URL is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse admin API base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("admin API base URL %q must include scheme and host", base)
	}
	if cfg.Session == nil {
		return nil, errors.New("session is required")
	}

	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = DefaultBasePath
	}
	basePath = "/" + strings.Trim(basePath, "/")

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = statsd.Discard{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "contest-admin"
	}

	return &Client{
		endpoint:  strings.TrimRight(parsed.String(), "/") + basePath,
		http:      hc,
		session:   cfg.Session,
		metrics:   metrics,
		logger:    logger.With("component", "apiclient"),
		userAgent: userAgent,
	}, nil
}

// Endpoint returns the absolute prefix every request path is appended to.
func (c *Client) Endpoint() string { return c.endpoint }

// Call issues req and decodes a JSON response into a new T.
// An empty or 204 response yields the zero T.
func Call[T any](ctx context.Context, c *Client, req Request) (T, error) {
	var out T
	err := c.Do(ctx, req, &out)
	return out, err
}

// Do issues req and, on a 2xx response with a body, decodes it into out (which may be nil).
//
// Failures:
//   - 401: the session is deauthorized and an Unauthorized error is returned without
//     reading the body.
//   - other non-2xx: a RequestFailed error carrying the best human-readable message.
//   - no response: a Transport, Timeout or Canceled error wrapping the transport cause.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	start := time.Now()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, sentToken, err := c.newHTTPRequest(ctx, method, req)
	if err != nil {
		return err
	}
	requestID := httpReq.Header.Get(RequestIDHeader)
	log := c.logger.With("method", method, "path", req.Path, "request_id", requestID)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		mapped := apperrors.MapTransportError(err)
		c.record(method, req.Path, "error", mapped, start)
		log.DebugContext(ctx, "admin API request failed", "error", err)
		return mapped
	}
	defer closeBody(resp.Body)

	if resp.StatusCode == http.StatusUnauthorized {
		unauthorized := apperrors.Unauthorized()
		c.record(method, req.Path, strconv.Itoa(resp.StatusCode), unauthorized, start)
		// Teardown must not be skipped because the caller's context is done.
		if c.session.Deauthorize(context.WithoutCancel(ctx), sentToken, domainauth.ReasonUnauthorized) {
			log.WarnContext(ctx, "admin API rejected session; signed out")
		}
		return unauthorized
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		mapped := apperrors.MapTransportError(fmt.Errorf("read response body: %w", err))
		c.record(method, req.Path, strconv.Itoa(resp.StatusCode), mapped, start)
		return mapped
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := failureMessage(resp, body)
		failed := apperrors.RequestFailed(resp.StatusCode, msg)
		c.record(method, req.Path, strconv.Itoa(resp.StatusCode), failed, start)
		log.DebugContext(ctx, "admin API request rejected", "status", resp.StatusCode, "message", msg)
		return failed
	}

	c.record(method, req.Path, strconv.Itoa(resp.StatusCode), nil, start)
	log.DebugContext(ctx, "admin API request completed", "status", resp.StatusCode, "bytes", len(body),
		"duration", time.Since(start).String())

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &apperrors.AppError{
			Code:    apperrors.ErrCodeDecode,
			Message: "decode admin API response",
			Cause:   err,
			Status:  resp.StatusCode,
		}
	}
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, method string, req Request) (*http.Request, string, error) {
	target := c.endpoint + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + req.Query.Encode()
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, "", apperrors.Wrap(err, apperrors.ErrCodeValidation, "build admin API request")
	}

	for key, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	// The session is the only source of credentials.
	httpReq.Header.Del("Authorization")
	if httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}
	httpReq.Header.Set("User-Agent", c.userAgent)

	token, ok := c.session.Token()
	if ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(httpReq)
	}
	return httpReq, token, nil
}

func encodeBody(body any) (io.Reader, error) {
	switch v := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(v), nil
	case []byte:
		return bytes.NewReader(v), nil
	case string:
		return strings.NewReader(v), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, "encode request body")
		}
		return bytes.NewReader(data), nil
	}
}

// failureMessage picks the operator-facing message for a failed response:
// a non-empty, non-zero JSON "error" field when present, the raw body when it is not JSON,
// and the status text otherwise.
func failureMessage(resp *http.Response, body []byte) string {
	msg := statusText(resp)
	text := strings.TrimSpace(string(body))

	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		if text != "" {
			return text
		}
		return msg
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return msg
	}
	switch v := obj["error"].(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		if v != 0 && !math.IsNaN(v) {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	case bool:
		if v {
			return "true"
		}
	case map[string]any, []any:
		if encoded, err := json.Marshal(v); err == nil {
			return string(encoded)
		}
	}
	return msg
}

func statusText(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); text != "" {
		return text
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return "request failed with status " + code
}

func (c *Client) record(method, path, status string, err error, start time.Time) {
	metrics.EmitRequest(c.metrics, metrics.RequestMetric{
		Method:   method,
		Path:     path,
		Status:   status,
		Duration: time.Since(start),
		Err:      err,
	})
}

func closeBody(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4<<10))
	_ = body.Close()
}
