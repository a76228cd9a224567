package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dermatrack/mobile-core/internal/observability/metrics"
	"github.com/dermatrack/mobile-core/internal/session"
	"github.com/dermatrack/mobile-core/pkg/logging"
)

const defaultTimeout = 15 * time.Second

// Client is a typed client for the mobile REST API. It is constructed
// explicitly and injected into every service that needs it; there is no
// package-level instance.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Session
	logger     *logging.Logger
	metrics    *metrics.ClientMetrics
}

// NewClient creates a client for the given base URL. sess supplies the bearer
// token for every authenticated call.
func NewClient(baseURL string, sess *session.Session, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		session: sess,
		logger:  logger,
	}
}

// WithTimeout overrides the per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	if d > 0 {
		c.httpClient.Timeout = d
	}
	return c
}

// WithMetrics attaches client metrics.
func (c *Client) WithMetrics(m *metrics.ClientMetrics) *Client {
	c.metrics = m
	return c
}

// WithHTTPClient swaps the underlying transport.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	if h != nil {
		c.httpClient = h
	}
	return c
}

// envelope is the wire shape of every response: {success, data?, error?}.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type callOptions struct {
	noAuth         bool
	idempotencyKey string
}

type callOption func(*callOptions)

// withoutAuth marks a call that fires before a session exists (login etc.).
func withoutAuth() callOption {
	return func(o *callOptions) { o.noAuth = true }
}

// withIdempotencyKey attaches an Idempotency-Key header so the server can
// dedupe a double-submitted mutation.
func withIdempotencyKey(key string) callOption {
	return func(o *callOptions) { o.idempotencyKey = key }
}

// do performs one API call. fallback is the user-facing message used when the
// server fails without an error string. out, when non-nil, receives the
// decoded data field.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, fallback string, opts ...callOption) error {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	var token string
	if !options.noAuth {
		var err error
		token, err = c.session.Token()
		if err != nil {
			return &AuthError{Reason: err.Error()}
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("api: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if options.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", options.idempotencyKey)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(endpointLabel(path), "error", time.Since(start).Seconds())
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.ObserveRequest(endpointLabel(path), "error", time.Since(start).Seconds())
		return &NetworkError{Op: "read " + path, Err: err}
	}

	c.metrics.ObserveRequest(endpointLabel(path), statusClass(resp.StatusCode), time.Since(start).Seconds())

	// The body may or may not be a valid envelope on error paths; decode
	// best-effort so server messages survive.
	var env envelope
	_ = json.Unmarshal(respBody, &env)

	if resp.StatusCode == http.StatusUnauthorized {
		if c.session != nil {
			c.session.NotifyExpired()
		}
		return &AuthError{Reason: "token rejected"}
	}

	// Non-2xx is a failure even when the body parses cleanly.
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: messageOr(env, fallback)}
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: messageOr(env, fallback)}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
	}
	return nil
}

func messageOr(env envelope, fallback string) string {
	if env.Error != "" {
		return env.Error
	}
	if env.Message != "" {
		return env.Message
	}
	return fallback
}

func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}

// endpointLabel reduces a path to its leading resource segment so metric
// cardinality stays bounded.
func endpointLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/api/mobile/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		trimmed = trimmed[:i]
	}
	return trimmed
}
