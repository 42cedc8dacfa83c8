package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/usestring/wordseer-mcp/internal/schema"
)

// DefaultBaseURL is the default API root of a local WordSeer deployment.
const DefaultBaseURL = "http://localhost:8000/api/"

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// maxErrorBodyBytes bounds how much of an error response is kept as the message.
const maxErrorBodyBytes = 512

// Client is a WordSeer document search client. It is safe for concurrent use.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	limiter      *rate.Limiter
	cacheBusting bool
	validator    *schema.Validator
	obs          *observer
	now          func() time.Time

	// Deferred settings resolved by New.
	schemaSource func() ([]byte, error)
	metricsReg   prometheus.Registerer
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets the API root. The search path is appended to it; an
// empty root keeps the default.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL == "" {
			return
		}
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit caps outgoing requests at rps per second with the given burst.
// Searches wait for a token; a zero or negative rps disables the limit.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithCacheBusting adds a "_dc" timestamp parameter to every request so
// intermediaries cannot serve a cached response. Off by default.
func WithCacheBusting() Option {
	return func(c *Client) {
		c.cacheBusting = true
	}
}

// WithRecordSchema validates every record against a JSON Schema document.
// A record that fails validation fails the whole search with a ParseError.
func WithRecordSchema(schemaJSON []byte) Option {
	return func(c *Client) {
		c.schemaSource = func() ([]byte, error) { return schemaJSON, nil }
	}
}

// WithRecordModel validates every record against the JSON Schema reflected
// from T. Fields without omitempty are required.
func WithRecordModel[T any]() Option {
	return func(c *Client) {
		c.schemaSource = schema.Reflect[T]
	}
}

// WithPrometheus registers client metrics (search counts by outcome and
// durations) on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metricsReg = reg
	}
}

// New creates a new WordSeer search client.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    strings.TrimSuffix(DefaultBaseURL, "/"),
		httpClient: http.DefaultClient,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.schemaSource != nil {
		raw, err := c.schemaSource()
		if err != nil {
			return nil, fmt.Errorf("building record schema: %w", err)
		}
		v, err := schema.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling record schema: %w", err)
		}
		c.validator = v
	}

	obs, err := newObserver(c.metricsReg)
	if err != nil {
		return nil, err
	}
	c.obs = obs

	return c, nil
}

// BaseURL returns the configured API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get performs a GET request and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	start := time.Now()
	requestID := uuid.NewString()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			// The limiter refuses up front when the deadline is too close,
			// without wrapping the context error.
			if _, ok := ctx.Deadline(); ok && ctx.Err() == nil {
				err = fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
			}
			return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("waiting for rate limiter: %w", err)}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", http.MethodGet),
			slog.String("path", req.URL.Path),
			slog.String("request_id", requestID),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, &NetworkError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := parseError(resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", http.MethodGet),
			slog.String("path", req.URL.Path),
			slog.String("request_id", requestID),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, statusErr
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: rawURL, Err: fmt.Errorf("reading response: %w", err)}
	}

	slog.Debug("HTTP request completed",
		slog.String("method", http.MethodGet),
		slog.String("path", req.URL.Path),
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(body)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return body, nil
}

// parseError extracts an HTTPStatusError from a non-2xx response.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	// Drain the rest so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &HTTPStatusError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &HTTPStatusError{StatusCode: resp.StatusCode, Message: msg}
}
