// Package transport performs raw request/response exchanges with the feed
// source. It knows nothing about the payload; decoding lives in package feed.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/five82/albumfeed/internal/catalog"
)

// Request is a single outbound exchange.
type Request struct {
	Method string
	URL    string
	Body   []byte
}

// Response carries the raw status and body of a completed exchange.
type Response struct {
	StatusCode int
	Body       []byte
}

// Fetcher performs one request/response exchange. Implementations must be
// safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) (Response, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	defaultUserAgent = "albumfeed/0.1"
	defaultTimeout   = 10 * time.Second
	maxBodyBytes     = 8 << 20
)

// Options configures a Client. Zero values pick sensible defaults; a
// RequestsPerSecond of zero or less disables rate limiting.
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64
	UserAgent         string
	Logger            *slog.Logger
	HTTPClient        *http.Client
}

// Client is the HTTP Fetcher.
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	logger    *slog.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ua := strings.TrimSpace(opts.UserAgent)
	if ua == "" {
		ua = defaultUserAgent
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := int(opts.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Client{
		http:      httpClient,
		limiter:   limiter,
		userAgent: ua,
		logger:    logger,
	}
}

// Fetch executes req. Any status of 400 or above, a connection failure or a
// cancelled context is reported as a *catalog.TransportError.
func (c *Client) Fetch(ctx context.Context, req Request) (Response, error) {
	if c == nil {
		return Response{}, fmt.Errorf("client is nil")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	fail := func(status int, err error) (Response, error) {
		return Response{StatusCode: status}, &catalog.TransportError{
			Method:     method,
			URL:        req.URL,
			StatusCode: status,
			Err:        err,
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fail(0, fmt.Errorf("rate limit wait: %w", err))
		}
	}

	var body io.Reader
	if len(req.Body) > 0 {
		body = strings.NewReader(string(req.Body))
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return fail(0, fmt.Errorf("create request: %w", err))
	}
	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("feed request failed",
			slog.String("request_id", requestID),
			slog.String("url", req.URL),
			slog.Any("error", err))
		return fail(0, fmt.Errorf("execute request: %w", err))
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fail(resp.StatusCode, fmt.Errorf("read body: %w", err))
	}
	c.logger.Debug("feed request",
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("url", req.URL),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(data)),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 400 {
		return fail(resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}
	return Response{StatusCode: resp.StatusCode, Body: data}, nil
}
