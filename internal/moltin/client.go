// Package moltin is the commerce-platform client: a token manager, an
// authenticated request gateway, and the catalog/cart/customer services
// built on top of it.
package moltin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aretw0/shopfront/internal/logging"
	"github.com/aretw0/shopfront/internal/metrics"
	"github.com/aretw0/shopfront/pkg/domain"
)

// DefaultBaseURL is the hosted Moltin API endpoint.
const DefaultBaseURL = "https://api.moltin.com/v2"

// Client is the authenticated gateway to the commerce API. All services
// (Catalog, Carts, Customers) share one Client instance.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  *TokenSource
	logger  *slog.Logger
	metrics *metrics.Set
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithLogger configures a logger for the client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics configures the collector set used by the client.
func WithMetrics(m *metrics.Set) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a client with options. The zero-option client talks to
// the hosted API with a 10-second timeout.
func NewClient(baseURL, clientID, clientSecret string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 10 * time.Second},
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.tokens = NewTokenSource(c.baseURL, clientID, clientSecret, c.httpc, c.logger, c.metrics)
	return c
}

// Do sends an authenticated request and returns the response body.
// Non-2xx responses become *domain.APIError; a failure to obtain a token at
// all becomes *domain.AuthError. A single 401 triggers one retry with a
// forced token refresh. Mutating verbs carry a JSON content type.
func (c *Client) Do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, &domain.APIError{Status: status, Body: string(body)}
	}
	return body, nil
}

// DoStatus is Do for callers that need the raw status code, like cart
// deletion which succeeds only on 204. Non-2xx still yields *domain.APIError.
func (c *Client) DoStatus(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	status, body, err := c.do(ctx, method, path, payload)
	if err != nil {
		return 0, nil, err
	}
	if status < 200 || status > 299 {
		return status, nil, &domain.APIError{Status: status, Body: string(body)}
	}
	return status, body, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return 0, nil, err
	}

	status, body, err := c.send(ctx, method, path, payload, token)
	if err != nil {
		return 0, nil, err
	}

	// One retry with a forced refresh: the cached token may have been
	// revoked server-side before its reported expiry.
	if status == http.StatusUnauthorized {
		c.tokens.Invalidate(token)
		token, err = c.tokens.Token(ctx)
		if err != nil {
			return 0, nil, err
		}
		status, body, err = c.send(ctx, method, path, payload, token)
		if err != nil {
			return 0, nil, err
		}
	}

	return status, body, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any, token string) (int, []byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding %s %s payload: %w", method, path, err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+strings.TrimLeft(path, "/"), reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	c.metrics.APIRequests.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Inc()
	c.metrics.APILatency.WithLabelValues(method).Observe(time.Since(start).Seconds())
	c.logger.Debug("commerce api call", "method", method, "path", path, "status", resp.StatusCode)

	return resp.StatusCode, body, nil
}
