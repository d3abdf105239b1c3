package moltin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aretw0/shopfront/internal/logging"
	"github.com/aretw0/shopfront/internal/metrics"
	"github.com/aretw0/shopfront/pkg/domain"
)

// tokenPath is relative to the API base URL.
const tokenPath = "oauth/access_token"

// refreshMargin is subtracted from the reported lifetime so we never send a
// token that expires mid-flight.
const refreshMargin = 30 * time.Second

// TokenSource obtains and caches a client-credentials bearer token.
// It holds at most one live token at a time. Concurrent cache misses are
// coalesced: only one exchange goes out, all waiters get its result.
type TokenSource struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpc        *http.Client
	logger       *slog.Logger
	metrics      *metrics.Set

	group singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource creates a token source for the given API credentials.
func NewTokenSource(baseURL, clientID, clientSecret string, httpc *http.Client, logger *slog.Logger, m *metrics.Set) *TokenSource {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &TokenSource{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpc:        httpc,
		logger:       logger,
		metrics:      m,
	}
}

// Token returns a valid bearer token, performing the client-credentials
// exchange if none is cached or the cached one is about to expire.
// Exchange failures surface as *domain.AuthError.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	ts.mu.Lock()
	if ts.token != "" && time.Now().Before(ts.expiresAt) {
		tok := ts.token
		ts.mu.Unlock()
		return tok, nil
	}
	ts.mu.Unlock()

	// Single-flight: overlapping misses share one exchange.
	v, err, _ := ts.group.Do("token", func() (any, error) {
		return ts.exchange(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token if it is still the given one, forcing
// the next Token call to refresh. Used by the gateway after a 401.
func (ts *TokenSource) Invalidate(token string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token == token {
		ts.token = ""
		ts.expiresAt = time.Time{}
	}
}

func (ts *TokenSource) exchange(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {ts.clientID},
		"client_secret": {ts.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ts.baseURL+"/"+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}

	ttl := time.Duration(payload.ExpiresIn) * time.Second
	if ttl <= refreshMargin {
		// Platforms that omit expires_in get a conservative lifetime.
		ttl = time.Hour
	}

	ts.mu.Lock()
	ts.token = payload.AccessToken
	ts.expiresAt = time.Now().Add(ttl - refreshMargin)
	ts.mu.Unlock()

	ts.metrics.TokenRefreshes.Inc()
	ts.logger.Debug("access token refreshed", "expires_in", payload.ExpiresIn)
	return payload.AccessToken, nil
}
