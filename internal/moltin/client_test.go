package moltin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shopfront/pkg/domain"
)

// fakePlatform is a minimal commerce API double: the token endpoint plus a
// handler the test controls.
func fakePlatform(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var exchanges atomic.Int64

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		exchanges.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "test-token",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/", handler)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &exchanges
}

func TestClient_AttachesBearerAndContentType(t *testing.T) {
	var gotAuth, gotContentType string
	srv, _ := fakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"data":{}}`))
	})

	client := NewClient(srv.URL, "id", "secret", WithHTTPClient(srv.Client()))

	_, err := client.Do(context.Background(), http.MethodPost, "customers", map[string]any{"data": map[string]any{}})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_GetCarriesNoContentType(t *testing.T) {
	var gotContentType string
	srv, _ := fakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"data":[]}`))
	})

	client := NewClient(srv.URL, "id", "secret", WithHTTPClient(srv.Client()))

	_, err := client.Do(context.Background(), http.MethodGet, "products", nil)
	require.NoError(t, err)
	assert.Empty(t, gotContentType)
}

func TestClient_NonSuccessBecomesAPIError(t *testing.T) {
	srv, _ := fakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":[{"title":"not found"}]}`, http.StatusNotFound)
	})

	client := NewClient(srv.URL, "id", "secret", WithHTTPClient(srv.Client()))

	_, err := client.Do(context.Background(), http.MethodGet, "products/nope", nil)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Contains(t, apiErr.Body, "not found")
}

func TestClient_RetriesOnceOnUnauthorized(t *testing.T) {
	var dataCalls atomic.Int64
	srv, exchanges := fakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		if dataCalls.Add(1) == 1 {
			// Token revoked server-side before its reported expiry.
			http.Error(w, `{"errors":[{"title":"expired"}]}`, http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":[]}`))
	})

	client := NewClient(srv.URL, "id", "secret", WithHTTPClient(srv.Client()))

	_, err := client.Do(context.Background(), http.MethodGet, "products", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dataCalls.Load(), "one retry after the 401")
	assert.Equal(t, int64(2), exchanges.Load(), "retry carries a fresh token")
}

func TestClient_PersistentUnauthorizedSurfaces(t *testing.T) {
	var dataCalls atomic.Int64
	srv, _ := fakePlatform(t, func(w http.ResponseWriter, r *http.Request) {
		dataCalls.Add(1)
		http.Error(w, `{}`, http.StatusUnauthorized)
	})

	client := NewClient(srv.URL, "id", "secret", WithHTTPClient(srv.Client()))

	_, err := client.Do(context.Background(), http.MethodGet, "products", nil)
	var apiErr *domain.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, int64(2), dataCalls.Load(), "exactly one retry, then give up")
}

func TestClient_TokenFailureIsAuthError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{}`, http.StatusForbidden)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(srv.URL, "id", "secret", WithHTTPClient(srv.Client()))

	_, err := client.Do(context.Background(), http.MethodGet, "products", nil)
	var authErr *domain.AuthError
	assert.ErrorAs(t, err, &authErr, "no token at all is an AuthError, not an APIError")
}
