package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/diecast/pkg/catalogs"
)

const catalogDoc = `{"2025": {"cases": [{"letter": "A", "cars": [{"name": "Twin Mill", "image": "2025-twin-mill.png", "hw_number": "87"}]}]}}`

func TestClientFetchesCatalog(t *testing.T) {
	var gotAuth, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAgent = r.Header.Get("User-Agent")
		if gotAuth != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(catalogDoc))
	}))
	defer srv.Close()

	src := catalogs.URLSource{URL: srv.URL + "/catalog.json", Client: New(&BearerAuth{}, "secret")}
	c, err := src.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, UserAgent, gotAgent)
	assert.Len(t, c.Flatten(), 1)
}

func TestClientWithoutToken(t *testing.T) {
	var sawAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	src := catalogs.URLSource{URL: srv.URL, Client: New(&BearerAuth{}, "", WithHTTPClient(srv.Client()))}
	_, err := src.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, sawAuth)
}
