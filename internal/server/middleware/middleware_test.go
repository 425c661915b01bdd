package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/diecast/pkg/logging"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(mark("first"), mark("second"))(okHandler())
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestLoggerAttachesRequestLogger(t *testing.T) {
	tl := logging.NewTestLogger(t)

	var fromCtx bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Ctx(r.Context()).Info().Msg("inside handler")
		fromCtx = true
		w.WriteHeader(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	Logger(tl.Logger)(inner).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/search", nil))

	assert.True(t, fromCtx)
	assert.Equal(t, http.StatusTeapot, w.Code)
	tl.AssertContains(t, "inside handler")
	tl.AssertContains(t, "/api/v1/search")
	tl.AssertContains(t, `"status":418`)
}

func TestRecovery(t *testing.T) {
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("boom") })

	w := httptest.NewRecorder()
	Recovery(logging.NewNopLogger())(panicky).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"allow all", DefaultCORSConfig(), "https://a.example", http.MethodGet, "*", http.StatusOK},
		{"listed origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://a.example", http.MethodGet, "https://a.example", http.StatusOK},
		{"unlisted origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://b.example", http.MethodGet, "", http.StatusOK},
		{"preflight", DefaultCORSConfig(), "https://a.example", http.MethodOptions, "*", http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			CORS(tt.config)(okHandler()).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantOrigin, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestAuth(t *testing.T) {
	cfg := DefaultAuthConfig()
	cfg.Enabled = true
	cfg.APIKey = "secret"
	h := Auth(cfg, logging.NewNopLogger())(okHandler())

	tests := []struct {
		name   string
		method string
		header string
		value  string
		want   int
	}{
		{"reads are open", http.MethodGet, "", "", http.StatusOK},
		{"write without key", http.MethodPost, "", "", http.StatusUnauthorized},
		{"write with wrong key", http.MethodPost, "X-API-Key", "nope", http.StatusUnauthorized},
		{"write with key", http.MethodPost, "X-API-Key", "secret", http.StatusOK},
		{"bearer", http.MethodDelete, "Authorization", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/owned", nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestAuthProtectReads(t *testing.T) {
	cfg := AuthConfig{Enabled: true, APIKey: "secret", HeaderName: "X-API-Key", ProtectReads: true}
	w := httptest.NewRecorder()
	Auth(cfg, logging.NewNopLogger())(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
