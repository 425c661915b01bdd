package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/diecast/internal/server/response"
)

// AuthConfig protects collection writes with an API key.
type AuthConfig struct {
	Enabled    bool
	APIKey     string
	HeaderName string

	// ProtectReads also requires the key on GET and HEAD requests.
	ProtectReads bool
}

// DefaultAuthConfig returns a disabled config reading X-API-Key.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{HeaderName: "X-API-Key"}
}

// Auth rejects requests without the configured API key. By default only
// requests that can change the collection need it.
func Auth(config AuthConfig, logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled || (!config.ProtectReads && isRead(r.Method)) {
				next.ServeHTTP(w, r)
				return
			}

			key := extractAPIKey(r, config.HeaderName)
			if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(config.APIKey)) != 1 {
				logger.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Bool("key_provided", key != "").
					Msg("Authentication failed")
				response.Unauthorized(w, "Invalid or missing API key", "Provide a valid API key in the "+config.HeaderName+" header")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isRead(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func extractAPIKey(r *http.Request, header string) string {
	if key := r.Header.Get(header); key != "" {
		return key
	}
	auth := r.Header.Get("Authorization")
	if key, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return key
	}
	return auth
}
