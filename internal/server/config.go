package server

import (
	"time"

	"github.com/agentstation/diecast/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	Host string
	Port int

	PathPrefix string

	CORSEnabled bool
	CORSOrigins []string

	// AuthEnabled requires APIKey on requests that change the collection.
	AuthEnabled bool
	AuthHeader  string
	APIKey      string

	// RateLimit is requests per minute per client; 0 disables limiting.
	RateLimit int
	CacheTTL  time.Duration

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// IncludeOldCases is the search default when a request omits ?old.
	IncludeOldCases bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		PathPrefix:   "/api/v1",
		AuthHeader:   "X-API-Key",
		RateLimit:    constants.DefaultRateLimit,
		CacheTTL:     constants.CacheTTL,
		ReadTimeout:  constants.DefaultTimeout,
		WriteTimeout: constants.DefaultTimeout,
		IdleTimeout:  120 * time.Second,
	}
}
