// Package constants provides shared constants used throughout the diecast codebase.
// This includes timeouts, limits, file permissions, and catalog rules
// that should be consistent across the application.
package constants

import "time"

// Catalog rules
const (
	// OldCaseCutoffYear is the first year shown when old cases are excluded.
	OldCaseCutoffYear = 2024

	// RefreshSentinel is the search query that triggers a catalog reload
	// instead of a search.
	RefreshSentinel = "c-refresh"
)

// Timeout constants define various timeout durations used in the application
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Limit constants define various limits and capacities
const (
	// DefaultPageSize is the default number of items per page for paginated results
	DefaultPageSize = 100

	// MaxPageSize is the maximum allowed page size for paginated results
	MaxPageSize = 1000

	// ChannelBufferSize is the default buffer size for channels
	ChannelBufferSize = 100

	// MaxImportBytes caps the size of an uploaded collection import
	MaxImportBytes = 10 << 20

	// MaxSuggestions is the number of fuzzy suggestions returned for an empty search
	MaxSuggestions = 5
)

// Rate limiting constants
const (
	// DefaultRateLimit is the default requests per minute per client
	DefaultRateLimit = 100

	// BurstSize is the token bucket burst size for rate limiting
	BurstSize = 10
)

// Cache constants
const (
	// CacheTTL is the default time-to-live for cached responses
	CacheTTL = 5 * time.Minute

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 10 * time.Minute
)
