// Package application defines what diecast commands and the HTTP server
// need from the running application.
//
// Commands accept the Application interface rather than the concrete
// App type so they can be exercised against a Mock:
//
//	mock := &application.Mock{
//	    GarageFunc: func() (*diecast.Garage, error) {
//	        return diecast.New(ctx, diecast.WithCatalog(testCatalog))
//	    },
//	}
//	cmd := owned.NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/diecast"
)

// Application provides the application interface that commands need.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Garage returns the shared collection tracker, created on first use.
	Garage() (*diecast.Garage, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// IncludeOldCases reports whether searches include cases released
	// before the cutoff year by default.
	IncludeOldCases() bool

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
