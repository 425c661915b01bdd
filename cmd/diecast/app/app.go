// Package app provides the application context and dependency management
// for the diecast CLI. It centralizes configuration, logging, and the
// lifecycle of the shared Garage.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/agentstation/diecast"
	"github.com/agentstation/diecast/internal/cmd/application"
	"github.com/agentstation/diecast/internal/transport"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection/files"
	"github.com/agentstation/diecast/pkg/errors"
)

var _ application.Application = (*App)(nil)

// App represents the diecast application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// extra options appended to those derived from config
	garageOpts []diecast.Option

	// Garage instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	garage *diecast.Garage
}

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Output
}

// IncludeOldCases reports whether searches include old cases by default.
func (a *App) IncludeOldCases() bool {
	return a.config.IncludeOldCases
}

// Garage returns the garage, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Garage() (*diecast.Garage, error) {
	a.mu.RLock()
	if a.garage != nil {
		g := a.garage
		a.mu.RUnlock()
		return g, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.garage != nil {
		return a.garage, nil
	}

	opts, err := a.buildGarageOptions()
	if err != nil {
		return nil, err
	}
	g, err := diecast.New(context.Background(), opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "garage", "", err)
	}

	a.garage = g
	return g, nil
}

// Shutdown performs graceful shutdown of the application.
func (a *App) Shutdown(context.Context) error {
	a.mu.RLock()
	g := a.garage
	a.mu.RUnlock()

	if g != nil {
		if err := g.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close garage during shutdown")
		}
	}
	return nil
}

// buildGarageOptions constructs garage options from the app configuration.
func (a *App) buildGarageOptions() ([]diecast.Option, error) {
	opts := []diecast.Option{diecast.WithLogger(a.logger)}

	// Without a catalog path the embedded sample catalog is served
	if a.config.Catalog != "" {
		src, err := a.catalogSource()
		if err != nil {
			return nil, err
		}
		opts = append(opts, diecast.WithSource(src))
	}

	// Without a data directory the collection lives in memory
	if a.config.DataDir != "" {
		backend, err := files.New(a.config.DataDir)
		if err != nil {
			return nil, errors.WrapResource("open", "collection", a.config.DataDir, err)
		}
		opts = append(opts, diecast.WithBackend(backend))
	}

	if a.config.AutoReload {
		opts = append(opts, diecast.WithAutoReload(true))
		if a.config.AutoReloadInterval > 0 {
			opts = append(opts, diecast.WithAutoReloadInterval(a.config.AutoReloadInterval))
		}
	}

	if a.config.Language != "" {
		tag, err := language.Parse(a.config.Language)
		if err != nil {
			return nil, errors.NewValidationError("language", a.config.Language, err.Error())
		}
		opts = append(opts, diecast.WithLanguage(tag))
	}

	return append(opts, a.garageOpts...), nil
}

// catalogSource reads the catalog setting as an http(s) URL or a path.
func (a *App) catalogSource() (catalogs.Source, error) {
	loc := a.config.Catalog
	if !strings.HasPrefix(loc, "http://") && !strings.HasPrefix(loc, "https://") {
		return catalogs.FileSource{Path: loc}, nil
	}
	auth, err := transport.ParseAuth(a.config.CatalogAuth)
	if err != nil {
		return nil, err
	}
	return catalogs.URLSource{URL: loc, Client: transport.New(auth, a.config.CatalogToken)}, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		logger := NewLogger(config)
		a.logger = &logger
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithGarageOptions appends options used when the garage is created.
func WithGarageOptions(opts ...diecast.Option) Option {
	return func(a *App) error {
		a.garageOpts = append(a.garageOpts, opts...)
		return nil
	}
}
