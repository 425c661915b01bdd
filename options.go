package diecast

import (
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/errors"
)

// Option is a function that configures a Garage
type Option func(*config) error

// config holds Garage construction settings
type config struct {
	source             catalogs.Source
	initialCatalog     catalogs.Catalog
	backend            collection.Backend
	store              *collection.Store
	autoReloadEnabled  bool
	autoReloadInterval time.Duration
	language           language.Tag
	logger             *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		autoReloadInterval: time.Hour,
		language:           language.Und,
	}
}

// WithSource sets where the catalog is loaded and reloaded from
func WithSource(source catalogs.Source) Option {
	return func(c *config) error {
		if source == nil {
			return errors.NewValidationError("source", nil, "cannot be nil")
		}
		c.source = source
		return nil
	}
}

// WithCatalog starts from an already loaded catalog. Reloads still use
// the configured source, if any.
func WithCatalog(catalog catalogs.Catalog) Option {
	return func(c *config) error {
		c.initialCatalog = catalog
		return nil
	}
}

// WithBackend sets the storage behind the owned and wanted lists
func WithBackend(backend collection.Backend) Option {
	return func(c *config) error {
		if backend == nil {
			return errors.NewValidationError("backend", nil, "cannot be nil")
		}
		c.backend = backend
		return nil
	}
}

// WithStore uses an existing collection store
func WithStore(store *collection.Store) Option {
	return func(c *config) error {
		if store == nil {
			return errors.NewValidationError("store", nil, "cannot be nil")
		}
		c.store = store
		return nil
	}
}

// WithAutoReload configures whether the catalog reloads from its source
// periodically
func WithAutoReload(enabled bool) Option {
	return func(c *config) error {
		c.autoReloadEnabled = enabled
		return nil
	}
}

// WithAutoReloadInterval configures how often the catalog reloads
func WithAutoReloadInterval(interval time.Duration) Option {
	return func(c *config) error {
		if interval <= 0 {
			return errors.NewValidationError("interval", interval, "must be positive")
		}
		c.autoReloadInterval = interval
		return nil
	}
}

// WithLanguage sets the collation language for alphabetic sorting
func WithLanguage(tag language.Tag) Option {
	return func(c *config) error {
		c.language = tag
		return nil
	}
}

// WithLogger sets the logger
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}
