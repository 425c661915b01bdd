// Package diecast tracks a personal toy car collection against a
// read-only catalog of yearly cases.
//
// A Garage owns the loaded catalog and the collection store. Every
// search or list view re-reads the collection, filters the catalog
// through the facet engine, groups the survivors, and projects each
// car's ownership and hunt status:
//
//	g, err := diecast.New(ctx)
//	res, err := g.Search(ctx, diecast.SearchRequest{Query: "s-j-imports", GroupBy: grouping.ByCase})
//	for _, group := range res.Groups { ... }
package diecast

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/diecast/internal/embedded"
	"github.com/agentstation/diecast/pkg/catalogs"
	"github.com/agentstation/diecast/pkg/collection"
	"github.com/agentstation/diecast/pkg/collection/memory"
	"github.com/agentstation/diecast/pkg/constants"
	"github.com/agentstation/diecast/pkg/errors"
	"github.com/agentstation/diecast/pkg/logging"
)

// Garage is the collection tracker.
type Garage struct {
	mu      sync.RWMutex
	catalog catalogs.Catalog

	source catalogs.Source
	store  *collection.Store
	config *config
	logger *zerolog.Logger
	hooks  *hooks

	reloadMu     sync.Mutex
	reloadTicker *time.Ticker
	stopCh       chan struct{}
}

// New creates a Garage. Without options it serves the embedded sample
// catalog and keeps the collection in memory.
func New(ctx context.Context, opts ...Option) (*Garage, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errors.WrapValidation("option", err)
		}
	}

	g := &Garage{
		config: cfg,
		hooks:  newHooks(),
		logger: cfg.logger,
	}
	if g.logger == nil {
		g.logger = logging.FromContext(ctx)
	}

	g.source = cfg.source
	if g.source == nil && cfg.initialCatalog == nil {
		g.source = embedded.Source()
	}

	store, err := g.newStore()
	if err != nil {
		return nil, err
	}
	g.store = store

	if cfg.initialCatalog != nil {
		g.catalog = cfg.initialCatalog
	} else {
		loadCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
		defer cancel()
		c, err := g.source.Load(loadCtx)
		if err != nil {
			return nil, errors.WrapResource("load", "catalog", g.source.Name(), err)
		}
		g.catalog = c
	}

	g.logger.Debug().
		Int("cars", g.catalog.Len()).
		Strs("years", g.catalog.Years()).
		Msg("Catalog ready")

	if cfg.autoReloadEnabled {
		if err := g.AutoReloadOn(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (g *Garage) newStore() (*collection.Store, error) {
	if g.config.store != nil {
		return g.config.store, nil
	}
	backend := g.config.backend
	if backend == nil {
		mem, err := memory.New()
		if err != nil {
			return nil, err
		}
		backend = mem
	}
	return collection.New(backend, collection.WithLogger(g.logger))
}

// Catalog returns the current catalog. Callers must not modify it.
func (g *Garage) Catalog() catalogs.Catalog {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.catalog
}

// Store returns the collection store.
func (g *Garage) Store() *collection.Store {
	return g.store
}

// OnCatalogReloaded registers a callback for catalog reloads.
func (g *Garage) OnCatalogReloaded(fn CatalogReloadedHook) {
	g.hooks.OnCatalogReloaded(fn)
}

// OnCollectionChanged registers a callback for collection mutations.
func (g *Garage) OnCollectionChanged(fn CollectionChangedHook) {
	g.hooks.OnCollectionChanged(fn)
}

// Reload loads the catalog again from its source. A garage built from
// a fixed catalog without a source has nothing to reload from.
func (g *Garage) Reload(ctx context.Context) error {
	if g.source == nil {
		return errors.NewConfigError("catalog", "no source to reload from", errors.ErrReadOnly)
	}

	ctx = logging.WithOperation(ctx, "reload")
	loadCtx, cancel := context.WithTimeout(ctx, constants.DefaultTimeout)
	defer cancel()

	next, err := g.source.Load(loadCtx)
	if err != nil {
		return errors.WrapResource("load", "catalog", g.source.Name(), err)
	}

	g.mu.Lock()
	old := g.catalog
	g.catalog = next
	g.mu.Unlock()

	g.logger.Info().
		Str("source", g.source.Name()).
		Int("cars", next.Len()).
		Msg("Catalog reloaded")
	g.hooks.triggerCatalogReloaded(old, next)
	return nil
}

// AutoReloadOn starts periodic reloads.
func (g *Garage) AutoReloadOn() error {
	if g.source == nil {
		return errors.NewConfigError("catalog", "auto reload needs a source", nil)
	}

	g.reloadMu.Lock()
	defer g.reloadMu.Unlock()
	if g.reloadTicker != nil {
		return nil
	}

	ticker := time.NewTicker(g.config.autoReloadInterval)
	stop := make(chan struct{})
	g.reloadTicker = ticker
	g.stopCh = stop

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := g.Reload(context.Background()); err != nil {
					g.logger.Warn().Err(err).Msg("Automatic catalog reload failed")
				}
			case <-stop:
				return
			}
		}
	}()
	return nil
}

// AutoReloadOff stops periodic reloads.
func (g *Garage) AutoReloadOff() {
	g.reloadMu.Lock()
	defer g.reloadMu.Unlock()
	if g.reloadTicker == nil {
		return
	}
	g.reloadTicker.Stop()
	close(g.stopCh)
	g.reloadTicker = nil
}

// Close releases background resources.
func (g *Garage) Close() error {
	g.AutoReloadOff()
	return nil
}
