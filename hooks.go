package diecast

import (
	"sync"

	"github.com/agentstation/diecast/pkg/catalogs"
)

// ChangeType names a collection mutation.
type ChangeType string

// Collection change types.
const (
	ChangeOwned         ChangeType = "owned"
	ChangeUnowned       ChangeType = "unowned"
	ChangeQuantity      ChangeType = "quantity"
	ChangeWantedAdded   ChangeType = "wanted_added"
	ChangeWantedRemoved ChangeType = "wanted_removed"
	ChangeImported      ChangeType = "imported"
)

// CollectionEvent describes one collection mutation.
type CollectionEvent struct {
	Type     ChangeType `json:"type"`
	Image    string     `json:"image,omitempty"`
	Quantity int        `json:"quantity"`
}

// Hook function types for garage events
type (
	// CatalogReloadedHook is called after the catalog is replaced
	CatalogReloadedHook func(old, new catalogs.Catalog)

	// CollectionChangedHook is called after the owned or wanted list changes
	CollectionChangedHook func(event CollectionEvent)
)

// hooks manages event callbacks
type hooks struct {
	mu                  sync.RWMutex
	onCatalogReloaded   []CatalogReloadedHook
	onCollectionChanged []CollectionChangedHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnCatalogReloaded registers a callback for catalog reloads
func (h *hooks) OnCatalogReloaded(fn CatalogReloadedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCatalogReloaded = append(h.onCatalogReloaded, fn)
}

// OnCollectionChanged registers a callback for collection mutations
func (h *hooks) OnCollectionChanged(fn CollectionChangedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCollectionChanged = append(h.onCollectionChanged, fn)
}

func (h *hooks) triggerCatalogReloaded(old, new catalogs.Catalog) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onCatalogReloaded {
		hook(old, new)
	}
}

func (h *hooks) triggerCollectionChanged(event CollectionEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onCollectionChanged {
		hook(event)
	}
}
