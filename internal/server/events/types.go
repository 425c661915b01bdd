// Package events fans garage hook callbacks out to the live update
// transports (WebSocket and SSE) through one broker.
package events

import "time"

// EventType names a collection or catalog event.
type EventType string

// Event types published by the server.
const (
	// Collection events (from Garage.OnCollectionChanged).
	CarOwned           EventType = "car.owned"
	CarUnowned         EventType = "car.unowned"
	CarQuantity        EventType = "car.quantity"
	WantedAdded        EventType = "wanted.added"
	WantedRemoved      EventType = "wanted.removed"
	CollectionImported EventType = "collection.imported"

	// Catalog events (from Garage.OnCatalogReloaded).
	CatalogReloaded EventType = "catalog.reloaded"

	// Client events (from transport layers).
	ClientConnected EventType = "client.connected"
)

// Event is one published change.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}
