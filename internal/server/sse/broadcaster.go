// Package sse streams collection and catalog changes as Server-Sent
// Events.
package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/diecast/pkg/constants"
)

// Event is one SSE frame.
type Event struct {
	Event string `json:"event,omitempty"`
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
}

// Broadcaster tracks open streams and fans events out to them.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Event]bool
	events  chan Event
	logger  *zerolog.Logger
}

// NewBroadcaster creates a broadcaster. Call Run to start delivery.
func NewBroadcaster(logger *zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan Event]bool),
		events:  make(chan Event, constants.ChannelBufferSize),
		logger:  logger,
	}
}

// Run delivers events until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for client := range b.clients {
				close(client)
				delete(b.clients, client)
			}
			b.mu.Unlock()
			b.logger.Debug().Msg("SSE broadcaster stopped")
			return

		case event := <-b.events:
			b.mu.RLock()
			for client := range b.clients {
				select {
				case client <- event:
				default:
					b.logger.Warn().Str("event", event.Event).Msg("SSE client behind, event skipped")
				}
			}
			b.mu.RUnlock()
		}
	}
}

// Broadcast queues event for every stream. When the queue is full the
// event is dropped.
func (b *Broadcaster) Broadcast(event Event) {
	select {
	case b.events <- event:
	default:
		b.logger.Warn().Str("event", event.Event).Msg("SSE queue full, event dropped")
	}
}

// Pending returns the number of queued events.
func (b *Broadcaster) Pending() int {
	return len(b.events)
}

// ClientCount returns the number of open streams.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

func (b *Broadcaster) add() chan Event {
	client := make(chan Event, constants.ChannelBufferSize)
	b.mu.Lock()
	b.clients[client] = true
	n := len(b.clients)
	b.mu.Unlock()
	b.logger.Info().Int("clients", n).Msg("SSE client connected")
	return client
}

func (b *Broadcaster) remove(client chan Event) {
	b.mu.Lock()
	if b.clients[client] {
		delete(b.clients, client)
		close(client)
	}
	n := len(b.clients)
	b.mu.Unlock()
	b.logger.Info().Int("clients", n).Msg("SSE client disconnected")
}

// ServeHTTP streams events to one client until it disconnects.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	client := b.add()
	defer b.remove(client)

	b.write(w, flusher, Event{
		Event: "connected",
		Data:  map[string]any{"timestamp": time.Now()},
	})

	for {
		select {
		case event, ok := <-client:
			if !ok {
				return
			}
			b.write(w, flusher, event)
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) write(w http.ResponseWriter, flusher http.Flusher, event Event) {
	data, err := json.Marshal(event.Data)
	if err != nil {
		b.logger.Error().Err(err).Str("event", event.Event).Msg("Failed to encode SSE event")
		return
	}
	if event.Event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", event.Event)
	}
	if event.ID != "" {
		_, _ = fmt.Fprintf(w, "id: %s\n", event.ID)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
