// Package adapters connects the event broker to the live update
// transports.
package adapters

import (
	"github.com/agentstation/diecast/internal/server/events"
	ws "github.com/agentstation/diecast/internal/server/websocket"
)

var (
	_ events.Subscriber = (*WebSocketSubscriber)(nil)
	_ events.Subscriber = (*SSESubscriber)(nil)
)

// WebSocketSubscriber forwards events to every WebSocket client.
type WebSocketSubscriber struct {
	hub *ws.Hub
}

// NewWebSocketSubscriber creates a subscriber for hub.
func NewWebSocketSubscriber(hub *ws.Hub) *WebSocketSubscriber {
	return &WebSocketSubscriber{hub: hub}
}

// Send queues event on the hub.
func (w *WebSocketSubscriber) Send(event events.Event) error {
	w.hub.Broadcast(ws.Message{
		Type:      string(event.Type),
		Timestamp: event.Timestamp,
		Data:      event.Data,
	})
	return nil
}

// Close does nothing; the hub stops with the server context.
func (w *WebSocketSubscriber) Close() error { return nil }
