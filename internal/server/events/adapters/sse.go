package adapters

import (
	"strconv"

	"github.com/agentstation/diecast/internal/server/events"
	"github.com/agentstation/diecast/internal/server/sse"
)

// SSESubscriber forwards events to every SSE stream.
type SSESubscriber struct {
	broadcaster *sse.Broadcaster
}

// NewSSESubscriber creates a subscriber for broadcaster.
func NewSSESubscriber(broadcaster *sse.Broadcaster) *SSESubscriber {
	return &SSESubscriber{broadcaster: broadcaster}
}

// Send queues event on the broadcaster.
func (s *SSESubscriber) Send(event events.Event) error {
	s.broadcaster.Broadcast(sse.Event{
		Event: string(event.Type),
		ID:    strconv.FormatInt(event.Timestamp.UnixNano(), 10),
		Data:  event.Data,
	})
	return nil
}

// Close does nothing; the broadcaster stops with the server context.
func (s *SSESubscriber) Close() error { return nil }
