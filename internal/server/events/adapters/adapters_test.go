package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/diecast/internal/server/events"
	"github.com/agentstation/diecast/internal/server/sse"
	ws "github.com/agentstation/diecast/internal/server/websocket"
	"github.com/agentstation/diecast/pkg/logging"
)

func TestSubscribersForward(t *testing.T) {
	logger := logging.NewNopLogger()
	hub := ws.NewHub(logger)
	broadcaster := sse.NewBroadcaster(logger)

	subs := []events.Subscriber{
		NewWebSocketSubscriber(hub),
		NewSSESubscriber(broadcaster),
	}

	event := events.Event{
		Type:      events.WantedAdded,
		Timestamp: time.Now(),
		Data:      map[string]any{"image": "2024-sth.png"},
	}
	for _, sub := range subs {
		assert.NoError(t, sub.Send(event))
		assert.NoError(t, sub.Close())
	}

	assert.Equal(t, 1, hub.Pending())
	assert.Equal(t, 1, broadcaster.Pending())
}
