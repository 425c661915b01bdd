package events

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/diecast/pkg/constants"
)

// Broker delivers published events to every subscriber.
type Broker struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	events      chan Event
	logger      *zerolog.Logger
}

// NewBroker creates a broker. Subscribers may be added before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		events: make(chan Event, constants.ChannelBufferSize),
		logger: logger,
	}
}

// Run delivers events until ctx is cancelled, then closes every
// subscriber.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.mu.Lock()
			for _, sub := range b.subscribers {
				_ = sub.Close()
			}
			b.subscribers = nil
			b.mu.Unlock()
			b.logger.Debug().Msg("Event broker stopped")
			return

		case event := <-b.events:
			b.mu.RLock()
			subs := make([]Subscriber, len(b.subscribers))
			copy(subs, b.subscribers)
			b.mu.RUnlock()

			for _, sub := range subs {
				if err := sub.Send(event); err != nil {
					b.logger.Warn().
						Err(err).
						Str("event_type", string(event.Type)).
						Msg("Failed to deliver event")
				}
			}
			b.logger.Debug().
				Str("event_type", string(event.Type)).
				Int("subscribers", len(subs)).
				Msg("Event delivered")
		}
	}
}

// Publish queues an event. When the queue is full the event is dropped.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}

	select {
	case b.events <- event:
	default:
		b.logger.Warn().
			Str("event_type", string(eventType)).
			Msg("Event queue full, event dropped")
	}
}

// Subscribe adds sub to the delivery list.
func (b *Broker) Subscribe(sub Subscriber) {
	b.mu.Lock()
	b.subscribers = append(b.subscribers, sub)
	n := len(b.subscribers)
	b.mu.Unlock()
	b.logger.Debug().Int("subscribers", n).Msg("Subscriber added")
}

// Unsubscribe removes and closes sub.
func (b *Broker) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subscribers {
		if s == sub {
			b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
			_ = s.Close()
			return
		}
	}
}

// SubscriberCount returns the number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
