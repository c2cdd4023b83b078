package events

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is a named payload pushed to stream subscribers. An empty Name is sent as an
// unnamed event.
type Event struct {
	Name string
	Data any
}

// Subscription is one listener's view of the broker.
type Subscription struct {
	ID string
	C  <-chan Event

	ch chan Event
}

// Broker fans published events out to the current subscribers. Delivery is
// fire-and-forget: events are dropped for subscribers whose buffer is full and
// are not retained when nobody is listening.
type Broker struct {
	mu         sync.RWMutex
	subs       map[string]*Subscription
	bufferSize int
	logger     *zap.Logger
}

// NewBroker returns a broker whose subscribers buffer up to bufferSize events.
func NewBroker(bufferSize int, logger *zap.Logger) *Broker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Broker{
		subs:       make(map[string]*Subscription),
		bufferSize: bufferSize,
		logger:     logger,
	}
}

// Subscribe registers a new listener.
func (b *Broker) Subscribe() *Subscription {
	ch := make(chan Event, b.bufferSize)
	sub := &Subscription{ID: uuid.NewString(), C: ch, ch: ch}

	b.mu.Lock()
	b.subs[sub.ID] = sub
	count := len(b.subs)
	b.mu.Unlock()

	b.logger.Debug("subscriber added", zap.String("subscriber_id", sub.ID), zap.Int("subscribers", count))
	return sub
}

// Unsubscribe removes the listener and closes its channel. Calling it twice is safe.
func (b *Broker) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	_, ok := b.subs[sub.ID]
	if ok {
		delete(b.subs, sub.ID)
		close(sub.ch)
	}
	count := len(b.subs)
	b.mu.Unlock()

	if ok {
		b.logger.Debug("subscriber removed", zap.String("subscriber_id", sub.ID), zap.Int("subscribers", count))
	}
}

// Publish delivers evt to every subscriber without blocking and returns how many
// subscribers received it.
func (b *Broker) Publish(evt Event) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	delivered := 0
	for id, sub := range b.subs {
		select {
		case sub.ch <- evt:
			delivered++
		default:
			b.logger.Warn("subscriber buffer full, dropping event",
				zap.String("subscriber_id", id),
				zap.String("event", evt.Name))
		}
	}
	return delivered
}

// Subscribers returns the number of connected listeners.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
