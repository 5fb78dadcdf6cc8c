package events

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

const queueSize = 256

// Broker numbers catalog events and hands them, in publish order, to every
// named subscriber. Publishing never blocks the catalog writer; when the
// queue is full the event is dropped and logged.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]Subscriber
	queue  chan Event
	seq    atomic.Uint64
	logger *zerolog.Logger
	now    func() time.Time
}

// NewBroker creates a broker. Subscribers may be added before Run.
func NewBroker(logger *zerolog.Logger) *Broker {
	return &Broker{
		subs:   make(map[string]Subscriber),
		queue:  make(chan Event, queueSize),
		logger: logger,
		now:    time.Now,
	}
}

// Subscribe adds sub under name, replacing any subscriber already there.
func (b *Broker) Subscribe(name string, sub Subscriber) {
	b.mu.Lock()
	b.subs[name] = sub
	total := len(b.subs)
	b.mu.Unlock()
	b.logger.Debug().Str("subscriber", name).Int("total_subscribers", total).Msg("Subscriber registered")
}

// Unsubscribe removes the subscriber registered under name.
func (b *Broker) Unsubscribe(name string) {
	b.mu.Lock()
	delete(b.subs, name)
	b.mu.Unlock()
}

// SubscriberCount returns the number of subscribers.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish stamps and queues an event.
func (b *Broker) Publish(eventType EventType, data any) {
	event := Event{
		Seq:       b.seq.Add(1),
		Type:      eventType,
		Timestamp: b.now().UTC(),
		Data:      data,
	}
	select {
	case b.queue <- event:
	default:
		b.logger.Warn().
			Uint64("seq", event.Seq).
			Str("event_type", string(eventType)).
			Msg("Event queue full, event dropped")
	}
}

// Run delivers queued events until ctx is canceled. Events still queued at
// cancellation are discarded.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("Event broker shut down")
			return
		case event := <-b.queue:
			b.deliver(event)
		}
	}
}

// deliver fans out in subscriber-name order so transports see events in a
// stable sequence.
func (b *Broker) deliver(event Event) {
	b.mu.RLock()
	names := make([]string, 0, len(b.subs))
	for name := range b.subs {
		names = append(names, name)
	}
	sort.Strings(names)
	subs := make([]Subscriber, len(names))
	for i, name := range names {
		subs[i] = b.subs[name]
	}
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.Deliver(event)
	}
	b.logger.Debug().
		Uint64("seq", event.Seq).
		Str("event_type", string(event.Type)).
		Int("subscribers", len(subs)).
		Msg("Event delivered")
}
