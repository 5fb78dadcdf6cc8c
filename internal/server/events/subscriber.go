package events

// Subscriber receives every published event. Deliver runs on the broker's
// goroutine and must not block.
type Subscriber interface {
	Deliver(Event)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(Event)

// Deliver calls f(e).
func (f SubscriberFunc) Deliver(e Event) { f(e) }
