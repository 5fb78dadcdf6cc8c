// Package adapters connects the event broker to the realtime transports.
package adapters

import (
	"strconv"

	"github.com/dreammattress/storefront/internal/server/events"
	"github.com/dreammattress/storefront/internal/server/sse"
	ws "github.com/dreammattress/storefront/internal/server/websocket"
)

// SSE forwards broker events to every open event stream. The broker
// sequence number becomes the SSE id.
func SSE(b *sse.Broadcaster) events.Subscriber {
	return events.SubscriberFunc(func(e events.Event) {
		b.Broadcast(sse.Event{
			Event: string(e.Type),
			ID:    strconv.FormatUint(e.Seq, 10),
			Data:  e.Data,
		})
	})
}

// WebSocket forwards broker events to every connected socket.
func WebSocket(h *ws.Hub) events.Subscriber {
	return events.SubscriberFunc(func(e events.Event) {
		h.Broadcast(ws.Message{
			Seq:       e.Seq,
			Type:      string(e.Type),
			Timestamp: e.Timestamp,
			Data:      e.Data,
		})
	})
}
