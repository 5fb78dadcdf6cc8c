// Package events fans catalog changes out to realtime transports.
//
// The catalog store hooks publish into a Broker, which forwards every event
// to its subscribers (the SSE broadcaster and the WebSocket hub) so open
// storefront pages can refresh when an admin edits the product list.
package events

import "time"

// EventType represents the type of catalog event.
type EventType string

// Event types for catalog changes.
const (
	// Product events, derived from the diff of each catalog replace.
	ProductAdded   EventType = "product.added"
	ProductUpdated EventType = "product.updated"
	ProductDeleted EventType = "product.deleted"

	// CatalogReplaced is published once per replace with the new size.
	CatalogReplaced EventType = "catalog.replaced"

	// ClientConnected is sent by transports when a client attaches.
	ClientConnected EventType = "client.connected"
)

// Event is one catalog change. Seq increases by one per published event
// and lets clients notice drops.
type Event struct {
	Seq       uint64    `json:"seq"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// ProductRef is the payload of product events. Full records are not sent
// because inline images can make them very large.
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CatalogSummary is the payload of CatalogReplaced.
type CatalogSummary struct {
	Count int `json:"count"`
}
