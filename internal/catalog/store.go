// Package catalog holds the in-memory product list shared by every page.
//
// The Store is the single source of truth for views. It is filled once from
// the product API at startup and afterwards written only through Replace,
// which swaps the whole sequence atomically and notifies registered hooks.
package catalog

import (
	"sync"

	"github.com/dreammattress/storefront/pkg/products"
)

// Reader is the read view handed to page handlers.
type Reader interface {
	Get() []products.Product
	Find(id string) (products.Product, bool)
	Len() int
}

// Store is a concurrency safe ordered list of products.
type Store struct {
	mu       sync.RWMutex
	products []products.Product
	loaded   bool
	hooks    *hooks
}

// Option configures a Store.
type Option func(*Store)

// WithProducts seeds the store without firing hooks.
func WithProducts(list []products.Product) Option {
	return func(s *Store) {
		s.products = products.Unique(products.Clone(list))
		s.loaded = true
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		products: []products.Product{},
		hooks:    newHooks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns a copy of the current sequence in store order.
func (s *Store) Get() []products.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return products.Clone(s.products)
}

// Find looks a product up by either identifier field.
func (s *Store) Find(id string) (products.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := products.Find(s.products, id)
	if !ok {
		return products.Product{}, false
	}
	return p.Clone(), true
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Loaded reports whether the store has been replaced at least once.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Replace swaps in a new sequence. Duplicate identifiers keep their first
// occurrence. Hooks run after the lock is released.
func (s *Store) Replace(list []products.Product) {
	next := products.Unique(products.Clone(list))

	s.mu.Lock()
	prev := s.products
	s.products = next
	s.loaded = true
	s.mu.Unlock()

	s.hooks.trigger(prev, products.Clone(next))
}

// OnReplace registers a callback receiving the new sequence after every Replace.
func (s *Store) OnReplace(fn ReplaceHook) {
	s.hooks.OnReplace(fn)
}

// OnProductAdded registers a callback for records that appear after a Replace.
func (s *Store) OnProductAdded(fn ProductAddedHook) {
	s.hooks.OnProductAdded(fn)
}

// OnProductUpdated registers a callback for records whose content changed.
func (s *Store) OnProductUpdated(fn ProductUpdatedHook) {
	s.hooks.OnProductUpdated(fn)
}

// OnProductRemoved registers a callback for records that disappear.
func (s *Store) OnProductRemoved(fn ProductRemovedHook) {
	s.hooks.OnProductRemoved(fn)
}
