package catalog

import (
	"reflect"
	"sync"

	"github.com/dreammattress/storefront/pkg/products"
)

// Hook function types for catalog changes
type (
	// ReplaceHook is called with the full sequence after a Replace
	ReplaceHook func(list []products.Product)

	// ProductAddedHook is called when a record appears
	ProductAddedHook func(p products.Product)

	// ProductUpdatedHook is called when a record's content changes
	ProductUpdatedHook func(old, new products.Product)

	// ProductRemovedHook is called when a record disappears
	ProductRemovedHook func(p products.Product)
)

type hooks struct {
	mu               sync.RWMutex
	onReplace        []ReplaceHook
	onProductAdded   []ProductAddedHook
	onProductUpdated []ProductUpdatedHook
	onProductRemoved []ProductRemovedHook
}

func newHooks() *hooks {
	return &hooks{}
}

func (h *hooks) OnReplace(fn ReplaceHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReplace = append(h.onReplace, fn)
}

func (h *hooks) OnProductAdded(fn ProductAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProductAdded = append(h.onProductAdded, fn)
}

func (h *hooks) OnProductUpdated(fn ProductUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProductUpdated = append(h.onProductUpdated, fn)
}

func (h *hooks) OnProductRemoved(fn ProductRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onProductRemoved = append(h.onProductRemoved, fn)
}

// trigger diffs the old and new sequences by resolved identifier.
// Records without an identifier cannot be tracked and only reach ReplaceHooks.
func (h *hooks) trigger(prev, next []products.Product) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, hook := range h.onReplace {
		hook(next)
	}

	oldByID := make(map[string]products.Product, len(prev))
	for _, p := range prev {
		if id := p.ID(); id != "" {
			oldByID[id] = p
		}
	}
	newByID := make(map[string]products.Product, len(next))
	for _, p := range next {
		if id := p.ID(); id != "" {
			newByID[id] = p
		}
	}

	for _, p := range next {
		id := p.ID()
		if id == "" {
			continue
		}
		old, exists := oldByID[id]
		switch {
		case !exists:
			for _, hook := range h.onProductAdded {
				hook(p)
			}
		case !reflect.DeepEqual(old, p):
			for _, hook := range h.onProductUpdated {
				hook(old, p)
			}
		}
	}

	for _, p := range prev {
		id := p.ID()
		if id == "" {
			continue
		}
		if _, exists := newByID[id]; !exists {
			for _, hook := range h.onProductRemoved {
				hook(p)
			}
		}
	}
}
