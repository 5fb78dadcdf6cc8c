package productapi

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/products"
)

// Memory is an in-process API used by tests and local previews. It assigns
// sequential store keys and counts calls per operation.
type Memory struct {
	mu       sync.Mutex
	products []products.Product
	nextID   int
	calls    map[string]int
	failures map[string]error
}

var _ API = (*Memory)(nil)

// NewMemory creates a Memory API seeded with list.
func NewMemory(list ...products.Product) *Memory {
	return &Memory{
		products: products.Clone(list),
		nextID:   1,
		calls:    make(map[string]int),
		failures: make(map[string]error),
	}
}

// FailWith makes every later call of operation return err. A nil err clears it.
func (m *Memory) FailWith(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, operation)
		return
	}
	m.failures[operation] = err
}

// Calls returns how many times operation was invoked.
func (m *Memory) Calls(operation string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[operation]
}

// TotalCalls returns the number of calls across all operations.
func (m *Memory) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// Set replaces the stored records, as if another client had written them.
func (m *Memory) Set(list []products.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = products.Clone(list)
}

func (m *Memory) begin(operation string) error {
	m.calls[operation]++
	return m.failures[operation]
}

// List implements API.
func (m *Memory) List(_ context.Context) ([]products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("list"); err != nil {
		return nil, err
	}
	return products.Clone(m.products), nil
}

// Create implements API.
func (m *Memory) Create(_ context.Context, p products.Product) (products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("create"); err != nil {
		return products.Product{}, err
	}

	saved := p.Clone().WithDefaults()
	saved.LocalID = ""
	saved.StoreID = "mem-" + strconv.Itoa(m.nextID)
	m.nextID++
	m.products = append(m.products, saved)
	return saved.Clone(), nil
}

// Update implements API.
func (m *Memory) Update(_ context.Context, id string, p products.Product) (products.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("update"); err != nil {
		return products.Product{}, err
	}

	for i, existing := range m.products {
		if existing.Matches(id) {
			saved := p.Clone().WithDefaults()
			saved.StoreID = existing.StoreID
			saved.LocalID = existing.LocalID
			m.products[i] = saved
			return saved.Clone(), nil
		}
	}
	return products.Product{}, errors.NewAPIError("update", id, http.StatusNotFound, "Product not found")
}

// Delete implements API.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.begin("delete"); err != nil {
		return err
	}

	for i, existing := range m.products {
		if existing.Matches(id) {
			m.products = append(m.products[:i:i], m.products[i+1:]...)
			return nil
		}
	}
	return errors.NewAPIError("delete", id, http.StatusNotFound, "Product not found")
}
