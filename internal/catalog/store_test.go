package catalog_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreammattress/storefront/internal/catalog"
	"github.com/dreammattress/storefront/pkg/products"
)

func sample() []products.Product {
	return []products.Product{
		{LocalID: "1", Name: "Plush", Price: 499},
		{StoreID: "abc", LocalID: "2", Name: "Firm", Price: 799},
	}
}

func TestNewStoreIsEmpty(t *testing.T) {
	s := catalog.New()
	assert.Equal(t, 0, s.Len())
	assert.NotNil(t, s.Get())
	assert.False(t, s.Loaded())
}

func TestReplaceAndFind(t *testing.T) {
	s := catalog.New()
	s.Replace(sample())

	assert.True(t, s.Loaded())
	assert.Equal(t, 2, s.Len())

	for _, p := range sample() {
		for _, id := range []string{p.StoreID, p.LocalID} {
			if id == "" {
				continue
			}
			got, ok := s.Find(id)
			require.True(t, ok, "id %s", id)
			assert.Equal(t, p.Name, got.Name)
		}
	}

	_, ok := s.Find("999")
	assert.False(t, ok)
}

func TestGetReturnsCopy(t *testing.T) {
	s := catalog.New(catalog.WithProducts(sample()))
	list := s.Get()
	list[0].Name = "Changed"
	assert.Equal(t, "Plush", s.Get()[0].Name)
}

func TestReplaceKeepsFirstDuplicate(t *testing.T) {
	s := catalog.New()
	s.Replace([]products.Product{
		{StoreID: "a", Name: "one"},
		{StoreID: "a", Name: "two"},
	})
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "one", s.Get()[0].Name)
}

func TestHooks(t *testing.T) {
	s := catalog.New(catalog.WithProducts(sample()))

	var replaced int
	var added, updated, removed []string
	s.OnReplace(func(list []products.Product) { replaced = len(list) })
	s.OnProductAdded(func(p products.Product) { added = append(added, p.ID()) })
	s.OnProductUpdated(func(_, p products.Product) { updated = append(updated, p.ID()) })
	s.OnProductRemoved(func(p products.Product) { removed = append(removed, p.ID()) })

	next := []products.Product{
		{LocalID: "1", Name: "Plush", Price: 549},
		{StoreID: "new", Name: "Hybrid"},
	}
	s.Replace(next)

	assert.Equal(t, 2, replaced)
	assert.Equal(t, []string{"new"}, added)
	assert.Equal(t, []string{"1"}, updated)
	assert.Equal(t, []string{"abc"}, removed)
}

func TestConcurrentAccess(t *testing.T) {
	s := catalog.New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Replace(sample())
		}()
		go func() {
			defer wg.Done()
			_ = s.Get()
			_, _ = s.Find("abc")
		}()
	}
	wg.Wait()
	assert.Equal(t, 2, s.Len())
}
