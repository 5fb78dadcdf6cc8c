package products_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dreammattress/storefront/pkg/products"
)

func TestFind(t *testing.T) {
	list := []products.Product{
		{LocalID: "1", Name: "Plush"},
		{StoreID: "abc", LocalID: "2", Name: "Firm"},
	}

	p, ok := products.Find(list, "abc")
	assert.True(t, ok)
	assert.Equal(t, "Firm", p.Name)

	p, ok = products.Find(list, "2")
	assert.True(t, ok)
	assert.Equal(t, "Firm", p.Name)

	_, ok = products.Find(list, "999")
	assert.False(t, ok)
}

func TestAppendDoesNotMutate(t *testing.T) {
	list := make([]products.Product, 1, 4)
	list[0] = products.Product{LocalID: "1"}

	out := products.Append(list, products.Product{StoreID: "new"})
	assert.Len(t, out, 2)
	assert.Len(t, list, 1)
	assert.Equal(t, "new", out[1].StoreID)
}

func TestReplaceMatching(t *testing.T) {
	list := []products.Product{
		{LocalID: "1", Name: "Plush"},
		{StoreID: "abc", Name: "Firm"},
	}

	t.Run("match on store key", func(t *testing.T) {
		out := products.ReplaceMatching(list, products.Product{StoreID: "abc", Name: "Firmer"})
		assert.Equal(t, "Plush", out[0].Name)
		assert.Equal(t, "Firmer", out[1].Name)
		assert.Equal(t, "Firm", list[1].Name)
	})

	t.Run("match on legacy key", func(t *testing.T) {
		out := products.ReplaceMatching(list, products.Product{StoreID: "zzz", LocalID: "1", Name: "Plusher"})
		assert.Equal(t, "Plusher", out[0].Name)
	})

	t.Run("no match leaves list", func(t *testing.T) {
		out := products.ReplaceMatching(list, products.Product{StoreID: "nope"})
		assert.Equal(t, list, out)
	})
}

func TestUnique(t *testing.T) {
	list := []products.Product{
		{StoreID: "a", Name: "first"},
		{LocalID: "b"},
		{StoreID: "a", Name: "second"},
		{Name: "no id"},
		{Name: "no id either"},
	}
	out := products.Unique(list)
	assert.Len(t, out, 4)
	assert.Equal(t, "first", out[0].Name)
}
