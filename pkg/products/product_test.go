package products_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/products"
)

func TestProductID(t *testing.T) {
	tests := []struct {
		name    string
		product products.Product
		want    string
	}{
		{"store key only", products.Product{StoreID: "abc"}, "abc"},
		{"local key only", products.Product{LocalID: "1"}, "1"},
		{"store key wins", products.Product{StoreID: "abc", LocalID: "1"}, "abc"},
		{"no key", products.Product{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.ID())
		})
	}
}

func TestProductMatches(t *testing.T) {
	p := products.Product{StoreID: "abc", LocalID: "1"}
	assert.True(t, p.Matches("abc"))
	assert.True(t, p.Matches("1"))
	assert.False(t, p.Matches("2"))
	assert.False(t, p.Matches(""))
	assert.False(t, products.Product{}.Matches(""))
}

func TestUnmarshalJSON(t *testing.T) {
	t.Run("both identifier spellings", func(t *testing.T) {
		var p products.Product
		require.NoError(t, json.Unmarshal([]byte(`{"_id":"665f","id":"1","name":"Plush","price":499}`), &p))
		assert.Equal(t, "665f", p.StoreID)
		assert.Equal(t, "1", p.LocalID)
		assert.Equal(t, "665f", p.ID())
		assert.Equal(t, 499.0, p.Price)
	})

	t.Run("numeric id and string price", func(t *testing.T) {
		var p products.Product
		require.NoError(t, json.Unmarshal([]byte(`{"id":1718000000000,"name":"Firm","price":"1299.50"}`), &p))
		assert.Equal(t, "1718000000000", p.LocalID)
		assert.Equal(t, 1299.5, p.Price)
	})

	t.Run("missing sequences decode empty", func(t *testing.T) {
		var p products.Product
		require.NoError(t, json.Unmarshal([]byte(`{"id":"1","name":"Plush","images":null}`), &p))
		assert.NotNil(t, p.Images)
		assert.Empty(t, p.Images)
		assert.NotNil(t, p.Highlights)
		assert.NotNil(t, p.Features)
		assert.Equal(t, products.Specifications{}, p.Specifications)
	})

	t.Run("full record keeps order", func(t *testing.T) {
		body := `{
			"_id": "x1",
			"name": "Cloud",
			"images": ["a.jpg", "b.jpg", "c.jpg"],
			"highlights": ["Cooling", "Quiet"],
			"specifications": {"size": "Queen", "warranty": "10 years"},
			"features": [{"icon": "Shield", "label": "Durable"}]
		}`
		var p products.Product
		require.NoError(t, json.Unmarshal([]byte(body), &p))
		assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, p.Images)
		assert.Equal(t, []string{"Cooling", "Quiet"}, p.Highlights)
		assert.Equal(t, "Queen", p.Specifications.Size)
		assert.Empty(t, p.Specifications.Material)
		assert.Equal(t, []products.Feature{{Icon: "Shield", Label: "Durable"}}, p.Features)
	})

	t.Run("bad price", func(t *testing.T) {
		var p products.Product
		assert.Error(t, json.Unmarshal([]byte(`{"price":"cheap"}`), &p))
	})
}

func TestPayloadOmitsIdentifiers(t *testing.T) {
	p := products.Product{StoreID: "abc", LocalID: "1", Name: "Plush", Price: 499}
	data, err := json.Marshal(p.Payload())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.NotContains(t, fields, "_id")
	assert.NotContains(t, fields, "id")
	assert.Equal(t, "Plush", fields["name"])
	assert.Equal(t, 499.0, fields["price"])
	assert.Equal(t, []any{}, fields["images"])
}

func TestPayloadKeepsBlankSpecifications(t *testing.T) {
	p := products.Product{Name: "Plush", Specifications: products.Specifications{Material: "Latex"}}
	data, err := json.Marshal(p.Payload())
	require.NoError(t, err)

	var body struct {
		Specifications map[string]string `json:"specifications"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, map[string]string{
		"size":       "",
		"material":   "Latex",
		"firmness":   "",
		"warranty":   "",
		"dimensions": "",
	}, body.Specifications)
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "499", products.Product{Price: 499}.PriceLabel())
	assert.Equal(t, "1299.5", products.Product{Price: 1299.5}.PriceLabel())
	assert.Equal(t, "0", products.Product{}.PriceLabel())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, products.Product{Name: "Plush", Price: 0}.Validate())

	err := products.Product{Name: " ", Price: 10}.Validate()
	assert.True(t, pkgerrors.IsValidationError(err))

	err = products.Product{Name: "Plush", Price: -1}.Validate()
	assert.ErrorContains(t, err, "price")
}

func TestCloneDoesNotAlias(t *testing.T) {
	p := products.Product{Images: []string{"a"}, Highlights: []string{"x"}}
	c := p.Clone()
	c.Images[0] = "b"
	c.Highlights[0] = "y"
	assert.Equal(t, "a", p.Images[0])
	assert.Equal(t, "x", p.Highlights[0])
}

func TestGalleryImagesSkipsBlankSlots(t *testing.T) {
	p := products.Product{Images: []string{"", "a.jpg", "  ", "b.jpg"}}
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, p.GalleryImages())
}
