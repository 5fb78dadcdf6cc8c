package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreammattress/storefront/pkg/products"
)

func sample() []products.Product {
	return []products.Product{
		{
			StoreID:     "abc",
			Name:        "Plush",
			Price:       499,
			Description: "Soft",
			Images:      []string{"/a.jpg", "/b.jpg"},
			Features:    []products.Feature{{Icon: "Moon", Label: "Trial"}, {Label: "Warranty"}},
			Specifications: products.Specifications{
				Firmness: "Medium",
			},
		},
	}
}

func TestProductsData(t *testing.T) {
	d := ProductsData(sample(), false)
	assert.Equal(t, []string{"id", "name", "price", "description"}, d.Headers)
	assert.Equal(t, [][]string{{"abc", "Plush", "$499", "Soft"}}, d.Rows)

	wide := ProductsData(sample(), true)
	require.Len(t, wide.Rows, 1)
	assert.Equal(t, []string{"abc", "Plush", "$499", "Soft", "2", "Trial, Warranty", "N/A", "Medium"}, wide.Rows[0])
	assert.Len(t, wide.Align, len(wide.Headers))
}

func TestWriteProducts(t *testing.T) {
	tests := []struct {
		format Format
		check  func(t *testing.T, out string)
	}{
		{format: FormatTable, check: func(t *testing.T, out string) {
			assert.Contains(t, out, "Plush")
			assert.Contains(t, strings.ToUpper(out), "DESCRIPTION")
		}},
		{format: FormatJSON, check: func(t *testing.T, out string) {
			var got []products.Product
			require.NoError(t, json.Unmarshal([]byte(out), &got))
			assert.Equal(t, "abc", got[0].StoreID)
		}},
		{format: FormatYAML, check: func(t *testing.T, out string) {
			var got []map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))
			assert.Equal(t, "Plush", got[0]["name"])
		}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteProducts(&buf, sample(), tt.format))
			tt.check(t, buf.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestHeader(t *testing.T) {
	assert.Equal(t, "Main Image", Header("main_image"))
	assert.Equal(t, "Id", Header("id"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
