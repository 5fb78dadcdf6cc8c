package productapi_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreammattress/storefront/internal/productapi"
	pkgerrors "github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/products"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"1","name":"Plush","price":499},{"_id":"abc","name":"Firm","price":799}]`))
	}))
	defer srv.Close()

	list, err := productapi.New(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Plush", list[0].Name)
	assert.Equal(t, "abc", list[1].ID())
}

func TestListNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	list, err := productapi.New(srv.URL).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := productapi.New(url).List(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsBackendUnavailable(err))
}

func TestCreateSendsNoIdentifiers(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id":"new-1","name":"Hybrid","price":999}`))
	}))
	defer srv.Close()

	draft := products.Product{LocalID: "1718000000000", Name: "Hybrid", Price: 999}
	saved, err := productapi.New(srv.URL).Create(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "new-1", saved.ID())
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "_id")
	assert.Equal(t, "Hybrid", body["name"])
}

func TestUpdateAddressesID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/products/abc", r.URL.Path)
		_, _ = w.Write([]byte(`{"_id":"abc","name":"Firmer","price":850}`))
	}))
	defer srv.Close()

	saved, err := productapi.New(srv.URL+"/").Update(context.Background(), "abc", products.Product{Name: "Firmer", Price: 850})
	require.NoError(t, err)
	assert.Equal(t, "Firmer", saved.Name)
}

func TestUpdateSendsFullSpecifications(t *testing.T) {
	var body struct {
		Specifications map[string]string `json:"specifications"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		data, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(data, &body))
		_, _ = w.Write([]byte(`{"_id":"abc","name":"Plush","price":499}`))
	}))
	defer srv.Close()

	edited := products.Product{StoreID: "abc", Name: "Plush", Price: 499,
		Specifications: products.Specifications{Size: "Queen"}}
	_, err := productapi.New(srv.URL).Update(context.Background(), "abc", edited)
	require.NoError(t, err)

	require.Len(t, body.Specifications, 5)
	assert.Equal(t, "Queen", body.Specifications["size"])
	for _, key := range []string{"material", "firmness", "warranty", "dimensions"} {
		v, ok := body.Specifications[key]
		assert.True(t, ok, key)
		assert.Empty(t, v, key)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	_, err := productapi.New("http://localhost:1").Update(context.Background(), "", products.Product{})
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr bool
	}{
		{"ok", http.StatusOK, `{"message":"deleted"}`, false},
		{"no content", http.StatusNoContent, "", false},
		{"missing", http.StatusNotFound, "Product not found", true},
		{"server error", http.StatusInternalServerError, "db down", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/products/1", r.URL.Path)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := productapi.New(srv.URL).Delete(context.Background(), "1")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var apiErr *pkgerrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.body, apiErr.Message)
		})
	}
}

func TestDefaultBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000", productapi.New("").BaseURL())
}
