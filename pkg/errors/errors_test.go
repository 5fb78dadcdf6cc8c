package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	pkgerrors "github.com/dreammattress/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{Resource: "product", ID: "999"}
		assert.Equal(t, "product with ID 999 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("product", "1")
		wrapped := fmt.Errorf("lookup: %w", base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("price", -1.0, "must not be negative")
		assert.Equal(t, "validation failed for field price: must not be negative", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "empty draft"}
		assert.Equal(t, "validation failed: empty draft", err.Error())
	})
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		notFound    bool
		unavailable bool
		invalid     bool
	}{
		{name: "transport failure", status: 0, unavailable: true},
		{name: "server error", status: http.StatusInternalServerError, unavailable: true},
		{name: "missing record", status: http.StatusNotFound, notFound: true},
		{name: "bad payload", status: http.StatusBadRequest, invalid: true},
		{name: "conflict", status: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pkgerrors.NewAPIError("delete", "http://localhost:5000/api/products/1", tt.status, "boom")
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
			assert.Equal(t, tt.unavailable, pkgerrors.IsBackendUnavailable(err))
			assert.Equal(t, tt.invalid, pkgerrors.IsValidationError(err))
		})
	}

	t.Run("message includes status", func(t *testing.T) {
		err := pkgerrors.NewAPIError("create", "", http.StatusBadGateway, "upstream down")
		assert.Equal(t, "product API create failed (status 502): upstream down", err.Error())
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pkgerrors.WrapAPI("list", "http://localhost:5000/api/products", cause)

		var apiErr *pkgerrors.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "list", apiErr.Operation)
		assert.Zero(t, apiErr.StatusCode)
		assert.ErrorIs(t, err, cause)
		assert.True(t, pkgerrors.IsBackendUnavailable(err))
	})
}

func TestWrapHelpersReturnNil(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapAPI("list", "", nil))
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "x", nil))
	assert.NoError(t, pkgerrors.WrapResource("fetch", "product", "1", nil))
}

func TestResourceError(t *testing.T) {
	cause := pkgerrors.NewAPIError("update", "", http.StatusNotFound, "no such product")
	err := pkgerrors.WrapResource("update", "product", "42", cause)

	assert.Equal(t, "failed to update product 42: product API update failed (status 404): no such product", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestParseError(t *testing.T) {
	err := pkgerrors.WrapParse("json", "GET /api/products", errors.New("unexpected EOF"))
	assert.Equal(t, "json parse error in GET /api/products: unexpected EOF", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := pkgerrors.WrapIO("write", "/tmp/products.db", cause)

	assert.Equal(t, "IO error during write of /tmp/products.db: permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.False(t, pkgerrors.IsNotFound(err))
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("server", "port out of range", nil)
	assert.Equal(t, "configuration error in server: port out of range", err.Error())

	var cfgErr *pkgerrors.ConfigError
	require.True(t, errors.As(fmt.Errorf("load: %w", err), &cfgErr))
	assert.Equal(t, "server", cfgErr.Component)
}
