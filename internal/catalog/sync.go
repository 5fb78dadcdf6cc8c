package catalog

import (
	"context"
	"time"

	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
	"github.com/dreammattress/storefront/pkg/products"
)

// Lister fetches the full product sequence from the backing API.
type Lister interface {
	List(ctx context.Context) ([]products.Product, error)
}

// Sync fetches the product list and replaces the store with it. On failure
// the store keeps what it had and the error is returned for logging.
func Sync(ctx context.Context, store *Store, lister Lister) error {
	start := time.Now()
	list, err := lister.List(ctx)
	if err != nil {
		return errors.WrapResource("fetch", "catalog", "", err)
	}
	store.Replace(list)

	logging.FromContext(ctx).Info().
		Int("products", store.Len()).
		Dur("took", time.Since(start)).
		Msg("Catalog synced")
	return nil
}
