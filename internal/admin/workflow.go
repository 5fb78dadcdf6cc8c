package admin

import (
	"context"
	"time"

	"github.com/dreammattress/storefront/internal/productapi"
	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/logging"
	"github.com/dreammattress/storefront/pkg/products"
)

// Mutator is the catalog surface the workflow writes through.
type Mutator interface {
	Get() []products.Product
	Replace(list []products.Product)
}

// Workflow runs create, edit and delete against the product API and, only
// after a successful write, updates the catalog. It is the sole writer of
// the catalog besides the startup load.
//
// Create appends the returned record and edit patches it in place, while
// delete re-fetches the whole list. No call is retried.
type Workflow struct {
	api   productapi.API
	store Mutator
	now   func() time.Time
}

// WorkflowOption configures a Workflow.
type WorkflowOption func(*Workflow)

// WithClock overrides the time source used for notices.
func WithClock(now func() time.Time) WorkflowOption {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

// NewWorkflow creates a workflow writing to api and store.
func NewWorkflow(api productapi.API, store Mutator, opts ...WorkflowOption) *Workflow {
	w := &Workflow{api: api, store: store, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Now returns the workflow clock's current time.
func (w *Workflow) Now() time.Time {
	return w.now()
}

// NewDraft starts a create-mode draft stamped with the workflow clock.
func (w *Workflow) NewDraft() *Draft {
	return NewDraft(w.now())
}

// Resync replaces the catalog with a fresh listing. On failure the catalog
// is kept.
func (w *Workflow) Resync(ctx context.Context) error {
	list, err := w.api.List(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to load products")
		return errors.WrapResource("fetch", "catalog", "", err)
	}
	w.store.Replace(list)
	return nil
}

// Save submits d, creating or updating depending on its mode.
func (w *Workflow) Save(ctx context.Context, d *Draft) (Notice, error) {
	if d.Creating() {
		return w.Create(ctx, d)
	}
	return w.Update(ctx, d)
}

// Create posts the draft and appends the returned record to the catalog.
func (w *Workflow) Create(ctx context.Context, d *Draft) (Notice, error) {
	ctx = logging.WithOperation(ctx, "create")
	logger := logging.FromContext(ctx)

	saved, err := w.api.Create(ctx, d.Record())
	if err != nil {
		logger.Error().Err(err).Str("temp_id", d.TempID).Msg("Error saving product")
		return Failure(SaveFailed), errors.WrapResource("create", "product", "", err)
	}

	w.store.Replace(products.Append(w.store.Get(), saved))
	logger.Info().Str("product_id", saved.ID()).Msg("Product saved")
	return Success(ProductAdded, w.now()), nil
}

// Update sends every mutable field to the draft's target and patches the
// matching catalog record with the returned one.
func (w *Workflow) Update(ctx context.Context, d *Draft) (Notice, error) {
	ctx = logging.WithProduct(logging.WithOperation(ctx, "update"), d.TargetID)
	logger := logging.FromContext(ctx)

	record := d.Record()
	saved, err := w.api.Update(ctx, d.TargetID, record)
	if err != nil {
		logger.Error().Err(err).Msg("Error saving product")
		return Failure(SaveFailed), errors.WrapResource("update", "product", d.TargetID, err)
	}

	// A backend that echoes a record without identifiers still addresses
	// the record that was edited.
	if saved.ID() == "" {
		saved.StoreID = record.StoreID
		saved.LocalID = record.LocalID
		if saved.ID() == "" {
			saved.StoreID = d.TargetID
		}
	}

	w.store.Replace(products.ReplaceMatching(w.store.Get(), saved))
	logger.Info().Msg("Product saved")
	return Success(ProductEdited, w.now()), nil
}

// Delete removes the record addressed by id once confirmed. Without
// confirmation nothing is sent and the zero Notice is returned. After a
// successful delete the catalog is reconciled by re-fetching the list.
func (w *Workflow) Delete(ctx context.Context, id string, confirmed bool) (Notice, error) {
	if !confirmed {
		return Notice{}, nil
	}

	ctx = logging.WithProduct(logging.WithOperation(ctx, "delete"), id)
	logger := logging.FromContext(ctx)

	if err := w.api.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msg("Error deleting product")
		return Failure(DeleteFailed), errors.WrapResource("delete", "product", id, err)
	}
	logger.Info().Msg("Product deleted on backend")

	list, err := w.api.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to refresh products after delete")
		return Failure(RefreshFailed), errors.WrapResource("fetch", "catalog", "", err)
	}
	w.store.Replace(list)
	return Success(ProductDeleted, w.now()), nil
}
