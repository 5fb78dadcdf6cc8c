package devapi

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/dreammattress/storefront/pkg/errors"
	"github.com/dreammattress/storefront/pkg/products"
)

// Repo stores products as JSON documents keyed by a generated id.
type Repo struct {
	db    *sql.DB
	newID func() string
}

// NewRepo creates a repository on db.
func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db, newID: uuid.NewString}
}

// List returns every product in insertion order.
func (r *Repo) List(ctx context.Context) ([]products.Product, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, doc FROM products ORDER BY seq`)
	if err != nil {
		return nil, errors.WrapResource("list", "product", "", err)
	}
	defer func() { _ = rows.Close() }()

	list := []products.Product{}
	for rows.Next() {
		var id, doc string
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, errors.WrapResource("scan", "product", "", err)
		}
		p, err := decode(id, doc)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapResource("list", "product", "", err)
	}
	return list, nil
}

// Get returns the product with id.
func (r *Repo) Get(ctx context.Context, id string) (products.Product, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT doc FROM products WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return products.Product{}, errors.NewNotFoundError("product", id)
	}
	if err != nil {
		return products.Product{}, errors.WrapResource("get", "product", id, err)
	}
	return decode(id, doc)
}

// Create stores p under a new id and returns the stored record.
func (r *Repo) Create(ctx context.Context, p products.Payload) (products.Product, error) {
	id := r.newID()
	doc, err := json.Marshal(p)
	if err != nil {
		return products.Product{}, errors.WrapParse("json", "product", err)
	}
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO products (id, name, doc) VALUES (?, ?, ?)`, id, p.Name, string(doc),
	); err != nil {
		return products.Product{}, errors.WrapResource("create", "product", id, err)
	}
	return decode(id, string(doc))
}

// Update replaces every mutable field of the product with id.
func (r *Repo) Update(ctx context.Context, id string, p products.Payload) (products.Product, error) {
	doc, err := json.Marshal(p)
	if err != nil {
		return products.Product{}, errors.WrapParse("json", "product", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET name = ?, doc = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		p.Name, string(doc), id,
	)
	if err != nil {
		return products.Product{}, errors.WrapResource("update", "product", id, err)
	}
	if err := matched(res, "update", id); err != nil {
		return products.Product{}, err
	}
	return decode(id, string(doc))
}

// Delete removes the product with id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return errors.WrapResource("delete", "product", id, err)
	}
	return matched(res, "delete", id)
}

// matched reports a not found error when res touched no row.
func matched(res sql.Result, op, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.WrapResource(op, "product", id, err)
	}
	if n == 0 {
		return errors.NewNotFoundError("product", id)
	}
	return nil
}

// Count returns the number of stored products.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, errors.WrapResource("count", "product", "", err)
	}
	return n, nil
}

// Seed inserts list when the table is empty and reports how many rows
// were added.
func (r *Repo) Seed(ctx context.Context, list []products.Product) (int, error) {
	n, err := r.Count(ctx)
	if err != nil || n > 0 {
		return 0, err
	}
	for _, p := range list {
		if _, err := r.Create(ctx, p.Payload()); err != nil {
			return 0, err
		}
	}
	return len(list), nil
}

func decode(id, doc string) (products.Product, error) {
	var p products.Product
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return products.Product{}, errors.WrapParse("json", "product "+id, err)
	}
	p.StoreID = id
	p.LocalID = ""
	return p.WithDefaults(), nil
}
