// Package devapi is a reference implementation of the product API the
// storefront consumes, backed by SQLite. It exists for local development
// and end-to-end tests.
package devapi

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver

	"github.com/dreammattress/storefront/pkg/constants"
	"github.com/dreammattress/storefront/pkg/errors"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS products (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	doc        TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Open opens the database at path, creating its directory when needed.
func Open(path string) (*sql.DB, error) {
	if path != MemoryDSN {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("mkdir", filepath.Dir(path), err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.WrapResource("open", "database", path, err)
	}

	if path == MemoryDSN {
		// Each connection to :memory: is its own database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("configure", "database", path, err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.WrapResource("ping", "database", path, err)
	}
	return db, nil
}

// Migrate creates the schema if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.WrapResource("migrate", "database", "", err)
	}
	return nil
}
