// Package repository provides the MySQL-backed claim store.  All SQL
// lives here; business rules stay in internal/booking.  Timestamp
// columns are DATETIME in UTC; the connection is opened with
// parseTime=true and loc=UTC so they scan into time.Time directly.
package repository

import (
	"context"
	"database/sql"
)

// Store bundles all data access over a single *sql.DB.  It implements
// booking.Store and additionally exposes the catalog and reporting
// queries used by the HTTP layer.
type Store struct {
	db *sql.DB
}

// NewStore returns a Store bound to the given database.
func NewStore(db *sql.DB) *Store {
	if db == nil {
		panic("nil db passed to repository.NewStore")
	}
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need fine-grained
// control, e.g. health checks.
func (s *Store) DB() *sql.DB { return s.db }

// querier is satisfied by both *sql.DB and *sql.Tx so every query can
// transparently join a transaction carried in the context.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction from ctx when one is active, otherwise
// the plain database handle.
func (s *Store) conn(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}
