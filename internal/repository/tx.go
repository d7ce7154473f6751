package repository

import (
	"context"
	"database/sql"
)

type txKey struct{}

// WithTx runs fn inside a SERIALIZABLE transaction and commits when fn
// returns nil, rolling back otherwise.  The transaction travels in the
// context so every Store method called by fn joins it.  A nested call
// reuses the active transaction instead of opening a second one.
//
// SERIALIZABLE makes the conflict-check reads locking reads.  Together
// with the exclusive lock GetShowForUpdate takes on the show row, that
// prevents two overlapping creates from both committing.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFromContext(ctx) != nil {
		return fn(ctx)
	}
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return err
	}
	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func txFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}
