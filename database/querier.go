package database

import (
	"context"
	"database/sql"
)

// Querier is the capability set available inside a unit of work. Statements
// use "?" placeholders regardless of the engine.
type Querier interface {
	// Exec runs a statement and returns the number of rows affected.
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// Insert runs an INSERT and returns the generated id.
	Insert(ctx context.Context, query string, args ...any) (int64, error)
}

type tx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, t.dialect.Rebind(query), args...)
	if err != nil {
		return 0, t.dialect.Classify(err)
	}
	return res.RowsAffected()
}

func (t *tx) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *tx) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.Rebind(query), args...)
}

func (t *tx) Insert(ctx context.Context, query string, args ...any) (int64, error) {
	id, err := t.dialect.InsertID(ctx, t.tx, t.dialect.Rebind(query), args...)
	if err != nil {
		return 0, t.dialect.Classify(err)
	}
	return id, nil
}
