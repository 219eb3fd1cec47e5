package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Dialect isolates everything that differs between the supported engines.
// Queries are written once with "?" placeholders and rebound per engine.
type Dialect interface {
	Name() string
	Rebind(query string) string
	Quote(ident string) string
	Schema() []string
	InsertID(ctx context.Context, db execQueryer, query string, args ...any) (int64, error)
	Classify(err error) error
}

type execQueryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Postgres struct{}

func (Postgres) Name() string { return DriverPostgres }

// Rebind rewrites "?" placeholders as $1, $2, ... outside of quoted literals.
func (Postgres) Rebind(query string) string {
	var (
		b       strings.Builder
		n       int
		inQuote bool
	)
	b.Grow(len(query) + 8)
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (Postgres) Quote(ident string) string { return quoteIdent(ident) }

func (p Postgres) Schema() []string {
	end := p.Quote("end")
	return []string{
		`CREATE TABLE IF NOT EXISTS roommates (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	color TEXT NOT NULL
)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS events (
	id BIGSERIAL PRIMARY KEY,
	roommate_id BIGINT NOT NULL REFERENCES roommates(id) ON DELETE CASCADE,
	title TEXT NOT NULL,
	start TEXT COLLATE "C" NOT NULL,
	%s TEXT COLLATE "C" NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT ''
)`, end),
		`CREATE INDEX IF NOT EXISTS events_start_idx ON events (start)`,
	}
}

func (Postgres) InsertID(ctx context.Context, db execQueryer, query string, args ...any) (int64, error) {
	var id int64
	if err := db.QueryRowContext(ctx, query+" RETURNING id", args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (Postgres) Classify(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case "23505":
		return &ConstraintError{Kind: ConstraintUnique, Err: err}
	case "23503":
		return &ConstraintError{Kind: ConstraintForeignKey, Err: err}
	}
	return err
}

type SQLite struct{}

func (SQLite) Name() string { return DriverSQLite }

func (SQLite) Rebind(query string) string { return query }

func (SQLite) Quote(ident string) string { return quoteIdent(ident) }

func (s SQLite) Schema() []string {
	end := s.Quote("end")
	return []string{
		`CREATE TABLE IF NOT EXISTS roommates (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	color TEXT NOT NULL
)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	roommate_id INTEGER NOT NULL,
	title TEXT NOT NULL,
	start TEXT NOT NULL,
	%s TEXT NOT NULL,
	location TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	FOREIGN KEY(roommate_id) REFERENCES roommates(id) ON DELETE CASCADE
)`, end),
		`CREATE INDEX IF NOT EXISTS events_start_idx ON events (start)`,
	}
}

func (SQLite) InsertID(ctx context.Context, db execQueryer, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (SQLite) Classify(err error) error {
	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return err
	}
	switch liteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return &ConstraintError{Kind: ConstraintUnique, Err: err}
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return &ConstraintError{Kind: ConstraintForeignKey, Err: err}
	}
	return err
}

func quoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
