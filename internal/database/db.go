package database

import (
	"context"
	"database/sql"
)

// DB is the narrow surface the repositories need. The migration
// runner additionally wants a *sql.DB, exposed via SQLDB.
type DB interface {
	Ping(ctx context.Context) error
	Close() error

	Exec(ctx context.Context, query string, args ...any) (int64, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row

	SQLDB() *sql.DB
}

type Rows interface {
	Close()
	Next() bool
	Scan(dest ...any) error
	Err() error
}

type Row interface {
	Scan(dest ...any) error
}
