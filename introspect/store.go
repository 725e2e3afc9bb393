// Package introspect lists the columns of a model's table so that
// auth.Configure can pick field names that exist. It provides column
// sources for SQLite (database/sql + mattn/go-sqlite3), PostgreSQL (pgx)
// and GORM, plus EnsureColumns to add the columns a configuration expects.
package introspect

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // cgo SQLite driver, registers "sqlite3"
)

var (
	ErrTableNotFound = errors.New("introspect: table not found")
	ErrEmptyTable    = errors.New("introspect: empty table name")
)

// dbHandle abstracts *sql.DB for testability and context-aware calls.
type dbHandle interface {
	Close() error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// SQLite reads columns with pragma_table_info.
type SQLite struct {
	db      dbHandle
	ownConn bool
}

// OpenSQLite opens the database at path with foreign keys on and a busy
// timeout, like the rest of the app's SQLite handles.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases visible to every query.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return &SQLite{db: db, ownConn: true}, nil
}

// NewSQLite wraps an existing connection. Close does not close it.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// Close releases the connection if OpenSQLite created it.
func (s *SQLite) Close() error {
	if s.db == nil || !s.ownConn {
		return nil
	}
	return s.db.Close()
}

// Columns returns the column names of table in declaration order.
func (s *SQLite) Columns(ctx context.Context, table string) ([]string, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("table info: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return names, nil
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
