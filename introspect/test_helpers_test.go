package introspect

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestSQLite opens a fresh database file, runs stmts and returns the
// column source with its path. The source is closed on cleanup.
func newTestSQLite(t *testing.T, stmts ...string) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")

	src, err := OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = src.Close() })

	for _, s := range stmts {
		_, err := src.db.ExecContext(context.Background(), s)
		require.NoError(t, err, s)
	}
	return src, path
}

const usersDDL = `CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL UNIQUE,
	password_hash TEXT,
	pw_salt TEXT,
	remember_key TEXT
)`

const accountsDDL = `CREATE TABLE accounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE
)`
