package introspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brandon689/authconfig/auth"
)

// EnsureColumns creates table if needed and adds every column cfg expects
// that is missing, so fallback field names point at real columns. It
// returns the names of the columns it added.
func (s *SQLite) EnsureColumns(ctx context.Context, table string, cfg *auth.Config) ([]string, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	existing, err := s.Columns(ctx, table)
	if err != nil && !errors.Is(err, ErrTableNotFound) {
		return nil, err
	}
	have := auth.NewColumnSet(existing...)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer rollbackIfNeeded(tx)

	if len(existing) == 0 {
		stmt := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT
		);`, quoteIdent(table))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("create table: %w", err)
		}
	}

	var added []string
	for _, col := range cfg.Columns() {
		if have.Has(col) {
			continue
		}
		stmt := fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s TEXT`, quoteIdent(table), quoteIdent(col))
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("add column %s: %w", col, err)
		}
		have[col] = struct{}{}
		added = append(added, col)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return added, nil
}

// rollbackIfNeeded rolls back tx if it's still active.
func rollbackIfNeeded(tx interface{ Rollback() error }) {
	_ = tx.Rollback()
}
