package auth

import (
	"context"
	"fmt"
)

// ColumnSet is the read-only set of column names present on a table.
type ColumnSet map[string]struct{}

// NewColumnSet builds a ColumnSet from a list of names.
func NewColumnSet(names ...string) ColumnSet {
	cols := make(ColumnSet, len(names))
	for _, n := range names {
		cols[n] = struct{}{}
	}
	return cols
}

// Has reports whether name is a column of the table.
func (c ColumnSet) Has(name string) bool {
	_, ok := c[name]
	return ok
}

// FindColumn returns the first candidate present in cols. When none is
// present it falls back to the first candidate, or "" if there are no
// candidates. A leading "" candidate therefore resolves to "" when no
// real candidate exists.
func FindColumn(cols ColumnSet, candidates ...string) string {
	for _, name := range candidates {
		if name != "" && cols.Has(name) {
			return name
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	return candidates[0]
}

func loadColumns(ctx context.Context, src ColumnSource, table string) (ColumnSet, error) {
	if src == nil {
		return nil, ErrNoColumnSource
	}
	names, err := src.Columns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("load columns of %q: %w", table, err)
	}
	return NewColumnSet(names...), nil
}
