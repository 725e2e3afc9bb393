package auth

import (
	"context"
	"fmt"
	"testing"
	"time"
)

// newTestRegistry returns a registry that logs through t.
func newTestRegistry(t *testing.T, mutate ...RegistryOption) *Registry {
	t.Helper()
	opts := append([]RegistryOption{WithLogf(t.Logf)}, mutate...)
	return NewRegistry(opts...)
}

// fakeSource is an in-memory ColumnSource keyed by table name.
type fakeSource map[string][]string

func (f fakeSource) Columns(_ context.Context, table string) ([]string, error) {
	cols, ok := f[table]
	if !ok {
		return nil, fmt.Errorf("no such table: %s", table)
	}
	return cols, nil
}

func userColumns() ColumnSet {
	return NewColumnSet("id", "username", "password_hash", "pw_salt", "remember_key")
}

func accountColumns() ColumnSet {
	return NewColumnSet("id", "email", "crypted_password")
}

func seconds(n int) *time.Duration {
	return Timeout(time.Duration(n) * time.Second)
}
