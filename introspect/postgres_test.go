package introspect

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set AUTHCONFIG_TEST_POSTGRES_DSN to run against a real server.
func newTestPostgres(t *testing.T) *Postgres {
	t.Helper()
	dsn := os.Getenv("AUTHCONFIG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("AUTHCONFIG_TEST_POSTGRES_DSN not set")
	}
	p, err := NewPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestPostgresColumns(t *testing.T) {
	p := newTestPostgres(t)
	ctx := context.Background()

	_, err := p.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS authconfig_test_users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL,
		encrypted_password TEXT,
		feed_token TEXT
	)`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = p.pool.Exec(context.Background(), `DROP TABLE IF EXISTS authconfig_test_users`)
	})

	cols, err := p.Columns(ctx, "authconfig_test_users")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "email", "encrypted_password", "feed_token"}, cols)

	_, err = p.Columns(ctx, "authconfig_test_missing")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestPostgresOptions(t *testing.T) {
	p := NewPostgresFromPool(nil, WithSchema("auth"), WithSchema(""))
	assert.Equal(t, "auth", p.schema)
	assert.False(t, p.ownPool)
	assert.NoError(t, p.Close())

	_, err := p.Columns(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyTable)
}
