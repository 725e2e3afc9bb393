package introspect

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres reads columns from information_schema.columns.
type Postgres struct {
	pool    *pgxpool.Pool
	ownPool bool
	schema  string
}

// PostgresOption configures a Postgres column source.
type PostgresOption func(*Postgres)

// WithSchema sets the schema searched for tables. Default: "public".
func WithSchema(name string) PostgresOption {
	return func(p *Postgres) {
		if name != "" {
			p.schema = name
		}
	}
}

// NewPostgres creates a column source with its own connection pool.
func NewPostgres(ctx context.Context, connStr string, opts ...PostgresOption) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	p := newPostgres(pool, opts)
	p.ownPool = true
	return p, nil
}

// NewPostgresFromPool creates a column source using an existing pool.
func NewPostgresFromPool(pool *pgxpool.Pool, opts ...PostgresOption) *Postgres {
	return newPostgres(pool, opts)
}

func newPostgres(pool *pgxpool.Pool, opts []PostgresOption) *Postgres {
	p := &Postgres{pool: pool, schema: "public"}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close closes the pool if we own it.
func (p *Postgres) Close() error {
	if p.ownPool {
		p.pool.Close()
	}
	return nil
}

const postgresColumnsQuery = `
	SELECT column_name
	FROM information_schema.columns
	WHERE table_schema = $1 AND table_name = $2
	ORDER BY ordinal_position
`

// Columns returns the column names of table in ordinal order.
func (p *Postgres) Columns(ctx context.Context, table string) ([]string, error) {
	if table == "" {
		return nil, ErrEmptyTable
	}
	rows, err := p.pool.Query(ctx, postgresColumnsQuery, p.schema, table)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collect columns: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s.%s", ErrTableNotFound, p.schema, table)
	}
	return names, nil
}
