package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Brandon689/authconfig/auth"
	"github.com/Brandon689/authconfig/introspect"
)

var (
	errUnknownDriver = errors.New("unknown driver")
	errEnsureDriver  = errors.New("ensure-columns is only supported by the sqlite driver")
)

// columnSource is an auth.ColumnSource that must be closed.
type columnSource interface {
	auth.ColumnSource
	Close() error
}

// openSource selects the column source for cfg.Driver.
func openSource(ctx context.Context, cfg config) (columnSource, error) {
	switch cfg.Driver {
	case "sqlite", "sqlite3":
		return introspect.OpenSQLite(cfg.DSN)
	case "gorm":
		return introspect.OpenGormSQLite(cfg.DSN)
	case "postgres", "pgx":
		return introspect.NewPostgres(ctx, cfg.DSN, introspect.WithSchema(cfg.Schema))
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDriver, cfg.Driver)
	}
}
