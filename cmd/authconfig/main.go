// Command authconfig introspects the table of an authenticable model and
// prints its resolved authentication configuration as YAML.
//
//	AUTHCONFIG_DSN=app.db authconfig -class User
//	authconfig -driver postgres -dsn postgres://... -class Account -options auth.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/Brandon689/authconfig/auth"
	"github.com/Brandon689/authconfig/introspect"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "authconfig:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("authconfig", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Driver, "driver", cfg.Driver, "column source: sqlite, gorm or postgres")
	fs.StringVar(&cfg.DSN, "dsn", cfg.DSN, "database path or connection string")
	fs.StringVar(&cfg.Class, "class", cfg.Class, "model class name")
	fs.StringVar(&cfg.Table, "table", cfg.Table, "table name (default: derived from class)")
	fs.StringVar(&cfg.OptionsFile, "options", cfg.OptionsFile, "YAML options file")
	fs.BoolVar(&cfg.EnsureColumns, "ensure-columns", cfg.EnsureColumns, "add missing columns (sqlite only)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.LogLevel, cfg.LogFormat)

	table := cfg.Table
	if table == "" {
		table = introspect.TableName(cfg.Class)
	}

	var opts auth.Options
	if cfg.OptionsFile != "" {
		opts, err = auth.LoadOptionsFile(cfg.OptionsFile)
		if err != nil {
			return err
		}
	}

	src, err := openSource(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			logger.Warn("close column source", "error", cerr)
		}
	}()

	reg := auth.NewRegistry(auth.WithLogf(func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	model, err := reg.RegisterFrom(ctx, src, table, cfg.Class, opts)
	if err != nil {
		if !cfg.EnsureColumns || !errors.Is(err, introspect.ErrTableNotFound) {
			return err
		}
		// The table is created below; resolve against no columns for now.
		if model, err = reg.Register(cfg.Class, opts, auth.NewColumnSet()); err != nil {
			return err
		}
	}

	if cfg.EnsureColumns {
		sqlite, ok := src.(*introspect.SQLite)
		if !ok {
			return errEnsureDriver
		}
		added, err := sqlite.EnsureColumns(ctx, table, model.Config())
		if err != nil {
			return err
		}
		if len(added) > 0 {
			logger.Info("added columns", "table", table, "columns", added)
			// Re-resolve so fields pick up the columns that now exist.
			if model, err = reg.RegisterFrom(ctx, src, table, cfg.Class, opts); err != nil {
				return err
			}
		}
	}

	logger.Info("resolved configuration",
		"class", cfg.Class,
		"table", table,
		"driver", cfg.Driver,
		"login_field", model.Config().LoginField,
	)

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(model.Config()); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
