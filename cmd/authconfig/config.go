package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config is read from the environment (and an optional .env file), then
// overridden by flags.
type config struct {
	Driver        string `env:"AUTHCONFIG_DRIVER" envDefault:"sqlite"`
	DSN           string `env:"AUTHCONFIG_DSN" envDefault:"app.db"`
	Class         string `env:"AUTHCONFIG_CLASS" envDefault:"User"`
	Table         string `env:"AUTHCONFIG_TABLE"`
	Schema        string `env:"AUTHCONFIG_PG_SCHEMA" envDefault:"public"`
	OptionsFile   string `env:"AUTHCONFIG_OPTIONS"`
	EnsureColumns bool   `env:"AUTHCONFIG_ENSURE_COLUMNS"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// loadConfig loads .env files (missing files are fine when none are named)
// and parses the environment.
func loadConfig(envFiles ...string) (config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return config{}, fmt.Errorf("load env files: %w", err)
	}
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// newLogger builds a slog logger writing to w; unknown levels fall back to
// info, unknown formats to text.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
