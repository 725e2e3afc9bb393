package auth

import (
	"context"
	"fmt"
	"sync"
)

// Registrar is a registration step that runs after a model's options are
// resolved: wiring validations, session lookups, persistence callbacks.
type Registrar interface {
	Register(cfg *Config) error
}

// RegistrarFunc adapts a function to Registrar.
type RegistrarFunc func(cfg *Config) error

func (f RegistrarFunc) Register(cfg *Config) error { return f(cfg) }

// Chain runs registrars in order and stops at the first error. Nil
// registrars are skipped.
func Chain(rs ...Registrar) Registrar {
	return RegistrarFunc(func(cfg *Config) error {
		for _, r := range rs {
			if r == nil {
				continue
			}
			if err := r.Register(cfg); err != nil {
				return err
			}
		}
		return nil
	})
}

// Model is a registered authenticable model: its name, resolved
// configuration and the validator built from it.
type Model struct {
	name      string
	cfg       *Config
	validator *Validator
}

func (m *Model) Name() string { return m.name }

// Config returns the resolved configuration. It must not be modified.
func (m *Model) Config() *Config { return m.cfg }

func (m *Model) Validator() *Validator { return m.validator }

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogf sets a printf-style logger hook. If unset, logging is disabled.
func WithLogf(fn func(format string, args ...any)) RegistryOption {
	return func(r *Registry) { r.logf = fn }
}

// Registry owns the models of an application. Models are registered once
// at startup; registering the same class again replaces its model.
// It is safe to share a Registry across goroutines.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
	logf   func(format string, args ...any)
}

func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{models: make(map[string]*Model)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register resolves opts against cols, publishes the model and forwards its
// configuration to next, in order. The model stays published even if a
// registrar fails.
func (r *Registry) Register(class string, opts Options, cols ColumnSet, next ...Registrar) (*Model, error) {
	cfg := Configure(class, opts, cols)
	m := &Model{name: class, cfg: cfg, validator: NewValidator(cfg)}

	r.mu.Lock()
	_, replaced := r.models[class]
	r.models[class] = m
	r.mu.Unlock()

	if replaced {
		r.printf("auth: re-registered %s", class)
	}
	r.printf("auth: %s login=%s(%s) crypted_password=%s salt=%s remember_token=%s single_access_token=%q timeout=%ds",
		class, cfg.LoginField, cfg.LoginFieldType, cfg.CryptedPasswordField, cfg.PasswordSaltField,
		cfg.RememberTokenField, cfg.SingleAccessTokenField, cfg.LoggedInTimeout)

	if err := Chain(next...).Register(cfg); err != nil {
		return m, fmt.Errorf("register %s: %w", class, err)
	}
	return m, nil
}

// RegisterFrom loads the columns of table from src, then calls Register.
func (r *Registry) RegisterFrom(ctx context.Context, src ColumnSource, table, class string, opts Options, next ...Registrar) (*Model, error) {
	cols, err := LoadColumns(ctx, src, table)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", class, err)
	}
	return r.Register(class, opts, cols, next...)
}

// Model returns the registered model for class.
func (r *Registry) Model(class string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[class]
	return m, ok
}

// Lookup is like Model but returns ErrModelNotFound for unknown classes.
func (r *Registry) Lookup(class string) (*Model, error) {
	if m, ok := r.Model(class); ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrModelNotFound, class)
}

func (r *Registry) printf(format string, args ...any) {
	if r != nil && r.logf != nil {
		r.logf(format, args...)
	}
}
