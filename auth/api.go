// Package auth resolves the authentication configuration of an
// authenticable model (a "class" such as User or Account) from:
//   - the options the application passes in (any subset may be set)
//   - the set of columns that exist on the model's table
//
// Every recognized option gets a value: either the caller's or a default
// derived from the columns (login field, crypted password field, salt,
// remember token, single access token) or from fixed defaults (messages,
// regexes, timeout, session ids, crypto provider).
//
// This file is the public, self-documenting API surface. The internal
// implementation is split across other files in this package.
//
// Quick start:
//
//	reg := auth.NewRegistry(auth.WithLogf(log.Printf))
//
//	src, err := introspect.OpenSQLite("app.db")
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer src.Close()
//
//	user, err := reg.RegisterFrom(ctx, src, "users", "User", auth.Options{
//	  LoggedInTimeout: auth.Timeout(20 * time.Minute),
//	})
//	if err != nil {
//	  log.Fatal(err)
//	}
//
//	cfg := user.Config()
//	fmt.Println(cfg.LoginField, cfg.CryptedPasswordField, cfg.LoggedInTimeout)
//
// Resolution never fails: every key has a deterministic fallback. Values of
// the wrong shape (for example a regex that matches nothing) are not
// validated here and surface when the consumer uses them.
//
// API overview:
//   - type Options, type Config, type ColumnSet
//   - func Configure(class, Options, ColumnSet) *Config
//   - func FindColumn(ColumnSet, candidates...) string
//   - type Registry, func NewRegistry(...RegistryOption) *Registry
//   - func (*Registry) Register(class, Options, ColumnSet, ...Registrar) (*Model, error)
//   - func (*Registry) RegisterFrom(ctx, ColumnSource, table, class, Options, ...Registrar) (*Model, error)
//   - func (*Registry) Model(class) (*Model, bool)
//   - func (*Model) Config() *Config
//   - type Registrar, type RegistrarFunc, func Chain(...Registrar) Registrar
//   - type CryptoProvider: BCrypt (default), Argon2, SCrypt, Sha512
//   - type Validator, func NewValidator(*Config) *Validator
//   - func LoadOptions(io.Reader) (Options, error)
package auth

import (
	"context"
	"regexp"
	"time"
)

// LoginFieldType tells how the login field is validated.
type LoginFieldType string

const (
	LoginTypeLogin LoginFieldType = "login"
	LoginTypeEmail LoginFieldType = "email"
)

// Options is the caller-supplied, partial configuration of a model.
// Zero values mean "unset" and are filled in by Configure:
// "" for strings, nil for the regex, provider, timeout and session ids.
// A non-nil empty SessionIDs slice counts as set.
type Options struct {
	// SessionClass names the session type that authenticates this model.
	// Default: "<Class>Session".
	SessionClass string

	// CryptoProvider hashes and verifies passwords. Default: BCrypt.
	CryptoProvider CryptoProvider

	// TransitionFromCryptoProviders are tried, in order, when a stored
	// hash does not match CryptoProvider. Default: none.
	TransitionFromCryptoProviders []CryptoProvider

	LoginField                   string
	LoginFieldType               LoginFieldType
	LoginFieldRegex              *regexp.Regexp
	LoginFieldRegexFailedMessage string

	PasswordField                     string
	PasswordBlankMessage              string
	ConfirmPasswordDidNotMatchMessage string

	CryptedPasswordField   string
	PasswordSaltField      string
	RememberTokenField     string
	SingleAccessTokenField string

	// LoggedInTimeout is the inactivity period after which a session is
	// logged out. Truncated to whole seconds. Default: 10 minutes.
	LoggedInTimeout *time.Duration

	// SessionIDs lists the sessions this model can be logged into.
	// The first entry is the primary session. Default: [DefaultSessionID].
	SessionIDs []SessionID
}

// Config is the fully resolved configuration of a model. It must not be
// modified after Configure returns it.
//
// CryptedPasswordField, PasswordSaltField and RememberTokenField always
// hold a name, even when no matching column exists. SingleAccessTokenField
// is "" when the table has no single access token column.
type Config struct {
	Class string

	SessionClass                  string
	CryptoProvider                CryptoProvider
	TransitionFromCryptoProviders []CryptoProvider

	LoginField                   string
	LoginFieldType               LoginFieldType
	LoginFieldRegex              *regexp.Regexp
	LoginFieldRegexFailedMessage string

	PasswordField                     string
	PasswordBlankMessage              string
	ConfirmPasswordDidNotMatchMessage string

	CryptedPasswordField   string
	PasswordSaltField      string
	RememberTokenField     string
	SingleAccessTokenField string

	// LoggedInTimeout is in whole seconds, never negative.
	LoggedInTimeout int

	SessionIDs []SessionID
}

// Configure resolves opts against the columns of the class's table.
// It is deterministic and never fails.
func Configure(class string, opts Options, cols ColumnSet) *Config {
	return resolve(class, opts, cols)
}

// ColumnSource lists the column names of a table. Implementations live in
// package introspect (SQLite, PostgreSQL, GORM).
type ColumnSource interface {
	Columns(ctx context.Context, table string) ([]string, error)
}

// LoadColumns reads the columns of table from src.
func LoadColumns(ctx context.Context, src ColumnSource, table string) (ColumnSet, error) {
	return loadColumns(ctx, src, table)
}

// Timeout is a convenience for Options.LoggedInTimeout.
func Timeout(d time.Duration) *time.Duration {
	return &d
}
