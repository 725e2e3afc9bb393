package auth

import (
	"time"
)

const (
	defaultPasswordField                     = "password"
	defaultPasswordBlankMessage              = "can not be blank"
	defaultConfirmPasswordDidNotMatchMessage = "did not match"
	defaultLoggedInTimeout                   = 10 * time.Minute
)

var (
	loginFieldCandidates        = []string{"login", "username", "email"}
	cryptedPasswordCandidates   = []string{"crypted_password", "encrypted_password", "password_hash", "pw_hash"}
	passwordSaltCandidates      = []string{"password_salt", "pw_salt", "salt"}
	rememberTokenCandidates     = []string{"remember_token", "remember_key", "cookie_token", "cookie_key"}
	singleAccessTokenCandidates = []string{"", "single_access_token", "feed_token", "feeds_token"}
)

// resolve fills every unset option, in a fixed order, the way applyDefaults
// fills a zero-valued Config.
func resolve(class string, opts Options, cols ColumnSet) *Config {
	cfg := &Config{
		Class:                             class,
		SessionClass:                      opts.SessionClass,
		CryptoProvider:                    opts.CryptoProvider,
		LoginField:                        opts.LoginField,
		LoginFieldType:                    opts.LoginFieldType,
		LoginFieldRegex:                   opts.LoginFieldRegex,
		LoginFieldRegexFailedMessage:      opts.LoginFieldRegexFailedMessage,
		PasswordField:                     opts.PasswordField,
		PasswordBlankMessage:              opts.PasswordBlankMessage,
		ConfirmPasswordDidNotMatchMessage: opts.ConfirmPasswordDidNotMatchMessage,
		CryptedPasswordField:              opts.CryptedPasswordField,
		PasswordSaltField:                 opts.PasswordSaltField,
		RememberTokenField:                opts.RememberTokenField,
		SingleAccessTokenField:            opts.SingleAccessTokenField,
	}
	if opts.TransitionFromCryptoProviders != nil {
		cfg.TransitionFromCryptoProviders = append([]CryptoProvider{}, opts.TransitionFromCryptoProviders...)
	}

	if cfg.SessionClass == "" {
		cfg.SessionClass = class + "Session"
	}
	if cfg.CryptoProvider == nil {
		cfg.CryptoProvider = DefaultCryptoProvider
	}
	if cfg.LoginField == "" {
		cfg.LoginField = FindColumn(cols, loginFieldCandidates...)
	}
	if cfg.LoginFieldType == "" {
		cfg.LoginFieldType = loginFieldTypeOf(cfg.LoginField)
	}

	switch cfg.LoginFieldType {
	case LoginTypeEmail:
		if cfg.LoginFieldRegex == nil {
			cfg.LoginFieldRegex = EmailRegex
		}
		if cfg.LoginFieldRegexFailedMessage == "" {
			cfg.LoginFieldRegexFailedMessage = EmailRegexFailedMessage
		}
	default:
		if cfg.LoginFieldRegex == nil {
			cfg.LoginFieldRegex = LoginRegex
		}
		if cfg.LoginFieldRegexFailedMessage == "" {
			cfg.LoginFieldRegexFailedMessage = LoginRegexFailedMessage
		}
	}

	if cfg.PasswordField == "" {
		cfg.PasswordField = defaultPasswordField
	}
	if cfg.PasswordBlankMessage == "" {
		cfg.PasswordBlankMessage = defaultPasswordBlankMessage
	}
	if cfg.ConfirmPasswordDidNotMatchMessage == "" {
		cfg.ConfirmPasswordDidNotMatchMessage = defaultConfirmPasswordDidNotMatchMessage
	}
	if cfg.CryptedPasswordField == "" {
		cfg.CryptedPasswordField = FindColumn(cols, cryptedPasswordCandidates...)
	}
	if cfg.PasswordSaltField == "" {
		cfg.PasswordSaltField = FindColumn(cols, passwordSaltCandidates...)
	}
	if cfg.RememberTokenField == "" {
		cfg.RememberTokenField = FindColumn(cols, rememberTokenCandidates...)
	}
	if cfg.SingleAccessTokenField == "" {
		cfg.SingleAccessTokenField = FindColumn(cols, singleAccessTokenCandidates...)
	}

	timeout := defaultLoggedInTimeout
	if opts.LoggedInTimeout != nil {
		timeout = *opts.LoggedInTimeout
	}
	cfg.LoggedInTimeout = wholeSeconds(timeout)

	if opts.SessionIDs != nil {
		cfg.SessionIDs = append([]SessionID{}, opts.SessionIDs...)
	} else {
		cfg.SessionIDs = []SessionID{DefaultSessionID}
	}
	return cfg
}

// loginFieldTypeOf only looks at the field name, never at the columns.
func loginFieldTypeOf(field string) LoginFieldType {
	if field == "email" {
		return LoginTypeEmail
	}
	return LoginTypeLogin
}

func wholeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(d / time.Second)
}

// Timeout returns LoggedInTimeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.LoggedInTimeout) * time.Second
}

// LoggedOut reports whether a session whose last request was at
// lastRequestAt has been inactive for longer than the timeout.
func (c *Config) LoggedOut(lastRequestAt, now time.Time) bool {
	if lastRequestAt.IsZero() {
		return true
	}
	return lastRequestAt.Before(now.Add(-c.Timeout()))
}

// Columns lists the columns the configuration expects on the model's
// table, in resolution order. The password field is virtual and not
// included.
func (c *Config) Columns() []string {
	cols := make([]string, 0, 5)
	for _, name := range []string{
		c.LoginField,
		c.CryptedPasswordField,
		c.PasswordSaltField,
		c.RememberTokenField,
		c.SingleAccessTokenField,
	} {
		if name != "" {
			cols = append(cols, name)
		}
	}
	return cols
}

// PrimarySessionID is the first entry of SessionIDs.
func (c *Config) PrimarySessionID() SessionID {
	if len(c.SessionIDs) == 0 {
		return DefaultSessionID
	}
	return c.SessionIDs[0]
}

// SingleAccessEnabled reports whether the table supports single access
// tokens.
func (c *Config) SingleAccessEnabled() bool {
	return c.SingleAccessTokenField != ""
}
