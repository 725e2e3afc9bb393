package auth

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// optionsFile is the YAML form of Options. Keys use the option names in
// snake_case; omitted keys stay unset.
type optionsFile struct {
	SessionClass                      string       `yaml:"session_class"`
	CryptoProvider                    string       `yaml:"crypto_provider"`
	TransitionFromCryptoProviders     []string     `yaml:"transition_from_crypto_providers"`
	LoginField                        string       `yaml:"login_field"`
	LoginFieldType                    string       `yaml:"login_field_type"`
	LoginFieldRegex                   string       `yaml:"login_field_regex"`
	LoginFieldRegexFailedMessage      string       `yaml:"login_field_regex_failed_message"`
	PasswordField                     string       `yaml:"password_field"`
	PasswordBlankMessage              string       `yaml:"password_blank_message"`
	ConfirmPasswordDidNotMatchMessage string       `yaml:"confirm_password_did_not_match_message"`
	CryptedPasswordField              string       `yaml:"crypted_password_field"`
	PasswordSaltField                 string       `yaml:"password_salt_field"`
	RememberTokenField                string       `yaml:"remember_token_field"`
	SingleAccessTokenField            string       `yaml:"single_access_token_field"`
	LoggedInTimeout                   *yamlTimeout `yaml:"logged_in_timeout"`
	SessionIDs                        []string     `yaml:"session_ids"`
}

// yamlTimeout accepts an integer count of seconds, bare or quoted, or a
// duration string such as "20m".
type yamlTimeout time.Duration

const maxTimeoutSeconds = int64(math.MaxInt64 / int64(time.Second))

func (t *yamlTimeout) UnmarshalYAML(n *yaml.Node) error {
	var secs int64
	if err := n.Decode(&secs); err == nil {
		return t.setSeconds(secs)
	}
	var s string
	if err := n.Decode(&s); err != nil {
		return fmt.Errorf("logged_in_timeout: %w", err)
	}
	if secs, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err == nil {
		return t.setSeconds(secs)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("logged_in_timeout: %w", err)
	}
	*t = yamlTimeout(d)
	return nil
}

func (t *yamlTimeout) setSeconds(secs int64) error {
	if secs > maxTimeoutSeconds || secs < -maxTimeoutSeconds {
		return fmt.Errorf("logged_in_timeout: %d seconds out of range", secs)
	}
	*t = yamlTimeout(time.Duration(secs) * time.Second)
	return nil
}

// LoadOptions decodes YAML options from r. An empty document yields
// empty Options.
func LoadOptions(r io.Reader) (Options, error) {
	var f optionsFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	return f.options()
}

// LoadOptionsFile reads YAML options from path.
func LoadOptionsFile(path string) (Options, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open options: %w", err)
	}
	defer fh.Close()
	return LoadOptions(fh)
}

func (f optionsFile) options() (Options, error) {
	opts := Options{
		SessionClass:                      f.SessionClass,
		LoginField:                        f.LoginField,
		LoginFieldType:                    LoginFieldType(f.LoginFieldType),
		LoginFieldRegexFailedMessage:      f.LoginFieldRegexFailedMessage,
		PasswordField:                     f.PasswordField,
		PasswordBlankMessage:              f.PasswordBlankMessage,
		ConfirmPasswordDidNotMatchMessage: f.ConfirmPasswordDidNotMatchMessage,
		CryptedPasswordField:              f.CryptedPasswordField,
		PasswordSaltField:                 f.PasswordSaltField,
		RememberTokenField:                f.RememberTokenField,
		SingleAccessTokenField:            f.SingleAccessTokenField,
	}
	if f.CryptoProvider != "" {
		p, err := ProviderByName(f.CryptoProvider)
		if err != nil {
			return Options{}, err
		}
		opts.CryptoProvider = p
	}
	for _, name := range f.TransitionFromCryptoProviders {
		p, err := ProviderByName(name)
		if err != nil {
			return Options{}, err
		}
		opts.TransitionFromCryptoProviders = append(opts.TransitionFromCryptoProviders, p)
	}
	if f.LoginFieldRegex != "" {
		re, err := regexp.Compile(f.LoginFieldRegex)
		if err != nil {
			return Options{}, fmt.Errorf("login_field_regex: %w", err)
		}
		opts.LoginFieldRegex = re
	}
	if f.LoggedInTimeout != nil {
		opts.LoggedInTimeout = Timeout(time.Duration(*f.LoggedInTimeout))
	}
	if f.SessionIDs != nil {
		opts.SessionIDs = make([]SessionID, 0, len(f.SessionIDs))
		for _, id := range f.SessionIDs {
			opts.SessionIDs = append(opts.SessionIDs, SessionID(id))
		}
	}
	return opts, nil
}

// configView is the YAML form of a resolved Config.
type configView struct {
	Class                             string   `yaml:"class"`
	SessionClass                      string   `yaml:"session_class"`
	CryptoProvider                    string   `yaml:"crypto_provider"`
	TransitionFromCryptoProviders     []string `yaml:"transition_from_crypto_providers,omitempty"`
	LoginField                        string   `yaml:"login_field"`
	LoginFieldType                    string   `yaml:"login_field_type"`
	LoginFieldRegex                   string   `yaml:"login_field_regex"`
	LoginFieldRegexFailedMessage      string   `yaml:"login_field_regex_failed_message"`
	PasswordField                     string   `yaml:"password_field"`
	PasswordBlankMessage              string   `yaml:"password_blank_message"`
	ConfirmPasswordDidNotMatchMessage string   `yaml:"confirm_password_did_not_match_message"`
	CryptedPasswordField              string   `yaml:"crypted_password_field"`
	PasswordSaltField                 string   `yaml:"password_salt_field"`
	RememberTokenField                string   `yaml:"remember_token_field"`
	SingleAccessTokenField            *string  `yaml:"single_access_token_field"`
	LoggedInTimeout                   int      `yaml:"logged_in_timeout"`
	SessionIDs                        []string `yaml:"session_ids"`
}

// MarshalYAML renders the config with provider names and regex sources.
// A missing single access token field is rendered as null.
func (c *Config) MarshalYAML() (any, error) {
	v := configView{
		Class:                             c.Class,
		SessionClass:                      c.SessionClass,
		LoginField:                        c.LoginField,
		LoginFieldType:                    string(c.LoginFieldType),
		LoginFieldRegexFailedMessage:      c.LoginFieldRegexFailedMessage,
		PasswordField:                     c.PasswordField,
		PasswordBlankMessage:              c.PasswordBlankMessage,
		ConfirmPasswordDidNotMatchMessage: c.ConfirmPasswordDidNotMatchMessage,
		CryptedPasswordField:              c.CryptedPasswordField,
		PasswordSaltField:                 c.PasswordSaltField,
		RememberTokenField:                c.RememberTokenField,
		LoggedInTimeout:                   c.LoggedInTimeout,
	}
	if c.CryptoProvider != nil {
		v.CryptoProvider = c.CryptoProvider.Name()
	}
	for _, p := range c.TransitionFromCryptoProviders {
		if p != nil {
			v.TransitionFromCryptoProviders = append(v.TransitionFromCryptoProviders, p.Name())
		}
	}
	if c.LoginFieldRegex != nil {
		v.LoginFieldRegex = c.LoginFieldRegex.String()
	}
	if c.SingleAccessTokenField != "" {
		field := c.SingleAccessTokenField
		v.SingleAccessTokenField = &field
	}
	v.SessionIDs = make([]string, 0, len(c.SessionIDs))
	for _, id := range c.SessionIDs {
		v.SessionIDs = append(v.SessionIDs, string(id))
	}
	return v, nil
}
