package auth

import (
	"errors"
)

// FieldError is a validation failure on one field of the model. Message is
// the configured human message; Err is one of the sentinel errors.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string { return e.Field + " " + e.Message }

func (e *FieldError) Unwrap() error { return e.Err }

// Validator checks logins and passwords against a resolved Config.
type Validator struct {
	cfg *Config
}

func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// ValidateLogin checks login, as given, against LoginFieldRegex.
// NormalizeLogin is for lookups and is not applied here.
func (v *Validator) ValidateLogin(login string) error {
	if v.cfg.LoginFieldRegex != nil && !v.cfg.LoginFieldRegex.MatchString(login) {
		return &FieldError{Field: v.cfg.LoginField, Message: v.cfg.LoginFieldRegexFailedMessage, Err: ErrInvalidLogin}
	}
	return nil
}

// ValidatePassword checks that password is present and equals confirmation.
func (v *Validator) ValidatePassword(password, confirmation string) error {
	if password == "" {
		return &FieldError{Field: v.cfg.PasswordField, Message: v.cfg.PasswordBlankMessage, Err: ErrBlankPassword}
	}
	if password != confirmation {
		return &FieldError{
			Field:   v.cfg.PasswordField + "_confirmation",
			Message: v.cfg.ConfirmPasswordDidNotMatchMessage,
			Err:     ErrPasswordMismatch,
		}
	}
	return nil
}

// Validate runs every check and joins the failures.
func (v *Validator) Validate(login, password, confirmation string) error {
	return errors.Join(v.ValidateLogin(login), v.ValidatePassword(password, confirmation))
}
