package auth

import "errors"

var (
	ErrNoColumnSource   = errors.New("auth: no column source")
	ErrUnknownProvider  = errors.New("auth: unknown crypto provider")
	ErrInvalidLogin     = errors.New("auth: invalid login")
	ErrBlankPassword    = errors.New("auth: blank password")
	ErrPasswordMismatch = errors.New("auth: password confirmation did not match")
	ErrMalformedHash    = errors.New("auth: malformed hash")
	ErrModelNotFound    = errors.New("auth: model not registered")
)
