package auth

import (
	"regexp"
	"strings"
)

const (
	EmailRegexFailedMessage = "should look like an email address."
	LoginRegexFailedMessage = "use only letters, numbers, spaces, and .-_@ please."
)

var (
	// EmailRegex accepts addresses whose top-level domain is a two-letter
	// code or one of a closed set of generic domains.
	EmailRegex = regexp.MustCompile(
		`(?i)\A[A-Z0-9_.%+\-']+@(?:[A-Z0-9\-]+\.)+(?:[A-Z]{2}|com|org|net|edu|gov|mil|biz|info|mobi|name|aero|jobs|museum)\z`,
	)

	// LoginRegex requires a word character first, then word characters,
	// dots, hyphens, underscores, at-signs or spaces.
	LoginRegex = regexp.MustCompile(`\A\w[\w.\-_@ ]+\z`)
)

func normalizeEmail(e string) string {
	return strings.TrimSpace(strings.ToLower(e))
}

// NormalizeLogin trims the login and, for email logins, lower-cases it.
func (c *Config) NormalizeLogin(login string) string {
	if c.LoginFieldType == LoginTypeEmail {
		return normalizeEmail(login)
	}
	return strings.TrimSpace(login)
}
