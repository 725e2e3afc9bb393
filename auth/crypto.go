package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/scrypt"
)

// CryptoProvider hashes credentials and verifies them against a stored hash.
// Tokens are concatenated in order (typically password then salt).
type CryptoProvider interface {
	Name() string
	Encrypt(tokens ...string) (string, error)
	Matches(crypted string, tokens ...string) bool
}

// DefaultCryptoProvider is used when Options.CryptoProvider is unset.
var DefaultCryptoProvider CryptoProvider = BCrypt{Cost: bcrypt.DefaultCost}

// ProviderByName returns a provider with default parameters for one of
// "bcrypt", "argon2", "scrypt" or "sha512".
func ProviderByName(name string) (CryptoProvider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bcrypt":
		return BCrypt{Cost: bcrypt.DefaultCost}, nil
	case "argon2", "argon2id":
		return Argon2{}, nil
	case "scrypt":
		return SCrypt{}, nil
	case "sha512":
		return Sha512{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
}

// BCrypt hashes with golang.org/x/crypto/bcrypt.
type BCrypt struct {
	// Cost in [4,31]. Zero means bcrypt.DefaultCost.
	Cost int
}

// NewBCrypt validates cost and returns a provider using it.
func NewBCrypt(cost int) (BCrypt, error) {
	if err := validateBcryptCost(cost); err != nil {
		return BCrypt{}, err
	}
	return BCrypt{Cost: cost}, nil
}

func (BCrypt) Name() string { return "bcrypt" }

func (b BCrypt) Encrypt(tokens ...string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.Join(tokens, "")), cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

func (BCrypt) Matches(crypted string, tokens ...string) bool {
	return bcrypt.CompareHashAndPassword([]byte(crypted), []byte(strings.Join(tokens, ""))) == nil
}

func validateBcryptCost(cost int) error {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt cost must be in [%d,%d]; got %d", bcrypt.MinCost, bcrypt.MaxCost, cost)
	}
	return nil
}

// Argon2 hashes with argon2id. Zero fields take the defaults below.
type Argon2 struct {
	Time    uint32 // default 1
	Memory  uint32 // KiB, default 64 MiB
	Threads uint8  // default 4
	KeyLen  uint32 // default 32
	SaltLen int    // default 16
}

func (a Argon2) withDefaults() Argon2 {
	if a.Time == 0 {
		a.Time = 1
	}
	if a.Memory == 0 {
		a.Memory = 64 * 1024
	}
	if a.Threads == 0 {
		a.Threads = 4
	}
	if a.KeyLen == 0 {
		a.KeyLen = 32
	}
	if a.SaltLen <= 0 {
		a.SaltLen = 16
	}
	return a
}

func (Argon2) Name() string { return "argon2" }

// Encrypt returns a PHC-style string: $argon2id$v=19$m=..,t=..,p=..$salt$key.
func (a Argon2) Encrypt(tokens ...string) (string, error) {
	a = a.withDefaults()
	salt, err := randomBytes(a.SaltLen)
	if err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(strings.Join(tokens, "")), salt, a.Time, a.Memory, a.Threads, a.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, a.Memory, a.Time, a.Threads, b64(salt), b64(key)), nil
}

func (Argon2) Matches(crypted string, tokens ...string) bool {
	parts := strings.Split(crypted, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}
	var (
		memory, time uint32
		threads      uint8
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	salt, key, err := decodeSaltAndKey(parts[4], parts[5])
	if err != nil {
		return false
	}
	got := argon2.IDKey([]byte(strings.Join(tokens, "")), salt, time, memory, threads, uint32(len(key)))
	return subtle.ConstantTimeCompare(got, key) == 1
}

// SCrypt hashes with golang.org/x/crypto/scrypt. Zero fields take the
// defaults below.
type SCrypt struct {
	N       int // default 32768
	R       int // default 8
	P       int // default 1
	KeyLen  int // default 32
	SaltLen int // default 16
}

func (s SCrypt) withDefaults() SCrypt {
	if s.N == 0 {
		s.N = 1 << 15
	}
	if s.R == 0 {
		s.R = 8
	}
	if s.P == 0 {
		s.P = 1
	}
	if s.KeyLen == 0 {
		s.KeyLen = 32
	}
	if s.SaltLen <= 0 {
		s.SaltLen = 16
	}
	return s
}

func (SCrypt) Name() string { return "scrypt" }

// Encrypt returns $scrypt$n=..,r=..,p=..$salt$key.
func (s SCrypt) Encrypt(tokens ...string) (string, error) {
	s = s.withDefaults()
	salt, err := randomBytes(s.SaltLen)
	if err != nil {
		return "", err
	}
	key, err := scrypt.Key([]byte(strings.Join(tokens, "")), salt, s.N, s.R, s.P, s.KeyLen)
	if err != nil {
		return "", fmt.Errorf("scrypt: %w", err)
	}
	return fmt.Sprintf("$scrypt$n=%d,r=%d,p=%d$%s$%s", s.N, s.R, s.P, b64(salt), b64(key)), nil
}

func (SCrypt) Matches(crypted string, tokens ...string) bool {
	parts := strings.Split(crypted, "$")
	if len(parts) != 5 || parts[1] != "scrypt" {
		return false
	}
	var n, r, p int
	if _, err := fmt.Sscanf(parts[2], "n=%d,r=%d,p=%d", &n, &r, &p); err != nil {
		return false
	}
	salt, key, err := decodeSaltAndKey(parts[3], parts[4])
	if err != nil {
		return false
	}
	got, err := scrypt.Key([]byte(strings.Join(tokens, "")), salt, n, r, p, len(key))
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(got, key) == 1
}

// Sha512 is the legacy stretched SHA-512 digest: the joined tokens are
// hashed Stretches times, each round hashing the previous hex digest.
// Kept for verifying old hashes through TransitionFromCryptoProviders.
type Sha512 struct {
	Stretches int // default 20
}

func (Sha512) Name() string { return "sha512" }

func (s Sha512) Encrypt(tokens ...string) (string, error) {
	stretches := s.Stretches
	if stretches <= 0 {
		stretches = 20
	}
	digest := strings.Join(tokens, "")
	for i := 0; i < stretches; i++ {
		sum := sha512.Sum512([]byte(digest))
		digest = hex.EncodeToString(sum[:])
	}
	return digest, nil
}

func (s Sha512) Matches(crypted string, tokens ...string) bool {
	want, _ := s.Encrypt(tokens...)
	return subtle.ConstantTimeCompare([]byte(want), []byte(crypted)) == 1
}

// EncryptPassword hashes password (and salt, if any) with the configured
// provider.
func (c *Config) EncryptPassword(password, salt string) (string, error) {
	return c.CryptoProvider.Encrypt(credentialTokens(password, salt)...)
}

// PasswordMatches checks password against crypted using the configured
// provider first, then each transition provider in order. It returns the
// provider that matched so callers can re-hash with the current one.
func (c *Config) PasswordMatches(crypted, password, salt string) (CryptoProvider, bool) {
	tokens := credentialTokens(password, salt)
	if c.CryptoProvider.Matches(crypted, tokens...) {
		return c.CryptoProvider, true
	}
	for _, p := range c.TransitionFromCryptoProviders {
		if p != nil && p.Matches(crypted, tokens...) {
			return p, true
		}
	}
	return nil, false
}

func credentialTokens(password, salt string) []string {
	if salt == "" {
		return []string{password}
	}
	return []string{password, salt}
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}

func b64(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

func decodeSaltAndKey(salt, key string) ([]byte, []byte, error) {
	s, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	k, err := base64.RawStdEncoding.DecodeString(key)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}
	if len(k) == 0 {
		return nil, nil, ErrMalformedHash
	}
	return s, k, nil
}
