package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Parameters kept small so tests stay fast.
var testProviders = []CryptoProvider{
	BCrypt{Cost: bcrypt.MinCost},
	Argon2{Time: 1, Memory: 1024, Threads: 1},
	SCrypt{N: 1024, R: 8, P: 1},
	Sha512{},
}

func TestProvidersRoundTrip(t *testing.T) {
	for _, p := range testProviders {
		t.Run(p.Name(), func(t *testing.T) {
			crypted, err := p.Encrypt("password123", "s4lt")
			require.NoError(t, err)
			assert.NotEmpty(t, crypted)
			assert.NotContains(t, crypted, "password123")

			assert.True(t, p.Matches(crypted, "password123", "s4lt"))
			assert.False(t, p.Matches(crypted, "password123", "other"))
			assert.False(t, p.Matches(crypted, "wrong", "s4lt"))
		})
	}
}

func TestProvidersRejectMalformedHashes(t *testing.T) {
	for _, p := range testProviders {
		t.Run(p.Name(), func(t *testing.T) {
			for _, bad := range []string{"", "$", "$argon2id$v=19$m=1,t=1,p=1$!!$!!", "$scrypt$n=1024,r=8,p=1$$"} {
				assert.False(t, p.Matches(bad, "password123"), "hash %q", bad)
			}
		})
	}
}

func TestSaltedHashesDiffer(t *testing.T) {
	for _, p := range []CryptoProvider{testProviders[0], testProviders[1], testProviders[2]} {
		a, err := p.Encrypt("password123")
		require.NoError(t, err)
		b, err := p.Encrypt("password123")
		require.NoError(t, err)
		assert.NotEqual(t, a, b, p.Name())
	}
}

func TestSha512IsStretched(t *testing.T) {
	one, err := Sha512{Stretches: 1}.Encrypt("password")
	require.NoError(t, err)
	twenty, err := Sha512{}.Encrypt("password")
	require.NoError(t, err)

	assert.Len(t, twenty, 128)
	assert.NotEqual(t, one, twenty)
	assert.True(t, Sha512{Stretches: 20}.Matches(twenty, "password"))
}

func TestArgon2EncodesParameters(t *testing.T) {
	crypted, err := Argon2{Time: 2, Memory: 2048, Threads: 1}.Encrypt("pw")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(crypted, "$argon2id$v=19$m=2048,t=2,p=1$"), crypted)
	// Matching reads the parameters from the hash, not the receiver.
	assert.True(t, Argon2{}.Matches(crypted, "pw"))
}

func TestNewBCryptValidation(t *testing.T) {
	_, err := NewBCrypt(3)
	assert.Error(t, err)
	_, err = NewBCrypt(32)
	assert.Error(t, err)
	p, err := NewBCrypt(5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Cost)
}

func TestProviderByName(t *testing.T) {
	for name, want := range map[string]string{
		"bcrypt":   "bcrypt",
		" BCrypt ": "bcrypt",
		"argon2":   "argon2",
		"argon2id": "argon2",
		"scrypt":   "scrypt",
		"sha512":   "sha512",
	} {
		p, err := ProviderByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, p.Name())
	}

	_, err := ProviderByName("md5")
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestPasswordMatchesTransitions(t *testing.T) {
	legacy := Sha512{}
	cfg := Configure("User", Options{
		CryptoProvider:                BCrypt{Cost: bcrypt.MinCost},
		TransitionFromCryptoProviders: []CryptoProvider{legacy},
	}, userColumns())

	old, err := legacy.Encrypt("password123", "salt")
	require.NoError(t, err)
	p, ok := cfg.PasswordMatches(old, "password123", "salt")
	require.True(t, ok)
	assert.Equal(t, "sha512", p.Name())

	current, err := cfg.EncryptPassword("password123", "salt")
	require.NoError(t, err)
	p, ok = cfg.PasswordMatches(current, "password123", "salt")
	require.True(t, ok)
	assert.Equal(t, "bcrypt", p.Name())

	_, ok = cfg.PasswordMatches(current, "password123", "")
	assert.False(t, ok)
}

func TestEncryptPasswordWithoutSalt(t *testing.T) {
	cfg := Configure("User", Options{CryptoProvider: Sha512{}}, NewColumnSet("id"))
	crypted, err := cfg.EncryptPassword("pw", "")
	require.NoError(t, err)
	want, _ := Sha512{}.Encrypt("pw")
	assert.Equal(t, want, crypted)
}
