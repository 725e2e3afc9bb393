package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAttachesValidator(t *testing.T) {
	reg := newTestRegistry(t)

	m, err := reg.Register("Member", Options{
		PasswordField:        "secret",
		PasswordBlankMessage: "is required",
	}, accountColumns())
	require.NoError(t, err)

	v := m.Validator()
	require.NotNil(t, v)
	assert.NoError(t, v.ValidateLogin("member@example.com"))
	assert.ErrorIs(t, v.ValidateLogin("member"), ErrInvalidLogin)
	assert.Equal(t, "secret is required", v.ValidatePassword("", "").Error())
}

func TestRegisterPublishesModel(t *testing.T) {
	reg := newTestRegistry(t)

	m, err := reg.Register("User", Options{}, userColumns())
	require.NoError(t, err)
	assert.Equal(t, "User", m.Name())
	assert.Equal(t, "username", m.Config().LoginField)
	require.NotNil(t, m.Validator())

	got, ok := reg.Model("User")
	require.True(t, ok)
	assert.Same(t, m, got)
	assert.Same(t, m.Config(), got.Config())

	_, ok = reg.Model("Account")
	assert.False(t, ok)
	_, err = reg.Lookup("Account")
	assert.True(t, errors.Is(err, ErrModelNotFound))
}

func TestRegisterAgainReplacesModel(t *testing.T) {
	var logs []string
	reg := NewRegistry(WithLogf(func(format string, args ...any) {
		logs = append(logs, fmt.Sprintf(format, args...))
	}))

	first, err := reg.Register("User", Options{}, userColumns())
	require.NoError(t, err)
	second, err := reg.Register("User", Options{LoggedInTimeout: seconds(60)}, userColumns())
	require.NoError(t, err)

	got, err := reg.Lookup("User")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Equal(t, 600, first.Config().LoggedInTimeout)
	assert.Equal(t, 60, got.Config().LoggedInTimeout)
	assert.True(t, strings.Contains(strings.Join(logs, "\n"), "re-registered User"))
}

func TestRegisterForwardsResolvedConfig(t *testing.T) {
	reg := newTestRegistry(t)

	var order []string
	var seen *Config
	first := RegistrarFunc(func(cfg *Config) error {
		order = append(order, "first")
		seen = cfg
		return nil
	})
	second := RegistrarFunc(func(cfg *Config) error {
		order = append(order, "second")
		assert.Equal(t, "email", cfg.LoginField)
		return nil
	})

	m, err := reg.Register("Account", Options{}, accountColumns(), first, nil, second)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Same(t, m.Config(), seen)
}

func TestRegisterKeepsModelWhenRegistrarFails(t *testing.T) {
	reg := newTestRegistry(t)
	boom := errors.New("boom")
	called := false

	m, err := reg.Register("User", Options{}, userColumns(),
		RegistrarFunc(func(*Config) error { return boom }),
		RegistrarFunc(func(*Config) error { called = true; return nil }),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "register User")
	assert.False(t, called, "chain must stop at the first error")

	got, ok := reg.Model("User")
	require.True(t, ok)
	assert.Same(t, m, got)
}

func TestRegisterFrom(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()
	src := fakeSource{
		"users":    {"id", "username", "password_hash", "pw_salt", "remember_key"},
		"accounts": {"id", "email", "crypted_password", "feeds_token"},
	}

	m, err := reg.RegisterFrom(ctx, src, "accounts", "Account", Options{})
	require.NoError(t, err)
	assert.Equal(t, "email", m.Config().LoginField)
	assert.Equal(t, "feeds_token", m.Config().SingleAccessTokenField)

	_, err = reg.RegisterFrom(ctx, src, "admins", "Admin", Options{})
	require.Error(t, err)
	_, ok := reg.Model("Admin")
	assert.False(t, ok)

	_, err = reg.RegisterFrom(ctx, nil, "users", "User", Options{})
	assert.True(t, errors.Is(err, ErrNoColumnSource))
}

func TestChainWithoutRegistrars(t *testing.T) {
	assert.NoError(t, Chain().Register(&Config{}))
	assert.NoError(t, Chain(nil, nil).Register(&Config{}))
}
