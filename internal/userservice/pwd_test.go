package userservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomaskoller/inkwell/internal/common"
)

func TestPlainComparer(t *testing.T) {
	c := PlainComparer{}

	stored, err := c.Hash("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", stored, "plain comparer keeps the credential readable at rest")

	ok, err := c.Compare(stored, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Compare(stored, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptComparer(t *testing.T) {
	c := BcryptComparer{Cost: 4}

	stored, err := c.Hash("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", stored)

	ok, err := c.Compare(stored, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Compare(stored, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)
}

// The comparer is swappable at construction without touching any call site:
// the whole register/login flow works unchanged on bcrypt.
func TestUserServiceWithBcryptComparer(t *testing.T) {
	sub := common.NewMemorySubstrate()
	s := NewUserService(sub, common.TestCache(t), BcryptComparer{Cost: 4})
	ctx := context.Background()

	require.NoError(t, s.EnsureSeeded(ctx))

	account, err := s.Login(ctx, DemoAdminEmail, DemoAdminPassword)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, account.Role)

	_, err = s.Login(ctx, DemoAdminEmail, "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	accounts, err := s.GetAccounts(ctx)
	require.NoError(t, err)
	for _, a := range accounts {
		assert.Empty(t, a.Password)
	}
}
