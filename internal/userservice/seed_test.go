package userservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomaskoller/inkwell/internal/common"
)

func TestEnsureSeeded(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSeeded(ctx))

	accounts, err := s.GetAccounts(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	assert.Equal(t, "1", accounts[0].ID)
	assert.Equal(t, DemoAdminEmail, accounts[0].Email)
	assert.Equal(t, RoleAdmin, accounts[0].Role)

	assert.Equal(t, "2", accounts[1].ID)
	assert.Equal(t, DemoUserEmail, accounts[1].Email)
	assert.Equal(t, RoleUser, accounts[1].Role)

	// seeding does not log anyone in
	session, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestEnsureSeededIsIdempotent(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, s.EnsureSeeded(ctx))
	require.NoError(t, s.EnsureSeeded(ctx))

	accounts, err := s.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestEnsureSeededLeavesExistingCollectionAlone(t *testing.T) {
	sub := common.NewMemorySubstrate()
	s := NewUserService(sub, common.TestCache(t), nil)
	ctx := context.Background()

	require.NoError(t, sub.Set(ctx, "users", "[]"))
	require.NoError(t, s.EnsureSeeded(ctx))

	accounts, err := s.GetAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestRegisterOnEmptySubstrate(t *testing.T) {
	s, _ := setupTestService(t)
	ctx := context.Background()

	// no seeding at all: register must still work against an absent collection
	account, err := s.Register(ctx, "a@x.com", "p", "A")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, account.Role)

	session, err := s.CurrentSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, account.ID, session.ID)
}
