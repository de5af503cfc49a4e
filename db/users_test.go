package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserDuplicateUsername(t *testing.T) {
	gormDB := newTestDB(t)
	users, err := NewUserStore(gormDB)
	require.NoError(t, err)

	ctx := context.Background()
	alice, err := users.CreateUser(ctx, "alice", "hash", "hi")
	require.NoError(t, err)
	assert.NotZero(t, alice.ID)

	_, err = users.CreateUser(ctx, "alice", "other-hash", "")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetUserByUsername(t *testing.T) {
	gormDB := newTestDB(t)
	users, err := NewUserStore(gormDB)
	require.NoError(t, err)

	ctx := context.Background()
	created, err := users.CreateUser(ctx, "alice", "hash", "hi")
	require.NoError(t, err)

	got, err := users.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = users.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
