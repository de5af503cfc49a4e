package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostFixture(t *testing.T) (*UserStore, *PostStore) {
	t.Helper()

	gormDB := newTestDB(t)
	users, err := NewUserStore(gormDB)
	require.NoError(t, err)
	posts, err := NewPostStore(gormDB)
	require.NoError(t, err)
	return users, posts
}

func TestCreateAndGetPost(t *testing.T) {
	users, posts := newPostFixture(t)
	ctx := context.Background()

	alice, err := users.CreateUser(ctx, "alice", "hash", "hello")
	require.NoError(t, err)

	created, err := posts.CreatePost(ctx, "first post", alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, alice.ID, created.UserID)

	got, err := posts.GetPost(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "first post", got.Content)
	assert.Equal(t, "alice", got.User.Username)
}

func TestGetPostAbsentIsNilNotError(t *testing.T) {
	_, posts := newPostFixture(t)

	got, err := posts.GetPost(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdatePost(t *testing.T) {
	users, posts := newPostFixture(t)
	ctx := context.Background()

	alice, err := users.CreateUser(ctx, "alice", "hash", "")
	require.NoError(t, err)
	created, err := posts.CreatePost(ctx, "draft", alice.ID)
	require.NoError(t, err)

	updated, err := posts.UpdatePost(ctx, created.ID, "final")
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.Equal(t, created.ID, updated.ID)

	_, err = posts.UpdatePost(ctx, 9999, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePost(t *testing.T) {
	users, posts := newPostFixture(t)
	ctx := context.Background()

	alice, err := users.CreateUser(ctx, "alice", "hash", "")
	require.NoError(t, err)
	created, err := posts.CreatePost(ctx, "to be removed", alice.ID)
	require.NoError(t, err)

	deleted, err := posts.DeletePost(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Equal(t, "to be removed", deleted.Content)

	got, err := posts.GetPost(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = posts.DeletePost(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
