package db

import (
	"context"
	"testing"

	"microblog/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRetweetFixture(t *testing.T) (*RetweetStore, *models.User, *models.Post) {
	t.Helper()

	gormDB := newTestDB(t)
	users, err := NewUserStore(gormDB)
	require.NoError(t, err)
	posts, err := NewPostStore(gormDB)
	require.NoError(t, err)
	retweets, err := NewRetweetStore(gormDB)
	require.NoError(t, err)

	ctx := context.Background()
	alice, err := users.CreateUser(ctx, "alice", "hash", "")
	require.NoError(t, err)
	post, err := posts.CreatePost(ctx, "hello", alice.ID)
	require.NoError(t, err)

	return retweets, alice, post
}

func TestCreateRetweetUniquePair(t *testing.T) {
	retweets, alice, post := newRetweetFixture(t)
	ctx := context.Background()

	created, err := retweets.CreateRetweet(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.UserID)
	assert.Equal(t, post.ID, created.PostID)

	_, err = retweets.CreateRetweet(ctx, alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// After deletion the pair is free again.
	_, err = retweets.DeleteRetweet(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	_, err = retweets.CreateRetweet(ctx, alice.ID, post.ID)
	assert.NoError(t, err)
}

func TestDeleteRetweetAbsent(t *testing.T) {
	retweets, alice, post := newRetweetFixture(t)

	_, err := retweets.DeleteRetweet(context.Background(), alice.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHasUserRetweetedPost(t *testing.T) {
	retweets, alice, post := newRetweetFixture(t)
	ctx := context.Background()

	ok, err := retweets.HasUserRetweetedPost(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = retweets.CreateRetweet(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	ok, err = retweets.HasUserRetweetedPost(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = retweets.DeleteRetweet(ctx, alice.ID, post.ID)
	require.NoError(t, err)

	ok, err = retweets.HasUserRetweetedPost(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCountRetweets(t *testing.T) {
	gormDB := newTestDB(t)
	users, err := NewUserStore(gormDB)
	require.NoError(t, err)
	posts, err := NewPostStore(gormDB)
	require.NoError(t, err)
	retweets, err := NewRetweetStore(gormDB)
	require.NoError(t, err)

	ctx := context.Background()
	alice, err := users.CreateUser(ctx, "alice", "hash", "")
	require.NoError(t, err)
	bob, err := users.CreateUser(ctx, "bob", "hash", "")
	require.NoError(t, err)
	post, err := posts.CreatePost(ctx, "popular", alice.ID)
	require.NoError(t, err)

	count, err := retweets.CountRetweets(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	_, err = retweets.CreateRetweet(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	_, err = retweets.CreateRetweet(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	count, err = retweets.CountRetweets(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
