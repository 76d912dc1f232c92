package memory

import (
	"context"
	"testing"
	"time"

	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleUniqueness(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	err := store.Users().Create(ctx, &social.User{ID: "u1", Username: "alice"})
	require.NoError(t, err)

	err = store.Users().Create(ctx, &social.User{ID: "u2", Username: "alice"})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	// The losing insert left no record behind
	rec, err := store.Users().GetByID(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMissingLookupsReturnNil(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	user, err := store.Users().GetByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)

	post, err := store.Posts().GetByID(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, post)

	session, err := store.Sessions().GetByToken(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestEdgeConflicts(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Likes().Put(ctx, "u1", "p1"))
	assert.True(t, apperrors.IsConflict(store.Likes().Put(ctx, "u1", "p1")))

	require.NoError(t, store.Requests().Put(ctx, "u1", "u2"))
	assert.True(t, apperrors.IsConflict(store.Requests().Put(ctx, "u1", "u2")))

	// Deletes of absent edges are no-ops
	assert.NoError(t, store.Likes().Delete(ctx, "u9", "p9"))
	assert.NoError(t, store.Requests().Delete(ctx, "u9", "u8"))
}

func TestRequestWithdrawThenRepeatScansOnce(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Requests().Put(ctx, "u1", "u2"))
	require.NoError(t, store.Requests().Delete(ctx, "u1", "u2"))
	require.NoError(t, store.Requests().Put(ctx, "u1", "u2"))

	receivers, err := store.Requests().Receivers(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, receivers)

	senders, err := store.Requests().Senders(ctx, "u2")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, senders)
}

func TestAuthorAndThreadScansPreserveOrder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Posts().Create(ctx, &social.Post{ID: "p1", PosterID: "u1"}))
	require.NoError(t, store.Posts().Create(ctx, &social.Post{ID: "p2", PosterID: "u2"}))
	require.NoError(t, store.Posts().Create(ctx, &social.Post{ID: "p3", PosterID: "u1"}))

	ids, err := store.Posts().IDsByAuthor(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3"}, ids)

	require.NoError(t, store.Replies().Create(ctx, &social.Reply{ID: "r1", PosterID: "u2", ReplyTo: "p1"}))
	require.NoError(t, store.Replies().Create(ctx, &social.Reply{ID: "r2", PosterID: "u1", ReplyTo: "p1"}))

	ids, err = store.Replies().IDsByPost(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r2"}, ids)
}

func TestSessionDeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.Sessions().Create(ctx, &social.Session{
		Token:     "tok",
		UserID:    "u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	existed, err := store.Sessions().Delete(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Sessions().Delete(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, existed)
}
