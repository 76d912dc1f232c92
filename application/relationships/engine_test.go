package relationships

import (
	"context"
	"testing"

	"fbclone-backend/application/auth"
	"fbclone-backend/infrastructure/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendsRequiresBothDirections(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	engine := NewEngine(store.Requests(), store.Likes())

	// alice -> bob only: not friends yet
	require.NoError(t, store.Requests().Put(ctx, "alice", "bob"))

	friends, err := engine.Friends(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, friends)

	// bob answers: now mutual, from both perspectives
	require.NoError(t, store.Requests().Put(ctx, "bob", "alice"))

	friends, err = engine.Friends(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, friends)

	friends, err = engine.Friends(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, friends)
}

func TestFriendsWithdrawnEdgeBreaksFriendship(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	engine := NewEngine(store.Requests(), store.Likes())

	require.NoError(t, store.Requests().Put(ctx, "alice", "bob"))
	require.NoError(t, store.Requests().Put(ctx, "bob", "alice"))
	require.NoError(t, store.Requests().Delete(ctx, "alice", "bob"))

	friends, err := engine.Friends(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, friends)

	// The surviving direction is still a pending request
	pending, err := engine.HasRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.True(t, pending)
}

func TestHasRequestIsDirectional(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	engine := NewEngine(store.Requests(), store.Likes())

	require.NoError(t, store.Requests().Put(ctx, "alice", "bob"))

	out, err := engine.HasRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, out)

	in, err := engine.HasRequest(ctx, "bob", "alice")
	require.NoError(t, err)
	assert.False(t, in)
}

func TestLikeCountAndMembership(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	engine := NewEngine(store.Requests(), store.Likes())

	require.NoError(t, store.Likes().Put(ctx, "alice", "post-1"))
	require.NoError(t, store.Likes().Put(ctx, "bob", "post-1"))
	require.NoError(t, store.Likes().Put(ctx, "alice", "post-2"))

	count, err := engine.LikeCount(ctx, "post-1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	liked, err := engine.Liked(ctx, auth.Identity{UserID: "alice"}, "post-1")
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = engine.Liked(ctx, auth.Identity{UserID: "carol"}, "post-1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikedAnonymousViewer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	engine := NewEngine(store.Requests(), store.Likes())

	require.NoError(t, store.Likes().Put(ctx, "alice", "post-1"))

	liked, err := engine.Liked(ctx, auth.Anonymous, "post-1")
	require.NoError(t, err)
	assert.False(t, liked)
}
