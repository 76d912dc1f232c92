package views

import (
	"context"
	"testing"
	"time"

	"fbclone-backend/application/auth"
	"fbclone-backend/application/ports"
	"fbclone-backend/application/relationships"
	"fbclone-backend/domain/social"
	"fbclone-backend/infrastructure/persistence/memory"
	apperrors "fbclone-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingUsers wraps a user repository and counts record fetches.
type countingUsers struct {
	ports.UserRepository
	gets int
}

func (c *countingUsers) GetByID(ctx context.Context, id string) (*social.User, error) {
	c.gets++
	return c.UserRepository.GetByID(ctx, id)
}

func newTestDeps(t *testing.T) (*Deps, *memory.Store, *countingUsers) {
	t.Helper()
	store := memory.NewStore()
	users := &countingUsers{UserRepository: store.Users()}
	deps := &Deps{
		Users:   users,
		Posts:   store.Posts(),
		Replies: store.Replies(),
		Rel:     relationships.NewEngine(store.Requests(), store.Likes()),
	}
	return deps, store, users
}

func seedUser(t *testing.T, store *memory.Store, id, handle string) {
	t.Helper()
	err := store.Users().Create(context.Background(), &social.User{
		ID:        id,
		Username:  handle,
		Name:      "Some Name",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
}

func TestUserViewConstructionFetchesNothing(t *testing.T) {
	deps, store, users := newTestDeps(t)
	seedUser(t, store, "user-1", "alice")

	u := NewUser(deps, auth.Anonymous, "user-1")
	assert.Equal(t, "user-1", u.ID())
	assert.Equal(t, 0, users.gets)
}

func TestUserViewFetchesRecordExactlyOnce(t *testing.T) {
	ctx := context.Background()
	deps, store, users := newTestDeps(t)
	seedUser(t, store, "user-1", "alice")

	u := NewUser(deps, auth.Anonymous, "user-1")

	handle, err := u.Username(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", handle)

	_, err = u.Name(ctx)
	require.NoError(t, err)
	_, err = u.AvatarLink(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, users.gets)
}

func TestUserViewFromRecordNeverFetches(t *testing.T) {
	ctx := context.Background()
	deps, _, users := newTestDeps(t)

	u := UserFromRecord(deps, auth.Anonymous, &social.User{
		ID:       "user-1",
		Username: "alice",
		Name:     "Alice",
	})

	handle, err := u.Username(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", handle)
	assert.Equal(t, 0, users.gets)
}

func TestUserViewMissingRecord(t *testing.T) {
	ctx := context.Background()
	deps, _, _ := newTestDeps(t)

	u := NewUser(deps, auth.Anonymous, "ghost")
	_, err := u.Username(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserViewNestedViewsStayUnfetched(t *testing.T) {
	ctx := context.Background()
	deps, store, users := newTestDeps(t)
	seedUser(t, store, "user-1", "alice")
	seedUser(t, store, "user-2", "bob")

	require.NoError(t, store.Requests().Put(ctx, "user-1", "user-2"))
	require.NoError(t, store.Requests().Put(ctx, "user-2", "user-1"))

	u := NewUser(deps, auth.Anonymous, "user-1")
	friends, err := u.Friends(ctx)
	require.NoError(t, err)
	require.Len(t, friends, 1)

	// Listing friends resolves identifiers only
	assert.Equal(t, 0, users.gets)
	assert.Equal(t, "user-2", friends[0].ID())

	// Reading a field loads just that friend's record
	handle, err := friends[0].Username(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", handle)
	assert.Equal(t, 1, users.gets)
}

func TestPostViewDerivedFieldsRecomputed(t *testing.T) {
	ctx := context.Background()
	deps, store, _ := newTestDeps(t)

	require.NoError(t, store.Posts().Create(ctx, &social.Post{
		ID:       "post-1",
		PosterID: "user-1",
		Message:  "hello",
	}))

	viewer := auth.Identity{UserID: "user-2"}
	p := NewPost(deps, viewer, "post-1")

	likes, err := p.Likes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, likes)

	// A like landing after the view was built is still observed
	require.NoError(t, store.Likes().Put(ctx, "user-2", "post-1"))

	likes, err = p.Likes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)

	liked, err := p.Liked(ctx)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestReplyViewThreading(t *testing.T) {
	ctx := context.Background()
	deps, store, _ := newTestDeps(t)

	require.NoError(t, store.Posts().Create(ctx, &social.Post{
		ID:       "post-1",
		PosterID: "user-1",
		Message:  "original",
	}))
	require.NoError(t, store.Replies().Create(ctx, &social.Reply{
		ID:       "reply-1",
		PosterID: "user-2",
		Message:  "answer",
		ReplyTo:  "post-1",
	}))

	r := NewReply(deps, auth.Anonymous, "reply-1")
	parent, err := r.ReplyTo(ctx)
	require.NoError(t, err)

	msg, err := parent.Message(ctx)
	require.NoError(t, err)
	assert.Equal(t, "original", msg)

	replies, err := parent.Replies(ctx)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "reply-1", replies[0].ID())
}
