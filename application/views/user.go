package views

import (
	"context"
	"sync"

	"fbclone-backend/application/auth"
	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"
)

// User is a lazily-populated view over an account record, relative to one
// viewer.
type User struct {
	id     string
	viewer auth.Identity
	deps   *Deps

	once sync.Once
	rec  *social.User
	err  error
}

// NewUser builds a view from an identifier alone. Cheap; nothing is fetched
// until a field is read.
func NewUser(deps *Deps, viewer auth.Identity, id string) *User {
	return &User{id: id, viewer: viewer, deps: deps}
}

// UserFromRecord builds a view over an already-fetched record, so field
// accesses never refetch it. Used by filtered lookups and mutation results.
func UserFromRecord(deps *Deps, viewer auth.Identity, rec *social.User) *User {
	u := &User{id: rec.ID, viewer: viewer, deps: deps}
	u.once.Do(func() { u.rec = rec })
	return u
}

// ID is known at construction and never requires a fetch.
func (u *User) ID() string { return u.id }

func (u *User) record(ctx context.Context) (*social.User, error) {
	u.once.Do(func() {
		u.rec, u.err = u.deps.Users.GetByID(ctx, u.id)
		if u.rec == nil && u.err == nil {
			u.err = apperrors.NewNotFoundError("user")
		}
	})
	return u.rec, u.err
}

func (u *User) Username(ctx context.Context) (string, error) {
	rec, err := u.record(ctx)
	if err != nil {
		return "", err
	}
	return rec.Username, nil
}

func (u *User) Name(ctx context.Context) (string, error) {
	rec, err := u.record(ctx)
	if err != nil {
		return "", err
	}
	return rec.Name, nil
}

// AvatarLink renders the profile image reference as a download link.
func (u *User) AvatarLink(ctx context.Context) (string, error) {
	rec, err := u.record(ctx)
	if err != nil {
		return "", err
	}
	return rec.Avatar.Link(), nil
}

// FriendReqIn reports a pending request from this user to the viewer.
// Recomputed on every access; false for anonymous viewers.
func (u *User) FriendReqIn(ctx context.Context) (bool, error) {
	if u.viewer.IsAnonymous() {
		return false, nil
	}
	return u.deps.Rel.HasRequest(ctx, u.id, u.viewer.UserID)
}

// FriendReqOut reports a pending request from the viewer to this user.
func (u *User) FriendReqOut(ctx context.Context) (bool, error) {
	if u.viewer.IsAnonymous() {
		return false, nil
	}
	return u.deps.Rel.HasRequest(ctx, u.viewer.UserID, u.id)
}

// Friends returns views over this user's mutual friends. Only identifiers
// are fetched here; each friend's record loads on its own first field
// access.
func (u *User) Friends(ctx context.Context) ([]*User, error) {
	ids, err := u.deps.Rel.Friends(ctx, u.id)
	if err != nil {
		return nil, err
	}
	friends := make([]*User, len(ids))
	for i, id := range ids {
		friends[i] = NewUser(u.deps, u.viewer, id)
	}
	return friends, nil
}

// Posts returns views over this user's posts, unfetched.
func (u *User) Posts(ctx context.Context) ([]*Post, error) {
	ids, err := u.deps.Posts.IDsByAuthor(ctx, u.id)
	if err != nil {
		return nil, err
	}
	posts := make([]*Post, len(ids))
	for i, id := range ids {
		posts[i] = NewPost(u.deps, u.viewer, id)
	}
	return posts, nil
}

// Replies returns views over this user's replies, unfetched.
func (u *User) Replies(ctx context.Context) ([]*Reply, error) {
	ids, err := u.deps.Replies.IDsByAuthor(ctx, u.id)
	if err != nil {
		return nil, err
	}
	replies := make([]*Reply, len(ids))
	for i, id := range ids {
		replies[i] = NewReply(u.deps, u.viewer, id)
	}
	return replies, nil
}
