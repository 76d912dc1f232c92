package views

import (
	"context"
	"sync"

	"fbclone-backend/application/auth"
	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"
)

// Reply is a lazily-populated view over a reply record, relative to one
// viewer.
type Reply struct {
	id     string
	viewer auth.Identity
	deps   *Deps

	once sync.Once
	rec  *social.Reply
	err  error
}

// NewReply builds a view from an identifier alone.
func NewReply(deps *Deps, viewer auth.Identity, id string) *Reply {
	return &Reply{id: id, viewer: viewer, deps: deps}
}

// ReplyFromRecord builds a view over an already-fetched record.
func ReplyFromRecord(deps *Deps, viewer auth.Identity, rec *social.Reply) *Reply {
	r := &Reply{id: rec.ID, viewer: viewer, deps: deps}
	r.once.Do(func() { r.rec = rec })
	return r
}

func (r *Reply) ID() string { return r.id }

func (r *Reply) record(ctx context.Context) (*social.Reply, error) {
	r.once.Do(func() {
		r.rec, r.err = r.deps.Replies.GetByID(ctx, r.id)
		if r.rec == nil && r.err == nil {
			r.err = apperrors.NewNotFoundError("reply")
		}
	})
	return r.rec, r.err
}

func (r *Reply) Timestamp(ctx context.Context) (int64, error) {
	rec, err := r.record(ctx)
	if err != nil {
		return 0, err
	}
	return rec.Timestamp, nil
}

func (r *Reply) Message(ctx context.Context) (string, error) {
	rec, err := r.record(ctx)
	if err != nil {
		return "", err
	}
	return rec.Message, nil
}

// Poster returns an unfetched view over the author.
func (r *Reply) Poster(ctx context.Context) (*User, error) {
	rec, err := r.record(ctx)
	if err != nil {
		return nil, err
	}
	return NewUser(r.deps, r.viewer, rec.PosterID), nil
}

// Likes counts like edges for this reply. Recomputed on every access.
func (r *Reply) Likes(ctx context.Context) (int, error) {
	return r.deps.Rel.LikeCount(ctx, r.id)
}

// Liked reports whether the viewer liked this reply.
func (r *Reply) Liked(ctx context.Context) (bool, error) {
	return r.deps.Rel.Liked(ctx, r.viewer, r.id)
}

// ReplyTo returns an unfetched view over the post this reply targets.
func (r *Reply) ReplyTo(ctx context.Context) (*Post, error) {
	rec, err := r.record(ctx)
	if err != nil {
		return nil, err
	}
	return NewPost(r.deps, r.viewer, rec.ReplyTo), nil
}
