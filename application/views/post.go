package views

import (
	"context"
	"sync"

	"fbclone-backend/application/auth"
	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"
)

// Post is a lazily-populated view over a post record, relative to one
// viewer.
type Post struct {
	id     string
	viewer auth.Identity
	deps   *Deps

	once sync.Once
	rec  *social.Post
	err  error
}

// NewPost builds a view from an identifier alone.
func NewPost(deps *Deps, viewer auth.Identity, id string) *Post {
	return &Post{id: id, viewer: viewer, deps: deps}
}

// PostFromRecord builds a view over an already-fetched record.
func PostFromRecord(deps *Deps, viewer auth.Identity, rec *social.Post) *Post {
	p := &Post{id: rec.ID, viewer: viewer, deps: deps}
	p.once.Do(func() { p.rec = rec })
	return p
}

func (p *Post) ID() string { return p.id }

func (p *Post) record(ctx context.Context) (*social.Post, error) {
	p.once.Do(func() {
		p.rec, p.err = p.deps.Posts.GetByID(ctx, p.id)
		if p.rec == nil && p.err == nil {
			p.err = apperrors.NewNotFoundError("post")
		}
	})
	return p.rec, p.err
}

func (p *Post) Timestamp(ctx context.Context) (int64, error) {
	rec, err := p.record(ctx)
	if err != nil {
		return 0, err
	}
	return rec.Timestamp, nil
}

func (p *Post) Message(ctx context.Context) (string, error) {
	rec, err := p.record(ctx)
	if err != nil {
		return "", err
	}
	return rec.Message, nil
}

// ImageLinks renders the attached image references as download links.
func (p *Post) ImageLinks(ctx context.Context) ([]string, error) {
	rec, err := p.record(ctx)
	if err != nil {
		return nil, err
	}
	links := make([]string, len(rec.Images))
	for i, img := range rec.Images {
		links[i] = img.Link()
	}
	return links, nil
}

// Poster returns an unfetched view over the author.
func (p *Post) Poster(ctx context.Context) (*User, error) {
	rec, err := p.record(ctx)
	if err != nil {
		return nil, err
	}
	return NewUser(p.deps, p.viewer, rec.PosterID), nil
}

// Likes counts like edges for this post. Recomputed on every access.
func (p *Post) Likes(ctx context.Context) (int, error) {
	return p.deps.Rel.LikeCount(ctx, p.id)
}

// Liked reports whether the viewer liked this post. Recomputed on every
// access; false for anonymous viewers.
func (p *Post) Liked(ctx context.Context) (bool, error) {
	return p.deps.Rel.Liked(ctx, p.viewer, p.id)
}

// Replies returns views over the post's direct replies, unfetched.
func (p *Post) Replies(ctx context.Context) ([]*Reply, error) {
	ids, err := p.deps.Replies.IDsByPost(ctx, p.id)
	if err != nil {
		return nil, err
	}
	replies := make([]*Reply, len(ids))
	for i, id := range ids {
		replies[i] = NewReply(p.deps, p.viewer, id)
	}
	return replies, nil
}
