package handlers

import (
	"context"
	"net/http"
	"strings"

	"fbclone-backend/application/views"
)

// expandSet holds the relationship fields a request asked to resolve.
// Parsed from the expand query parameter; nested renders always get an
// empty set, so expansion stops one level deep.
type expandSet map[string]bool

func parseExpand(r *http.Request) expandSet {
	set := expandSet{}
	raw := r.URL.Query().Get("expand")
	if raw == "" {
		return set
	}
	for _, field := range strings.Split(raw, ",") {
		if field = strings.TrimSpace(field); field != "" {
			set[field] = true
		}
	}
	return set
}

// UserDTO is the rendered form of a user view.
type UserDTO struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Name         string      `json:"name"`
	Avatar       string      `json:"avatar,omitempty"`
	FriendReqIn  bool        `json:"friendReqIn"`
	FriendReqOut bool        `json:"friendReqOut"`
	Friends      []*UserDTO  `json:"friends,omitempty"`
	Posts        []*PostDTO  `json:"posts,omitempty"`
	Replies      []*ReplyDTO `json:"replies,omitempty"`
}

// PostDTO is the rendered form of a post view.
type PostDTO struct {
	ID        string      `json:"id"`
	Timestamp int64       `json:"timestamp"`
	Message   string      `json:"message"`
	Images    []string    `json:"images,omitempty"`
	Likes     int         `json:"likes"`
	Liked     bool        `json:"liked"`
	Poster    *UserDTO    `json:"poster,omitempty"`
	Replies   []*ReplyDTO `json:"replies,omitempty"`
}

// ReplyDTO is the rendered form of a reply view.
type ReplyDTO struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"`
	Message   string   `json:"message"`
	Likes     int      `json:"likes"`
	Liked     bool     `json:"liked"`
	Poster    *UserDTO `json:"poster,omitempty"`
	ReplyTo   *PostDTO `json:"replyTo,omitempty"`
}

// renderUser resolves a user view's scalar fields, plus any requested
// relationships one level deep.
func renderUser(ctx context.Context, u *views.User, expand expandSet) (*UserDTO, error) {
	username, err := u.Username(ctx)
	if err != nil {
		return nil, err
	}
	name, err := u.Name(ctx)
	if err != nil {
		return nil, err
	}
	avatar, err := u.AvatarLink(ctx)
	if err != nil {
		return nil, err
	}
	reqIn, err := u.FriendReqIn(ctx)
	if err != nil {
		return nil, err
	}
	reqOut, err := u.FriendReqOut(ctx)
	if err != nil {
		return nil, err
	}

	dto := &UserDTO{
		ID:           u.ID(),
		Username:     username,
		Name:         name,
		Avatar:       avatar,
		FriendReqIn:  reqIn,
		FriendReqOut: reqOut,
	}

	if expand["friends"] {
		friends, err := u.Friends(ctx)
		if err != nil {
			return nil, err
		}
		dto.Friends = make([]*UserDTO, len(friends))
		for i, f := range friends {
			if dto.Friends[i], err = renderUser(ctx, f, nil); err != nil {
				return nil, err
			}
		}
	}

	if expand["posts"] {
		posts, err := u.Posts(ctx)
		if err != nil {
			return nil, err
		}
		dto.Posts = make([]*PostDTO, len(posts))
		for i, p := range posts {
			if dto.Posts[i], err = renderPost(ctx, p, nil); err != nil {
				return nil, err
			}
		}
	}

	if expand["replies"] {
		replies, err := u.Replies(ctx)
		if err != nil {
			return nil, err
		}
		dto.Replies = make([]*ReplyDTO, len(replies))
		for i, rep := range replies {
			if dto.Replies[i], err = renderReply(ctx, rep, nil); err != nil {
				return nil, err
			}
		}
	}

	return dto, nil
}

// renderPost resolves a post view's scalar fields plus like state, and
// any requested relationships one level deep.
func renderPost(ctx context.Context, p *views.Post, expand expandSet) (*PostDTO, error) {
	timestamp, err := p.Timestamp(ctx)
	if err != nil {
		return nil, err
	}
	message, err := p.Message(ctx)
	if err != nil {
		return nil, err
	}
	images, err := p.ImageLinks(ctx)
	if err != nil {
		return nil, err
	}
	likes, err := p.Likes(ctx)
	if err != nil {
		return nil, err
	}
	liked, err := p.Liked(ctx)
	if err != nil {
		return nil, err
	}

	dto := &PostDTO{
		ID:        p.ID(),
		Timestamp: timestamp,
		Message:   message,
		Images:    images,
		Likes:     likes,
		Liked:     liked,
	}

	if expand["poster"] {
		poster, err := p.Poster(ctx)
		if err != nil {
			return nil, err
		}
		if dto.Poster, err = renderUser(ctx, poster, nil); err != nil {
			return nil, err
		}
	}

	if expand["replies"] {
		replies, err := p.Replies(ctx)
		if err != nil {
			return nil, err
		}
		dto.Replies = make([]*ReplyDTO, len(replies))
		for i, rep := range replies {
			if dto.Replies[i], err = renderReply(ctx, rep, nil); err != nil {
				return nil, err
			}
		}
	}

	return dto, nil
}

// renderReply resolves a reply view's scalar fields plus like state, and
// any requested relationships one level deep.
func renderReply(ctx context.Context, rep *views.Reply, expand expandSet) (*ReplyDTO, error) {
	timestamp, err := rep.Timestamp(ctx)
	if err != nil {
		return nil, err
	}
	message, err := rep.Message(ctx)
	if err != nil {
		return nil, err
	}
	likes, err := rep.Likes(ctx)
	if err != nil {
		return nil, err
	}
	liked, err := rep.Liked(ctx)
	if err != nil {
		return nil, err
	}

	dto := &ReplyDTO{
		ID:        rep.ID(),
		Timestamp: timestamp,
		Message:   message,
		Likes:     likes,
		Liked:     liked,
	}

	if expand["poster"] {
		poster, err := rep.Poster(ctx)
		if err != nil {
			return nil, err
		}
		if dto.Poster, err = renderUser(ctx, poster, nil); err != nil {
			return nil, err
		}
	}

	if expand["replyTo"] {
		target, err := rep.ReplyTo(ctx)
		if err != nil {
			return nil, err
		}
		if dto.ReplyTo, err = renderPost(ctx, target, nil); err != nil {
			return nil, err
		}
	}

	return dto, nil
}

// bearerToken extracts the credential from the Authorization header.
// Returns the empty string for absent or malformed headers; the gate
// treats that as an anonymous caller.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
