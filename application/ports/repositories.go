package ports

import (
	"context"

	"fbclone-backend/domain/social"
)

// Repository interfaces for each persisted collection. Implementations map
// these onto the document store; lookups that find nothing return (nil, nil)
// rather than an error, and inserts that would violate a uniqueness
// constraint return a conflict error the caller can detect.

// UserRepository provides access to the accounts collection.
type UserRepository interface {
	// Create inserts a new account. The handle claim and the profile are
	// written atomically; a taken handle yields a conflict error.
	Create(ctx context.Context, user *social.User) error

	GetByID(ctx context.Context, id string) (*social.User, error)
	GetByHandle(ctx context.Context, handle string) (*social.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// PostRepository provides access to the posts collection.
type PostRepository interface {
	Create(ctx context.Context, post *social.Post) error
	GetByID(ctx context.Context, id string) (*social.Post, error)
	Exists(ctx context.Context, id string) (bool, error)

	// IDsByAuthor returns post identifiers only; callers materialize views
	// lazily from them.
	IDsByAuthor(ctx context.Context, authorID string) ([]string, error)
}

// ReplyRepository provides access to the replies collection.
type ReplyRepository interface {
	Create(ctx context.Context, reply *social.Reply) error
	GetByID(ctx context.Context, id string) (*social.Reply, error)
	Exists(ctx context.Context, id string) (bool, error)
	IDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	IDsByPost(ctx context.Context, postID string) ([]string, error)
}

// LikeRepository provides access to the like edge collection. The
// (liker, content) pair is the primary key.
type LikeRepository interface {
	// Put inserts the edge; a conflict error means it already exists.
	Put(ctx context.Context, likerID, contentID string) error
	Delete(ctx context.Context, likerID, contentID string) error
	Exists(ctx context.Context, likerID, contentID string) (bool, error)
	Count(ctx context.Context, contentID string) (int, error)
}

// FriendRequestRepository provides access to the directional friend-request
// edge collection. The (sender, receiver) pair is the primary key.
type FriendRequestRepository interface {
	// Put inserts the edge; a conflict error means it already exists.
	Put(ctx context.Context, senderID, receiverID string) error
	Delete(ctx context.Context, senderID, receiverID string) error
	Exists(ctx context.Context, senderID, receiverID string) (bool, error)

	// Receivers lists users the sender has an outgoing edge to.
	Receivers(ctx context.Context, senderID string) ([]string, error)
	// Senders lists users with an outgoing edge to the receiver.
	Senders(ctx context.Context, receiverID string) ([]string, error)
}

// SessionRepository provides access to the sessions collection, keyed by
// token.
type SessionRepository interface {
	Create(ctx context.Context, session *social.Session) error
	GetByToken(ctx context.Context, token string) (*social.Session, error)

	// Delete removes the session and reports whether it existed.
	Delete(ctx context.Context, token string) (bool, error)
}
