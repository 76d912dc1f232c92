package ports

import (
	"context"
	"time"
)

// Event describes a completed state change, published after the write
// succeeds. Delivery is best effort; mutations never fail on publish errors.
type Event struct {
	Type       string    `json:"type"`
	ActorID    string    `json:"actorId,omitempty"`
	SubjectID  string    `json:"subjectId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Event types emitted by the mutation handlers.
const (
	EventAccountCreated    = "account.created"
	EventPostCreated       = "post.created"
	EventReplyCreated      = "reply.created"
	EventFriendEdgeSet     = "friend_request.set"
	EventFriendEdgeCleared = "friend_request.cleared"
	EventLikeSet           = "like.set"
	EventLikeCleared       = "like.cleared"
)

// EventPublisher publishes domain events to an external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards events. Used in development and tests.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
