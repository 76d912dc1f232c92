// Package relationships computes derived relationships from the edge
// collections: mutual friendship, pending-request direction, like counts and
// membership, reply threads. Nothing here is cached across calls; edges can
// change between any two storage accesses.
package relationships

import (
	"context"

	"fbclone-backend/application/auth"
	"fbclone-backend/application/ports"
)

// Engine answers relationship queries over the friend-request and like edge
// collections.
type Engine struct {
	requests ports.FriendRequestRepository
	likes    ports.LikeRepository
}

// NewEngine creates a relationship engine.
func NewEngine(requests ports.FriendRequestRepository, likes ports.LikeRepository) *Engine {
	return &Engine{
		requests: requests,
		likes:    likes,
	}
}

// Friends returns the users mutually friended with the subject: those for
// which both directional request edges exist. O(F) in the edges touching the
// subject.
func (e *Engine) Friends(ctx context.Context, userID string) ([]string, error) {
	outgoing, err := e.requests.Receivers(ctx, userID)
	if err != nil {
		return nil, err
	}
	incoming, err := e.requests.Senders(ctx, userID)
	if err != nil {
		return nil, err
	}

	requested := make(map[string]bool, len(outgoing))
	for _, id := range outgoing {
		requested[id] = true
	}

	mutual := make([]string, 0, len(incoming))
	for _, id := range incoming {
		if requested[id] {
			mutual = append(mutual, id)
		}
	}
	return mutual, nil
}

// HasRequest reports whether the directional edge sender→receiver exists.
// Incoming and outgoing checks are two independent point lookups with the
// roles swapped; neither derives from the mutual-friends computation.
func (e *Engine) HasRequest(ctx context.Context, senderID, receiverID string) (bool, error) {
	return e.requests.Exists(ctx, senderID, receiverID)
}

// LikeCount counts like edges referencing the content, regardless of liker.
func (e *Engine) LikeCount(ctx context.Context, contentID string) (int, error) {
	return e.likes.Count(ctx, contentID)
}

// Liked reports whether the viewer has a like edge to the content. False,
// not an error, for anonymous viewers.
func (e *Engine) Liked(ctx context.Context, viewer auth.Identity, contentID string) (bool, error) {
	if viewer.IsAnonymous() {
		return false, nil
	}
	return e.likes.Exists(ctx, viewer.UserID, contentID)
}
