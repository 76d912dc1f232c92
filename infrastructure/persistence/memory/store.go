// Package memory provides in-memory implementations of the repository
// ports. Used by tests and by local development without a DynamoDB
// endpoint; semantics (absent lookups, uniqueness conflicts) match the
// DynamoDB implementations.
package memory

import (
	"context"
	"sync"

	"fbclone-backend/application/ports"
	"fbclone-backend/domain/social"
	apperrors "fbclone-backend/pkg/errors"
)

type edgeKey struct {
	a string // liker / sender
	b string // content / receiver
}

// Store holds every collection behind one mutex.
type Store struct {
	mu       sync.RWMutex
	users    map[string]social.User
	handles  map[string]string // handle -> user id
	posts    map[string]social.Post
	replies  map[string]social.Reply
	likes    map[edgeKey]struct{}
	requests map[edgeKey]struct{}
	sessions map[string]social.Session

	// insertion order, so author/thread scans are deterministic
	postOrder  []string
	replyOrder []string
	reqOrder   []edgeKey
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]social.User),
		handles:  make(map[string]string),
		posts:    make(map[string]social.Post),
		replies:  make(map[string]social.Reply),
		likes:    make(map[edgeKey]struct{}),
		requests: make(map[edgeKey]struct{}),
		sessions: make(map[string]social.Session),
	}
}

func (s *Store) Users() ports.UserRepository             { return &userRepo{s} }
func (s *Store) Posts() ports.PostRepository             { return &postRepo{s} }
func (s *Store) Replies() ports.ReplyRepository          { return &replyRepo{s} }
func (s *Store) Likes() ports.LikeRepository             { return &likeRepo{s} }
func (s *Store) Requests() ports.FriendRequestRepository { return &requestRepo{s} }
func (s *Store) Sessions() ports.SessionRepository       { return &sessionRepo{s} }

// --- users ---

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *social.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.handles[user.Username]; taken {
		return apperrors.NewConflictError("handle already taken")
	}
	r.s.handles[user.Username] = user.ID
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*social.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepo) GetByHandle(ctx context.Context, handle string) (*social.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.handles[handle]
	if !ok {
		return nil, nil
	}
	u := r.s.users[id]
	return &u, nil
}

func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[id]
	return ok, nil
}

// --- posts ---

type postRepo struct{ s *Store }

func (r *postRepo) Create(ctx context.Context, post *social.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.ID] = *post
	r.s.postOrder = append(r.s.postOrder, post.ID)
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, id string) (*social.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *postRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.posts[id]
	return ok, nil
}

func (r *postRepo) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.postOrder {
		if r.s.posts[id].PosterID == authorID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// --- replies ---

type replyRepo struct{ s *Store }

func (r *replyRepo) Create(ctx context.Context, reply *social.Reply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.replies[reply.ID] = *reply
	r.s.replyOrder = append(r.s.replyOrder, reply.ID)
	return nil
}

func (r *replyRepo) GetByID(ctx context.Context, id string) (*social.Reply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.replies[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *replyRepo) Exists(ctx context.Context, id string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.replies[id]
	return ok, nil
}

func (r *replyRepo) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.replyOrder {
		if r.s.replies[id].PosterID == authorID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *replyRepo) IDsByPost(ctx context.Context, postID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, id := range r.s.replyOrder {
		if r.s.replies[id].ReplyTo == postID {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// --- likes ---

type likeRepo struct{ s *Store }

func (r *likeRepo) Put(ctx context.Context, likerID, contentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := edgeKey{likerID, contentID}
	if _, ok := r.s.likes[k]; ok {
		return apperrors.NewConflictError("like edge already exists")
	}
	r.s.likes[k] = struct{}{}
	return nil
}

func (r *likeRepo) Delete(ctx context.Context, likerID, contentID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.likes, edgeKey{likerID, contentID})
	return nil
}

func (r *likeRepo) Exists(ctx context.Context, likerID, contentID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.likes[edgeKey{likerID, contentID}]
	return ok, nil
}

func (r *likeRepo) Count(ctx context.Context, contentID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for k := range r.s.likes {
		if k.b == contentID {
			n++
		}
	}
	return n, nil
}

// --- friend requests ---

type requestRepo struct{ s *Store }

func (r *requestRepo) Put(ctx context.Context, senderID, receiverID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := edgeKey{senderID, receiverID}
	if _, ok := r.s.requests[k]; ok {
		return apperrors.NewConflictError("friend request already exists")
	}
	r.s.requests[k] = struct{}{}
	r.s.reqOrder = append(r.s.reqOrder, k)
	return nil
}

func (r *requestRepo) Delete(ctx context.Context, senderID, receiverID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := edgeKey{senderID, receiverID}
	if _, ok := r.s.requests[k]; !ok {
		return nil
	}
	delete(r.s.requests, k)
	// keep reqOrder in step with the map, or a withdrawn edge that is
	// requested again would be scanned twice
	for i, e := range r.s.reqOrder {
		if e == k {
			r.s.reqOrder = append(r.s.reqOrder[:i], r.s.reqOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *requestRepo) Exists(ctx context.Context, senderID, receiverID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.requests[edgeKey{senderID, receiverID}]
	return ok, nil
}

func (r *requestRepo) Receivers(ctx context.Context, senderID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, k := range r.s.reqOrder {
		if k.a == senderID {
			ids = append(ids, k.b)
		}
	}
	return ids, nil
}

func (r *requestRepo) Senders(ctx context.Context, receiverID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var ids []string
	for _, k := range r.s.reqOrder {
		if k.b == receiverID {
			ids = append(ids, k.a)
		}
	}
	return ids, nil
}

// --- sessions ---

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(ctx context.Context, session *social.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.sessions[session.Token]; ok {
		return apperrors.NewConflictError("token already exists")
	}
	r.s.sessions[session.Token] = *session
	return nil
}

func (r *sessionRepo) GetByToken(ctx context.Context, token string) (*social.Session, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sess, ok := r.s.sessions[token]
	if !ok {
		return nil, nil
	}
	return &sess, nil
}

// SessionCount reports the number of stored sessions. Tokens are opaque,
// so tests use this to check that a rejected login wrote nothing.
func (s *Store) SessionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (r *sessionRepo) Delete(ctx context.Context, token string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.sessions[token]
	delete(r.s.sessions, token)
	return ok, nil
}
