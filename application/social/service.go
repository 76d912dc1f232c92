// Package social implements the query and mutation operations over the
// entity views and the relationship engine. Handlers here assume the
// request gate has already resolved the caller identity; they enforce the
// relationship invariants before touching storage.
package social

import (
	"context"
	"time"

	"fbclone-backend/application/auth"
	"fbclone-backend/application/ports"
	"fbclone-backend/application/relationships"
	"fbclone-backend/application/views"
	"fbclone-backend/domain/social"
	pkgauth "fbclone-backend/pkg/auth"
	apperrors "fbclone-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sessions issued by Login expire a fixed week after issuance.
const sessionTTL = 7 * 24 * time.Hour

// Service implements the exposed operations.
type Service struct {
	users    ports.UserRepository
	posts    ports.PostRepository
	replies  ports.ReplyRepository
	likes    ports.LikeRepository
	requests ports.FriendRequestRepository
	sessions ports.SessionRepository
	rel      *relationships.Engine
	viewDeps *views.Deps
	events   ports.EventPublisher
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the operation handlers over their collaborators.
func NewService(
	users ports.UserRepository,
	posts ports.PostRepository,
	replies ports.ReplyRepository,
	likes ports.LikeRepository,
	requests ports.FriendRequestRepository,
	sessions ports.SessionRepository,
	rel *relationships.Engine,
	viewDeps *views.Deps,
	events ports.EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		posts:    posts,
		replies:  replies,
		likes:    likes,
		requests: requests,
		sessions: sessions,
		rel:      rel,
		viewDeps: viewDeps,
		events:   events,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the service's time source. Test hook.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// --- Queries ---

// MyProfile returns a view over the caller's own account.
func (s *Service) MyProfile(ctx context.Context, ident auth.Identity) (*views.User, error) {
	if ident.IsAnonymous() {
		return nil, nil
	}
	return views.NewUser(s.viewDeps, ident, ident.UserID), nil
}

// LookupUserByID returns a view over the account, or nil when it does not
// exist.
func (s *Service) LookupUserByID(ctx context.Context, ident auth.Identity, id string) (*views.User, error) {
	rec, err := s.users.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return views.UserFromRecord(s.viewDeps, ident, rec), nil
}

// LookupUserByHandle returns a view over the account with the given handle,
// or nil when no account has it.
func (s *Service) LookupUserByHandle(ctx context.Context, ident auth.Identity, handle string) (*views.User, error) {
	rec, err := s.users.GetByHandle(ctx, handle)
	if err != nil || rec == nil {
		return nil, err
	}
	return views.UserFromRecord(s.viewDeps, ident, rec), nil
}

// LookupPostByID returns a view over the post, or nil.
func (s *Service) LookupPostByID(ctx context.Context, ident auth.Identity, id string) (*views.Post, error) {
	rec, err := s.posts.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return views.PostFromRecord(s.viewDeps, ident, rec), nil
}

// LookupReplyByID returns a view over the reply, or nil.
func (s *Service) LookupReplyByID(ctx context.Context, ident auth.Identity, id string) (*views.Reply, error) {
	rec, err := s.replies.GetByID(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	return views.ReplyFromRecord(s.viewDeps, ident, rec), nil
}

// Feed is reserved; it returns an empty page until ranking lands.
func (s *Service) Feed(ctx context.Context, ident auth.Identity, page int) ([]*views.Post, error) {
	return []*views.Post{}, nil
}

// --- Mutations ---

// SetFriendStatus inserts or deletes the directional edge caller→target.
// Declined (no write) when the target is missing or is the caller. A
// concurrent duplicate insert loses to the uniqueness constraint and is
// reported as declined, never as a fatal error.
func (s *Service) SetFriendStatus(ctx context.Context, ident auth.Identity, targetID string, desired bool) (bool, error) {
	if targetID == ident.UserID {
		return false, nil
	}
	exists, err := s.users.Exists(ctx, targetID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if desired {
		if err := s.requests.Put(ctx, ident.UserID, targetID); err != nil {
			if apperrors.IsConflict(err) {
				return false, nil
			}
			return false, err
		}
		s.publish(ctx, ports.EventFriendEdgeSet, ident.UserID, targetID)
		return true, nil
	}

	// Withdrawing an edge that is already gone is a no-op success.
	if err := s.requests.Delete(ctx, ident.UserID, targetID); err != nil {
		return false, err
	}
	s.publish(ctx, ports.EventFriendEdgeCleared, ident.UserID, targetID)
	return true, nil
}

// SetLikeStatus inserts or deletes the (caller, content) like edge. The
// content may be a post or a reply.
//
// Two concurrent identical toggles from the same caller may race; the
// uniqueness constraint guarantees at most one edge survives, but the
// caller-visible final state is not guaranteed to match the caller's own
// last call. Accepted semantic gap.
func (s *Service) SetLikeStatus(ctx context.Context, ident auth.Identity, contentID string, desired bool) (bool, error) {
	isPost, err := s.posts.Exists(ctx, contentID)
	if err != nil {
		return false, err
	}
	if !isPost {
		isReply, err := s.replies.Exists(ctx, contentID)
		if err != nil {
			return false, err
		}
		if !isReply {
			return false, nil
		}
	}

	if desired {
		if err := s.likes.Put(ctx, ident.UserID, contentID); err != nil {
			if apperrors.IsConflict(err) {
				// Edge already present: the desired state holds, but the
				// insert was declined.
				return false, nil
			}
			return false, err
		}
		s.publish(ctx, ports.EventLikeSet, ident.UserID, contentID)
		return true, nil
	}

	if err := s.likes.Delete(ctx, ident.UserID, contentID); err != nil {
		return false, err
	}
	s.publish(ctx, ports.EventLikeCleared, ident.UserID, contentID)
	return true, nil
}

// MakePost inserts a post authored by the caller with a server-assigned
// timestamp and returns a view over it.
func (s *Service) MakePost(ctx context.Context, ident auth.Identity, message string, images []social.Image) (*views.Post, error) {
	rec := &social.Post{
		ID:        uuid.NewString(),
		Timestamp: s.now().UnixMilli(),
		PosterID:  ident.UserID,
		Message:   message,
		Images:    images,
	}
	if err := s.posts.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.publish(ctx, ports.EventPostCreated, ident.UserID, rec.ID)
	return views.PostFromRecord(s.viewDeps, ident, rec), nil
}

// MakeReply inserts a reply to an existing post. Absent result, no write,
// when the target post does not exist.
func (s *Service) MakeReply(ctx context.Context, ident auth.Identity, replyTo, message string) (*views.Reply, error) {
	exists, err := s.posts.Exists(ctx, replyTo)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}

	rec := &social.Reply{
		ID:        uuid.NewString(),
		Timestamp: s.now().UnixMilli(),
		PosterID:  ident.UserID,
		Message:   message,
		ReplyTo:   replyTo,
	}
	if err := s.replies.Create(ctx, rec); err != nil {
		return nil, err
	}
	s.publish(ctx, ports.EventReplyCreated, ident.UserID, rec.ID)
	return views.ReplyFromRecord(s.viewDeps, ident, rec), nil
}

// MakeAccount derives a fresh salt, double-hashes the client pre-hash and
// inserts the account. Absent result when the handle is already taken; the
// handle claim and the profile are written atomically, so there is no
// partial insert to clean up.
func (s *Service) MakeAccount(ctx context.Context, handle, name string, avatar social.Image, preHash string) (*views.User, error) {
	salt, err := pkgauth.NewSalt()
	if err != nil {
		return nil, err
	}

	rec := &social.User{
		ID:           uuid.NewString(),
		Username:     handle,
		Name:         name,
		Avatar:       avatar,
		PasswordHash: pkgauth.SaltedHash(salt, preHash),
		PasswordSalt: salt,
		CreatedAt:    s.now(),
	}
	if err := s.users.Create(ctx, rec); err != nil {
		if apperrors.IsConflict(err) {
			return nil, nil
		}
		return nil, err
	}

	s.publish(ctx, ports.EventAccountCreated, rec.ID, rec.ID)
	return views.UserFromRecord(s.viewDeps, auth.Identity{UserID: rec.ID}, rec), nil
}

// Login verifies the pre-hash against the stored salted hash and issues a
// session token with a fixed forward expiry. Absent result, no session row,
// on unknown account or hash mismatch.
func (s *Service) Login(ctx context.Context, accountID, preHash string) (string, error) {
	rec, err := s.users.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}
	if !pkgauth.Verify(rec.PasswordSalt, preHash, rec.PasswordHash) {
		return "", nil
	}

	token, err := pkgauth.NewToken()
	if err != nil {
		return "", err
	}
	session := &social.Session{
		Token:     token,
		UserID:    accountID,
		ExpiresAt: s.now().Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

// Logout deletes the session row; false when the token never existed.
func (s *Service) Logout(ctx context.Context, token string) (bool, error) {
	return s.sessions.Delete(ctx, token)
}

// SetPrivacy is reserved; accounts carry the flag but no mutation sets it
// yet.
func (s *Service) SetPrivacy(ctx context.Context, ident auth.Identity, friendOnly bool) (bool, error) {
	return false, nil
}

// SetPassword is reserved alongside SetPrivacy.
func (s *Service) SetPassword(ctx context.Context, ident auth.Identity, preHash string) (bool, error) {
	return false, nil
}

func (s *Service) publish(ctx context.Context, eventType, actorID, subjectID string) {
	err := s.events.Publish(ctx, ports.Event{
		Type:       eventType,
		ActorID:    actorID,
		SubjectID:  subjectID,
		OccurredAt: s.now(),
	})
	if err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("type", eventType),
			zap.String("subjectID", subjectID),
			zap.Error(err),
		)
	}
}
