package auth

import (
	"context"
	"time"

	"fbclone-backend/application/ports"
	apperrors "fbclone-backend/pkg/errors"

	"go.uber.org/zap"
)

// Resolver turns a bearer credential into a caller identity.
//
// The three outcomes are distinct: an absent credential resolves to
// Anonymous with no error, a present but unknown or expired credential is
// rejected, and only a live session yields a resolved identity. Expiry is
// checked here, on every use; expired sessions are not swept in the
// background.
type Resolver struct {
	sessions ports.SessionRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewResolver creates an identity resolver over the sessions collection.
func NewResolver(sessions ports.SessionRepository, logger *zap.Logger) *Resolver {
	return &Resolver{
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the resolver's time source. Test hook.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve maps a credential to an identity. Read-only; fails closed.
func (r *Resolver) Resolve(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Anonymous, nil
	}

	session, err := r.sessions.GetByToken(ctx, credential)
	if err != nil {
		r.logger.Error("Session lookup failed", zap.Error(err))
		return Anonymous, apperrors.NewUnauthorizedError("credential could not be verified").WithCause(err)
	}
	if session == nil {
		return Anonymous, apperrors.NewUnauthorizedError("unknown credential")
	}
	if session.Expired(r.now()) {
		return Anonymous, apperrors.NewUnauthorizedError("session expired")
	}

	return Identity{UserID: session.UserID}, nil
}
