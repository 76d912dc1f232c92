package auth

import (
	"context"
	"testing"
	"time"

	"fbclone-backend/domain/social"
	"fbclone-backend/infrastructure/persistence/memory"
	apperrors "fbclone-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestResolveAbsentCredential(t *testing.T) {
	store := memory.NewStore()
	resolver := NewResolver(store.Sessions(), zaptest.NewLogger(t))

	ident, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, ident.IsAnonymous())
}

func TestResolveUnknownCredential(t *testing.T) {
	store := memory.NewStore()
	resolver := NewResolver(store.Sessions(), zaptest.NewLogger(t))

	ident, err := resolver.Resolve(context.Background(), "no-such-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.True(t, ident.IsAnonymous())
}

func TestResolveLiveSession(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := store.Sessions().Create(context.Background(), &social.Session{
		Token:     "tok-1",
		UserID:    "user-1",
		ExpiresAt: now.Add(time.Hour),
	})
	require.NoError(t, err)

	resolver := NewResolver(store.Sessions(), zaptest.NewLogger(t)).
		WithClock(func() time.Time { return now })

	ident, err := resolver.Resolve(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", ident.UserID)
	assert.False(t, ident.IsAnonymous())
}

func TestResolveExpiredSession(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := store.Sessions().Create(context.Background(), &social.Session{
		Token:     "tok-1",
		UserID:    "user-1",
		ExpiresAt: now.Add(-time.Minute),
	})
	require.NoError(t, err)

	resolver := NewResolver(store.Sessions(), zaptest.NewLogger(t)).
		WithClock(func() time.Time { return now })

	ident, err := resolver.Resolve(context.Background(), "tok-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.True(t, ident.IsAnonymous())
}
