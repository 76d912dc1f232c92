package di

import (
	"context"
	"testing"

	"fbclone-backend/domain/social"
	"fbclone-backend/infrastructure/config"
	"fbclone-backend/infrastructure/persistence/dynamodb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRepositoryProvidersHonorTestEnvironment(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)
	mem := ProvideMemoryStore()
	table := dynamodb.Table{Name: "fbclone", GSI1: "GSI1", GSI2: "GSI2"}

	cfg := &config.Config{Environment: "test"}
	users := ProvideUserRepository(cfg, mem, nil, table, logger)
	sessions := ProvideSessionRepository(cfg, mem, nil, table, logger)

	// Writes through the provided repositories land in the shared store
	require.NoError(t, users.Create(ctx, &social.User{ID: "u1", Username: "alice"}))
	got, err := mem.Users().GetByHandle(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	existed, err := sessions.Delete(ctx, "absent")
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestRepositoryProvidersDefaultToDynamoDB(t *testing.T) {
	logger := zaptest.NewLogger(t)
	mem := ProvideMemoryStore()
	table := dynamodb.Table{Name: "fbclone", GSI1: "GSI1", GSI2: "GSI2"}

	cfg := &config.Config{Environment: "production"}
	users := ProvideUserRepository(cfg, mem, nil, table, logger)
	assert.IsType(t, &dynamodb.UserRepository{}, users)
}
