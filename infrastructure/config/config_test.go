package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "fbclone", cfg.DynamoDBTable)
	assert.Equal(t, "GSI1", cfg.GSI1Name)
	assert.Equal(t, "GSI2", cfg.GSI2Name)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("TABLE_NAME", "fbclone-test")
	t.Setenv("ENABLE_METRICS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "fbclone-test", cfg.DynamoDBTable)
	assert.True(t, cfg.EnableMetrics)
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{Environment: "production", DynamoDBTable: "fbclone"}
	assert.NoError(t, cfg.Validate())

	cfg.DynamoDBTable = ""
	assert.Error(t, cfg.Validate())

	cfg.DynamoDBTable = "fbclone"
	cfg.EnableEvents = true
	assert.Error(t, cfg.Validate())

	cfg.EventBusName = "fbclone-events"
	assert.NoError(t, cfg.Validate())
}

func TestValidateDevelopmentIsLenient(t *testing.T) {
	cfg := &Config{Environment: "development"}
	assert.NoError(t, cfg.Validate())
}
