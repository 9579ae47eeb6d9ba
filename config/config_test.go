package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, StoreMemory, cfg.TaskStore)
	assert.True(t, cfg.Development())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("TASK_STORE", "sqlite")
	t.Setenv("TASK_DB_PATH", "/tmp/tasks.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "super-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, StoreSQLite, cfg.TaskStore)
	assert.Equal(t, "/tmp/tasks.db", cfg.TaskDBPath)
	assert.False(t, cfg.Development())
}

func TestLoad_UnknownStoreDriver(t *testing.T) {
	t.Setenv("TASK_STORE", "postgres")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown task store driver")
}
