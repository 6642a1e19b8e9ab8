package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"SHOPMATE_DATA_DIR", "SHOPMATE_DB_PATH", "SHOPMATE_USER_ID",
		"SHOPMATE_SYNC_ENABLED", "SHOPMATE_SYNC_INTERVAL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	require.Equal(t, "data", cfg.DataDir)
	require.Equal(t, "data/sync.db", cfg.DatabasePath)
	require.Equal(t, "default", cfg.UserID)
	require.False(t, cfg.SyncEnabled)
	require.Equal(t, 5*time.Second, cfg.SyncInterval)
}

func TestNewFromEnvOverrides(t *testing.T) {
	t.Setenv("SHOPMATE_DATA_DIR", "/tmp/shopmate")
	t.Setenv("SHOPMATE_DB_PATH", "/tmp/other/sync.db")
	t.Setenv("SHOPMATE_USER_ID", "alice")
	t.Setenv("SHOPMATE_SYNC_ENABLED", "true")
	t.Setenv("SHOPMATE_SYNC_INTERVAL", "30s")
	t.Setenv("TELEGRAM_ALLOW_USER_ID", "12345")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	require.Equal(t, "/tmp/shopmate", cfg.DataDir)
	require.Equal(t, "/tmp/other/sync.db", cfg.DatabasePath)
	require.Equal(t, "alice", cfg.UserID)
	require.True(t, cfg.SyncEnabled)
	require.Equal(t, 30*time.Second, cfg.SyncInterval)
	require.Equal(t, int64(12345), cfg.TelegramAllowUserID)
}

func TestNewFromEnvDatabasePathFollowsDataDir(t *testing.T) {
	t.Setenv("SHOPMATE_DATA_DIR", "/var/lib/shopmate")
	t.Setenv("SHOPMATE_DB_PATH", "")

	cfg, err := NewFromEnv()
	require.NoError(t, err)
	require.Equal(t, "/var/lib/shopmate/sync.db", cfg.DatabasePath)
}

func TestNewFromEnvRejectsBadValues(t *testing.T) {
	t.Run("sync enabled", func(t *testing.T) {
		t.Setenv("SHOPMATE_SYNC_ENABLED", "maybe")
		_, err := NewFromEnv()
		require.Error(t, err)
	})

	t.Run("sync interval", func(t *testing.T) {
		t.Setenv("SHOPMATE_SYNC_INTERVAL", "soon")
		_, err := NewFromEnv()
		require.Error(t, err)
	})

	t.Run("negative interval", func(t *testing.T) {
		t.Setenv("SHOPMATE_SYNC_INTERVAL", "-5s")
		_, err := NewFromEnv()
		require.Error(t, err)
	})

	t.Run("telegram user id", func(t *testing.T) {
		t.Setenv("TELEGRAM_ALLOW_USER_ID", "not-a-number")
		_, err := NewFromEnv()
		require.Error(t, err)
	})
}
