package config_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calendarvault/internal/calendar/config"
	pkgconfig "calendarvault/pkg/config"
	"calendarvault/pkg/logger"
)

const testKey = "01234567890123456789012345678901"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		pkgconfig.PathEnv,
		"CALENDAR_GRPC_HOST",
		"CALENDAR_GRPC_PORT",
		"CALENDAR_ENCRYPTION_KEY",
		"CALENDAR_DATA_DIR",
		"CALENDAR_LOGGER_LEVEL",
		"CALENDAR_LOGGER_MODE",
		"CALENDAR_GRACEFUL_SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CALENDAR_ENCRYPTION_KEY", testKey)
		t.Setenv("CALENDAR_GRPC_PORT", "50054")

		cfg, err := config.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, "0.0.0.0:50054", cfg.GRPC.GetAddress())
		assert.Equal(t, "data", cfg.Storage.DataDir)
		assert.Equal(t, []byte(testKey), cfg.Encryption.KeyBytes())
		assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
		assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CALENDAR_ENCRYPTION_KEY", testKey)
		t.Setenv("CALENDAR_GRPC_HOST", "127.0.0.1")
		t.Setenv("CALENDAR_GRPC_PORT", "6000")
		t.Setenv("CALENDAR_DATA_DIR", "/var/lib/calendars")
		t.Setenv("CALENDAR_LOGGER_MODE", "production")
		t.Setenv("CALENDAR_GRACEFUL_SHUTDOWN_TIMEOUT", "12")

		cfg, err := config.Load(ctx)
		require.NoError(t, err)

		assert.Equal(t, "127.0.0.1:6000", cfg.GRPC.GetAddress())
		assert.Equal(t, "/var/lib/calendars", cfg.Storage.DataDir)
		assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
		assert.Equal(t, 12*time.Second, cfg.Shutdown.GetTimeout())
	})

	t.Run("missing key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CALENDAR_GRPC_PORT", "50054")

		cfg, err := config.Load(ctx)
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("short key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CALENDAR_ENCRYPTION_KEY", "short")
		t.Setenv("CALENDAR_GRPC_PORT", "50054")

		_, err := config.Load(ctx)
		require.ErrorIs(t, err, config.ErrInvalidKeyLength)
	})

	t.Run("missing port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CALENDAR_ENCRYPTION_KEY", testKey)

		cfg, err := config.Load(ctx)
		require.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("invalid port", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("CALENDAR_ENCRYPTION_KEY", testKey)
		t.Setenv("CALENDAR_GRPC_PORT", "70000")

		_, err := config.Load(ctx)
		require.ErrorIs(t, err, config.ErrInvalidPort)
	})
}
