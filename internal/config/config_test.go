package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/collaborators-api/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/collaborators")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 300*time.Second, cfg.Cache.TTL)
	require.Equal(t, "redis", cfg.Cache.Driver)
	require.Equal(t, 3, cfg.Import.MaxAttempts)
	require.Equal(t, "@hourly", cfg.Storage.JanitorSchedule)
	require.True(t, cfg.UsesRedis())
}

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")

	_, err := config.Load()
	require.Error(t, err)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "DATABASE_URL=postgres://file/db\nJWT_SECRET=from-file\nCACHE_DRIVER=memory\nQUEUE_DRIVER=memory\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("QUEUE_DRIVER", "")
	os.Unsetenv("DATABASE_URL")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("CACHE_DRIVER")
	os.Unsetenv("QUEUE_DRIVER")

	cfg, err := config.Load(path, filepath.Join(dir, ".env.local"))
	require.NoError(t, err)
	require.Equal(t, "postgres://file/db", cfg.DatabaseURL)
	require.Equal(t, "memory", cfg.Cache.Driver)
	require.False(t, cfg.UsesRedis())
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{
		Cache:  config.CacheOptions{Driver: "memcached", TTL: time.Minute},
		Queue:  config.QueueOptions{Driver: "memory"},
		Import: config.ImportOptions{Workers: 2, MaxAttempts: 1},
	}
	require.Error(t, cfg.Validate())

	cfg.Cache.Driver = "none"
	cfg.Queue.Driver = "sqs"
	require.Error(t, cfg.Validate())

	cfg.Queue.Driver = "memory"
	require.NoError(t, cfg.Validate())
}
