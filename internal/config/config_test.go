package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TELEGRAM_API_TOKEN", "TELEGRAM_BOT_TOKEN", "DATABASE_URL", "APP_ENV",
		"TZ_DEFAULT", "NOTIFIER_INTERVAL", "STORAGE_DRIVER", "COPY_CACHE_TTL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.TelegramAPIToken)
	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "Europe/Stockholm", cfg.Timezone.Default)
	assert.Equal(t, 30*time.Second, cfg.Notifier.Interval)
	assert.Equal(t, DriverJSON, cfg.Storage.Driver)
	assert.Equal(t, "data/profiles.json", cfg.Storage.JSONPath)
	assert.Equal(t, 5*time.Minute, cfg.Copy.CacheTTL)
}

func TestLoadMissingToken(t *testing.T) {
	clearEnv(t)

	_, err := load(viper.New())
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)
}

func TestLoadLegacyTokenName(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "legacy")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "legacy", cfg.TelegramAPIToken)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("TZ_DEFAULT", "UTC+3")
	t.Setenv("NOTIFIER_INTERVAL", "20s")
	t.Setenv("STORAGE_DRIVER", DriverSQLite)
	t.Setenv("APP_ENV", "production")

	cfg, err := load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "UTC+3", cfg.Timezone.Default)
	assert.Equal(t, 20*time.Second, cfg.Notifier.Interval)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "production", cfg.Env)
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("STORAGE_DRIVER", DriverPostgres)

	_, err := load(viper.New())
	require.ErrorIs(t, err, ErrMissingEnvironmentVariables)

	t.Setenv("DATABASE_URL", "postgres://localhost/daycue")
	cfg, err := load(viper.New())
	require.NoError(t, err)

	dsn, err := cfg.DB.DSN()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/daycue", dsn)
}

func TestLoadUnknownDriver(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("STORAGE_DRIVER", "redis")

	_, err := load(viper.New())
	require.ErrorIs(t, err, ErrUnknownStorageDriver)
}
