package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, production)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	Telegram         Telegram `mapstructure:"telegram"`
	Timezone         Timezone `mapstructure:"timezone"`
	Notifier         Notifier `mapstructure:"notifier"`
	Storage          Storage  `mapstructure:"storage"`
	Copy             Copy     `mapstructure:"copy"`
	DB               DB       `mapstructure:"database"` // database configuration section
}

// Telegram contains bot transport options.
type Telegram struct {
	Debug bool `mapstructure:"debug"`
}

// Timezone contains the zone new profiles are created in.
type Timezone struct {
	Default string `mapstructure:"default"` // IANA name or UTC offset
}

// Notifier contains daily ping scheduler options.
type Notifier struct {
	Interval time.Duration `mapstructure:"interval"` // tick interval of the scan
}

// Storage selects the profile store backend.
type Storage struct {
	Driver    string `mapstructure:"driver"`     // memory, json, sqlite or postgres
	JSONPath  string `mapstructure:"json_path"`  // profiles file for the json driver
	SQLiteDir string `mapstructure:"sqlite_dir"` // data directory for the sqlite driver
}

// Copy controls caching of texts loaded from the copy_strings table.
type Copy struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env is fine: production passes real environment variables.
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("telegram.debug", false)
	v.SetDefault("timezone.default", "Europe/Stockholm")
	v.SetDefault("notifier.interval", "30s")
	v.SetDefault("storage.driver", DriverJSON)
	v.SetDefault("storage.json_path", "data/profiles.json")
	v.SetDefault("storage.sqlite_dir", "data")
	v.SetDefault("copy.cache_ttl", "5m")
	v.SetDefault("database.max_connections", 5)
	v.SetDefault("database.max_conn_lifetime", "30m")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("timezone.default", "TZ_DEFAULT")
	_ = v.BindEnv("notifier.interval", "NOTIFIER_INTERVAL")
	_ = v.BindEnv("storage.driver", "STORAGE_DRIVER")
	_ = v.BindEnv("copy.cache_ttl", "COPY_CACHE_TTL")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}

	cfg.DB.URL = v.GetString("database_url")

	switch cfg.Storage.Driver {
	case DriverMemory, DriverJSON, DriverSQLite:
	case DriverPostgres:
		if cfg.DB.URL == "" {
			return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorageDriver, cfg.Storage.Driver)
	}

	if cfg.Notifier.Interval <= 0 {
		cfg.Notifier.Interval = 30 * time.Second
	}

	return &cfg, nil
}
