package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageFile   = "file"
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQL    = "sql"
)

type Config struct {
	// Application
	AppEnv   string
	Port     string
	Timezone string

	// Storage
	StorageDriver string
	StorageKey    string
	DataDir       string

	// SQL storage (driver: sqlite, pgx or postgres)
	DBDriver     string
	DBConnection string

	// Redis (storage backend and rate limiter)
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string

	// HTTP
	RateLimitEnabled bool
	RateLimit        int
	RateLimitWindow  time.Duration
	ShutdownTimeout  time.Duration

	// Observability (optional)
	SentryDSN string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	return &Config{
		AppEnv:   envString("APP_ENV", "development"),
		Port:     envString("PORT", "8080"),
		Timezone: envString("TIMEZONE", ""),

		StorageDriver: envString("STORAGE_DRIVER", StorageFile),
		StorageKey:    envString("STORAGE_KEY", "summit-resolutions.goals"),
		DataDir:       envString("DATA_DIR", "./data"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/summit.db?_pragma=journal_mode(WAL)"),

		RedisHost:      envString("REDIS_HOST", "localhost"),
		RedisPort:      envString("REDIS_PORT", "6379"),
		RedisPassword:  envString("REDIS_PASSWORD", ""),
		RedisDB:        envInt("REDIS_DB", 0),
		RedisKeyPrefix: envString("REDIS_KEY_PREFIX", "summit:"),

		RateLimitEnabled: envBool("RATE_LIMIT_ENABLED", false),
		RateLimit:        envInt("RATE_LIMIT", 100),
		RateLimitWindow:  envDuration("RATE_LIMIT_WINDOW", time.Minute),
		ShutdownTimeout:  envDuration("SHUTDOWN_TIMEOUT", 5*time.Second),

		SentryDSN: envString("SENTRY_DSN", ""),
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesRedis reports whether a Redis connection is needed, either as the
// storage backend or for rate limiting.
func (c *Config) UsesRedis() bool {
	return c.StorageDriver == StorageRedis || c.RateLimitEnabled
}

// Location resolves TIMEZONE, falling back to the host's local zone.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		slog.Warn("config invalid timezone, using local", "value", c.Timezone, "error", err)
		return time.Local
	}
	return loc
}
