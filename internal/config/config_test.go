package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("RATE_LIMIT_ENABLED", "")

	cfg := Load()

	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "summit-resolutions.goals", cfg.StorageKey)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, StorageRedis, cfg.StorageDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("RATE_LIMIT_WINDOW", "soon")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.False(t, cfg.RateLimitEnabled)
}

func TestConfig_Location(t *testing.T) {
	cfg := &Config{Timezone: "Europe/Rome"}
	assert.Equal(t, "Europe/Rome", cfg.Location().String())

	cfg.Timezone = "Mars/Olympus"
	assert.Equal(t, time.Local, cfg.Location())

	cfg.Timezone = ""
	assert.Equal(t, time.Local, cfg.Location())
}
