package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_PORT", "")
	t.Setenv("CACHE_DRIVER", "")
	t.Setenv("CACHE_STATS_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "5000", cfg.App.Port)
	assert.Equal(t, CacheDriverRedis, cfg.Cache.Driver)
	assert.Equal(t, 30*time.Second, cfg.Cache.StatsTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:5000"}, cfg.CORS.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("CACHE_DRIVER", "MEMORY")
	t.Setenv("CACHE_STATS_TTL", "0s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://bugs.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, CacheDriverMemory, cfg.Cache.Driver)
	assert.Equal(t, time.Duration(0), cfg.Cache.StatsTTL)
	assert.Equal(t, []string{"https://bugs.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	t.Run("unknown cache driver", func(t *testing.T) {
		t.Setenv("CACHE_DRIVER", "memcached")
		_, err := Load()
		assert.ErrorContains(t, err, "CACHE_DRIVER")
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("CACHE_STATS_TTL", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "CACHE_STATS_TTL")
	})

	t.Run("negative ttl", func(t *testing.T) {
		t.Setenv("CACHE_STATS_TTL", "-1s")
		_, err := Load()
		assert.ErrorContains(t, err, "CACHE_STATS_TTL")
	})
}

func TestValidate_ProductionNeedsOrigins(t *testing.T) {
	cfg := &Config{
		App:   AppConfig{Environment: "production"},
		Cache: CacheConfig{Driver: CacheDriverNone},
	}
	assert.ErrorContains(t, cfg.Validate(), "CORS_ALLOWED_ORIGINS")

	cfg.CORS.AllowedOrigins = []string{"https://bugs.example.com"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "development")
		t.Setenv("DB_PASSWORD", "")
		t.Setenv("DB_PORT", "")
		t.Setenv("DB_QUERY_TIMEOUT", "")
		t.Setenv("DB_AUTO_MIGRATE", "")

		cfg, err := LoadDatabaseConfig()
		require.NoError(t, err)

		assert.Equal(t, 5432, cfg.Port)
		assert.Equal(t, "secret", cfg.Password)
		assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
		assert.True(t, cfg.AutoMigrate)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_PORT", "6543")
		t.Setenv("DB_PASSWORD", "p@ss word")
		t.Setenv("DB_QUERY_TIMEOUT", "250ms")
		t.Setenv("DB_AUTO_MIGRATE", "false")

		cfg, err := LoadDatabaseConfig()
		require.NoError(t, err)

		assert.Equal(t, 6543, cfg.Port)
		assert.Equal(t, 250*time.Millisecond, cfg.QueryTimeout)
		assert.False(t, cfg.AutoMigrate)
		assert.Contains(t, cfg.DSN(), "db.internal:6543")
		assert.Contains(t, cfg.DSN(), "sslmode=disable")
	})

	t.Run("production requires password", func(t *testing.T) {
		t.Setenv("APP_ENV", "production")
		t.Setenv("DB_PASSWORD", "")

		_, err := LoadDatabaseConfig()
		assert.ErrorContains(t, err, "DB_PASSWORD")
	})

	t.Run("invalid duration", func(t *testing.T) {
		t.Setenv("DB_RETRY_DELAY", "fast")

		_, err := LoadDatabaseConfig()
		assert.ErrorContains(t, err, "DB_RETRY_DELAY")
	})
}
