package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("MONGODB_TRANSACTIONS", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "mongo", cfg.StorageDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.MongoTransactions)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_TTL", "90m")
	t.Setenv("MONGODB_TRANSACTIONS", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("APP_ENV", "production")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.MongoTransactions)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.IsProduction())
}

func TestFromEnvRequiredValues(t *testing.T) {
	t.Run("mongo uri", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		t.Setenv("MONGODB_URI", "")
		t.Setenv("JWT_SECRET", "s3cret")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "MONGODB_URI")
	})

	t.Run("jwt secret", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("JWT_SECRET", "")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "JWT_SECRET")
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("JWT_TTL", "forever")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "JWT_TTL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		t.Setenv("JWT_SECRET", "s3cret")
		_, err := FromEnv()
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
	})
}
