package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 60*time.Second, cfg.RateLimitWindow())
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Nil(t, cfg.TrustedProxies, "no forwarded header is trusted by default")
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("RATE_LIMIT_WRITE_THRESHOLD", "3")
	t.Setenv("RATE_LIMIT_GLOBAL_THRESHOLD", "not-a-number")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "2s")
	t.Setenv("FRONTEND_URL", "https://jobs.example.com/")
	t.Setenv("APP_ENV", "production")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.1.0.0/16,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.True(t, cfg.AutoMigrate)
	assert.Equal(t, 3, cfg.RateLimitWriteThreshold)
	assert.Equal(t, 100, cfg.RateLimitGlobalThreshold, "invalid ints fall back to default")
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://jobs.example.com", cfg.FrontendURL)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"10.0.0.1", "10.1.0.0/16"}, cfg.TrustedProxies)
}

func TestFrontendOrigins(t *testing.T) {
	cfg := &Config{FrontendURL: "https://jobs.example.com/, https://admin.example.com,,"}
	assert.Equal(t, []string{"https://jobs.example.com", "https://admin.example.com"}, cfg.FrontendOrigins())

	empty := &Config{}
	assert.Empty(t, empty.FrontendOrigins())
}
