package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("SCHEDULE_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	assert.Equal(t, 5*time.Minute, cfg.ScheduleCacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifierReconnectBase)
	assert.Equal(t, 6, cfg.NotifierMaxAttempts)
	assert.Equal(t, "booking.notifications", cfg.NotificationTopic)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("SCHEDULE_CACHE_TTL", "30s")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("PUBLIC_RATE_LIMIT", "2.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, 30*time.Second, cfg.ScheduleCacheTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.InDelta(t, 2.5, cfg.PublicRateLimit, 0.001)
}

func TestLoadRejectsUnknownStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	assert.ErrorContains(t, err, "STORE_DRIVER")
}
