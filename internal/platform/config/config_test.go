package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 0, cfg.LogLevel)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 7*24*time.Hour, cfg.Draft.TTL)
	assert.Equal(t, int64(8<<20), cfg.Upload.MaxRequestBytes)
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("VETFORM_ADDR", ":9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("DRAFT_TTL", "24h")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Draft.TTL)
}

func TestNew_InvalidDuration(t *testing.T) {
	t.Setenv("DRAFT_TTL", "not-a-duration")

	_, err := New()
	require.Error(t, err)
}
