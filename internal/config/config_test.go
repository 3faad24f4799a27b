package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://localhost/freight")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 20, cfg.PageSizeDefault)
	assert.Equal(t, 100, cfg.PageSizeMax)
	assert.Equal(t, "booking.events", cfg.EventExchange)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.IsProduction)
}

func TestLoadProduction(t *testing.T) {
	setRequired(t)
	t.Setenv("APP_ENV", "prod")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
}

func TestLoadMissingDSN(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInconsistentPageSizes(t *testing.T) {
	setRequired(t)
	t.Setenv("PAGE_SIZE_DEFAULT", "50")
	t.Setenv("PAGE_SIZE_MAX", "10")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadInvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "forever")

	_, err := Load()
	assert.Error(t, err)
}
