package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.IsProduction)

	assert.Equal(t, 24*time.Hour, cfg.SessionTokenExpiryDuration)
	assert.Equal(t, 7*24*time.Hour, cfg.SessionRecordExpiryDuration)
	assert.Equal(t, "pksid", cfg.SessionCookieName)
	assert.Equal(t, time.Hour, cfg.SessionSweepInterval)

	assert.Equal(t, 15*time.Minute, cfg.ResetTokenExpiryDuration)
	assert.Equal(t, 3, cfg.ResetMaxRequestsPerHour)
}

func TestLoadConfig_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_SWEEP_INTERVAL", "not-a-duration")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.SessionSweepInterval)
}

func TestLoadConfig_NonPositiveResetLimitFallsBack(t *testing.T) {
	t.Setenv("RESET_MAX_REQUESTS_PER_HOUR", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ResetMaxRequestsPerHour)
}
