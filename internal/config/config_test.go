package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOr(t *testing.T) {
	t.Setenv("COURTSIDE_TEST_PORT", "9090")
	assert.Equal(t, "9090", getEnvOr("COURTSIDE_TEST_PORT", "8080"))
	assert.Equal(t, "8080", getEnvOr("COURTSIDE_TEST_UNSET", "8080"))

	t.Setenv("COURTSIDE_TEST_EMPTY", "")
	assert.Equal(t, "fallback", getEnvOr("COURTSIDE_TEST_EMPTY", "fallback"))
}

func TestGetDurationOr(t *testing.T) {
	t.Setenv("COURTSIDE_TEST_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, getDurationOr("COURTSIDE_TEST_TIMEOUT", time.Minute))

	t.Setenv("COURTSIDE_TEST_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getDurationOr("COURTSIDE_TEST_TIMEOUT", time.Minute))

	for _, raw := range []string{"0s", "0", "-5m"} {
		t.Setenv("COURTSIDE_TEST_TIMEOUT", raw)
		assert.Equal(t, time.Minute, getDurationOr("COURTSIDE_TEST_TIMEOUT", time.Minute), raw)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "courtside.db")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-test")
	t.Setenv("SLACK_CHANNEL_ID", "C123")
	t.Setenv("SLACK_SIGNING_SECRET", "secret")
	t.Setenv("GCP_PROJECT", "test-project")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_IDLE_TIMEOUT", "30m")
	t.Setenv("SESSION_SWEEP_INTERVAL", "0s")
	t.Setenv("TURSO_PRIMARY_URL", "")

	cfg := Load()
	assert.Equal(t, "courtside.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "C123", cfg.Slack.ChannelID)
	assert.Equal(t, 30*time.Minute, cfg.Session.IdleTimeout)
	assert.Equal(t, 5*time.Minute, cfg.Session.SweepInterval)
	assert.Empty(t, cfg.Turso.PrimaryURL)
}
