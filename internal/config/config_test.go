package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "Group-7", cfg.DefaultGroup)
	assert.Equal(t, 10*time.Minute, cfg.ReminderLead)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, 25, cfg.NotifyRate)
	assert.Equal(t, "5 0 * * *", cfg.PurgeSchedule)
	require.NotNil(t, cfg.Location)
	assert.Equal(t, "Asia/Kolkata", cfg.Location.String())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnvRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvRejects(t *testing.T) {
	cases := map[string]map[string]string{
		"postgres without dsn": {"STORE_DRIVER": "postgres"},
		"unknown driver":       {"STORE_DRIVER": "redis"},
		"negative lead":        {"REMINDER_LEAD": "-1m"},
		"bad env":              {"ENV": "staging"},
		"unknown timezone":     {"TIMEZONE": "Mars/Olympus"},
		"zero rate":            {"NOTIFY_RATE": "0"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("TELEGRAM_TOKEN", "123:abc")
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestFromEnvPostgres(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "postgres://bot@localhost/classbot")
	t.Setenv("ENV", "production")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.True(t, cfg.IsProduction())
}
