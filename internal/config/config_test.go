package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN": "t",
		"API_BASE_URL":   "http://api",
		"DB_DSN":         "postgres://x",
	}))
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":9090", cfg.OpsAddr)
	assert.Equal(t, time.Duration(0), cfg.APITimeout)
	assert.Equal(t, time.Hour, cfg.SessionSweepInterval)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN":         "t",
		"API_BASE_URL":           "http://api",
		"DB_DSN":                 "postgres://x",
		"ENV":                    "production",
		"API_TIMEOUT":            "15s",
		"SESSION_SWEEP_INTERVAL": "10m",
		"REDIS_ADDR":             "localhost:6379",
	}))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, 10*time.Minute, cfg.SessionSweepInterval)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
}

func TestFromEnv_Errors(t *testing.T) {
	_, err := FromEnv(env(map[string]string{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN, API_BASE_URL, DB_DSN")

	_, err = FromEnv(env(map[string]string{
		"TELEGRAM_TOKEN": "t", "API_BASE_URL": "u", "DB_DSN": "d", "API_TIMEOUT": "soon",
	}))
	require.Error(t, err)
}
