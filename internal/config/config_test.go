package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "HTTP_TIMEOUT", "LOG_LEVEL", "LOG_FORMAT", "GEOCODING_URL", "FORECAST_URL",
		"GEOCODER_RPS", "GEOCODER_BURST", "PREFS_BACKEND", "PREFS_FILE", "PREFS_KEY",
		"REDIS_URL", "REDIS_PREFIX", "REFRESH_INTERVAL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1/search", cfg.GeocodingURL)
	assert.Equal(t, "https://api.open-meteo.com/v1/forecast", cfg.ForecastURL)
	assert.Equal(t, 5.0, cfg.GeocoderRPS)
	assert.Equal(t, 5, cfg.GeocoderBurst)
	assert.Equal(t, "file", cfg.PrefsBackend)
	assert.Equal(t, "location", cfg.PrefsKey)
	assert.Zero(t, cfg.RefreshInterval)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "3s")
	t.Setenv("GEOCODER_RPS", "0.5")
	t.Setenv("GEOCODER_BURST", "2")
	t.Setenv("PREFS_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("REFRESH_INTERVAL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0.5, cfg.GeocoderRPS)
	assert.Equal(t, 2, cfg.GeocoderBurst)
	assert.Equal(t, "redis", cfg.PrefsBackend)
	assert.Equal(t, "redis://cache:6379/2", cfg.RedisURL)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":     "soon",
		"GEOCODER_RPS":     "fast",
		"GEOCODER_BURST":   "1.5",
		"PREFS_BACKEND":    "etcd",
		"REFRESH_INTERVAL": "-1m",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}
