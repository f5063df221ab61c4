package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/classy-weather/internal/store"
	"github.com/i474232898/classy-weather/internal/weather"
	"github.com/i474232898/classy-weather/internal/weather/providers"
)

type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	LogLevel  string
	LogFormat string

	GeocodingURL  string
	ForecastURL   string
	GeocoderRPS   float64
	GeocoderBurst int

	// Persistence bridge for the last used location.
	PrefsBackend string
	PrefsFile    string
	PrefsKey     string
	RedisURL     string
	RedisPrefix  string

	// RefreshInterval re-resolves the current location periodically (0 = disabled).
	RefreshInterval time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "json")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	cfg.GeocodingURL = getenvDefault("GEOCODING_URL", providers.DefaultGeocodingURL)
	cfg.ForecastURL = getenvDefault("FORECAST_URL", providers.DefaultForecastURL)

	rps, err := strconv.ParseFloat(getenvDefault("GEOCODER_RPS", "5"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOCODER_RPS: %w", err)
	}
	cfg.GeocoderRPS = rps

	burst, err := getenvInt("GEOCODER_BURST", 5)
	if err != nil {
		return nil, err
	}
	cfg.GeocoderBurst = burst

	cfg.PrefsBackend = getenvDefault("PREFS_BACKEND", store.BackendFile)
	switch cfg.PrefsBackend {
	case store.BackendMemory, store.BackendFile, store.BackendRedis:
	default:
		return nil, fmt.Errorf("invalid PREFS_BACKEND %q: want memory, file or redis", cfg.PrefsBackend)
	}
	cfg.PrefsFile = getenvDefault("PREFS_FILE", ".classy-weather.yaml")
	cfg.PrefsKey = getenvDefault("PREFS_KEY", weather.DefaultPreferenceKey)
	cfg.RedisURL = getenvDefault("REDIS_URL", "redis://localhost:6379/0")
	cfg.RedisPrefix = getenvDefault("REDIS_PREFIX", "classy-weather:")

	refresh, err := getenvDuration("REFRESH_INTERVAL", "0")
	if err != nil {
		return nil, err
	}
	if refresh < 0 {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}
	cfg.RefreshInterval = refresh

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
