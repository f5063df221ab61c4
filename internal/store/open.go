package store

import (
	"context"
	"fmt"

	"github.com/i474232898/classy-weather/internal/weather"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Backend is a preference store that holds resources.
type Backend interface {
	weather.Preferences
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend     string
	FilePath    string
	RedisURL    string
	RedisPrefix string
}

// Open creates the backend named in opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendFile, "":
		return OpenFileStore(opts.FilePath)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, opts.RedisPrefix)
	default:
		return nil, fmt.Errorf("unknown preferences backend %q", opts.Backend)
	}
}
