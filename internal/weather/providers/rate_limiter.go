package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/classy-weather/internal/weather"
)

// RateLimitedGeocoder wraps a Geocoder with a token bucket. Location input
// changes on every keystroke, so lookups are paced before they leave the process.
type RateLimitedGeocoder struct {
	geocoder weather.Geocoder
	limiter  *rate.Limiter
}

// NewRateLimitedGeocoder creates a rate limited geocoder.
// rps is the maximum requests per second (fractional values allowed), burst
// the maximum burst size. A non-positive rps disables limiting.
func NewRateLimitedGeocoder(geocoder weather.Geocoder, rps float64, burst int) *RateLimitedGeocoder {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedGeocoder{
		geocoder: geocoder,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Search waits for limiter permission or context cancellation, then forwards.
func (r *RateLimitedGeocoder) Search(ctx context.Context, name string) ([]weather.PlaceCandidate, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.geocoder.Search(ctx, name)
}

var _ weather.Geocoder = (*RateLimitedGeocoder)(nil)
