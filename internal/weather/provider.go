package weather

import (
	"context"
)

// PlaceCandidate is one geocoding match.
type PlaceCandidate struct {
	Name        string
	Latitude    float64
	Longitude   float64
	Timezone    string
	CountryCode string
}

// DailySeries is the raw parallel-array payload of a daily forecast.
// All four series are expected to have the same length.
type DailySeries struct {
	Timezone    string
	Time        []string
	WeatherCode []int
	TempMax     []float64
	TempMin     []float64
}

// Geocoder turns a place name into candidates. No candidates is an empty slice
// and a nil error; transport and protocol faults are errors.
type Geocoder interface {
	Search(ctx context.Context, name string) ([]PlaceCandidate, error)
}

// ForecastSource returns the daily weather code and min/max temperature series
// for a coordinate in the given timezone.
type ForecastSource interface {
	Daily(ctx context.Context, lat, lon float64, timezone string) (DailySeries, error)
}

// Resolver performs the full location name to forecast resolution.
type Resolver interface {
	Resolve(ctx context.Context, location LocationQuery) (ResolvedPlace, ForecastSeries, error)
}

// Preferences is the key-value capability used to remember the last location.
type Preferences interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
