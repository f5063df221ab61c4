package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// StagedResolver resolves a location name in two sequential steps: geocoding,
// then the daily forecast for the first candidate. It never retries.
type StagedResolver struct {
	geocoder Geocoder
	forecast ForecastSource
	logger   *slog.Logger
}

// NewStagedResolver creates a StagedResolver. A nil logger means slog.Default().
func NewStagedResolver(geocoder Geocoder, forecast ForecastSource, logger *slog.Logger) *StagedResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &StagedResolver{
		geocoder: geocoder,
		forecast: forecast,
		logger:   logger.With("component", "resolver"),
	}
}

// Resolve implements Resolver.
func (r *StagedResolver) Resolve(ctx context.Context, location LocationQuery) (ResolvedPlace, ForecastSeries, error) {
	const op = "resolve"

	candidates, err := r.geocoder.Search(ctx, string(location))
	if err != nil {
		return ResolvedPlace{}, nil, fault(op, "geocoding failed", err)
	}
	if len(candidates) == 0 {
		return ResolvedPlace{}, nil, notFound(op, string(location))
	}

	place := placeFromCandidate(candidates[0])
	r.logger.Debug("geocoded location",
		"location", string(location),
		"candidates", len(candidates),
		"place", place.DisplayName,
		"timezone", place.TimezoneID,
	)

	daily, err := r.forecast.Daily(ctx, place.Latitude, place.Longitude, place.TimezoneID)
	if err != nil {
		return ResolvedPlace{}, nil, fault(op, "forecast failed", err)
	}

	series, err := seriesFromDaily(daily, place.TimezoneID)
	if err != nil {
		return ResolvedPlace{}, nil, fault(op, "invalid forecast payload", err)
	}

	return place, series, nil
}

func placeFromCandidate(c PlaceCandidate) ResolvedPlace {
	display := c.Name
	if c.CountryCode != "" {
		display = fmt.Sprintf("%s %s", c.Name, CountryFlag(c.CountryCode))
	}
	return ResolvedPlace{
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		TimezoneID:  c.Timezone,
		DisplayName: display,
		CountryCode: c.CountryCode,
	}
}

// seriesFromDaily zips the parallel arrays into records. A length mismatch is
// a contract violation and never truncated.
func seriesFromDaily(d DailySeries, fallbackTZ string) (ForecastSeries, error) {
	n := len(d.Time)
	if len(d.WeatherCode) != n || len(d.TempMax) != n || len(d.TempMin) != n {
		return nil, fmt.Errorf("daily series length mismatch: time=%d weathercode=%d max=%d min=%d",
			n, len(d.WeatherCode), len(d.TempMax), len(d.TempMin))
	}

	loc := loadLocation(d.Timezone, fallbackTZ)

	series := make(ForecastSeries, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.ParseInLocation(dateLayout, d.Time[i], loc)
		if err != nil {
			return nil, fmt.Errorf("daily series date %d: %w", i, err)
		}
		series = append(series, DailyRecord{
			Date:        date,
			WeatherCode: d.WeatherCode[i],
			TempMax:     d.TempMax[i],
			TempMin:     d.TempMin[i],
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})

	return series, nil
}

func loadLocation(names ...string) *time.Location {
	for _, name := range names {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
	}
	return time.UTC
}
