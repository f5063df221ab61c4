package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/classy-weather/internal/weather"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	dailyFields = "weathercode,temperature_2m_max,temperature_2m_min"
)

var errMalformed = errors.New("malformed payload")

// OpenMeteoGeocoder implements weather.Geocoder against the Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoGeocoder creates a geocoder. An empty baseURL uses DefaultGeocodingURL.
func NewOpenMeteoGeocoder(client *http.Client, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		name:    "openmeteo-geocoding",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

// Search implements weather.Geocoder. Open-Meteo omits "results" entirely
// when nothing matches; that is reported as no candidates.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string) ([]weather.PlaceCandidate, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "10")
	values.Set("language", "en")
	values.Set("format", "json")

	var payload struct {
		Results []struct {
			Name        string  `json:"name"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Timezone    string  `json:"timezone"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}

	if err := getJSON(ctx, g.client, g.circuit, g.name, g.baseURL+"?"+values.Encode(), &payload); err != nil {
		return nil, err
	}

	candidates := make([]weather.PlaceCandidate, 0, len(payload.Results))
	for i, r := range payload.Results {
		if r.Name == "" {
			return nil, fmt.Errorf("%s: %w: result %d has no name", g.name, errMalformed, i)
		}
		candidates = append(candidates, weather.PlaceCandidate{
			Name:        r.Name,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			Timezone:    r.Timezone,
			CountryCode: r.CountryCode,
		})
	}

	return candidates, nil
}

// OpenMeteoForecast implements weather.ForecastSource against the Open-Meteo forecast API.
type OpenMeteoForecast struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenMeteoForecast creates a forecast source. An empty baseURL uses DefaultForecastURL.
func NewOpenMeteoForecast(client *http.Client, baseURL string) *OpenMeteoForecast {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoForecast{
		name:    "openmeteo-forecast",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openmeteo-forecast"),
	}
}

// Daily implements weather.ForecastSource.
func (p *OpenMeteoForecast) Daily(ctx context.Context, lat, lon float64, timezone string) (weather.DailySeries, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	if timezone == "" {
		timezone = "auto"
	}
	values.Set("timezone", timezone)
	values.Set("daily", dailyFields)

	var payload struct {
		Timezone string `json:"timezone"`
		Daily    *struct {
			Time        []string   `json:"time"`
			WeatherCode []*int     `json:"weathercode"`
			TempMax     []*float64 `json:"temperature_2m_max"`
			TempMin     []*float64 `json:"temperature_2m_min"`
		} `json:"daily"`
	}

	if err := getJSON(ctx, p.client, p.circuit, p.name, p.baseURL+"?"+values.Encode(), &payload); err != nil {
		return weather.DailySeries{}, err
	}
	if payload.Daily == nil {
		return weather.DailySeries{}, fmt.Errorf("%s: %w: missing daily block", p.name, errMalformed)
	}

	codes, err := dailyColumn("weathercode", payload.Daily.WeatherCode)
	if err != nil {
		return weather.DailySeries{}, fmt.Errorf("%s: %w", p.name, err)
	}
	maxes, err := dailyColumn("temperature_2m_max", payload.Daily.TempMax)
	if err != nil {
		return weather.DailySeries{}, fmt.Errorf("%s: %w", p.name, err)
	}
	mins, err := dailyColumn("temperature_2m_min", payload.Daily.TempMin)
	if err != nil {
		return weather.DailySeries{}, fmt.Errorf("%s: %w", p.name, err)
	}

	return weather.DailySeries{
		Timezone:    payload.Timezone,
		Time:        payload.Daily.Time,
		WeatherCode: codes,
		TempMax:     maxes,
		TempMin:     mins,
	}, nil
}

// dailyColumn dereferences a daily column. Open-Meteo sends null for days it
// has no data for, and those must not decode as zero.
func dailyColumn[T any](field string, values []*T) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		if v == nil {
			return nil, fmt.Errorf("%w: %s[%d] is null", errMalformed, field, i)
		}
		out[i] = *v
	}
	return out, nil
}

var (
	_ weather.Geocoder       = (*OpenMeteoGeocoder)(nil)
	_ weather.ForecastSource = (*OpenMeteoForecast)(nil)
)
