package weather

import (
	"time"
	"unicode/utf8"
)

// MinQueryLength is the shortest location query that is ever resolved.
const MinQueryLength = 2

// Status is the lifecycle state of the fetch controller.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// LocationQuery is free text typed by the user.
type LocationQuery string

// Resolvable reports whether the query is long enough to be looked up.
// Length is counted in runes so that non-ASCII place names behave like ASCII ones.
func (q LocationQuery) Resolvable() bool {
	return utf8.RuneCountInString(string(q)) >= MinQueryLength
}

// ResolvedPlace is the first geocoding candidate for a query.
type ResolvedPlace struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	TimezoneID  string  `json:"timezone"`
	DisplayName string  `json:"displayName"`
	CountryCode string  `json:"countryCode"`
}

// DailyRecord is a single day of the forecast.
type DailyRecord struct {
	Date        time.Time `json:"date"`
	WeatherCode int       `json:"weatherCode"`
	TempMax     float64   `json:"tempMax"`
	TempMin     float64   `json:"tempMin"`
}

// ForecastSeries is ordered by Date ascending; index 0 is "today" in the
// queried timezone.
type ForecastSeries []DailyRecord

// ErrorInfo is the user-visible form of the last resolution failure.
type ErrorInfo struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// FetchState is owned by the Controller. Callers only ever see copies.
type FetchState struct {
	Location    LocationQuery  `json:"location"`
	Status      Status         `json:"status"`
	DisplayName string         `json:"displayName"`
	Forecast    ForecastSeries `json:"forecast"`
	Error       *ErrorInfo     `json:"error,omitempty"`
}

// Loading reports whether the latest fetch is still outstanding.
func (s FetchState) Loading() bool {
	return s.Status == StatusLoading
}

func (s FetchState) clone() FetchState {
	out := s
	if s.Forecast != nil {
		out.Forecast = make(ForecastSeries, len(s.Forecast))
		copy(out.Forecast, s.Forecast)
	}
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	return out
}
