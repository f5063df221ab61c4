package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresent(t *testing.T) {
	// 2024-03-01 was a Friday.
	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	state := FetchState{
		Location:    "london",
		Status:      StatusReady,
		DisplayName: "London " + CountryFlag("GB"),
		Forecast: ForecastSeries{
			{Date: day, WeatherCode: 0, TempMax: 11.2, TempMin: 3.8},
			{Date: day.AddDate(0, 0, 1), WeatherCode: 61, TempMax: 9.0, TempMin: -0.5},
			{Date: day.AddDate(0, 0, 2), WeatherCode: 200, TempMax: 7.01, TempMin: 1.99},
		},
	}

	view := Present(state)
	assert.Equal(t, "london", view.Location)
	assert.Equal(t, StatusReady, view.Status)
	assert.False(t, view.Loading)
	assert.Equal(t, state.DisplayName, view.DisplayName)
	require.Len(t, view.Days, 3)

	assert.Equal(t, DayView{
		Date: "2024-03-01", Label: "Today", Glyph: "☀️", Description: "clear sky",
		Condition: ConditionClear, Min: 3, Max: 12,
	}, view.Days[0])
	assert.Equal(t, "Sat", view.Days[1].Label)
	assert.Equal(t, -1, view.Days[1].Min)
	assert.Equal(t, 9, view.Days[1].Max)
	assert.Equal(t, "Sun", view.Days[2].Label)
	assert.Equal(t, UnknownGlyph, view.Days[2].Glyph)
	assert.Equal(t, 1, view.Days[2].Min)
	assert.Equal(t, 8, view.Days[2].Max)
}

func TestPresent_Empty(t *testing.T) {
	view := Present(FetchState{Status: StatusLoading, Error: &ErrorInfo{Kind: KindLocationNotFound, Message: "x"}})
	assert.True(t, view.Loading)
	assert.NotNil(t, view.Days)
	assert.Empty(t, view.Days)
	assert.Equal(t, KindLocationNotFound, view.Error.Kind)
}
