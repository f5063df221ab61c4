package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeatherGlyph(t *testing.T) {
	assert.NotEqual(t, WeatherGlyph(0), WeatherGlyph(1))
	assert.Equal(t, "☀️", WeatherGlyph(0))
	assert.Equal(t, "🌫", WeatherGlyph(45))
	assert.Equal(t, WeatherGlyph(45), WeatherGlyph(48))
	assert.Equal(t, "🌧", WeatherGlyph(57))
	assert.Equal(t, "⛈", WeatherGlyph(99))

	for _, code := range []int{200, -1, 4, 50, 52, 94, 97} {
		assert.Equal(t, UnknownGlyph, WeatherGlyph(code), "code %d", code)
		assert.Equal(t, UnknownLabel, WeatherLabel(code), "code %d", code)
		assert.Equal(t, ConditionUnknown, WeatherCondition(code), "code %d", code)
	}
}

func TestWeatherLabelAndCondition(t *testing.T) {
	assert.Equal(t, "fog", WeatherLabel(48))
	assert.Equal(t, "thunderstorm with hail", WeatherLabel(96))
	assert.Equal(t, ConditionSnow, WeatherCondition(86))
	assert.Equal(t, ConditionRain, WeatherCondition(80))
	assert.Equal(t, ConditionCloudy, WeatherCondition(3))
}

func TestCountryFlag(t *testing.T) {
	us := CountryFlag("US")
	assert.Equal(t, "\U0001F1FA\U0001F1F8", us)
	assert.Equal(t, us, CountryFlag("US"))
	assert.Equal(t, us, CountryFlag("us"))
	assert.Equal(t, us, CountryFlag("uS"))
	assert.Equal(t, "\U0001F1EC\U0001F1E7", CountryFlag("gb"))
	assert.Empty(t, CountryFlag(""))
}

func TestShortWeekday(t *testing.T) {
	// 2024-01-01 was a Monday.
	monday := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	want := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	for i, w := range want {
		assert.Equal(t, w, ShortWeekday(monday.AddDate(0, 0, i)))
	}
}
