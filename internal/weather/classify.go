package weather

import (
	"slices"
	"strings"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// UnknownGlyph is returned for weather codes that are not in the table.
const UnknownGlyph = "❓"

// UnknownLabel is the description paired with UnknownGlyph.
const UnknownLabel = "unknown"

type glyphEntry struct {
	codes     []int
	glyph     string
	label     string
	condition Condition
}

// WMO weather interpretation codes. Membership is exact: codes between the
// listed values are deliberately unknown.
var glyphTable = []glyphEntry{
	{[]int{0}, "☀️", "clear sky", ConditionClear},
	{[]int{1}, "🌤", "mostly clear", ConditionClear},
	{[]int{2}, "⛅️", "partly cloudy", ConditionCloudy},
	{[]int{3}, "☁️", "overcast", ConditionCloudy},
	{[]int{45, 48}, "🌫", "fog", ConditionMist},
	{[]int{51, 56, 61, 66, 80}, "🌦", "drizzle / rain showers", ConditionRain},
	{[]int{53, 55, 63, 65, 57, 67, 81, 82}, "🌧", "rain", ConditionRain},
	{[]int{71, 73, 75, 77, 85, 86}, "🌨", "snow", ConditionSnow},
	{[]int{95}, "🌩", "thunderstorm", ConditionStorm},
	{[]int{96, 99}, "⛈", "thunderstorm with hail", ConditionStorm},
}

func lookupGlyph(code int) (glyphEntry, bool) {
	for _, e := range glyphTable {
		if slices.Contains(e.codes, code) {
			return e, true
		}
	}
	return glyphEntry{}, false
}

// WeatherGlyph maps a WMO weather code to an emoji.
func WeatherGlyph(code int) string {
	if e, ok := lookupGlyph(code); ok {
		return e.glyph
	}
	return UnknownGlyph
}

// WeatherLabel maps a WMO weather code to a short description.
func WeatherLabel(code int) string {
	if e, ok := lookupGlyph(code); ok {
		return e.label
	}
	return UnknownLabel
}

// WeatherCondition maps a WMO weather code to a normalized Condition.
func WeatherCondition(code int) Condition {
	if e, ok := lookupGlyph(code); ok {
		return e.condition
	}
	return ConditionUnknown
}

// regionalIndicatorOffset moves 'A' onto U+1F1E6 REGIONAL INDICATOR SYMBOL LETTER A.
const regionalIndicatorOffset = 0x1F1E6 - 'A'

// CountryFlag converts an ISO 3166 alpha-2 code into a flag emoji.
// Input is upper-cased first; anything that is not two ASCII letters yields
// a meaningless sequence rather than an error.
func CountryFlag(isoAlpha2 string) string {
	return strings.Map(func(r rune) rune {
		return r + regionalIndicatorOffset
	}, strings.ToUpper(isoAlpha2))
}

// ShortWeekday returns the abbreviated English weekday name ("Mon", "Tue", ...).
// It never returns "Today"; presentation of the first day is up to the caller.
func ShortWeekday(date time.Time) string {
	return date.Weekday().String()[:3]
}
