package weather

import (
	"math"
)

// DayView is one rendered forecast day.
type DayView struct {
	Date        string    `json:"date"`
	Label       string    `json:"label"`
	Glyph       string    `json:"glyph"`
	Description string    `json:"description"`
	Condition   Condition `json:"condition"`
	Min         int       `json:"min"`
	Max         int       `json:"max"`
}

// ForecastView is the display projection of a FetchState.
type ForecastView struct {
	Location    string     `json:"location"`
	Status      Status     `json:"status"`
	Loading     bool       `json:"loading"`
	DisplayName string     `json:"displayName"`
	Error       *ErrorInfo `json:"error,omitempty"`
	Days        []DayView  `json:"days"`
}

// Present projects state for display. The first day is labelled "Today",
// minimum temperatures are floored and maximums ceiled.
func Present(state FetchState) ForecastView {
	view := ForecastView{
		Location:    string(state.Location),
		Status:      state.Status,
		Loading:     state.Loading(),
		DisplayName: state.DisplayName,
		Error:       state.Error,
		Days:        make([]DayView, 0, len(state.Forecast)),
	}

	for i, rec := range state.Forecast {
		label := ShortWeekday(rec.Date)
		if i == 0 {
			label = "Today"
		}
		view.Days = append(view.Days, DayView{
			Date:        rec.Date.Format(dateLayout),
			Label:       label,
			Glyph:       WeatherGlyph(rec.WeatherCode),
			Description: WeatherLabel(rec.WeatherCode),
			Condition:   WeatherCondition(rec.WeatherCode),
			Min:         int(math.Floor(rec.TempMin)),
			Max:         int(math.Ceil(rec.TempMax)),
		})
	}

	return view
}
