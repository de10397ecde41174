package optfolio

import "optfolio/date"

// DefaultDateSpacing is the number of days shown on each side of a trade date
// when plotting price context around it.
const DefaultDateSpacing = 10

// PlotWindow returns the inclusive date range centered on day, spanning
// spacing days on each side. A non-positive spacing falls back to the default.
func PlotWindow(day date.Date, spacing int) date.Range {
	if spacing <= 0 {
		spacing = DefaultDateSpacing
	}
	return date.Range{From: day.Add(-spacing), To: day.Add(spacing)}
}
