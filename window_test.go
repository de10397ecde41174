package optfolio

import (
	"testing"

	"optfolio/date"
)

func TestPlotWindow(t *testing.T) {
	day := date.MustParse("2024-03-15")
	r := PlotWindow(day, 5)
	if r.From != date.MustParse("2024-03-10") || r.To != date.MustParse("2024-03-20") {
		t.Errorf("PlotWindow = %s", r)
	}
	if !r.Contains(day) {
		t.Error("window must contain its center")
	}
}

func TestPlotWindow_DefaultSpacing(t *testing.T) {
	day := date.MustParse("2024-03-15")
	for _, spacing := range []int{0, -3} {
		r := PlotWindow(day, spacing)
		if r.From != date.MustParse("2024-03-05") || r.To != date.MustParse("2024-03-25") {
			t.Errorf("PlotWindow(%d) = %s, want default spacing", spacing, r)
		}
	}
}
