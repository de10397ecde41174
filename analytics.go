package optfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"optfolio/date"
)

// InstrumentAmount is one bar of a per-instrument breakdown.
type InstrumentAmount struct {
	Instrument string
	Amount     decimal.Decimal
}

// TypeBreakdown sums the absolute P/L of one option type. Sign is taken from
// the last-found position of that type (+1 for non-negative P/L, -1
// otherwise), not from the aggregate sign; the quirk is preserved as observed.
type TypeBreakdown struct {
	Type string
	PL   decimal.Decimal
	Sign int
}

// SeriesPoint is one step of the cumulative cash-flow series.
type SeriesPoint struct {
	Date   string
	Amount decimal.Decimal
}

// Analytics is the full derived view over one active record slice. All fields
// are computed by Recompute and are plain values; nothing here mutates on its
// own.
type Analytics struct {
	AggregatedPL decimal.Decimal
	TotalProfit  decimal.Decimal // sum of positive P/L, non-negative
	TotalLoss    decimal.Decimal // sum of |negative P/L|, non-negative
	TotalTrades  int
	WinRate      float64 // percentage; NaN when there are no positions

	PLByInstrument      []InstrumentAmount
	RevenueByInstrument []InstrumentAmount
	PLByType            []TypeBreakdown

	TopWinners []*Position // up to 5, descending P/L
	TopLosers  []*Position // up to 5, ascending P/L

	AvgProfitableHoldingDays   float64
	AvgUnprofitableHoldingDays float64

	// Series is the raw cash-flow view: a prefix sum of normalized amounts
	// over the slice sorted by activity date. It includes records the
	// aggregator rejected; the divergence from the matched-position view is
	// intentional.
	Series []SeriesPoint

	Rejections []Rejection
}

// Recompute runs the whole pipeline over the active slice and derives every
// aggregate. It is pure and idempotent: re-running it on an unchanged slice
// yields identical output, and the host invokes it on every slice change.
func Recompute(slice []TransactionRecord) *Analytics {
	book := Aggregate(slice)
	positions := book.Positions()

	a := &Analytics{
		TotalTrades: len(positions),
		Rejections:  book.Rejections,
	}

	wins := 0
	for _, pos := range positions {
		a.AggregatedPL = a.AggregatedPL.Add(pos.PL)
		if pos.PL.IsPositive() {
			a.TotalProfit = a.TotalProfit.Add(pos.PL)
			wins++
		} else if pos.PL.IsNegative() {
			a.TotalLoss = a.TotalLoss.Sub(pos.PL)
		}
	}
	// 0/0 yields NaN over an empty aggregation; callers must guard.
	a.WinRate = float64(wins) / float64(len(positions)) * 100

	a.PLByInstrument = sumByInstrument(positions, func(p *Position) decimal.Decimal { return p.PL })
	a.RevenueByInstrument = sumByInstrument(positions, func(p *Position) decimal.Decimal { return p.Revenue })
	a.PLByType = sumByType(positions)
	a.TopWinners, a.TopLosers = topPositions(positions, 5)
	a.AvgProfitableHoldingDays, a.AvgUnprofitableHoldingDays = holdingPeriodMeans(positions)
	a.Series = cumulativeSeries(slice)
	return a
}

// sumByInstrument folds one position field per instrument, in first-seen
// order, excluding instruments whose sum is zero.
func sumByInstrument(positions []*Position, field func(*Position) decimal.Decimal) []InstrumentAmount {
	sums := make(map[string]decimal.Decimal)
	var order []string
	for _, pos := range positions {
		if _, ok := sums[pos.Instrument]; !ok {
			order = append(order, pos.Instrument)
		}
		sums[pos.Instrument] = sums[pos.Instrument].Add(field(pos))
	}
	var out []InstrumentAmount
	for _, instrument := range order {
		if sums[instrument].IsZero() {
			continue
		}
		out = append(out, InstrumentAmount{Instrument: instrument, Amount: sums[instrument]})
	}
	return out
}

func sumByType(positions []*Position) []TypeBreakdown {
	sums := make(map[string]decimal.Decimal)
	signs := make(map[string]int)
	var order []string
	for _, pos := range positions {
		if _, ok := sums[pos.OptionType]; !ok {
			order = append(order, pos.OptionType)
		}
		sums[pos.OptionType] = sums[pos.OptionType].Add(pos.PL.Abs())
		// last position of the type decides the sign flag
		if pos.PL.IsNegative() {
			signs[pos.OptionType] = -1
		} else {
			signs[pos.OptionType] = 1
		}
	}
	var out []TypeBreakdown
	for _, typ := range order {
		out = append(out, TypeBreakdown{Type: typ, PL: sums[typ], Sign: signs[typ]})
	}
	return out
}

// topPositions ranks positions by realized P/L: up to n winners descending and
// n losers ascending.
func topPositions(positions []*Position, n int) (winners, losers []*Position) {
	for _, pos := range positions {
		if pos.PL.IsPositive() {
			winners = append(winners, pos)
		} else if pos.PL.IsNegative() {
			losers = append(losers, pos)
		}
	}
	sort.SliceStable(winners, func(i, j int) bool { return winners[i].PL.GreaterThan(winners[j].PL) })
	sort.SliceStable(losers, func(i, j int) bool { return losers[i].PL.LessThan(losers[j].PL) })
	if len(winners) > n {
		winners = winners[:n]
	}
	if len(losers) > n {
		losers = losers[:n]
	}
	return winners, losers
}

// holdingPeriodMeans buckets positions with a valid open date and a positive
// holding interval (expiry date when present, else close date) into
// profitable and unprofitable groups and returns each group's mean in whole
// days, zero for an empty group.
func holdingPeriodMeans(positions []*Position) (profitable, unprofitable float64) {
	var profitDays, lossDays []int
	for _, pos := range positions {
		if pos.OpenDate.IsZero() {
			continue
		}
		end := pos.CloseDate
		if !pos.ExpiryDate.IsZero() {
			end = pos.ExpiryDate
		}
		if end.IsZero() {
			continue
		}
		days := pos.OpenDate.DaysUntil(end)
		if days <= 0 {
			continue
		}
		if pos.PL.IsPositive() {
			profitDays = append(profitDays, days)
		} else {
			lossDays = append(lossDays, days)
		}
	}
	return meanDays(profitDays), meanDays(lossDays)
}

func meanDays(days []int) float64 {
	if len(days) == 0 {
		return 0
	}
	total := 0
	for _, d := range days {
		total += d
	}
	return float64(total) / float64(len(days))
}

// cumulativeSeries sorts the slice by activity date and runs a prefix sum of
// each record's signed amount (parenthesized values negate), zero when absent
// or unparseable. It operates on raw records, not positions: this is the
// cash-flow view. Dated records sort among themselves; an undated record
// stays at its original slice position.
func cumulativeSeries(slice []TransactionRecord) []SeriesPoint {
	type dated struct {
		rec TransactionRecord
		day date.Date
	}
	ordered := make([]TransactionRecord, len(slice))
	hasDate := make([]bool, len(slice))
	var datedRows []dated
	for i, rec := range slice {
		if day, err := date.Parse(rec.ActivityDate); err == nil {
			datedRows = append(datedRows, dated{rec: rec, day: day})
			hasDate[i] = true
		} else {
			ordered[i] = rec
		}
	}
	sort.SliceStable(datedRows, func(i, j int) bool {
		return datedRows[i].day.Before(datedRows[j].day)
	})
	next := 0
	for i := range ordered {
		if hasDate[i] {
			ordered[i] = datedRows[next].rec
			next++
		}
	}

	cumulative := decimal.Zero
	points := make([]SeriesPoint, 0, len(ordered))
	for _, rec := range ordered {
		if amount, err := ParseAmount(rec.Amount); err == nil {
			cumulative = cumulative.Add(amount)
		}
		points = append(points, SeriesPoint{Date: rec.ActivityDate, Amount: cumulative})
	}
	return points
}
