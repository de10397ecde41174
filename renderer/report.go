// Package renderer turns analysis results into markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"math"

	"github.com/Rhymond/go-money"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	"optfolio"
)

// usd renders a decimal amount as a display currency string.
func usd(d decimal.Decimal) string {
	return money.New(d.Round(2).Shift(2).IntPart(), money.USD).Display()
}

// ReportMarkdown renders the full analysis report.
func ReportMarkdown(a *optfolio.Analytics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Options Trading Report")

	winRate := "n/a"
	if !math.IsNaN(a.WinRate) {
		winRate = fmt.Sprintf("%.1f%%", a.WinRate)
	}
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Aggregated P/L", usd(a.AggregatedPL)},
			{"Total Profit", usd(a.TotalProfit)},
			{"Total Loss", usd(a.TotalLoss)},
			{"Total Trades", fmt.Sprintf("%d", a.TotalTrades)},
			{"Win Rate", winRate},
			{"Avg Profitable Holding", fmt.Sprintf("%.1f days", a.AvgProfitableHoldingDays)},
			{"Avg Unprofitable Holding", fmt.Sprintf("%.1f days", a.AvgUnprofitableHoldingDays)},
		},
	})

	doc.H2("P/L by Instrument")
	doc.Table(instrumentTable(a.PLByInstrument))

	doc.H2("Revenue by Instrument")
	doc.Table(instrumentTable(a.RevenueByInstrument))

	doc.H2("P/L by Option Type")
	typeRows := make([][]string, 0, len(a.PLByType))
	for _, tb := range a.PLByType {
		signed := tb.PL
		if tb.Sign < 0 {
			signed = signed.Neg()
		}
		typeRows = append(typeRows, []string{tb.Type, usd(signed)})
	}
	doc.Table(md.TableSet{Header: []string{"Type", "P/L"}, Rows: typeRows})

	doc.H2("Top Winners")
	doc.Table(positionTable(a.TopWinners))
	doc.H2("Top Losers")
	doc.Table(positionTable(a.TopLosers))

	if len(a.Rejections) > 0 {
		doc.H2("Skipped Records")
		rows := make([][]string, 0, len(a.Rejections))
		for _, rej := range a.Rejections {
			rows = append(rows, []string{
				fmt.Sprintf("%d", rej.Index),
				rej.Record.ActivityDate,
				rej.Record.Instrument,
				string(rej.Reason),
			})
		}
		doc.Table(md.TableSet{Header: []string{"Row", "Date", "Instrument", "Reason"}, Rows: rows})
	}

	return doc.String()
}

func instrumentTable(entries []optfolio.InstrumentAmount) md.TableSet {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.Instrument, usd(e.Amount)})
	}
	return md.TableSet{Header: []string{"Instrument", "Amount"}, Rows: rows}
}

func positionTable(positions []*optfolio.Position) md.TableSet {
	rows := make([][]string, 0, len(positions))
	for _, pos := range positions {
		rows = append(rows, []string{
			pos.Instrument, pos.Expiry, pos.OptionType, pos.Strike, usd(pos.PL),
		})
	}
	return md.TableSet{
		Header: []string{"Instrument", "Expiry", "Type", "Strike", "P/L"},
		Rows:   rows,
	}
}

// SeriesMarkdown renders the cumulative cash-flow series.
func SeriesMarkdown(a *optfolio.Analytics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cumulative Cash Flow")
	rows := make([][]string, 0, len(a.Series))
	for _, p := range a.Series {
		rows = append(rows, []string{p.Date, usd(p.Amount)})
	}
	doc.Table(md.TableSet{Header: []string{"Date", "Cumulative"}, Rows: rows})

	return doc.String()
}

// StockWindowMarkdown renders price context around a trade together with the
// ledger legs falling inside the window.
func StockWindowMarkdown(sw *optfolio.StockWindow) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s", sw.Ticker, sw.Window))

	doc.H2("Daily Close")
	priceRows := make([][]string, 0, len(sw.Prices))
	for _, p := range sw.Prices {
		priceRows = append(priceRows, []string{p.Date.String(), fmt.Sprintf("%.2f", p.Close)})
	}
	doc.Table(md.TableSet{Header: []string{"Date", "Close"}, Rows: priceRows})

	doc.H2("Option Legs")
	legRows := make([][]string, 0, len(sw.Legs))
	for _, leg := range sw.Legs {
		legRows = append(legRows, []string{
			leg.ActivityDate, leg.TransCode, leg.Description, leg.Amount,
		})
	}
	doc.Table(md.TableSet{Header: []string{"Date", "Code", "Description", "Amount"}, Rows: legRows})

	return doc.String()
}
