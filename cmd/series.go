package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"

	"optfolio"
	"optfolio/renderer"
)

// seriesCmd holds the flags for the 'series' subcommand.
type seriesCmd struct {
	ledgerFile string
	from       string
	to         string
}

func (*seriesCmd) Name() string     { return "series" }
func (*seriesCmd) Synopsis() string { return "cumulative cash flow over the ledger" }
func (*seriesCmd) Usage() string {
	return `ofa series [-l <ledger>] [-from <date>] [-to <date>]

  Prints the cumulative cash-flow series in activity date order. Unlike the
  analysis report, every record with an amount contributes, matched or not.
`
}

func (c *seriesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to analyze. Defaults to -ledger-file.")
	f.StringVar(&c.from, "from", "", "Restrict to records on or after this date")
	f.StringVar(&c.to, "to", "", "Restrict to records on or before this date")
}

func (c *seriesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, status := loadSlice(c.ledgerFile, c.from, c.to)
	if status != subcommands.ExitSuccess {
		return status
	}
	a := optfolio.Recompute(records)
	printMarkdown(renderer.SeriesMarkdown(a))
	return subcommands.ExitSuccess
}
