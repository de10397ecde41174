package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"optfolio"
	"optfolio/date"
	"optfolio/renderer"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	ledgerFile string
	from       string
	to         string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "aggregate option positions and report realized P/L" }
func (*analyzeCmd) Usage() string {
	return `ofa analyze [-l <ledger>] [-from <date>] [-to <date>]

  Aggregates the ledger into option positions and prints the analysis report.
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ledgerFile, "l", "", "Ledger to analyze. Defaults to -ledger-file.")
	f.StringVar(&c.from, "from", "", "Restrict to records on or after this date")
	f.StringVar(&c.to, "to", "", "Restrict to records on or before this date")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	records, status := loadSlice(c.ledgerFile, c.from, c.to)
	if status != subcommands.ExitSuccess {
		return status
	}
	a := optfolio.Recompute(records)
	printMarkdown(renderer.ReportMarkdown(a))
	return subcommands.ExitSuccess
}

// loadSlice loads a ledger and applies the bound flags shared by the analysis
// subcommands, returning the active record slice.
func loadSlice(ledger, fromFlag, toFlag string) ([]optfolio.TransactionRecord, subcommands.ExitStatus) {
	var from, to date.Date
	var err error
	if from, err = parseDateFlag(fromFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from date: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	if to, err = parseDateFlag(toFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -to date: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	records, err := loadLedger(ledger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return sliceRecords(records, from, to), subcommands.ExitSuccess
}
