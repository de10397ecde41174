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

// plotCmd holds the flags for the 'plot' subcommand.
type plotCmd struct {
	ticker  string
	day     string
	spacing int
}

func (*plotCmd) Name() string     { return "plot" }
func (*plotCmd) Synopsis() string { return "price context around a trade date" }
func (*plotCmd) Usage() string {
	return `ofa plot -ticker <symbol> [-date <date>] [-spacing <days>]

  Shows daily closes around the date, plus the option legs for the ticker
  falling inside the window.
`
}

func (c *plotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker symbol to plot")
	f.StringVar(&c.day, "date", date.Today().String(), "Center of the plot window")
	f.IntVar(&c.spacing, "spacing", optfolio.DefaultDateSpacing, "Days shown on each side of the date")
}

func (c *plotCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "-ticker is required")
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	client := optfolio.NewClient(*serviceURL, "", "")
	sw, err := client.StockData(c.ticker, optfolio.PlotWindow(day, c.spacing))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching stock data: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.StockWindowMarkdown(sw))
	return subcommands.ExitSuccess
}
