package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"optfolio"
	"optfolio/date"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	username string
	password string
	start    string
	end      string
	output   string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download ledger records from the remote service" }
func (*fetchCmd) Usage() string {
	return `ofa fetch -u <username> -p <password> [-s <date>] [-d <date>] [-o <file>]

  Downloads ledger records for the date range and writes them as JSON, to
  stdout unless -o is given. Responses are cached on disk for the day.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Service username")
	f.StringVar(&c.password, "p", "", "Service password")
	f.StringVar(&c.start, "s", "", "Start date of the range, defaults to one year ago")
	f.StringVar(&c.end, "d", date.Today().String(), "End date of the range")
	f.StringVar(&c.output, "o", "", "Write records to this file instead of stdout")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.password == "" {
		fmt.Fprintln(os.Stderr, "-u and -p are required")
		return subcommands.ExitUsageError
	}
	end, err := date.Parse(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}
	start := end.Add(-365)
	if c.start != "" {
		if start, err = date.Parse(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	client := optfolio.NewClient(*serviceURL, c.username, c.password)
	records, err := client.FetchRecords(date.Range{From: start, To: end})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching records: %v\n", err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.output != "" {
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := optfolio.EncodeRecords(out, records); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing records: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.output != "" {
		fmt.Printf("Fetched %d records into %s\n", len(records), c.output)
	}
	return subcommands.ExitSuccess
}
