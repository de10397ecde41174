// Package cmd implements the CLI application to analyze an options ledger.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"optfolio"
	"optfolio/date"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&analyzeCmd{}, "analysis")
	c.Register(&seriesCmd{}, "analysis")
	c.Register(&plotCmd{}, "analysis")

	c.Register(&fetchCmd{}, "ledger")
	c.Register(&notesCmd{}, "ledger")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "ledger.csv", "Path to the ledger file (CSV or JSON)")
var notesFile = flag.String("notes-file", "notes.txt", "Path to the notes file")
var serviceURL = flag.String("service-url", "http://localhost:5000", "Base URL of the ledger service")

// loadLedger reads records from a file, dispatching on extension: .json is
// the service payload shape, everything else is a CSV export.
func loadLedger(path string) ([]optfolio.TransactionRecord, error) {
	if path == "" {
		path = *ledgerFile
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger %q: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return optfolio.DecodeRecords(f)
	}
	return optfolio.ReadLedger(f)
}

// sliceRecords restricts records to those whose activity date falls in
// [from, to]. A zero bound leaves that side open; undated records are kept
// only when both bounds are open.
func sliceRecords(records []optfolio.TransactionRecord, from, to date.Date) []optfolio.TransactionRecord {
	if from.IsZero() && to.IsZero() {
		return records
	}
	var out []optfolio.TransactionRecord
	for _, rec := range records {
		day, err := date.Parse(rec.ActivityDate)
		if err != nil {
			continue
		}
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// parseDateFlag parses an optional date flag, zero when unset.
func parseDateFlag(s string) (date.Date, error) {
	if s == "" {
		return date.Date{}, nil
	}
	return date.Parse(s)
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when the renderer cannot be built.
func printMarkdown(doc string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}
