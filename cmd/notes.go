package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"optfolio"
)

// notesCmd holds the flags for the 'notes' subcommand.
type notesCmd struct{}

func (*notesCmd) Name() string     { return "notes" }
func (*notesCmd) Synopsis() string { return "show or replace the trading notes" }
func (*notesCmd) Usage() string {
	return `ofa notes [text...]

  Without arguments, prints the saved notes. With arguments, replaces the
  notes with the given text.
`
}

func (*notesCmd) SetFlags(*flag.FlagSet) {}

func (c *notesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	notes := optfolio.NewNotes(*notesFile)

	if f.NArg() > 0 {
		if err := notes.Save(strings.Join(f.Args(), " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving notes: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	text, err := notes.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading notes: %v\n", err)
		return subcommands.ExitFailure
	}
	if text != "" {
		printMarkdown(text)
	}
	return subcommands.ExitSuccess
}
