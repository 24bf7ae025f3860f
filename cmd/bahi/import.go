package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
)

type importCmd struct {
	configPath string
	inputFile  string
	date       string
	force      bool
}

func (*importCmd) Name() string { return "import" }
func (*importCmd) Synopsis() string {
	return "atomically posts a batch of shorthand entries"
}
func (*importCmd) Usage() string {
	return `bahi import [-f <file>] [-date YYYY-MM-DD] [-force]

  Parses the batch, validates it, and posts it in one all-or-nothing
  transaction. Probable duplicates are skipped (and reported) unless
  -force is given. Party balances are recalculated before commit.

Usage Examples:
$ bahi import -f today.txt -date 2025-01-20
$ bahi import -f repost.txt -force

`
}

func (p *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.configPath, "c", "", "Config file. Defaults to ./bahi.yaml when present.")
	f.StringVar(&p.inputFile, "f", "-", "Input file, or - for stdin.")
	f.StringVar(&p.date, "date", "", "Default date for lines without an inline date. Defaults to today.")
	f.BoolVar(&p.force, "force", false, "Post entries even when flagged as probable duplicates.")
}

func (p *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	defaultDate, err := parseDefaultDate(p.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	text, err := readInput(p.inputFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	svc, cleanup, err := openService(p.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	res, err := svc.BulkImport(ctx, text, defaultDate, p.force)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, pe := range res.ParseErrors {
		fmt.Fprintf(os.Stderr, "Warning: unparsed line %q: %s\n", pe.RawLine, pe.Reason)
	}
	for _, w := range res.Skipped {
		fmt.Fprintf(os.Stderr, "Skipped duplicate: %s\n", w.Reason)
	}

	fmt.Printf("Posted %d entries (%d skipped, %d unparsed).\n",
		res.Posted, len(res.Skipped), len(res.ParseErrors))

	names := make([]string, 0, len(res.Balances))
	for name := range res.Balances {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, res.Balances[name])
	}
	return subcommands.ExitSuccess
}
