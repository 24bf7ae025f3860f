package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type previewCmd struct {
	configPath string
	inputFile  string
	date       string
}

func (*previewCmd) Name() string { return "preview" }
func (*previewCmd) Synopsis() string {
	return "parses a batch and shows how every line classifies, without posting"
}
func (*previewCmd) Usage() string {
	return `bahi preview [-f <file>] [-date YYYY-MM-DD]

  Reads shorthand lines from the file (or stdin), classifies each one
  against the default date, and prints the parsed entries, parse errors,
  validation errors and duplicate warnings. Nothing is written.

Usage Examples:
$ bahi preview -f today.txt -date 2025-01-20
$ echo "1. 23500" | bahi preview

`
}

func (p *previewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.configPath, "c", "", "Config file. Defaults to ./bahi.yaml when present.")
	f.StringVar(&p.inputFile, "f", "-", "Input file, or - for stdin.")
	f.StringVar(&p.date, "date", "", "Default date for lines without an inline date. Defaults to today.")
}

func (p *previewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	preview, err := svc.Preview(ctx, text, defaultDate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, r := range preview.Results {
		if r.Err != nil {
			fmt.Printf("ERR  %-40q %s\n", r.Line, r.Err.Reason)
			continue
		}
		fmt.Printf("OK   %-40q %s\n", r.Line, describe(r.Entry))
	}

	if len(preview.ValidationErrors) > 0 {
		fmt.Println("\nValidation errors (batch is not postable):")
		for _, msg := range preview.ValidationErrors {
			fmt.Println("  -", msg)
		}
		return subcommands.ExitFailure
	}

	for _, w := range preview.Warnings {
		fmt.Printf("DUP  entry %d: %s\n", w.Index+1, w.Reason)
	}
	return subcommands.ExitSuccess
}
