package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"
)

type recalcCmd struct {
	configPath string
	party      string
	all        bool
}

func (*recalcCmd) Name() string { return "recalc" }
func (*recalcCmd) Synopsis() string {
	return "re-runs the balance engine for one party or all parties"
}
func (*recalcCmd) Usage() string {
	return `bahi recalc -party <name> | -all

  Recomputes every running balance and the current balance from
  chronological order. Recalculation is idempotent, so this is safe to
  run at any time as a repair step.

Usage Examples:
$ bahi recalc -party PendalKarigar
$ bahi recalc -all

`
}

func (p *recalcCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.configPath, "c", "", "Config file. Defaults to ./bahi.yaml when present.")
	f.StringVar(&p.party, "party", "", "Party name to recalculate.")
	f.BoolVar(&p.all, "all", false, "Recalculate every party.")
}

func (p *recalcCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.all == (p.party != "") {
		fmt.Fprintln(os.Stderr, "Error: exactly one of -party or -all is required")
		return subcommands.ExitUsageError
	}

	svc, cleanup, err := openService(p.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	if p.party != "" {
		balance, err := svc.RecalculateParty(ctx, p.party)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("%s: %s\n", p.party, balance)
		return subcommands.ExitSuccess
	}

	balances, err := svc.RecalculateAll(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	names := make([]string, 0, len(balances))
	for name := range balances {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s: %s\n", name, balances[name])
	}
	return subcommands.ExitSuccess
}
