// Command bahi ingests hand-typed ledger shorthand into a local SQLite
// ledger: it previews how each line classifies, bulk-imports batches
// atomically, and repairs party balances.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/google/subcommands"
)

func main() {
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")
	subcommands.Register(&previewCmd{}, "ledger")
	subcommands.Register(&importCmd{}, "ledger")
	subcommands.Register(&recalcCmd{}, "ledger")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
