// Package metrics holds the Prometheus instrumentation for the ingestion
// pipeline. Counters only; exposition is left to whatever embeds the tool.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LinesParsed counts successfully classified lines by entry kind.
	LinesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bahi",
		Name:      "lines_parsed_total",
		Help:      "Shorthand lines successfully classified, by entry kind.",
	}, []string{"kind"})

	// ParseErrors counts lines that could not be classified.
	ParseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bahi",
		Name:      "parse_errors_total",
		Help:      "Shorthand lines rejected by the parser.",
	})

	// BatchesApplied counts committed apply operations.
	BatchesApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bahi",
		Name:      "batches_applied_total",
		Help:      "Bulk batches committed.",
	})

	// BatchesRolledBack counts apply operations that failed and rolled back.
	BatchesRolledBack = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bahi",
		Name:      "batches_rolled_back_total",
		Help:      "Bulk batches rolled back after a store failure.",
	})

	// TransactionsPosted counts durable transactions inserted.
	TransactionsPosted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bahi",
		Name:      "transactions_posted_total",
		Help:      "Transactions inserted by apply operations.",
	})

	// DuplicatesSkipped counts entries dropped by the duplicate detector.
	DuplicatesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bahi",
		Name:      "duplicates_skipped_total",
		Help:      "Entries skipped as probable duplicates.",
	})
)
