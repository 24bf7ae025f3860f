// Package validate checks a parsed batch for structural consistency before
// it may be applied. Unlike the parser, which degrades per line, validation
// gates the whole batch: any error blocks the submission.
package validate

import (
	"fmt"

	"github.com/bahi-ledger/bahi/internal/models"
)

// Batch checks every entry and returns one human-readable message per
// failure. An empty slice means the batch is postable. Pure function, no I/O.
func Batch(entries []models.Entry) []string {
	var errs []string
	for i, e := range entries {
		for _, msg := range checkEntry(e) {
			errs = append(errs, fmt.Sprintf("entry %d (%s): %s", i+1, e.Kind(), msg))
		}
	}
	return errs
}

func checkEntry(e models.Entry) []string {
	var msgs []string

	if !e.Value().IsPositive() {
		msgs = append(msgs, fmt.Sprintf("amount must be positive, got %s", e.Value()))
	}
	if e.When().IsZero() {
		msgs = append(msgs, "date is missing")
	}

	switch v := e.(type) {
	case models.Sale:
		if !models.ValidPaymentMode(v.Mode) {
			msgs = append(msgs, fmt.Sprintf("unknown payment mode %q", v.Mode))
		}
		if v.Mode == models.ModeCredit && v.PartyName == "" {
			msgs = append(msgs, "credit sale requires a party name")
		}
	case models.Expense:
		if !models.ValidExpenseCategory(v.Category) {
			msgs = append(msgs, fmt.Sprintf("unknown expense category %q", v.Category))
		}
	case models.Bill:
		if v.PartyName == "" {
			msgs = append(msgs, "bill requires a party name")
		}
	case models.Payment:
		if v.PartyName == "" {
			msgs = append(msgs, "payment requires a party name")
		}
	}
	return msgs
}
