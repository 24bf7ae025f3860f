package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical textual form for transaction dates.
const DateFormat = "2006-01-02"

// Transaction is a durable posted entry. Bills and payments reference a
// party; salary and advance expenses reference a staff member; cash and
// digital sales and other expenses are standalone.
type Transaction struct {
	// ID is the unique identifier for the transaction (UUID format).
	ID string

	// PartyID is set for bills, payments and credit sales.
	PartyID string

	// StaffID is set for salary and advance expenses.
	StaffID string

	// Date is the calendar date the entry was recorded for.
	Date time.Time

	// Type is the entry kind this row was posted from.
	Type Kind

	// Amount is always positive; Type determines its sign in balances.
	Amount decimal.Decimal

	// RunningBalance is the party balance immediately after this row in
	// chronological order. Meaningful only for bills and payments;
	// rewritten exclusively by the balance engine.
	RunningBalance decimal.Decimal

	// BillNumber is the free-text bill reference, if any.
	BillNumber string

	// HasGST marks the amount as already including the fixed-rate tax.
	HasGST bool

	// Mode is set for sales.
	Mode PaymentMode

	// Category is set for expenses.
	Category ExpenseCategory

	// Description is free text (e.g. "GR 302" goods-receipt references).
	Description string

	// CreatedAt is a Unix timestamp in nanoseconds. It is the tie-breaker
	// for same-date ordering, so it must be assigned in posting order.
	CreatedAt int64
}

// Created returns the authoring time of the transaction.
func (t Transaction) Created() time.Time {
	return time.Unix(0, t.CreatedAt)
}
