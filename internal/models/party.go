package models

import "github.com/shopspring/decimal"

// Party is a vendor or customer tracked with a running credit/debit balance.
// Parties are created lazily the first time an accepted entry names them.
type Party struct {
	// ID is the unique identifier for the party (UUID format).
	ID string

	// Name is the display name. Unique, matched case-insensitively.
	Name string

	// CreditLimit is the advisory exposure limit for this party.
	// Zero means no limit is set.
	CreditLimit decimal.Decimal

	// CurrentBalance is the signed balance after the latest recalculation.
	// Positive means the party owes the business.
	CurrentBalance decimal.Decimal

	// CreatedAt and UpdatedAt are Unix timestamps in nanoseconds.
	CreatedAt int64
	UpdatedAt int64
}

// Staff is an employee receiving salary or advance payouts.
type Staff struct {
	// ID is the unique identifier for the staff member (UUID format).
	ID string

	// Name is the display name. Unique, matched case-insensitively.
	Name string

	// CreatedAt is a Unix timestamp in nanoseconds.
	CreatedAt int64
}
