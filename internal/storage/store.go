// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
)

// MatchQuery describes the coordinates of a probable duplicate transaction.
type MatchQuery struct {
	PartyID    string
	Date       time.Time
	Kind       models.Kind
	Amount     decimal.Decimal
	BillNumber string
	// MatchBillNumber requires the stored bill number to equal BillNumber
	// (both empty also matches). When false the bill number is ignored.
	MatchBillNumber bool
	// CreatedAfter restricts the match to rows authored after this time.
	CreatedAfter time.Time
}

// Reader is the read-only view of the store. Reads mutate nothing, so they
// are safe outside a unit of work (preview and duplicate checks) as long as
// no apply is running concurrently.
type Reader interface {
	// FindPartyByName looks a party up by case-insensitive exact name.
	// Returns (nil, nil) when no party matches.
	FindPartyByName(ctx context.Context, name string) (*models.Party, error)

	// FindStaffByName looks a staff member up by case-insensitive exact
	// name. Returns (nil, nil) when nobody matches.
	FindStaffByName(ctx context.Context, name string) (*models.Staff, error)

	// ListTransactionsForParty returns every transaction posted against
	// the party ordered by (date, created_at, id) ascending — the
	// canonical event order for balance recalculation.
	ListTransactionsForParty(ctx context.Context, partyID string) ([]models.Transaction, error)

	// ListParties returns all parties ordered by name.
	ListParties(ctx context.Context) ([]models.Party, error)

	// FindMatching returns the oldest transaction matching q, or
	// (nil, nil) when none does.
	FindMatching(ctx context.Context, q MatchQuery) (*models.Transaction, error)
}

// UnitOfWork is the mutable view of the store inside one atomic unit.
// All writes either commit together or roll back together.
type UnitOfWork interface {
	Reader

	// CreateParty inserts a new party with zero balances and returns it.
	CreateParty(ctx context.Context, name string) (*models.Party, error)

	// CreateStaff inserts a new staff member and returns it.
	CreateStaff(ctx context.Context, name string) (*models.Staff, error)

	// InsertTransaction persists tx. The ID is populated when empty.
	InsertTransaction(ctx context.Context, tx *models.Transaction) error

	// UpdateTransactionRunningBalance rewrites one row's running balance.
	UpdateTransactionRunningBalance(ctx context.Context, id string, balance decimal.Decimal) error

	// UpdatePartyBalance rewrites a party's current balance.
	UpdatePartyBalance(ctx context.Context, partyID string, balance decimal.Decimal) error
}

// Store is the storage boundary required by the ingestion pipeline.
// This abstraction allows swapping storage backends without changing the
// service layer.
type Store interface {
	// RunInTx executes fn inside one atomic unit of work. Any error from
	// fn (or any panic) rolls the whole unit back; nil commits it.
	RunInTx(ctx context.Context, fn func(UnitOfWork) error) error

	// Reader returns a read-only view backed by the live store.
	Reader() Reader

	// Close releases any resources held by the store.
	Close() error
}
