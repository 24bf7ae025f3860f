// Package ledger recomputes party balances from chronological order.
//
// The running balance on every bill and payment row, and the party's current
// balance, are derived values: they are a total function of the party's
// transaction set. Recalculate may therefore be re-run at any time (and is
// the repair path for damaged balances) — two consecutive runs with no
// intervening mutation produce identical output.
package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
)

// Books is the slice of the store the balance engine needs.
type Books interface {
	ListTransactionsForParty(ctx context.Context, partyID string) ([]models.Transaction, error)
	UpdateTransactionRunningBalance(ctx context.Context, id string, balance decimal.Decimal) error
	UpdatePartyBalance(ctx context.Context, partyID string, balance decimal.Decimal) error
}

// Replay folds the party-facing rows of txs in the order given, returning
// the running balance after each bill or payment. Rows of other types get no
// running balance and are skipped. Bills add, payments subtract.
func Replay(txs []models.Transaction) []decimal.Decimal {
	balances := make([]decimal.Decimal, 0, len(txs))
	acc := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.KindBill:
			acc = acc.Add(tx.Amount)
		case models.KindPayment:
			acc = acc.Sub(tx.Amount)
		default:
			continue
		}
		balances = append(balances, acc)
	}
	return balances
}

// Recalculate rewrites the running balance of every bill and payment posted
// against the party and persists the final accumulator as the party's
// current balance, which it returns. The store supplies rows in canonical
// order (date, then authoring time); the fold is a pure function of that
// ordered set.
func Recalculate(ctx context.Context, books Books, partyID string) (decimal.Decimal, error) {
	txs, err := books.ListTransactionsForParty(ctx, partyID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("recalculate %s: %w", partyID, err)
	}

	acc := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case models.KindBill:
			acc = acc.Add(tx.Amount)
		case models.KindPayment:
			acc = acc.Sub(tx.Amount)
		default:
			continue
		}
		if err := books.UpdateTransactionRunningBalance(ctx, tx.ID, acc); err != nil {
			return decimal.Zero, fmt.Errorf("recalculate %s: %w", partyID, err)
		}
	}

	if err := books.UpdatePartyBalance(ctx, partyID, acc); err != nil {
		return decimal.Zero, fmt.Errorf("recalculate %s: %w", partyID, err)
	}
	return acc, nil
}
