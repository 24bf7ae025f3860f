package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
	"github.com/bahi-ledger/bahi/internal/storage"
)

const txColumns = "id, party_id, staff_id, date, type, amount, running_balance, bill_number, has_gst, mode, category, description, created_at"

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanTransaction(row interface{ Scan(...any) error }) (*models.Transaction, error) {
	var t models.Transaction
	var partyID, staffID sql.NullString
	var date, amount, running string
	var hasGST int
	err := row.Scan(&t.ID, &partyID, &staffID, &date, &t.Type, &amount, &running,
		&t.BillNumber, &hasGST, &t.Mode, &t.Category, &t.Description, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.PartyID = partyID.String
	t.StaffID = staffID.String
	t.HasGST = hasGST != 0
	if t.Date, err = parseDate(date); err != nil {
		return nil, err
	}
	if t.Amount, err = parseMoney(amount); err != nil {
		return nil, err
	}
	if t.RunningBalance, err = parseMoney(running); err != nil {
		return nil, err
	}
	return &t, nil
}

// InsertTransaction persists tx, assigning ID and CreatedAt when unset.
func (q *queries) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.CreatedAt == 0 {
		tx.CreatedAt = time.Now().UnixNano()
	}

	hasGST := 0
	if tx.HasGST {
		hasGST = 1
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO transactions ("+txColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		tx.ID, nullable(tx.PartyID), nullable(tx.StaffID),
		tx.Date.Format(models.DateFormat), string(tx.Type),
		tx.Amount.String(), tx.RunningBalance.String(),
		tx.BillNumber, hasGST, string(tx.Mode), string(tx.Category),
		tx.Description, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// ListTransactionsForParty returns the party's transactions in canonical
// event order: date ascending, then authoring time, then id for determinism.
func (q *queries) ListTransactionsForParty(ctx context.Context, partyID string) ([]models.Transaction, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+txColumns+" FROM transactions WHERE party_id = ? ORDER BY date, created_at, id",
		partyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return txs, nil
}

// UpdateTransactionRunningBalance rewrites one row's running balance.
func (q *queries) UpdateTransactionRunningBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE transactions SET running_balance = ? WHERE id = ?",
		balance.String(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update running balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update running balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("transaction not found: %s", id)
	}
	return nil
}

// FindMatching returns the oldest transaction matching q, or (nil, nil).
func (q *queries) FindMatching(ctx context.Context, m storage.MatchQuery) (*models.Transaction, error) {
	query := "SELECT " + txColumns + " FROM transactions" +
		" WHERE party_id = ? AND date = ? AND type = ? AND amount = ? AND created_at >= ?"
	args := []any{
		m.PartyID, m.Date.Format(models.DateFormat), string(m.Kind),
		m.Amount.String(), m.CreatedAfter.UnixNano(),
	}
	if m.MatchBillNumber {
		query += " AND bill_number = ?"
		args = append(args, m.BillNumber)
	}
	query += " ORDER BY created_at LIMIT 1"

	t, err := scanTransaction(q.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match transaction: %w", err)
	}
	return t, nil
}
