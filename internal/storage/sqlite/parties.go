package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
)

const partyColumns = "id, name, credit_limit, current_balance, created_at, updated_at"

func scanParty(row interface{ Scan(...any) error }) (*models.Party, error) {
	var p models.Party
	var limit, balance string
	if err := row.Scan(&p.ID, &p.Name, &limit, &balance, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.CreditLimit, err = parseMoney(limit); err != nil {
		return nil, err
	}
	if p.CurrentBalance, err = parseMoney(balance); err != nil {
		return nil, err
	}
	return &p, nil
}

// FindPartyByName looks a party up by case-insensitive exact name.
func (q *queries) FindPartyByName(ctx context.Context, name string) (*models.Party, error) {
	row := q.db.QueryRowContext(ctx,
		"SELECT "+partyColumns+" FROM parties WHERE name = ? COLLATE NOCASE",
		name,
	)
	p, err := scanParty(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find party %q: %w", name, err)
	}
	return p, nil
}

// ListParties returns all parties ordered by name.
func (q *queries) ListParties(ctx context.Context) ([]models.Party, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+partyColumns+" FROM parties ORDER BY name",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	defer rows.Close()

	var parties []models.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parties: %w", err)
	}
	return parties, nil
}

// CreateParty inserts a new party with zero balances.
func (q *queries) CreateParty(ctx context.Context, name string) (*models.Party, error) {
	now := time.Now().UnixNano()
	p := &models.Party{
		ID:             uuid.New().String(),
		Name:           name,
		CreditLimit:    decimal.Zero,
		CurrentBalance: decimal.Zero,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO parties (id, name, credit_limit, current_balance, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		p.ID, p.Name, p.CreditLimit.String(), p.CurrentBalance.String(), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert party %q: %w", name, err)
	}
	return p, nil
}

// UpdatePartyBalance rewrites a party's current balance.
func (q *queries) UpdatePartyBalance(ctx context.Context, partyID string, balance decimal.Decimal) error {
	res, err := q.db.ExecContext(ctx,
		"UPDATE parties SET current_balance = ?, updated_at = ? WHERE id = ?",
		balance.String(), time.Now().UnixNano(), partyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update party balance: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update party balance: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("party not found: %s", partyID)
	}
	return nil
}
