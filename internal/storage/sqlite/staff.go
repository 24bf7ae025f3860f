package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bahi-ledger/bahi/internal/models"
)

// FindStaffByName looks a staff member up by case-insensitive exact name.
func (q *queries) FindStaffByName(ctx context.Context, name string) (*models.Staff, error) {
	var s models.Staff
	err := q.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM staff WHERE name = ? COLLATE NOCASE",
		name,
	).Scan(&s.ID, &s.Name, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find staff %q: %w", name, err)
	}
	return &s, nil
}

// CreateStaff inserts a new staff member.
func (q *queries) CreateStaff(ctx context.Context, name string) (*models.Staff, error) {
	s := &models.Staff{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UnixNano(),
	}
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO staff (id, name, created_at) VALUES (?, ?, ?)",
		s.ID, s.Name, s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert staff %q: %w", name, err)
	}
	return s, nil
}
