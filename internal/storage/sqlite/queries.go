package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
	"github.com/bahi-ledger/bahi/internal/storage"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx, so the same query code
// serves the live reader and the unit of work.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queries implements storage.UnitOfWork (and therefore storage.Reader) over
// either a live connection or an open transaction.
type queries struct {
	db dbtx
}

var _ storage.UnitOfWork = (*queries)(nil)

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt stored amount %q: %w", s, err)
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(models.DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt stored date %q: %w", s, err)
	}
	return d, nil
}
