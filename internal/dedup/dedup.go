// Package dedup flags probable re-submissions of the same economic event.
//
// The same bill amount on the same date can be a legitimate repeat when it
// was posted weeks ago, but is almost certainly an accidental double
// submission when it was authored minutes ago. The detector therefore only
// matches transactions authored within a trailing window, and it is shared
// by two policies: the interactive path surfaces warnings for an operator
// decision, the bulk-import path skips flagged entries silently (logged).
package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/bahi-ledger/bahi/internal/models"
	"github.com/bahi-ledger/bahi/internal/storage"
)

// DefaultWindow is the trailing authoring window when none is configured.
const DefaultWindow = 24 * time.Hour

// Warning flags one entry as a probable duplicate of an existing transaction.
type Warning struct {
	// Index is the entry's position in the checked batch.
	Index int

	Entry    models.Entry
	Existing *models.Transaction
	Reason   string
}

// Detector checks entries against already-posted transactions.
type Detector struct {
	store  storage.Reader
	window time.Duration
	now    func() time.Time // injectable for tests
}

// New creates a Detector over the given read view. A non-positive window
// falls back to DefaultWindow.
func New(store storage.Reader, window time.Duration) *Detector {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Detector{store: store, window: window, now: time.Now}
}

// IsDuplicate reports whether an entry with the given coordinates collides
// with a transaction authored within the trailing window. billNumber is
// consulted for bills only: the stored value must equal it (both empty also
// matches).
func (d *Detector) IsDuplicate(ctx context.Context, partyID string, e models.Entry) (*models.Transaction, error) {
	q := storage.MatchQuery{
		PartyID:      partyID,
		Date:         e.When(),
		Kind:         e.Kind(),
		Amount:       e.Value(),
		CreatedAfter: d.now().Add(-d.window),
	}
	if bill, ok := e.(models.Bill); ok {
		q.BillNumber = bill.BillNumber
		q.MatchBillNumber = true
	}

	existing, err := d.store.FindMatching(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	return existing, nil
}

// Check returns one warning per entry in the batch that collides with an
// existing transaction. Entries whose party name does not resolve to a
// stored party are never flagged, and entries without a party name are
// skipped outright.
func (d *Detector) Check(ctx context.Context, entries []models.Entry) ([]Warning, error) {
	var warnings []Warning
	for i, e := range entries {
		name := e.Party()
		if name == "" {
			continue
		}
		party, err := d.store.FindPartyByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if party == nil {
			continue // unknown party cannot have posted transactions
		}

		existing, err := d.IsDuplicate(ctx, party.ID, e)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			warnings = append(warnings, Warning{
				Index:    i,
				Entry:    e,
				Existing: existing,
				Reason: fmt.Sprintf("%s of %s for %s on %s already posted at %s",
					e.Kind(), e.Value(), name,
					e.When().Format(models.DateFormat),
					existing.Created().Format(time.RFC3339)),
			})
		}
	}
	return warnings, nil
}
