package dedup

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
	"github.com/bahi-ledger/bahi/internal/storage"
)

var testDate = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

// fakeReader serves canned parties and transactions and applies the same
// matching semantics as the SQLite store.
type fakeReader struct {
	parties []models.Party
	txs     []models.Transaction
}

func (f *fakeReader) FindPartyByName(_ context.Context, name string) (*models.Party, error) {
	for i := range f.parties {
		if strings.EqualFold(f.parties[i].Name, name) {
			return &f.parties[i], nil
		}
	}
	return nil, nil
}

func (f *fakeReader) FindStaffByName(context.Context, string) (*models.Staff, error) {
	return nil, nil
}

func (f *fakeReader) ListTransactionsForParty(context.Context, string) ([]models.Transaction, error) {
	return nil, nil
}

func (f *fakeReader) ListParties(context.Context) ([]models.Party, error) {
	return f.parties, nil
}

func (f *fakeReader) FindMatching(_ context.Context, q storage.MatchQuery) (*models.Transaction, error) {
	for i := range f.txs {
		tx := &f.txs[i]
		if tx.PartyID != q.PartyID || !tx.Date.Equal(q.Date) || tx.Type != q.Kind || !tx.Amount.Equal(q.Amount) {
			continue
		}
		if q.MatchBillNumber && tx.BillNumber != q.BillNumber {
			continue
		}
		if tx.CreatedAt < q.CreatedAfter.UnixNano() {
			continue
		}
		return tx, nil
	}
	return nil, nil
}

func newDetector(store storage.Reader, now time.Time) *Detector {
	d := New(store, 24*time.Hour)
	d.now = func() time.Time { return now }
	return d
}

func postedBill(party string, amount int64, billNo string, created time.Time) models.Transaction {
	return models.Transaction{
		ID: "existing", PartyID: party, Type: models.KindBill,
		Amount: decimal.NewFromInt(amount), Date: testDate,
		BillNumber: billNo, CreatedAt: created.UnixNano(),
	}
}

func TestCheck_FlagsRecentResubmission(t *testing.T) {
	now := time.Date(2025, time.January, 20, 18, 0, 0, 0, time.UTC)
	store := &fakeReader{
		parties: []models.Party{{ID: "p1", Name: "SAJ"}},
		txs:     []models.Transaction{postedBill("p1", 33201, "", now.Add(-time.Hour))},
	}
	d := newDetector(store, now)

	warnings, err := d.Check(context.Background(), []models.Entry{
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(33201), PartyName: "SAJ"},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Index != 0 || warnings[0].Existing.ID != "existing" {
		t.Errorf("unexpected warning: %+v", warnings[0])
	}
}

func TestCheck_OldPostingOutsideWindowNotFlagged(t *testing.T) {
	now := time.Date(2025, time.January, 20, 18, 0, 0, 0, time.UTC)
	store := &fakeReader{
		parties: []models.Party{{ID: "p1", Name: "SAJ"}},
		txs:     []models.Transaction{postedBill("p1", 33201, "", now.Add(-25*time.Hour))},
	}
	d := newDetector(store, now)

	warnings, err := d.Check(context.Background(), []models.Entry{
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(33201), PartyName: "SAJ"},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("legitimate repeat outside the window must not be flagged, got %+v", warnings)
	}
}

func TestCheck_UnresolvablePartyNeverFlagged(t *testing.T) {
	now := time.Now()
	store := &fakeReader{}
	d := newDetector(store, now)

	warnings, err := d.Check(context.Background(), []models.Entry{
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(100), PartyName: "Nobody"},
		models.Sale{Date: testDate, Amount: decimal.NewFromInt(100), Mode: models.ModeCash},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", warnings)
	}
}

func TestCheck_BillNumberMustMatch(t *testing.T) {
	now := time.Date(2025, time.January, 20, 18, 0, 0, 0, time.UTC)
	store := &fakeReader{
		parties: []models.Party{{ID: "p1", Name: "PendalKarigar"}},
		txs:     []models.Transaction{postedBill("p1", 73173, "SV2029", now.Add(-time.Hour))},
	}
	d := newDetector(store, now)

	// Different bill number: not a duplicate.
	warnings, err := d.Check(context.Background(), []models.Entry{
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(73173), PartyName: "PendalKarigar", BillNumber: "SV2030"},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("different bill number must not collide, got %+v", warnings)
	}

	// Same bill number: duplicate.
	warnings, err = d.Check(context.Background(), []models.Entry{
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(73173), PartyName: "PendalKarigar", BillNumber: "SV2029"},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("matching bill number must collide, got %+v", warnings)
	}
}

func TestCheck_PaymentIgnoresBillNumber(t *testing.T) {
	now := time.Date(2025, time.January, 20, 18, 0, 0, 0, time.UTC)
	store := &fakeReader{
		parties: []models.Party{{ID: "p1", Name: "SAJ"}},
		txs: []models.Transaction{{
			ID: "existing", PartyID: "p1", Type: models.KindPayment,
			Amount: decimal.NewFromInt(5000), Date: testDate,
			BillNumber: "irrelevant", CreatedAt: now.Add(-time.Hour).UnixNano(),
		}},
	}
	d := newDetector(store, now)

	warnings, err := d.Check(context.Background(), []models.Entry{
		models.Payment{Date: testDate, Amount: decimal.NewFromInt(5000), PartyName: "SAJ"},
	})
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("payment duplicate must ignore bill numbers, got %+v", warnings)
	}
}
