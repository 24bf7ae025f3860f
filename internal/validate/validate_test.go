package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
)

var testDate = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

func TestBatch_CleanBatchPasses(t *testing.T) {
	entries := []models.Entry{
		models.Sale{Date: testDate, Amount: decimal.NewFromInt(23500), Mode: models.ModeCash},
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(73173), PartyName: "PendalKarigar"},
		models.Payment{Date: testDate, Amount: decimal.NewFromInt(5000), PartyName: "SAJ"},
		models.Expense{Date: testDate, Amount: decimal.NewFromInt(30493), Category: models.CategorySalary, StaffName: "Alok"},
	}
	if errs := Batch(entries); len(errs) != 0 {
		t.Errorf("expected clean batch, got %v", errs)
	}
}

func TestBatch_Failures(t *testing.T) {
	tests := []struct {
		name    string
		entry   models.Entry
		wantSub string
	}{
		{
			"zero amount",
			models.Bill{Date: testDate, PartyName: "SAJ"},
			"amount must be positive",
		},
		{
			"bill without party",
			models.Bill{Date: testDate, Amount: decimal.NewFromInt(100)},
			"bill requires a party name",
		},
		{
			"payment without party",
			models.Payment{Date: testDate, Amount: decimal.NewFromInt(100)},
			"payment requires a party name",
		},
		{
			"missing date",
			models.Bill{Amount: decimal.NewFromInt(100), PartyName: "SAJ"},
			"date is missing",
		},
		{
			"bad expense category",
			models.Expense{Date: testDate, Amount: decimal.NewFromInt(100), Category: "snacks"},
			"unknown expense category",
		},
		{
			"bad payment mode",
			models.Sale{Date: testDate, Amount: decimal.NewFromInt(100), Mode: "cheque"},
			"unknown payment mode",
		},
		{
			"credit sale without party",
			models.Sale{Date: testDate, Amount: decimal.NewFromInt(100), Mode: models.ModeCredit},
			"credit sale requires a party name",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Batch([]models.Entry{tt.entry})
			if len(errs) == 0 {
				t.Fatal("expected validation errors, got none")
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tt.wantSub) {
					found = true
				}
			}
			if !found {
				t.Errorf("errors %v missing %q", errs, tt.wantSub)
			}
		})
	}
}

func TestBatch_OneBadEntryBlocksWholeBatch(t *testing.T) {
	entries := []models.Entry{
		models.Sale{Date: testDate, Amount: decimal.NewFromInt(100), Mode: models.ModeCash},
		models.Bill{Date: testDate, Amount: decimal.NewFromInt(100)}, // no party
	}
	errs := Batch(entries)
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if !strings.Contains(errs[0], "entry 2") {
		t.Errorf("error should name the failing entry: %q", errs[0])
	}
}
