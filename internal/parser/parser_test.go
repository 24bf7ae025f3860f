package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
)

var defaultDate = time.Date(2025, time.January, 20, 0, 0, 0, 0, time.UTC)

func mustEntry(t *testing.T, r Result) models.Entry {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("expected entry for %q, got error: %s", r.Line, r.Err.Reason)
	}
	return r.Entry
}

func amountEquals(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("amount = %s, want %s", got, want)
	}
}

func TestParse_CashSale(t *testing.T) {
	results := Parse("1. 23500", defaultDate)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	sale, ok := mustEntry(t, results[0]).(models.Sale)
	if !ok {
		t.Fatalf("expected Sale, got %T", results[0].Entry)
	}
	amountEquals(t, sale.Amount, "23500")
	if sale.Mode != models.ModeCash {
		t.Errorf("mode = %s, want cash", sale.Mode)
	}
	if !sale.Date.Equal(defaultDate) {
		t.Errorf("date = %s, want %s", sale.Date, defaultDate)
	}
}

func TestParse_DigitalSale(t *testing.T) {
	sale := mustEntry(t, Parse("7. 21506 net", defaultDate)[0]).(models.Sale)
	amountEquals(t, sale.Amount, "21506")
	if sale.Mode != models.ModeDigital {
		t.Errorf("mode = %s, want digital", sale.Mode)
	}
}

func TestParse_CreditSale(t *testing.T) {
	sale := mustEntry(t, Parse("20. 9300 (Maa)", defaultDate)[0]).(models.Sale)
	amountEquals(t, sale.Amount, "9300")
	if sale.Mode != models.ModeCredit {
		t.Errorf("mode = %s, want credit", sale.Mode)
	}
	if sale.PartyName != "Maa" {
		t.Errorf("party = %q, want Maa", sale.PartyName)
	}
}

func TestParse_StaffSalary(t *testing.T) {
	exp := mustEntry(t, Parse("Alok Sal 30493", defaultDate)[0]).(models.Expense)
	if exp.StaffName != "Alok" {
		t.Errorf("staff = %q, want Alok", exp.StaffName)
	}
	if exp.Category != models.CategorySalary {
		t.Errorf("category = %s, want salary", exp.Category)
	}
	amountEquals(t, exp.Amount, "30493")
}

func TestParse_StaffAdvance(t *testing.T) {
	exp := mustEntry(t, Parse("Ramesh adv 500", defaultDate)[0]).(models.Expense)
	if exp.Category != models.CategoryAdvance {
		t.Errorf("category = %s, want advance", exp.Category)
	}
	if exp.StaffName != "Ramesh" {
		t.Errorf("staff = %q, want Ramesh", exp.StaffName)
	}
}

func TestParse_PartyPayment(t *testing.T) {
	pay := mustEntry(t, Parse("SAJ 5000 party upi GST", defaultDate)[0]).(models.Payment)
	if pay.PartyName != "SAJ" {
		t.Errorf("party = %q, want SAJ", pay.PartyName)
	}
	amountEquals(t, pay.Amount, "5000")
	if pay.Description != "upi" {
		t.Errorf("description = %q, want upi (GST excluded)", pay.Description)
	}
	if !pay.HasGST {
		t.Error("expected HasGST")
	}
}

func TestParse_StandardExpense(t *testing.T) {
	tests := []struct {
		line     string
		category models.ExpenseCategory
		amount   string
		hasGST   bool
	}{
		{"Rent 12000", models.CategoryRent, "12000", false},
		{"Home 2500", models.CategoryHome, "2500", false},
		{"GP 4300 GST", models.CategoryGoodsPurchase, "4300", true},
		{"Poly 800", models.CategoryPoly, "800", false},
		{"Food 350", models.CategoryFood, "350", false},
		{"Repair 900", models.CategoryPetty, "900", false},
		{"Labour 1200", models.CategoryPetty, "1200", false},
		{"Transport 600", models.CategoryPetty, "600", false},
		{"Petty 100", models.CategoryPetty, "100", false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			exp := mustEntry(t, Parse(tt.line, defaultDate)[0]).(models.Expense)
			if exp.Category != tt.category {
				t.Errorf("category = %s, want %s", exp.Category, tt.category)
			}
			amountEquals(t, exp.Amount, tt.amount)
			if exp.HasGST != tt.hasGST {
				t.Errorf("hasGST = %v, want %v", exp.HasGST, tt.hasGST)
			}
		})
	}
}

func TestParse_StandardExpenseIsCaseSensitive(t *testing.T) {
	// "rent" is not in the vocabulary, so the line falls through to the
	// bill rule with "rent" as the party name.
	bill, ok := mustEntry(t, Parse("rent 12000", defaultDate)[0]).(models.Bill)
	if !ok {
		t.Fatal("expected lowercase 'rent' to classify as a bill")
	}
	if bill.PartyName != "rent" {
		t.Errorf("party = %q, want rent", bill.PartyName)
	}
}

func TestParse_BillFull(t *testing.T) {
	bill := mustEntry(t, Parse("PendalKarigar SV2029 73173 GR 302 GST", defaultDate)[0]).(models.Bill)
	if bill.PartyName != "PendalKarigar" {
		t.Errorf("party = %q, want PendalKarigar", bill.PartyName)
	}
	if bill.BillNumber != "SV2029" {
		t.Errorf("bill number = %q, want SV2029", bill.BillNumber)
	}
	amountEquals(t, bill.Amount, "73173")
	if bill.Description != "GR 302" {
		t.Errorf("description = %q, want %q", bill.Description, "GR 302")
	}
	if !bill.HasGST {
		t.Error("expected HasGST")
	}
}

func TestParse_BillWithInlineDate(t *testing.T) {
	bill := mustEntry(t, Parse("SAJ (date: 13/12/24) 33201", defaultDate)[0]).(models.Bill)
	want := time.Date(2024, time.December, 13, 0, 0, 0, 0, time.UTC)
	if !bill.Date.Equal(want) {
		t.Errorf("date = %s, want %s", bill.Date, want)
	}
	if bill.PartyName != "SAJ" {
		t.Errorf("party = %q, want SAJ", bill.PartyName)
	}
	amountEquals(t, bill.Amount, "33201")
	if bill.BillNumber != "" {
		t.Errorf("bill number = %q, want empty", bill.BillNumber)
	}
}

func TestParse_BillSkipsSlashTokens(t *testing.T) {
	// "12/3" must never be picked as the amount.
	bill := mustEntry(t, Parse("Sharma 12/3 4500", defaultDate)[0]).(models.Bill)
	amountEquals(t, bill.Amount, "4500")
	if bill.BillNumber != "12/3" {
		t.Errorf("bill number = %q, want 12/3", bill.BillNumber)
	}
}

func TestParse_BillParenthesesStripped(t *testing.T) {
	bill := mustEntry(t, Parse("Sharma (B-101) 4500", defaultDate)[0]).(models.Bill)
	if bill.BillNumber != "B-101" {
		t.Errorf("bill number = %q, want B-101", bill.BillNumber)
	}
}

func TestParse_KeywordWinsOverPartyName(t *testing.T) {
	// A party literally named "GP" loses to the standard-expense keyword.
	exp, ok := mustEntry(t, Parse("GP 9999", defaultDate)[0]).(models.Expense)
	if !ok {
		t.Fatal("expected the GP keyword to win over a bill interpretation")
	}
	if exp.Category != models.CategoryGoodsPurchase {
		t.Errorf("category = %s, want goods_purchase", exp.Category)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no amount", "JustSomeWords here"},
		{"single token", "Hello"},
		{"bad sale amount", "1. abc"},
		{"negative sale amount", "1. -500"},
		{"bad month", "SAJ (date: 13/13/24) 33201"},
		{"bad day", "SAJ (date: 32/12/24) 33201"},
		{"impossible date", "SAJ (date: 31/2/24) 33201"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := Parse(tt.line, defaultDate)
			if len(results) != 1 {
				t.Fatalf("expected 1 result, got %d", len(results))
			}
			if results[0].Err == nil {
				t.Fatalf("expected parse error, got entry %#v", results[0].Entry)
			}
		})
	}
}

func TestParse_OnePerLineInOrder(t *testing.T) {
	text := "1. 23500\n\n  \nAlok Sal 30493\nnot parseable\nSAJ 33201\n"
	results := Parse(text, defaultDate)
	if len(results) != 4 {
		t.Fatalf("expected 4 results for 4 non-blank lines, got %d", len(results))
	}

	if _, ok := results[0].Entry.(models.Sale); !ok {
		t.Errorf("result 0: expected Sale, got %#v", results[0])
	}
	if _, ok := results[1].Entry.(models.Expense); !ok {
		t.Errorf("result 1: expected Expense, got %#v", results[1])
	}
	if results[2].Err == nil {
		t.Errorf("result 2: expected parse error, got %#v", results[2].Entry)
	}
	if _, ok := results[3].Entry.(models.Bill); !ok {
		t.Errorf("result 3: expected Bill, got %#v", results[3])
	}

	for _, r := range results {
		if (r.Entry == nil) == (r.Err == nil) {
			t.Errorf("result for %q must carry exactly one of entry/error", r.Line)
		}
	}
}

func TestParse_DateTokenOverridesSingleLineOnly(t *testing.T) {
	text := "SAJ (13/12/24) 100\nSAJ 200"
	results := Parse(text, defaultDate)
	first := mustEntry(t, results[0]).(models.Bill)
	second := mustEntry(t, results[1]).(models.Bill)
	if first.Date.Equal(second.Date) {
		t.Error("inline date token must not leak into following lines")
	}
	if !second.Date.Equal(defaultDate) {
		t.Errorf("second date = %s, want default %s", second.Date, defaultDate)
	}
}

func TestParse_TwoDigitYearMapsTo2000s(t *testing.T) {
	bill := mustEntry(t, Parse("SAJ (1/1/09) 100", defaultDate)[0]).(models.Bill)
	if bill.Date.Year() != 2009 {
		t.Errorf("year = %d, want 2009", bill.Date.Year())
	}
}
