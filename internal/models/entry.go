package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies the type of a parsed entry.
type Kind string

// Entry kinds.
const (
	KindSale    Kind = "sale"
	KindExpense Kind = "expense"
	KindBill    Kind = "bill"
	KindPayment Kind = "payment"
)

// PaymentMode is how a sale was settled.
type PaymentMode string

// Payment modes for sales.
const (
	ModeCash    PaymentMode = "cash"
	ModeDigital PaymentMode = "digital"
	ModeCredit  PaymentMode = "credit"
)

// ExpenseCategory is the closed set of expense buckets.
type ExpenseCategory string

// Expense categories.
const (
	CategoryGoodsPurchase ExpenseCategory = "goods_purchase"
	CategorySalary        ExpenseCategory = "salary"
	CategoryAdvance       ExpenseCategory = "advance"
	CategoryHome          ExpenseCategory = "home"
	CategoryRent          ExpenseCategory = "rent"
	CategoryPartyPayment  ExpenseCategory = "party_payment"
	CategoryPetty         ExpenseCategory = "petty"
	CategoryPoly          ExpenseCategory = "poly"
	CategoryFood          ExpenseCategory = "food"
)

// ValidExpenseCategory reports whether c is a member of the closed category set.
func ValidExpenseCategory(c ExpenseCategory) bool {
	switch c {
	case CategoryGoodsPurchase, CategorySalary, CategoryAdvance, CategoryHome,
		CategoryRent, CategoryPartyPayment, CategoryPetty, CategoryPoly, CategoryFood:
		return true
	}
	return false
}

// ValidPaymentMode reports whether m is a member of the closed mode set.
func ValidPaymentMode(m PaymentMode) bool {
	switch m {
	case ModeCash, ModeDigital, ModeCredit:
		return true
	}
	return false
}

// Entry is a typed transaction candidate produced by the parser.
// The set of implementations is closed: Sale, Expense, Bill, Payment.
type Entry interface {
	Kind() Kind              // Kind returns the entry's type tag.
	When() time.Time         // When returns the entry's calendar date.
	Value() decimal.Decimal  // Value returns the entry's amount.
	Party() string           // Party returns the free-text party name, if any.

	entry() // sealed
}

// Sale is a daily counter sale. It names a party only when sold on credit.
type Sale struct {
	Date      time.Time
	Amount    decimal.Decimal
	Mode      PaymentMode
	PartyName string // set only for Mode == ModeCredit
}

func (s Sale) Kind() Kind             { return KindSale }
func (s Sale) When() time.Time        { return s.Date }
func (s Sale) Value() decimal.Decimal { return s.Amount }
func (s Sale) Party() string          { return s.PartyName }
func (Sale) entry()                   {}

// Expense is a standalone outgoing amount, optionally tied to a staff member
// for salary and advance payouts.
type Expense struct {
	Date        time.Time
	Amount      decimal.Decimal
	Category    ExpenseCategory
	StaffName   string
	Description string
	HasGST      bool
}

func (e Expense) Kind() Kind             { return KindExpense }
func (e Expense) When() time.Time        { return e.Date }
func (e Expense) Value() decimal.Decimal { return e.Amount }
func (Expense) Party() string            { return "" }
func (Expense) entry()                   {}

// Bill is a party-facing debit: the party owes more after it posts.
type Bill struct {
	Date        time.Time
	Amount      decimal.Decimal
	PartyName   string
	BillNumber  string
	Description string
	HasGST      bool
}

func (b Bill) Kind() Kind             { return KindBill }
func (b Bill) When() time.Time        { return b.Date }
func (b Bill) Value() decimal.Decimal { return b.Amount }
func (b Bill) Party() string          { return b.PartyName }
func (Bill) entry()                   {}

// Payment is a party-facing credit: the party owes less after it posts.
type Payment struct {
	Date        time.Time
	Amount      decimal.Decimal
	PartyName   string
	Description string
	HasGST      bool
}

func (p Payment) Kind() Kind             { return KindPayment }
func (p Payment) When() time.Time        { return p.Date }
func (p Payment) Value() decimal.Decimal { return p.Amount }
func (p Payment) Party() string          { return p.PartyName }
func (Payment) entry()                   {}

// ParseError describes a single input line that could not be classified.
type ParseError struct {
	RawLine string
	Reason  string
}

func (e ParseError) Error() string {
	return e.Reason + ": " + e.RawLine
}
