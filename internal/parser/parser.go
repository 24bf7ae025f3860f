// Package parser turns free-form ledger shorthand into typed entries.
//
// Operators type lines like "1. 23500", "Alok Sal 30493" or
// "PendalKarigar SV2029 73173 GR 302 GST". Classification is heuristic and
// priority-ordered: a trailing "." on the first token marks a sale, the
// keywords "sal"/"adv"/"party" mark staff and party entries, a closed
// vocabulary of expense words marks standard expenses, and anything else
// with a numeric token falls through to a bill. Operator muscle-memory
// depends on this exact rule order, so new rules must only be appended.
package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/models"
)

// Result is the outcome of classifying a single non-blank input line.
// Exactly one of Entry and Err is set.
type Result struct {
	Line  string
	Entry models.Entry
	Err   *models.ParseError
}

// saleMarkerRe matches the leading serial token of a counter sale ("1.", "20.").
var saleMarkerRe = regexp.MustCompile(`^\d+\.$`)

// standardExpenses is the fixed, case-sensitive vocabulary of expense words
// and their category mapping. Words without a dedicated category book to petty.
var standardExpenses = map[string]models.ExpenseCategory{
	"Home":      models.CategoryHome,
	"Rent":      models.CategoryRent,
	"Petty":     models.CategoryPetty,
	"Food":      models.CategoryFood,
	"Poly":      models.CategoryPoly,
	"GP":        models.CategoryGoodsPurchase,
	"Repair":    models.CategoryPetty,
	"Labour":    models.CategoryPetty,
	"Transport": models.CategoryPetty,
}

// Parse classifies every non-blank line of text against defaultDate.
// It returns exactly one Result per non-blank line, in input order.
// Failures are per-line: a malformed line yields a Result carrying a
// ParseError and never aborts the batch.
func Parse(text string, defaultDate time.Time) []Result {
	var results []Result
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		results = append(results, parseLine(line, defaultDate))
	}
	return results
}

func parseLine(line string, defaultDate time.Time) Result {
	stripped, date, err := extractDate(line, defaultDate)
	if err != nil {
		return fail(line, err.Error())
	}

	tokens := strings.Fields(stripped)
	if len(tokens) == 0 {
		return fail(line, "Unrecognized entry format")
	}

	switch {
	case saleMarkerRe.MatchString(tokens[0]):
		return parseSale(line, tokens, date)

	case len(tokens) > 2 && isStaffKeyword(tokens[1]):
		return parseStaffExpense(line, tokens, date)

	case len(tokens) >= 3 && strings.EqualFold(tokens[2], "party"):
		return parsePartyPayment(line, tokens, date)

	case len(tokens) >= 2 && isStandardExpense(tokens[0]):
		return parseStandardExpense(line, tokens, date)

	case amountIndex(tokens) > 0:
		return parseBill(line, tokens, date)

	default:
		return parseRandomExpense(line, tokens, date)
	}
}

// parseSale handles rule (a): "1. 23500", "7. 21506 net", "20. 9300 (Maa)".
func parseSale(line string, tokens []string, date time.Time) Result {
	if len(tokens) < 2 {
		return fail(line, "Unrecognized entry format")
	}
	amount, err := parseAmount(tokens[1])
	if err != nil {
		return fail(line, err.Error())
	}

	sale := models.Sale{Date: date, Amount: amount, Mode: models.ModeCash}
	if len(tokens) > 2 {
		if strings.EqualFold(tokens[2], "net") {
			sale.Mode = models.ModeDigital
		} else {
			sale.Mode = models.ModeCredit
			sale.PartyName = stripParens(strings.Join(tokens[2:], " "))
		}
	}
	return ok(line, sale)
}

// parseStaffExpense handles rule (b): "Alok Sal 30493", "Ramesh adv 500".
func parseStaffExpense(line string, tokens []string, date time.Time) Result {
	amount, err := parseAmount(tokens[2])
	if err != nil {
		return fail(line, err.Error())
	}
	category := models.CategorySalary
	if strings.EqualFold(tokens[1], "adv") {
		category = models.CategoryAdvance
	}
	return ok(line, models.Expense{
		Date:      date,
		Amount:    amount,
		Category:  category,
		StaffName: tokens[0],
	})
}

// parsePartyPayment handles rule (c): "SAJ 5000 party", "SAJ 5000 party upi GST".
func parsePartyPayment(line string, tokens []string, date time.Time) Result {
	amount, err := parseAmount(tokens[1])
	if err != nil {
		return fail(line, err.Error())
	}

	var desc []string
	for _, tok := range tokens[3:] {
		if !isGST(tok) {
			desc = append(desc, tok)
		}
	}
	return ok(line, models.Payment{
		Date:        date,
		Amount:      amount,
		PartyName:   tokens[0],
		Description: strings.Join(desc, " "),
		HasGST:      hasGSTToken(tokens),
	})
}

// parseStandardExpense handles rule (d): "Rent 12000", "GP 4300 GST".
func parseStandardExpense(line string, tokens []string, date time.Time) Result {
	amount, err := parseAmount(tokens[1])
	if err != nil {
		return fail(line, err.Error())
	}
	return ok(line, models.Expense{
		Date:     date,
		Amount:   amount,
		Category: standardExpenses[tokens[0]],
		HasGST:   hasGSTToken(tokens),
	})
}

// parseBill handles rule (e): "PendalKarigar SV2029 73173 GR 302 GST".
// Token 0 is the party; the first plain-decimal token after it is the
// amount; intermediate tokens form the bill number; trailing tokens are
// scanned for a "GR <value>" pair and a bare GST marker.
func parseBill(line string, tokens []string, date time.Time) Result {
	idx := amountIndex(tokens)
	amount, err := parseAmount(tokens[idx])
	if err != nil {
		return fail(line, err.Error())
	}

	var billNo []string
	for _, tok := range tokens[1:idx] {
		billNo = append(billNo, stripParens(tok))
	}

	bill := models.Bill{
		Date:       date,
		Amount:     amount,
		PartyName:  tokens[0],
		BillNumber: strings.Join(billNo, " "),
	}
	for i := idx + 1; i < len(tokens); i++ {
		switch {
		case strings.EqualFold(tokens[i], "gr") && i+1 < len(tokens):
			bill.Description = "GR " + tokens[i+1]
			i++
		case isGST(tokens[i]):
			bill.HasGST = true
		}
	}
	return ok(line, bill)
}

// parseRandomExpense handles rule (f), the last resort: "Chai 150 GST".
func parseRandomExpense(line string, tokens []string, date time.Time) Result {
	if len(tokens) < 2 {
		return fail(line, "Unrecognized entry format")
	}
	amount, err := parseAmount(tokens[1])
	if err != nil {
		return fail(line, "Unrecognized entry format")
	}
	return ok(line, models.Expense{
		Date:        date,
		Amount:      amount,
		Category:    models.CategoryPetty,
		Description: tokens[0],
		HasGST:      hasGSTToken(tokens),
	})
}

// parseAmount parses tok as a positive decimal amount.
func parseAmount(tok string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", tok)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount must be positive, got %q", tok)
	}
	return d, nil
}

// amountIndex returns the index of the first token after position 0 that
// parses as a plain decimal (tokens containing '/' are never amounts),
// or -1 when none qualifies.
func amountIndex(tokens []string) int {
	for i := 1; i < len(tokens); i++ {
		if strings.Contains(tokens[i], "/") {
			continue
		}
		if _, err := decimal.NewFromString(tokens[i]); err == nil {
			return i
		}
	}
	return -1
}

func isStaffKeyword(tok string) bool {
	return strings.EqualFold(tok, "sal") || strings.EqualFold(tok, "adv")
}

func isStandardExpense(tok string) bool {
	_, ok := standardExpenses[tok]
	return ok
}

func isGST(tok string) bool { return strings.EqualFold(tok, "gst") }

func hasGSTToken(tokens []string) bool {
	for _, tok := range tokens {
		if isGST(tok) {
			return true
		}
	}
	return false
}

func stripParens(s string) string {
	s = strings.TrimPrefix(s, "(")
	return strings.TrimSuffix(s, ")")
}

func ok(line string, e models.Entry) Result {
	return Result{Line: line, Entry: e}
}

func fail(line, reason string) Result {
	return Result{Line: line, Err: &models.ParseError{RawLine: line, Reason: reason}}
}
