package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateTokenRe matches an inline date override: "(date: 13/12/24)" or
// "(13/12/24)". Four-digit years are accepted as typed.
var dateTokenRe = regexp.MustCompile(`\(\s*(?:date:\s*)?(\d{1,2})/(\d{1,2})/(\d{2}|\d{4})\s*\)`)

// extractDate finds an inline date token in line, returning the line with the
// token stripped and the date it resolves to. When no token is present the
// default date is returned unchanged.
func extractDate(line string, defaultDate time.Time) (string, time.Time, error) {
	m := dateTokenRe.FindStringSubmatchIndex(line)
	if m == nil {
		return line, defaultDate, nil
	}

	day, _ := strconv.Atoi(line[m[2]:m[3]])
	month, _ := strconv.Atoi(line[m[4]:m[5]])
	year, _ := strconv.Atoi(line[m[6]:m[7]])
	if year < 100 {
		year += 2000
	}

	if day < 1 || day > 31 {
		return line, time.Time{}, fmt.Errorf("invalid day %d in date token", day)
	}
	if month < 1 || month > 12 {
		return line, time.Time{}, fmt.Errorf("invalid month %d in date token", month)
	}

	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (31/2 -> 2 March); reject such dates.
	if d.Day() != day || d.Month() != time.Month(month) {
		return line, time.Time{}, fmt.Errorf("invalid calendar date %d/%d/%d", day, month, year)
	}

	stripped := strings.TrimSpace(line[:m[0]] + " " + line[m[1]:])
	return stripped, d, nil
}
