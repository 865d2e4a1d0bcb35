// Package dates parses the date formats that show up in Israeli bank and
// card exports and renders them as canonical YYYY-MM-DD calendar dates.
// All arithmetic happens on civil dates; timestamps with offsets keep their
// wall-clock date component and are never shifted across timezones.
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// dayMonthYear matches D/M/Y with 1-2 digit day/month, 2 or 4 digit year,
// and any of the separators seen across bank exports.
var dayMonthYear = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4}|\d{2})$`)

// Parse converts a date string into a civil date. Accepted inputs:
// RFC3339 timestamps, ISO-prefixed strings (YYYY-MM-DD with optional
// trailing time), and D/M/Y with "/", "-" or "." separators. Two-digit
// years of 70 and above fall in the 1900s, the rest in the 2000s.
func Parse(s string) (civil.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return civil.Date{}, fmt.Errorf("dates.Parse: empty input")
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return civil.DateOf(t), nil
	}

	if len(s) >= 10 {
		if d, err := civil.ParseDate(s[:10]); err == nil {
			return d, nil
		}
	}

	m := dayMonthYear.FindStringSubmatch(s)
	if m == nil {
		return civil.Date{}, fmt.Errorf("dates.Parse: unrecognized date %q", s)
	}

	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		if year >= 70 {
			year += 1900
		} else {
			year += 2000
		}
	}

	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}, fmt.Errorf("dates.Parse: invalid calendar date %q", s)
	}
	return d, nil
}

// Format renders a civil date as zero-padded YYYY-MM-DD.
func Format(d civil.Date) string {
	return d.String()
}

// FormatString parses any accepted date string and re-renders it as
// YYYY-MM-DD. Unlike Normalize it reports unparseable input as an error,
// for callers that cannot proceed without a concrete output date.
func FormatString(s string) (string, error) {
	d, err := Parse(s)
	if err != nil {
		return "", fmt.Errorf("dates.FormatString: %w", err)
	}
	return Format(d), nil
}

// Normalize re-renders a date string as YYYY-MM-DD, returning the input
// unchanged when it is not a recognizable date.
func Normalize(s string) string {
	d, err := Parse(s)
	if err != nil {
		return s
	}
	return Format(d)
}

// InstallmentShift derives the output date for an installment transaction
// from its charge date: one calendar month back, then one day forward, with
// standard calendar rollover. The offset is fixed; it does not depend on
// the installment's position or total. Its only job is to move installment
// charges off the card's statement date so the downstream budgeting tool
// does not flag them as duplicates of same-day transactions.
func InstallmentShift(charge civil.Date) civil.Date {
	t := time.Date(charge.Year, charge.Month, charge.Day, 0, 0, 0, 0, time.UTC)
	return civil.DateOf(t.AddDate(0, -1, 0).AddDate(0, 0, 1))
}

// DaysBetween returns the absolute number of days between two dates.
func DaysBetween(a, b civil.Date) int {
	n := a.DaysSince(b)
	if n < 0 {
		n = -n
	}
	return n
}
