// Package normalize maps heterogeneous source rows — Hebrew bank exports,
// scraper records, prior canonical exports — onto one canonical transaction
// shape with typed dates and amounts.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ysegal/budgetbridge/internal/dates"
)

// Transaction is the canonical shape every recognized source row normalizes
// into. Dates are ISO YYYY-MM-DD or empty; Outflow and Inflow are
// non-negative and at most one of them is non-zero.
type Transaction struct {
	TransactionDate string
	ChargeDate      string
	Payee           string
	Outflow         decimal.Decimal
	Inflow          decimal.Decimal
	OriginalAmount  *decimal.Decimal
	Notes           string
	Source          string
}

// EffectiveDate is the single date used for comparisons: the charge date
// when present, otherwise the transaction date.
func (t Transaction) EffectiveDate() string {
	if t.ChargeDate != "" {
		return t.ChargeDate
	}
	return t.TransactionDate
}

// EffectiveAmount is the signed summary amount: negative for outflows,
// positive for inflows, zero when neither side is set.
func (t Transaction) EffectiveAmount() decimal.Decimal {
	if t.Outflow.IsPositive() {
		return t.Outflow.Neg()
	}
	if t.Inflow.IsPositive() {
		return t.Inflow
	}
	return decimal.Zero
}

// amountCleaner drops currency symbols, thousands separators and spaces
// before decimal parsing.
var amountCleaner = strings.NewReplacer("₪", "", "$", "", "€", "", ",", "", " ", "", " ", "")

// Amount parses an amount string, tolerating currency symbols, thousands
// separators and stray whitespace. Anything unparseable is zero, never an
// error.
func Amount(s string) decimal.Decimal {
	cleaned := amountCleaner.Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Date re-renders a date string as YYYY-MM-DD, returning the input
// unchanged when it is not a recognizable date.
func Date(s string) string {
	return dates.Normalize(s)
}

// Row normalizes one source row given its column names and values in
// source order. Unrecognized columns and empty values are skipped. Merge
// policy per field: dates and payee/source are first-non-empty-wins,
// amounts fold negatives into the opposite bucket, notes concatenate.
func Row(columns, values []string) Transaction {
	var t Transaction
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		value := strings.TrimSpace(values[i])
		if value == "" {
			continue
		}
		field, ok := ColumnField(col)
		if !ok {
			continue
		}
		applyField(&t, field, value)
	}
	return t
}

func applyField(t *Transaction, field Field, value string) {
	switch field {
	case FieldTransactionDate:
		if t.TransactionDate == "" {
			if d, err := dates.Parse(value); err == nil {
				t.TransactionDate = dates.Format(d)
			}
		}
	case FieldChargeDate:
		if t.ChargeDate == "" {
			if d, err := dates.Parse(value); err == nil {
				t.ChargeDate = dates.Format(d)
			}
		}
	case FieldOutflow:
		amt := Amount(value)
		if amt.IsNegative() {
			t.Outflow = amt.Abs()
		} else if amt.IsPositive() && t.Outflow.IsZero() {
			t.Outflow = amt
		}
	case FieldInflow:
		amt := Amount(value)
		if amt.IsPositive() && t.Inflow.IsZero() {
			t.Inflow = amt
		} else if amt.IsNegative() && t.Inflow.IsZero() {
			t.Inflow = amt.Abs()
		}
	case FieldOriginalAmount:
		if t.OriginalAmount == nil {
			if amt := Amount(value); !amt.IsZero() {
				abs := amt.Abs()
				t.OriginalAmount = &abs
			}
		}
	case FieldPayee:
		if t.Payee == "" {
			t.Payee = value
		}
	case FieldNotes:
		if t.Notes == "" {
			t.Notes = value
		} else {
			t.Notes = t.Notes + " | " + value
		}
	case FieldSource:
		if t.Source == "" {
			t.Source = value
		}
	}
}

// FromRows normalizes a batch of rows and keeps only those usable for
// reconciliation: a recognized date on either date field and a non-zero
// outflow or inflow.
func FromRows(columns []string, rows [][]string) []Transaction {
	kept := make([]Transaction, 0, len(rows))
	for _, values := range rows {
		t := Row(columns, values)
		if t.EffectiveDate() == "" {
			continue
		}
		if t.Outflow.IsZero() && t.Inflow.IsZero() {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
