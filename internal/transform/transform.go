// Package transform turns raw scraped transactions into canonical
// budgeting-tool rows: it applies the skip rules, picks the output date
// (with the installment-safe shift), splits signed amounts into outflow and
// inflow, and packs auxiliary metadata into a JSON memo.
package transform

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ysegal/budgetbridge/internal/csvcodec"
	"github.com/ysegal/budgetbridge/internal/dates"
	"github.com/ysegal/budgetbridge/internal/installment"
)

// Transaction statuses as reported by the scraping collaborator.
const (
	StatusCompleted = "completed"
	StatusPending   = "pending"
)

// TypeNormal is the default transaction type; it is omitted from memos.
const TypeNormal = "normal"

// Skip reasons surfaced in the skipped-transactions report.
const (
	SkipReasonPending    = "Pending"
	SkipReasonZeroAmount = "Zero amount"
)

// UnknownAccount is the grouping bucket for transactions without an
// account name.
const UnknownAccount = "unknown"

// RawTransaction is one record as handed over by the scraping collaborator.
// ChargedAmount is signed: negative for charges, positive for credits.
type RawTransaction struct {
	Date             string          `json:"date"`
	ProcessedDate    string          `json:"processedDate"`
	ChargedAmount    decimal.Decimal `json:"chargedAmount"`
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	Description      string          `json:"description"`
	Memo             string          `json:"memo"`
	Status           string          `json:"status"`
	Type             string          `json:"type"`
	Identifier       string          `json:"identifier"`
	Category         string          `json:"category"`
	AccountNumber    string          `json:"accountNumber"`
	AccountName      string          `json:"accountName"`
}

// Skipped records a transaction excluded from the output, with enough of
// the original for the audit trail.
type Skipped struct {
	Reason      string          `json:"reason"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
}

// memoPayload is the JSON object serialized into the Memo column. Field
// order here fixes the key order in the output, keeping exports diffable.
type memoPayload struct {
	TransactionDate  string `json:"transactionDate,omitempty"`
	ChargeDate       string `json:"chargeDate,omitempty"`
	Installment      string `json:"installment,omitempty"`
	OriginalAmount   string `json:"originalAmount,omitempty"`
	OriginalCurrency string `json:"originalCurrency,omitempty"`
	Ref              string `json:"ref,omitempty"`
	Account          string `json:"account,omitempty"`
	Source           string `json:"source,omitempty"`
	Type             string `json:"type,omitempty"`
	Category         string `json:"category,omitempty"`
	BankMemo         string `json:"bankMemo,omitempty"`
}

// SkipReason returns the reason a transaction must be excluded from the
// output, or "" when it should be kept. Only two conditions skip: a
// not-yet-settled status and an exactly zero charge amount.
func SkipReason(tx RawTransaction) string {
	if strings.EqualFold(strings.TrimSpace(tx.Status), StatusPending) {
		return SkipReasonPending
	}
	if tx.ChargedAmount.IsZero() {
		return SkipReasonZeroAmount
	}
	return ""
}

// BuildRow converts one kept transaction into a canonical output row. It
// fails only when no usable output date can be derived.
func BuildRow(tx RawTransaction) (csvcodec.Row, error) {
	date, err := outputDate(tx)
	if err != nil {
		return csvcodec.Row{}, fmt.Errorf("BuildRow: %w", err)
	}

	row := csvcodec.Row{
		Date:  date,
		Payee: strings.TrimSpace(tx.Description),
		Memo:  buildMemo(tx),
	}
	if tx.ChargedAmount.IsNegative() {
		row.Outflow = tx.ChargedAmount.Neg().StringFixed(2)
	} else {
		row.Inflow = tx.ChargedAmount.StringFixed(2)
	}
	return row, nil
}

// outputDate picks the date the budgeting tool should display. Installment
// charges use the shifted charge date so they do not collide with same-day
// transactions; everything else uses the transaction date, falling back to
// the charge date.
func outputDate(tx RawTransaction) (string, error) {
	if installment.Detect(tx.Description) != nil {
		charge, err := dates.Parse(tx.ProcessedDate)
		if err != nil {
			return "", fmt.Errorf("outputDate: installment charge date: %w", err)
		}
		return dates.Format(dates.InstallmentShift(charge)), nil
	}
	if d, err := dates.Parse(tx.Date); err == nil {
		return dates.Format(d), nil
	}
	d, err := dates.Parse(tx.ProcessedDate)
	if err != nil {
		return "", fmt.Errorf("outputDate: no usable date: %w", err)
	}
	return dates.Format(d), nil
}

// buildMemo serializes the auxiliary metadata into a JSON string. A
// transaction with nothing worth recording gets an empty memo, not "{}".
func buildMemo(tx RawTransaction) string {
	var p memoPayload

	chargeDate := ""
	if d, err := dates.Parse(tx.ProcessedDate); err == nil {
		chargeDate = dates.Format(d)
	}
	p.ChargeDate = chargeDate
	if chargeDate != "" {
		if d, err := dates.Parse(tx.Date); err == nil {
			if txDate := dates.Format(d); txDate != chargeDate {
				p.TransactionDate = txDate
			}
		}
	}
	if inst := installment.Detect(tx.Description); inst != nil {
		p.Installment = inst.String()
	}
	if !tx.OriginalAmount.IsZero() {
		p.OriginalAmount = tx.OriginalAmount.Abs().String()
		p.OriginalCurrency = tx.OriginalCurrency
	}
	p.Ref = strings.TrimSpace(tx.Identifier)
	p.Account = strings.TrimSpace(tx.AccountNumber)
	p.Source = strings.TrimSpace(tx.AccountName)
	if typ := strings.TrimSpace(tx.Type); typ != "" && !strings.EqualFold(typ, TypeNormal) {
		p.Type = typ
	}
	p.Category = strings.TrimSpace(tx.Category)
	p.BankMemo = strings.TrimSpace(tx.Memo)

	if p == (memoPayload{}) {
		return ""
	}
	encoded, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// BuildRows maps a scrape batch into output rows and the skipped list.
// Rows that cannot derive an output date are dropped; the result is sorted
// newest first, with input order preserved among equal dates.
func BuildRows(txs []RawTransaction) ([]csvcodec.Row, []Skipped) {
	rows := make([]csvcodec.Row, 0, len(txs))
	var skipped []Skipped

	for _, tx := range txs {
		if reason := SkipReason(tx); reason != "" {
			skipped = append(skipped, Skipped{
				Reason:      reason,
				Description: strings.TrimSpace(tx.Description),
				Amount:      tx.ChargedAmount,
				Date:        tx.Date,
			})
			continue
		}
		row, err := BuildRow(tx)
		if err != nil {
			continue
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date > rows[j].Date
	})
	return rows, skipped
}

// GroupByAccount splits a batch by account name for per-account exports.
// Transactions with no account name land in the "unknown" bucket.
func GroupByAccount(txs []RawTransaction) map[string][]RawTransaction {
	groups := make(map[string][]RawTransaction)
	for _, tx := range txs {
		key := strings.TrimSpace(tx.AccountName)
		if key == "" {
			key = UnknownAccount
		}
		groups[key] = append(groups[key], tx)
	}
	return groups
}

// Summary aggregates a set of output rows.
type Summary struct {
	Count        int
	TotalOutflow decimal.Decimal
	TotalInflow  decimal.Decimal
}

// Summarize totals the outflow and inflow columns of the given rows.
func Summarize(rows []csvcodec.Row) Summary {
	s := Summary{Count: len(rows)}
	for _, row := range rows {
		if row.Outflow != "" {
			if amt, err := decimal.NewFromString(row.Outflow); err == nil {
				s.TotalOutflow = s.TotalOutflow.Add(amt)
			}
		}
		if row.Inflow != "" {
			if amt, err := decimal.NewFromString(row.Inflow); err == nil {
				s.TotalInflow = s.TotalInflow.Add(amt)
			}
		}
	}
	return s
}
