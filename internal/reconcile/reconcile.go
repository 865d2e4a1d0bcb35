// Package reconcile matches two independently sourced transaction sets —
// typically a prior export against a fresh bank file — and reports exact
// matches, near matches that need human review, and the unmatched
// remainder on both sides.
package reconcile

import (
	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ysegal/budgetbridge/internal/dates"
	"github.com/ysegal/budgetbridge/internal/normalize"
)

// Options tunes the matcher. The defaults reproduce the standard behavior:
// amounts must agree within 0.01 and dates within 2 days.
type Options struct {
	AmountTolerance   decimal.Decimal
	DateToleranceDays int
}

// DefaultOptions returns the standard matching tolerances.
func DefaultOptions() Options {
	return Options{
		AmountTolerance:   decimal.New(1, -2),
		DateToleranceDays: 2,
	}
}

// Pair is one source transaction matched to one target transaction.
type Pair struct {
	Source normalize.Transaction
	Target normalize.Transaction
}

// FlaggedPair is a pair that matched on amount but differs in date by one
// or two days, so it needs review rather than being treated as exact.
type FlaggedPair struct {
	Pair
	DaysOff int
}

// Result partitions both inputs: every source transaction lands in exactly
// one of Matched, Flagged or MissingFromTarget, every target transaction in
// exactly one of Matched, Flagged or ExtraInTarget, and no target
// transaction is claimed by two pairs.
type Result struct {
	ReportID          string
	SourceCount       int
	TargetCount       int
	Matched           []Pair
	Flagged           []FlaggedPair
	MissingFromTarget []normalize.Transaction
	ExtraInTarget     []normalize.Transaction
}

// Match runs the greedy matcher: source transactions claim their best
// available target candidate in input order, so an earlier transaction can
// take a candidate a later one would have fit better. That is an accepted
// simplification, not a minimum-cost assignment.
func Match(source, target []normalize.Transaction, opts Options) Result {
	result := Result{
		ReportID:    uuid.NewString(),
		SourceCount: len(source),
		TargetCount: len(target),
	}

	type candidate struct {
		tx     normalize.Transaction
		date   civil.Date
		amount decimal.Decimal // absolute effective amount
		usable bool
	}

	pool := make([]candidate, len(target))
	claimed := make([]bool, len(target))
	for i, tx := range target {
		c := candidate{tx: tx, amount: tx.EffectiveAmount().Abs()}
		if d, err := dates.Parse(tx.EffectiveDate()); err == nil && !tx.EffectiveAmount().IsZero() {
			c.date = d
			c.usable = true
		}
		pool[i] = c
	}

	for _, src := range source {
		amount := src.EffectiveAmount()
		srcDate, err := dates.Parse(src.EffectiveDate())
		if err != nil || amount.IsZero() {
			result.MissingFromTarget = append(result.MissingFromTarget, src)
			continue
		}
		srcAbs := amount.Abs()

		best := -1
		bestDays := 0
		for i, c := range pool {
			if claimed[i] || !c.usable {
				continue
			}
			if c.amount.Sub(srcAbs).Abs().GreaterThan(opts.AmountTolerance) {
				continue
			}
			days := dates.DaysBetween(srcDate, c.date)
			if days > opts.DateToleranceDays {
				continue
			}
			if best == -1 || days < bestDays {
				best = i
				bestDays = days
			}
		}

		if best == -1 {
			result.MissingFromTarget = append(result.MissingFromTarget, src)
			continue
		}
		claimed[best] = true
		pair := Pair{Source: src, Target: pool[best].tx}
		if bestDays == 0 {
			result.Matched = append(result.Matched, pair)
		} else {
			result.Flagged = append(result.Flagged, FlaggedPair{Pair: pair, DaysOff: bestDays})
		}
	}

	for i, c := range pool {
		if !claimed[i] {
			result.ExtraInTarget = append(result.ExtraInTarget, c.tx)
		}
	}
	return result
}
