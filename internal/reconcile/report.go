package reconcile

import (
	"fmt"
	"strings"

	"github.com/ysegal/budgetbridge/internal/normalize"
)

// Render formats the result as a human-readable report with sections for
// flagged matches, transactions missing from the target, extras in the
// target, and summary counts.
func (r Result) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Reconciliation report %s\n", r.ReportID)
	fmt.Fprintf(&b, "Source: %d transactions, target: %d transactions\n", r.SourceCount, r.TargetCount)
	b.WriteString("\n")

	if len(r.Flagged) > 0 {
		fmt.Fprintf(&b, "Flagged matches (%d):\n", len(r.Flagged))
		for _, f := range r.Flagged {
			fmt.Fprintf(&b, "  %s ~ %s (%d day(s) apart): %s\n",
				f.Source.EffectiveDate(), f.Target.EffectiveDate(), f.DaysOff, describe(f.Source))
		}
		b.WriteString("\n")
	}

	if len(r.MissingFromTarget) > 0 {
		fmt.Fprintf(&b, "Missing from target (%d):\n", len(r.MissingFromTarget))
		for _, tx := range r.MissingFromTarget {
			fmt.Fprintf(&b, "  %s\n", describe(tx))
		}
		b.WriteString("\n")
	}

	if len(r.ExtraInTarget) > 0 {
		fmt.Fprintf(&b, "Extra in target (%d):\n", len(r.ExtraInTarget))
		for _, tx := range r.ExtraInTarget {
			fmt.Fprintf(&b, "  %s\n", describe(tx))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Summary: %d exact, %d flagged, %d missing, %d extra\n",
		len(r.Matched), len(r.Flagged), len(r.MissingFromTarget), len(r.ExtraInTarget))
	return b.String()
}

// Clean reports whether the two sets fully agree: no flagged pairs and no
// unmatched remainder on either side.
func (r Result) Clean() bool {
	return len(r.Flagged) == 0 && len(r.MissingFromTarget) == 0 && len(r.ExtraInTarget) == 0
}

func describe(tx normalize.Transaction) string {
	return fmt.Sprintf("%s  %s  %s", tx.EffectiveDate(), tx.EffectiveAmount().StringFixed(2), tx.Payee)
}
