package reconcile

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ysegal/budgetbridge/internal/normalize"
)

func tx(date string, amount float64, payee string) normalize.Transaction {
	t := normalize.Transaction{TransactionDate: date, Payee: payee}
	d := decimal.NewFromFloat(amount)
	if d.IsNegative() {
		t.Outflow = d.Abs()
	} else {
		t.Inflow = d
	}
	return t
}

func TestMatch_ExactAndFlagged(t *testing.T) {
	source := []normalize.Transaction{
		tx("2024-03-15", -200, "קפה גרג"),
		tx("2024-03-10", -80, "סופר"),
	}
	target := []normalize.Transaction{
		tx("2024-03-16", -200, "קפה גרג"),
		tx("2024-03-10", -80, "סופר"),
	}

	result := Match(source, target, DefaultOptions())

	if len(result.Matched) != 1 {
		t.Fatalf("got %d exact matches, want 1", len(result.Matched))
	}
	if result.Matched[0].Source.Payee != "סופר" {
		t.Errorf("exact match payee = %q, want סופר", result.Matched[0].Source.Payee)
	}
	if len(result.Flagged) != 1 {
		t.Fatalf("got %d flagged matches, want 1", len(result.Flagged))
	}
	if result.Flagged[0].DaysOff != 1 {
		t.Errorf("flagged DaysOff = %d, want 1", result.Flagged[0].DaysOff)
	}
	if len(result.MissingFromTarget) != 0 || len(result.ExtraInTarget) != 0 {
		t.Errorf("unexpected unmatched remainders: missing=%d extra=%d",
			len(result.MissingFromTarget), len(result.ExtraInTarget))
	}
}

func TestMatch_MissingAndExtra(t *testing.T) {
	source := []normalize.Transaction{
		tx("2024-03-15", -200, "matched"),
		tx("2024-03-01", -999, "only in source"),
	}
	target := []normalize.Transaction{
		tx("2024-03-15", -200, "matched"),
		tx("2024-03-20", -55, "only in target"),
	}

	result := Match(source, target, DefaultOptions())

	if len(result.MissingFromTarget) != 1 || result.MissingFromTarget[0].Payee != "only in source" {
		t.Errorf("MissingFromTarget = %+v, want the unpaired source transaction", result.MissingFromTarget)
	}
	if len(result.ExtraInTarget) != 1 || result.ExtraInTarget[0].Payee != "only in target" {
		t.Errorf("ExtraInTarget = %+v, want the unpaired target transaction", result.ExtraInTarget)
	}

	// Every input lands in exactly one bucket.
	sourceSum := len(result.Matched) + len(result.Flagged) + len(result.MissingFromTarget)
	if sourceSum != result.SourceCount {
		t.Errorf("source partition sums to %d, want %d", sourceSum, result.SourceCount)
	}
	targetSum := len(result.Matched) + len(result.Flagged) + len(result.ExtraInTarget)
	if targetSum != result.TargetCount {
		t.Errorf("target partition sums to %d, want %d", targetSum, result.TargetCount)
	}
}

func TestMatch_PrefersSmallestDateDifference(t *testing.T) {
	source := []normalize.Transaction{tx("2024-03-15", -100, "src")}
	target := []normalize.Transaction{
		tx("2024-03-17", -100, "two off"),
		tx("2024-03-15", -100, "same day"),
	}

	result := Match(source, target, DefaultOptions())

	if len(result.Matched) != 1 || result.Matched[0].Target.Payee != "same day" {
		t.Fatalf("Matched = %+v, want the same-day candidate", result.Matched)
	}
	if len(result.ExtraInTarget) != 1 || result.ExtraInTarget[0].Payee != "two off" {
		t.Errorf("ExtraInTarget = %+v, want the two-off candidate", result.ExtraInTarget)
	}
}

func TestMatch_TieGoesToFirstPoolEntry(t *testing.T) {
	source := []normalize.Transaction{tx("2024-03-15", -100, "src")}
	target := []normalize.Transaction{
		tx("2024-03-16", -100, "first"),
		tx("2024-03-16", -100, "second"),
	}

	result := Match(source, target, DefaultOptions())

	if len(result.Flagged) != 1 || result.Flagged[0].Target.Payee != "first" {
		t.Fatalf("Flagged = %+v, want the first pool entry", result.Flagged)
	}
}

func TestMatch_TargetClaimedOnce(t *testing.T) {
	// Two identical source transactions, one target: the first source claims
	// it, the second is missing.
	source := []normalize.Transaction{
		tx("2024-03-15", -100, "first"),
		tx("2024-03-15", -100, "second"),
	}
	target := []normalize.Transaction{tx("2024-03-15", -100, "only")}

	result := Match(source, target, DefaultOptions())

	if len(result.Matched) != 1 || result.Matched[0].Source.Payee != "first" {
		t.Fatalf("Matched = %+v, want the earlier source transaction", result.Matched)
	}
	if len(result.MissingFromTarget) != 1 || result.MissingFromTarget[0].Payee != "second" {
		t.Errorf("MissingFromTarget = %+v, want the later source transaction", result.MissingFromTarget)
	}
}

func TestMatch_GreedyIsOrderDependent(t *testing.T) {
	// The earlier source transaction takes the 1-day candidate even though
	// the later one matches it exactly.
	source := []normalize.Transaction{
		tx("2024-03-15", -100, "early"),
		tx("2024-03-16", -100, "late"),
	}
	target := []normalize.Transaction{tx("2024-03-16", -100, "candidate")}

	result := Match(source, target, DefaultOptions())

	if len(result.Flagged) != 1 || result.Flagged[0].Source.Payee != "early" {
		t.Fatalf("Flagged = %+v, want the earlier source transaction", result.Flagged)
	}
	if len(result.MissingFromTarget) != 1 || result.MissingFromTarget[0].Payee != "late" {
		t.Errorf("MissingFromTarget = %+v, want the exact-but-late source transaction", result.MissingFromTarget)
	}
}

func TestMatch_UnusableSourceIsMissing(t *testing.T) {
	source := []normalize.Transaction{
		{Payee: "no date", Outflow: decimal.NewFromInt(100)},
		{TransactionDate: "2024-03-15", Payee: "zero amount"},
	}
	target := []normalize.Transaction{tx("2024-03-15", -100, "candidate")}

	result := Match(source, target, DefaultOptions())

	if len(result.MissingFromTarget) != 2 {
		t.Fatalf("MissingFromTarget = %d, want 2", len(result.MissingFromTarget))
	}
	if len(result.ExtraInTarget) != 1 {
		t.Errorf("ExtraInTarget = %d, want 1 (unusable sources never claim candidates)", len(result.ExtraInTarget))
	}
}

func TestMatch_AmountTolerance(t *testing.T) {
	source := []normalize.Transaction{tx("2024-03-15", -100.00, "src")}
	target := []normalize.Transaction{tx("2024-03-15", -100.01, "within tolerance")}

	result := Match(source, target, DefaultOptions())
	if len(result.Matched) != 1 {
		t.Fatalf("got %d matches, want 1 within 0.01 tolerance", len(result.Matched))
	}

	target = []normalize.Transaction{tx("2024-03-15", -100.02, "outside tolerance")}
	result = Match(source, target, DefaultOptions())
	if len(result.Matched) != 0 || len(result.MissingFromTarget) != 1 {
		t.Errorf("amount 0.02 apart matched; want missing/extra")
	}
}

func TestMatch_EmptyInputs(t *testing.T) {
	result := Match(nil, nil, DefaultOptions())
	if result.SourceCount != 0 || result.TargetCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", result.SourceCount, result.TargetCount)
	}
	if !result.Clean() {
		t.Error("empty reconciliation should be clean")
	}
}

func TestRender(t *testing.T) {
	source := []normalize.Transaction{
		tx("2024-03-15", -200, "קפה גרג"),
		tx("2024-03-01", -999, "only in source"),
	}
	target := []normalize.Transaction{
		tx("2024-03-16", -200, "קפה גרג"),
		tx("2024-03-20", -55, "only in target"),
	}

	out := Match(source, target, DefaultOptions()).Render()

	for _, want := range []string{
		"Flagged matches (1):",
		"Missing from target (1):",
		"Extra in target (1):",
		"Summary: 0 exact, 1 flagged, 1 missing, 1 extra",
		"קפה גרג",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
