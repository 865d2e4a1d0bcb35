// Package installment classifies free-text transaction descriptions as
// installment charges. Card issuers encode the position of an installment
// inside the description ("תשלום 2 מ-12", "payment 2 of 12"); detection is
// pattern-first, so text with no matching structure is simply not an
// installment.
package installment

import (
	"regexp"
	"strconv"
)

// Descriptor is the parsed position of an installment charge.
// Invariant: 1 <= Number <= Total.
type Descriptor struct {
	Number int
	Total  int
}

// patterns covers the notations observed across card exports: the Hebrew
// "payment N of M" with an optional dash or space after the מ prefix, the
// Hebrew "N out of M" form, and the English wording. Order matters: the
// מתוך form must be tried before the bare מ prefix.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`תשלום\s*(\d+)\s*מתוך\s*(\d+)`),
	regexp.MustCompile(`תשלום\s*(\d+)\s*מ[-\s]*(\d+)`),
	regexp.MustCompile(`(\d+)\s*מתוך\s*(\d+)`),
	regexp.MustCompile(`(?i)payment\s+(\d+)\s+of\s+(\d+)`),
}

// Detect returns the installment descriptor encoded in the description, or
// nil when the text does not describe an installment. Structurally matching
// text with an impossible position (zero, or number past total) is also
// rejected.
func Detect(description string) *Descriptor {
	for _, re := range patterns {
		m := re.FindStringSubmatch(description)
		if m == nil {
			continue
		}
		number, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		if number <= 0 || total <= 0 || number > total {
			return nil
		}
		return &Descriptor{Number: number, Total: total}
	}
	return nil
}

// String renders the descriptor in the "N/M" form used in memo payloads.
func (d *Descriptor) String() string {
	return strconv.Itoa(d.Number) + "/" + strconv.Itoa(d.Total)
}
