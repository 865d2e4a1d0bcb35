// Package csvcodec reads and writes the CSV dialect used by the export and
// by the bank files fed into reconciliation. The parser is deliberately
// more lenient than encoding/csv: bank exports mix bare and CRLF line
// endings, vary their column counts, and occasionally place quotes
// mid-field, all of which the stricter stdlib reader rejects.
package csvcodec

import (
	"strings"

	"github.com/ysegal/budgetbridge/internal/normalize"
)

// Header is the fixed canonical export header.
const Header = "Date,Payee,Memo,Outflow,Inflow"

// Row is one serializable line of canonical output.
type Row struct {
	Date    string
	Payee   string
	Memo    string
	Outflow string
	Inflow  string
}

// Parse reads CSV text into normalized transactions. The first non-empty
// line is taken as the header row; every following line becomes a
// column→value record fed through the normalizer. Rows without a
// recognized date or without a non-zero amount are dropped.
func Parse(text string) []normalize.Transaction {
	lines := splitRecords(text)

	var columns []string
	var rows [][]string
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line)
		if columns == nil {
			columns = fields
			continue
		}
		rows = append(rows, fields)
	}
	if columns == nil {
		return nil
	}
	return normalize.FromRows(columns, rows)
}

// splitRecords splits on "\n", trimming a trailing "\r" so bare-LF and
// CRLF files parse identically. A line with an unbalanced quote count is a
// continuation of a quoted field, so it is rejoined with the next line.
func splitRecords(text string) []string {
	var records []string
	var pending string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if pending != "" {
			line = pending + "\n" + line
			pending = ""
		}
		if strings.Count(line, `"`)%2 == 1 {
			pending = line
			continue
		}
		records = append(records, line)
	}
	if pending != "" {
		records = append(records, pending)
	}
	return records
}

// splitFields performs quote-aware comma splitting of a single line. A
// field that begins with a quote runs until its closing quote, with two
// consecutive quotes inside standing for one literal quote character.
func splitFields(line string) []string {
	var fields []string
	var b strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					b.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				b.WriteRune(c)
			}
		case c == '"' && b.Len() == 0:
			inQuotes = true
		case c == ',':
			fields = append(fields, b.String())
			b.Reset()
		default:
			b.WriteRune(c)
		}
	}
	fields = append(fields, b.String())
	return fields
}

// Serialize renders rows under the canonical header. A field is
// quote-wrapped exactly when it contains a comma, a quote or a newline,
// with internal quotes doubled; everything else is emitted bare so exports
// stay byte-stable across round trips.
func Serialize(rows []Row) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(escapeField(row.Date))
		b.WriteString(",")
		b.WriteString(escapeField(row.Payee))
		b.WriteString(",")
		b.WriteString(escapeField(row.Memo))
		b.WriteString(",")
		b.WriteString(escapeField(row.Outflow))
		b.WriteString(",")
		b.WriteString(escapeField(row.Inflow))
		b.WriteString("\n")
	}
	return b.String()
}

func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
