// Package xlsxsource reads xlsx bank exports as reconciliation input. The
// first sheet's first non-empty row is taken as the header row; everything
// below it goes through the same normalize-and-filter path as CSV input.
package xlsxsource

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ysegal/budgetbridge/internal/normalize"
)

// Load reads the first sheet of an xlsx file into normalized transactions.
func Load(path string) ([]normalize.Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsxsource.Load: open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsxsource.Load: %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsxsource.Load: read sheet %q: %w", sheets[0], err)
	}

	var columns []string
	var records [][]string
	for _, row := range rows {
		if columns == nil {
			if isEmpty(row) {
				continue
			}
			columns = row
			continue
		}
		records = append(records, row)
	}
	if columns == nil {
		return nil, nil
	}
	return normalize.FromRows(columns, records), nil
}

func isEmpty(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
