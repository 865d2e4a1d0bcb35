package xlsxsource

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("writing row %d: %v", i, err)
		}
	}

	path := filepath.Join(t.TempDir(), "statement.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"תאריך", "שם בית העסק", "חובה", "זכות"},
		{"15/03/2024", "קפה גרג", "150.00", ""},
		{"16/03/2024", "החזר", "", "75.50"},
		{"", "no date row", "10.00", ""},
	})

	txs, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d transactions, want 2", len(txs))
	}

	if txs[0].TransactionDate != "2024-03-15" || txs[0].Payee != "קפה גרג" {
		t.Errorf("row 0 = %+v, want normalized coffee charge", txs[0])
	}
	if !txs[0].Outflow.Equal(decimal.NewFromInt(150)) {
		t.Errorf("row 0 outflow = %s, want 150", txs[0].Outflow)
	}
	if !txs[1].Inflow.Equal(decimal.NewFromFloat(75.5)) {
		t.Errorf("row 1 inflow = %s, want 75.5", txs[1].Inflow)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Error("Load expected error for missing file")
	}
}
