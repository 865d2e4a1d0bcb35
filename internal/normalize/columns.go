package normalize

import "strings"

// Field names a canonical slot on Transaction that a source column can map
// into.
type Field string

const (
	FieldTransactionDate Field = "transactionDate"
	FieldChargeDate      Field = "chargeDate"
	FieldPayee           Field = "payee"
	FieldOutflow         Field = "outflow"
	FieldInflow          Field = "inflow"
	FieldOriginalAmount  Field = "originalAmount"
	FieldNotes           Field = "notes"
	FieldSource          Field = "source"
)

// columnTable maps every observed source column spelling to its canonical
// field: Hebrew bank-statement headers in the variants seen across Leumi,
// Hapoalim and the card issuers, the scraper's own field names, and our own
// export headers so a previously exported file can be re-normalized for
// reconciliation. Lookup is exact and case-sensitive after trimming.
var columnTable = map[string]Field{
	// Hebrew bank and card headers.
	"תאריך":            FieldTransactionDate,
	"תאריך עסקה":       FieldTransactionDate,
	"תאריך העסקה":      FieldTransactionDate,
	"תאריך רכישה":      FieldTransactionDate,
	"תאריך ערך":        FieldChargeDate,
	"תאריך חיוב":       FieldChargeDate,
	"תאריך החיוב":      FieldChargeDate,
	"פרטים":            FieldPayee,
	"תיאור":            FieldPayee,
	"תאור":             FieldPayee,
	"שם בית העסק":      FieldPayee,
	"שם בית עסק":       FieldPayee,
	"בית עסק":          FieldPayee,
	"חובה":             FieldOutflow,
	"סכום חובה":        FieldOutflow,
	"סכום חיוב":        FieldOutflow,
	"זכות":             FieldInflow,
	"סכום זכות":        FieldInflow,
	"סכום עסקה מקורי":  FieldOriginalAmount,
	"סכום מקורי":       FieldOriginalAmount,
	"סכום עסקה":        FieldOriginalAmount,
	"הערות":            FieldNotes,
	"פירוט נוסף":       FieldNotes,
	"אסמכתא":           FieldNotes,
	"מספר כרטיס":       FieldSource,
	"מספר חשבון":       FieldSource,
	"חשבון":            FieldSource,

	// Scraper field names.
	"date":          FieldTransactionDate,
	"processedDate": FieldChargeDate,
	"description":   FieldPayee,
	"chargedAmount": FieldOutflow,
	"originalAmount": FieldOriginalAmount,
	"memo":          FieldNotes,
	"accountNumber": FieldSource,

	// Canonical export headers, so our own output re-ingests cleanly.
	"Date":    FieldTransactionDate,
	"Payee":   FieldPayee,
	"Memo":    FieldNotes,
	"Outflow": FieldOutflow,
	"Inflow":  FieldInflow,
}

// ColumnField resolves a source column name to its canonical field. The
// second result is false for columns the table does not recognize; callers
// ignore those columns rather than treating them as errors.
func ColumnField(name string) (Field, bool) {
	f, ok := columnTable[strings.TrimSpace(name)]
	return f, ok
}
