package ledger

import "time"

// Header is the fixed column schema of every ledger sheet.
var Header = []string{"Date", "Name", "In", "Percent", "Amount with %", "Out", "Balance"}

// Row is one ledger entry. Exactly one of the in-group
// (In/Percent/AmountWithPercent) or Out is set; absent fields stay nil so
// they round-trip as empty cells, not zeros.
type Row struct {
	Date              string
	Name              string
	In                *int64
	Percent           *int64
	AmountWithPercent *float64
	Out               *int64
	Balance           float64
}

// IsIn reports whether the row is an in-row.
func (r Row) IsIn() bool {
	return r.In != nil
}

// Ledger is the ordered row sequence for one conversation.
// Insertion order is chronological order.
type Ledger struct {
	Rows []Row
}

// LastBalance returns the running total after the last row, 0 for an
// empty ledger.
func (l *Ledger) LastBalance() float64 {
	if len(l.Rows) == 0 {
		return 0
	}
	return l.Rows[len(l.Rows)-1].Balance
}

// FormatDate formats date as DD.MM.YY
func FormatDate(t time.Time) string {
	return t.Format("02.01.06")
}
