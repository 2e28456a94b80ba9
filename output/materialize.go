package output

import (
	"time"

	"liftec/internal/timeutil"
	"liftec/worklog"
)

// MonthlyRow is one calendar day of an export: the matching ledger entry, or
// a placeholder carrying only the date.
type MonthlyRow struct {
	Date  string // DD.MM.YYYY
	Entry *worklog.Entry
}

// IsPlaceholder reports whether the row has no ledger entry.
func (r MonthlyRow) IsPlaceholder() bool {
	return r.Entry == nil
}

// MaterializeMonth expands sparse month entries into exactly one row per
// calendar day, ascending, gaps filled with placeholders. Every exported file
// carries daysInMonth data rows no matter how few sessions were logged.
// Month is a caller contract (1..12); out-of-range values are not defended
// against here.
func MaterializeMonth(year, month int, entries []worklog.Entry) []MonthlyRow {
	byDate := make(map[string]*worklog.Entry, len(entries))
	for i := range entries {
		byDate[entries[i].Date] = &entries[i]
	}

	days := timeutil.DaysInMonth(year, month)
	rows := make([]MonthlyRow, 0, days)
	for day := 1; day <= days; day++ {
		date := timeutil.FormatDate(timeutil.Date(year, time.Month(month), day))
		rows = append(rows, MonthlyRow{Date: date, Entry: byDate[date]})
	}
	return rows
}
