package output

import (
	"testing"

	"liftec/internal/timeutil"
	"liftec/worklog"
)

func TestMaterializeMonth_DayCounts(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2024, 2, 29}, // leap year February
		{2023, 2, 28},
		{2024, 4, 30},
		{2024, 1, 31},
	}
	for _, tc := range cases {
		rows := MaterializeMonth(tc.year, tc.month, nil)
		if len(rows) != tc.want {
			t.Errorf("MaterializeMonth(%d, %d) yielded %d rows, want %d", tc.year, tc.month, len(rows), tc.want)
		}
	}
}

func TestMaterializeMonth_CompleteAscendingNoDuplicates(t *testing.T) {
	entries := []worklog.Entry{
		{Date: "05.02.2024", StartTime: "08:00", EndTime: "16:00"},
		{Date: "29.02.2024", StartTime: "09:00", EndTime: "12:00"},
	}

	rows := MaterializeMonth(2024, 2, entries)
	if len(rows) != 29 {
		t.Fatalf("expected 29 rows, got %d", len(rows))
	}

	seen := make(map[string]bool, len(rows))
	var previous string
	for i, row := range rows {
		if seen[row.Date] {
			t.Fatalf("duplicate date %s", row.Date)
		}
		seen[row.Date] = true

		date, err := timeutil.ParseDate(row.Date)
		if err != nil {
			t.Fatalf("row %d has unparseable date %q: %v", i, row.Date, err)
		}
		if date.Day() != i+1 {
			t.Fatalf("row %d carries day %d, dates must ascend one day per row", i, date.Day())
		}
		previous = row.Date
	}
	if previous != "29.02.2024" {
		t.Fatalf("last row is %s, want 29.02.2024", previous)
	}
}

func TestMaterializeMonth_SlotsEntriesAndPlaceholders(t *testing.T) {
	entries := []worklog.Entry{
		{Date: "05.02.2024", StartTime: "08:00", EndTime: "16:00"},
	}

	rows := MaterializeMonth(2024, 2, entries)
	if rows[4].IsPlaceholder() {
		t.Fatal("05.02. must carry the ledger entry")
	}
	if rows[4].Entry.StartTime != "08:00" {
		t.Fatalf("wrong entry slotted: %+v", rows[4].Entry)
	}
	if !rows[0].IsPlaceholder() || !rows[28].IsPlaceholder() {
		t.Fatal("days without entries must be placeholders")
	}
}
