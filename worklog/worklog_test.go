package worklog

import (
	"testing"
	"time"
)

func TestParseTaskType(t *testing.T) {
	cases := map[string]TaskType{
		"N":  TaskNew,
		"D":  TaskTeardown,
		"R":  TaskRepair,
		"W":  TaskMaintenance,
		"":   TaskNone,
		"X":  TaskNone,
		"nw": TaskNone,
	}
	for raw, want := range cases {
		if got := ParseTaskType(raw); got != want {
			t.Errorf("ParseTaskType(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestEntryHasTaskType(t *testing.T) {
	entry := Entry{Tasks: []Task{
		{Type: TaskRepair, Description: "Pumpe getauscht"},
		{Type: TaskMaintenance, Description: "Filter"},
	}}

	if !entry.HasTaskType(TaskRepair) {
		t.Error("expected repair task to be present")
	}
	if entry.HasTaskType(TaskNew) {
		t.Error("did not expect new-setup task")
	}
}

func TestEntryHours(t *testing.T) {
	entry := Entry{
		Date:      "04.03.2024",
		StartTime: "08:00",
		EndTime:   "17:00",
		Pause:     "00:30",
		Travel:    "01:00",
	}

	if got := entry.WorkedHours(); got != 9 {
		t.Fatalf("WorkedHours = %v, want 9", got)
	}
	if got := entry.NetHours(); got != 7.5 {
		t.Fatalf("NetHours = %v, want 7.5", got)
	}
}

func TestAbsenceEntryHasZeroHours(t *testing.T) {
	entry := Entry{
		Date:  "05.03.2024",
		Tasks: []Task{{Type: TaskNone, Description: "Urlaub"}},
	}

	if entry.IsWorkDay() {
		t.Error("absence entry must not count as work day")
	}
	if entry.WorkedHours() != 0 || entry.NetHours() != 0 {
		t.Error("absence entry must contribute zero hours")
	}
}

func TestNewEntryFromSession(t *testing.T) {
	start := time.Date(2024, 3, 4, 8, 0, 0, 0, time.Local)
	end := time.Date(2024, 3, 4, 16, 0, 0, 0, time.Local)
	session := Session{
		Start: start,
		Tasks: []Task{{Type: TaskNew, Description: "Anlage Halle 3"}},
	}

	entry := NewEntryFromSession(session, end, "01:00", "00:00", 80)

	if entry.Date != "04.03.2024" {
		t.Errorf("Date = %q", entry.Date)
	}
	if entry.StartTime != "08:00" || entry.EndTime != "16:00" {
		t.Errorf("times = %q..%q", entry.StartTime, entry.EndTime)
	}
	// net 7h at 80% is 5.6h, quantized to 5.5h
	if entry.Surcharge != "05:30" {
		t.Errorf("Surcharge = %q, want 05:30", entry.Surcharge)
	}
	if len(entry.Tasks) != 1 || entry.Tasks[0].Type != TaskNew {
		t.Errorf("tasks not carried over: %+v", entry.Tasks)
	}
}
