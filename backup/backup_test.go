package backup

import (
	"path/filepath"
	"testing"
	"time"

	"liftec/storage"
	"liftec/worklog"
)

func newTestStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()
	store, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "liftec.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedStore(t *testing.T, store *storage.SQLiteStore) {
	t.Helper()
	entries := []worklog.Entry{
		{
			Date: "04.03.2024", StartTime: "08:00", EndTime: "16:30",
			Pause: "00:30", Surcharge: "05:30",
			Tasks: []worklog.Task{{Type: worklog.TaskRepair, Description: "Pumpe"}},
		},
		{
			Date:  "05.03.2024",
			Tasks: []worklog.Task{{Description: "Urlaub"}},
		},
	}
	for _, entry := range entries {
		if _, err := store.InsertEntry(entry); err != nil {
			t.Fatalf("seed entry %s: %v", entry.Date, err)
		}
	}

	start := time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)
	if _, err := store.StartOnCall(start); err != nil {
		t.Fatalf("seed on-call: %v", err)
	}
	if _, err := store.EndOnCall(start.Add(48 * time.Hour)); err != nil {
		t.Fatalf("close on-call: %v", err)
	}
}

func TestCreateAndRestore(t *testing.T) {
	source := newTestStore(t)
	seedStore(t, source)

	path := filepath.Join(t.TempDir(), "backup.yaml")
	count, err := Create(source, path)
	if err != nil {
		t.Fatalf("create backup: %v", err)
	}
	if count != 2 {
		t.Fatalf("backed up %d entries, want 2", count)
	}

	target := newTestStore(t)
	result, err := Restore(target, path, false)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if result.Restored != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v", result)
	}

	entries, err := target.ListEntries()
	if err != nil {
		t.Fatalf("list restored: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 restored entries, got %d", len(entries))
	}
	if entries[0].Surcharge != "05:30" || len(entries[0].Tasks) != 1 {
		t.Fatalf("entry not fully restored: %+v", entries[0])
	}

	periods, err := target.ListOnCall()
	if err != nil {
		t.Fatalf("list restored periods: %v", err)
	}
	if len(periods) != 1 || periods[0].ID != 1 || periods[0].Active {
		t.Fatalf("periods not restored: %+v", periods)
	}
}

func TestRestore_SkipsOccupiedDatesWithoutOverwrite(t *testing.T) {
	source := newTestStore(t)
	seedStore(t, source)

	path := filepath.Join(t.TempDir(), "backup.yaml")
	if _, err := Create(source, path); err != nil {
		t.Fatalf("create backup: %v", err)
	}

	target := newTestStore(t)
	existing := worklog.Entry{Date: "04.03.2024", StartTime: "10:00", EndTime: "12:00"}
	if _, err := target.InsertEntry(existing); err != nil {
		t.Fatalf("insert existing: %v", err)
	}

	result, err := Restore(target, path, false)
	// The backup's on-call period restores into the empty period table even
	// though one entry date was taken.
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if result.Restored != 1 || result.Skipped != 1 {
		t.Fatalf("result = %+v", result)
	}

	kept, _, err := target.GetEntryByDate("04.03.2024")
	if err != nil {
		t.Fatalf("get kept entry: %v", err)
	}
	if kept.StartTime != "10:00" {
		t.Fatalf("existing entry was overwritten: %+v", kept)
	}
}

func TestRestore_OverwriteReplaces(t *testing.T) {
	source := newTestStore(t)
	seedStore(t, source)

	path := filepath.Join(t.TempDir(), "backup.yaml")
	if _, err := Create(source, path); err != nil {
		t.Fatalf("create backup: %v", err)
	}

	target := newTestStore(t)
	existing := worklog.Entry{Date: "04.03.2024", StartTime: "10:00", EndTime: "12:00"}
	if _, err := target.InsertEntry(existing); err != nil {
		t.Fatalf("insert existing: %v", err)
	}

	result, err := Restore(target, path, true)
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if result.Restored != 2 {
		t.Fatalf("result = %+v", result)
	}

	replaced, _, err := target.GetEntryByDate("04.03.2024")
	if err != nil {
		t.Fatalf("get replaced entry: %v", err)
	}
	if replaced.StartTime != "08:00" {
		t.Fatalf("entry not overwritten: %+v", replaced)
	}
}
