// Package backup dumps and restores the full ledger as a YAML snapshot.
package backup

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"liftec/storage"
	"liftec/worklog"
)

type Snapshot struct {
	CreatedAt string           `yaml:"created_at"`
	Entries   []entrySnapshot  `yaml:"entries"`
	OnCall    []periodSnapshot `yaml:"oncall_periods"`
}

type entrySnapshot struct {
	Date      string         `yaml:"date"`
	StartTime string         `yaml:"start_time,omitempty"`
	EndTime   string         `yaml:"end_time,omitempty"`
	Pause     string         `yaml:"pause,omitempty"`
	Travel    string         `yaml:"travel_time,omitempty"`
	Surcharge string         `yaml:"surcharge,omitempty"`
	Tasks     []taskSnapshot `yaml:"tasks,omitempty"`
}

type taskSnapshot struct {
	Type        string `yaml:"type,omitempty"`
	Description string `yaml:"description"`
}

type periodSnapshot struct {
	ID        int64  `yaml:"id"`
	StartDate string `yaml:"start_date"`
	StartTime string `yaml:"start_time"`
	EndDate   string `yaml:"end_date,omitempty"`
	EndTime   string `yaml:"end_time,omitempty"`
	Active    bool   `yaml:"active,omitempty"`
}

// Create writes a snapshot of all entries and on-call periods to path and
// returns the entry count.
func Create(store *storage.SQLiteStore, path string) (int, error) {
	entries, err := store.ListEntries()
	if err != nil {
		return 0, err
	}
	periods, err := store.ListOnCall()
	if err != nil {
		return 0, err
	}

	snapshot := Snapshot{CreatedAt: time.Now().Format(time.RFC3339)}
	for _, entry := range entries {
		snapshot.Entries = append(snapshot.Entries, snapshotEntry(entry))
	}
	for _, period := range periods {
		snapshot.OnCall = append(snapshot.OnCall, periodSnapshot(period))
	}

	content, err := yaml.Marshal(snapshot)
	if err != nil {
		return 0, fmt.Errorf("marshal backup: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return 0, fmt.Errorf("write backup %s: %w", path, err)
	}
	return len(entries), nil
}

// Result summarizes a restore run.
type Result struct {
	Restored int
	Skipped  int
}

// Restore loads a snapshot into the store. Entries whose date is already
// occupied are skipped unless overwrite is set; on-call periods are only
// imported into an empty period table to keep the sequential numbering
// intact.
func Restore(store *storage.SQLiteStore, path string, overwrite bool) (Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read backup %s: %w", path, err)
	}

	var snapshot Snapshot
	if err := yaml.Unmarshal(content, &snapshot); err != nil {
		return Result{}, fmt.Errorf("parse backup %s: %w", path, err)
	}

	var result Result
	if len(snapshot.OnCall) > 0 {
		periods := make([]worklog.OnCallPeriod, 0, len(snapshot.OnCall))
		for _, snap := range snapshot.OnCall {
			periods = append(periods, worklog.OnCallPeriod(snap))
		}
		if err := store.RestoreOnCallPeriods(periods); err != nil {
			return Result{}, err
		}
	}

	for _, snap := range snapshot.Entries {
		entry := restoreEntry(snap)
		if overwrite {
			if _, err := store.ReplaceEntryForDate(entry); err != nil {
				return result, err
			}
			result.Restored++
			continue
		}

		_, err := store.InsertEntry(entry)
		if errors.Is(err, storage.ErrDateTaken) {
			result.Skipped++
			continue
		}
		if err != nil {
			return result, err
		}
		result.Restored++
	}
	return result, nil
}

func snapshotEntry(entry worklog.Entry) entrySnapshot {
	snap := entrySnapshot{
		Date:      entry.Date,
		StartTime: entry.StartTime,
		EndTime:   entry.EndTime,
		Pause:     entry.Pause,
		Travel:    entry.Travel,
		Surcharge: entry.Surcharge,
	}
	for _, task := range entry.Tasks {
		snap.Tasks = append(snap.Tasks, taskSnapshot{Type: string(task.Type), Description: task.Description})
	}
	return snap
}

func restoreEntry(snap entrySnapshot) worklog.Entry {
	entry := worklog.Entry{
		Date:      snap.Date,
		StartTime: snap.StartTime,
		EndTime:   snap.EndTime,
		Pause:     snap.Pause,
		Travel:    snap.Travel,
		Surcharge: snap.Surcharge,
	}
	for _, task := range snap.Tasks {
		entry.Tasks = append(entry.Tasks, worklog.Task{
			Type:        worklog.ParseTaskType(task.Type),
			Description: task.Description,
		})
	}
	return entry
}
