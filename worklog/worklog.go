package worklog

import (
	"time"

	"liftec/internal/timeutil"
)

// TaskType classifies a task for the four single-letter export columns.
// TaskNone marks unclassified work or an absence reason.
type TaskType string

const (
	TaskNew         TaskType = "N"
	TaskTeardown    TaskType = "D"
	TaskRepair      TaskType = "R"
	TaskMaintenance TaskType = "W"
	TaskNone        TaskType = ""
)

// TaskTypes lists the four classified variants in column order.
var TaskTypes = []TaskType{TaskNew, TaskTeardown, TaskRepair, TaskMaintenance}

// ParseTaskType maps a raw code to a TaskType. Unknown codes fall back to
// TaskNone rather than failing; they originate from hand-edited files.
func ParseTaskType(raw string) TaskType {
	switch TaskType(raw) {
	case TaskNew, TaskTeardown, TaskRepair, TaskMaintenance:
		return TaskType(raw)
	default:
		return TaskNone
	}
}

// Task is one typed activity attached to a session or entry.
type Task struct {
	Type        TaskType
	Description string
}

// Entry is one calendar day's worklog record, the unit every export and
// reconciliation consumes. Times are wall-clock HH:MM strings; pause, travel
// and surcharge are HH:MM durations. Absence entries carry empty times and a
// single untyped task naming the reason.
type Entry struct {
	ID        int64
	Date      string // DD.MM.YYYY
	StartTime string
	EndTime   string
	Pause     string
	Travel    string
	Surcharge string
	Tasks     []Task
}

// HasTaskType reports whether any task of the entry carries the given type.
func (e Entry) HasTaskType(taskType TaskType) bool {
	for _, task := range e.Tasks {
		if task.Type == taskType {
			return true
		}
	}
	return false
}

// IsWorkDay reports whether the entry records actual presence, as opposed to
// an absence (vacation, sick leave, public holiday, compensatory time).
func (e Entry) IsWorkDay() bool {
	return e.StartTime != "" && e.EndTime != ""
}

// WorkedHours returns the gross clock-in to clock-out span in fractional
// hours. Pause and travel are not subtracted; on-call reconciliation counts
// the full span as accounted for.
func (e Entry) WorkedHours() float64 {
	if !e.IsWorkDay() {
		return 0
	}
	hours := timeutil.HHMMToHours(e.EndTime) - timeutil.HHMMToHours(e.StartTime)
	if hours < 0 {
		return 0
	}
	return hours
}

// NetHours returns the worked span minus pause and travel, the base figure
// for the surcharge calculation.
func (e Entry) NetHours() float64 {
	hours := e.WorkedHours() - timeutil.HHMMToHours(e.Pause) - timeutil.HHMMToHours(e.Travel)
	if hours < 0 {
		return 0
	}
	return hours
}

// Session is the transient record of a running work period. At most one
// session exists at a time; ending it commits a derived Entry and destroys
// the session atomically.
type Session struct {
	Start time.Time
	Tasks []Task
}

// OnCallPeriod is a standby span. It is closed, never deleted, when the
// period ends; historical periods stay queryable for export.
type OnCallPeriod struct {
	ID        int64
	StartDate string // DD.MM.YYYY
	StartTime string // HH:MM
	EndDate   string
	EndTime   string
	Active    bool
}

// NewEntryFromSession derives the persisted entry for a finished session.
// The surcharge is computed once here, from net hours and the configured
// percentage, and stored; readers never recompute it.
func NewEntryFromSession(session Session, end time.Time, pause, travel string, surchargePercent float64) Entry {
	entry := Entry{
		Date:      timeutil.FormatDate(session.Start),
		StartTime: session.Start.Format(timeutil.ClockLayout),
		EndTime:   end.Format(timeutil.ClockLayout),
		Pause:     pause,
		Travel:    travel,
		Tasks:     append([]Task(nil), session.Tasks...),
	}
	entry.Surcharge = timeutil.HoursToHHMM(timeutil.SurchargeHours(entry.NetHours(), surchargePercent))
	return entry
}
