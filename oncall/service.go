// Package oncall reconciles on-call periods against the worklog ledger.
package oncall

import (
	"errors"
	"time"

	"liftec/internal/timeutil"
	"liftec/worklog"
)

// ErrInvalidPeriod is returned when the period end does not lie after its start.
var ErrInvalidPeriod = errors.New("on-call period end must be after its start")

// EntrySource is the ledger read surface the reconciliation needs.
type EntrySource interface {
	EntriesInRange(start, end time.Time) ([]worklog.Entry, error)
}

// Hours computes the billable on-call hours of a period: the elapsed span
// minus the hours covered by ordinary worklog entries in range.
//
// The worked-hours term uses the gross clock-in to clock-out span, not the
// net-of-pause figure used for surcharge: on-call accounting asks whether the
// worker was at the workplace at all, not how productive the time was.
// Absence entries contribute nothing.
func Hours(source EntrySource, periodStart, periodEnd time.Time) (float64, error) {
	if !periodEnd.After(periodStart) {
		return 0, ErrInvalidPeriod
	}

	entries, err := source.EntriesInRange(periodStart, periodEnd)
	if err != nil {
		return 0, err
	}

	worked := 0.0
	for _, entry := range entries {
		worked += entry.WorkedHours()
	}

	hours := timeutil.DurationHours(periodStart, periodEnd) - worked
	if hours < 0 {
		return 0, nil
	}
	return hours, nil
}

// PeriodHours reconciles a closed persisted period.
func PeriodHours(source EntrySource, period worklog.OnCallPeriod) (float64, error) {
	start, err := timeutil.ParseDateTime(period.StartDate, period.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := timeutil.ParseDateTime(period.EndDate, period.EndTime)
	if err != nil {
		return 0, err
	}
	return Hours(source, start, end)
}
