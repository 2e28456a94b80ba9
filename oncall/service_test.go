package oncall

import (
	"errors"
	"testing"
	"time"

	"liftec/worklog"
)

type fakeSource struct {
	entries []worklog.Entry
	err     error
}

func (f *fakeSource) EntriesInRange(start, end time.Time) ([]worklog.Entry, error) {
	return f.entries, f.err
}

func at(day, hour int) time.Time {
	return time.Date(2024, 3, day, hour, 0, 0, 0, time.Local)
}

func TestHours_SubtractsWorkedSpan(t *testing.T) {
	source := &fakeSource{entries: []worklog.Entry{
		{Date: "02.03.2024", StartTime: "08:00", EndTime: "16:00", Pause: "00:30"},
	}}

	// 48h period, 8h worked; the 00:30 pause must NOT be subtracted from the
	// worked term.
	hours, err := Hours(source, at(1, 8), at(3, 8))
	if err != nil {
		t.Fatalf("Hours: %v", err)
	}
	if hours != 40 {
		t.Fatalf("Hours = %v, want 40", hours)
	}
}

func TestHours_AbsencesContributeNothing(t *testing.T) {
	source := &fakeSource{entries: []worklog.Entry{
		{Date: "02.03.2024", Tasks: []worklog.Task{{Description: "Urlaub"}}},
	}}

	hours, err := Hours(source, at(1, 8), at(3, 8))
	if err != nil {
		t.Fatalf("Hours: %v", err)
	}
	if hours != 48 {
		t.Fatalf("Hours = %v, want 48", hours)
	}
}

func TestHours_ClampsAtZero(t *testing.T) {
	source := &fakeSource{entries: []worklog.Entry{
		{Date: "01.03.2024", StartTime: "00:00", EndTime: "23:00"},
	}}

	hours, err := Hours(source, at(1, 8), at(1, 12))
	if err != nil {
		t.Fatalf("Hours: %v", err)
	}
	if hours != 0 {
		t.Fatalf("Hours = %v, want 0", hours)
	}
}

func TestHours_RejectsInvertedPeriod(t *testing.T) {
	source := &fakeSource{}
	if _, err := Hours(source, at(3, 8), at(1, 8)); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
	if _, err := Hours(source, at(1, 8), at(1, 8)); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("zero-length period must be invalid, got %v", err)
	}
}

func TestHours_PropagatesSourceErrors(t *testing.T) {
	wantErr := errors.New("db gone")
	source := &fakeSource{err: wantErr}
	if _, err := Hours(source, at(1, 8), at(3, 8)); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestPeriodHours(t *testing.T) {
	source := &fakeSource{entries: []worklog.Entry{
		{Date: "02.03.2024", StartTime: "08:00", EndTime: "16:00"},
	}}
	period := worklog.OnCallPeriod{
		StartDate: "01.03.2024", StartTime: "08:00",
		EndDate: "03.03.2024", EndTime: "08:00",
	}

	hours, err := PeriodHours(source, period)
	if err != nil {
		t.Fatalf("PeriodHours: %v", err)
	}
	if hours != 40 {
		t.Fatalf("PeriodHours = %v, want 40", hours)
	}
}
