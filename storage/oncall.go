package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"liftec/internal/timeutil"
	"liftec/worklog"
)

// StartOnCall opens a new on-call period. Only one period may be active;
// starting a second fails with ErrOnCallActive.
func (s *SQLiteStore) StartOnCall(start time.Time) (worklog.OnCallPeriod, error) {
	if _, active, err := s.ActiveOnCall(); err != nil {
		return worklog.OnCallPeriod{}, err
	} else if active {
		return worklog.OnCallPeriod{}, ErrOnCallActive
	}

	res, err := s.db.Exec(
		`INSERT INTO oncall_periods (start_date, start_time, active) VALUES (?, ?, 1);`,
		start.Format(dayLayout), start.Format(timeutil.ClockLayout),
	)
	if err != nil {
		return worklog.OnCallPeriod{}, fmt.Errorf("start on-call period: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return worklog.OnCallPeriod{}, fmt.Errorf("read inserted row id: %w", err)
	}

	return worklog.OnCallPeriod{
		ID:        id,
		StartDate: timeutil.FormatDate(start),
		StartTime: start.Format(timeutil.ClockLayout),
		Active:    true,
	}, nil
}

// EndOnCall closes the active period. The period stays queryable afterwards.
func (s *SQLiteStore) EndOnCall(end time.Time) (worklog.OnCallPeriod, error) {
	period, active, err := s.ActiveOnCall()
	if err != nil {
		return worklog.OnCallPeriod{}, err
	}
	if !active {
		return worklog.OnCallPeriod{}, ErrNoActiveOnCall
	}

	_, err = s.db.Exec(
		`UPDATE oncall_periods SET end_date = ?, end_time = ?, active = 0 WHERE id = ?;`,
		end.Format(dayLayout), end.Format(timeutil.ClockLayout), period.ID,
	)
	if err != nil {
		return worklog.OnCallPeriod{}, fmt.Errorf("end on-call period %d: %w", period.ID, err)
	}

	period.EndDate = timeutil.FormatDate(end)
	period.EndTime = end.Format(timeutil.ClockLayout)
	period.Active = false
	return period, nil
}

// ActiveOnCall returns the currently open period, if one exists.
func (s *SQLiteStore) ActiveOnCall() (worklog.OnCallPeriod, bool, error) {
	row := s.db.QueryRow(
		`SELECT id, start_date, start_time, end_date, end_time, active
		 FROM oncall_periods WHERE active = 1;`,
	)
	period, err := scanOnCall(row)
	if errors.Is(err, sql.ErrNoRows) {
		return worklog.OnCallPeriod{}, false, nil
	}
	if err != nil {
		return worklog.OnCallPeriod{}, false, err
	}
	return period, true, nil
}

// ListOnCall returns all periods, oldest first.
func (s *SQLiteStore) ListOnCall() ([]worklog.OnCallPeriod, error) {
	rows, err := s.db.Query(
		`SELECT id, start_date, start_time, end_date, end_time, active
		 FROM oncall_periods ORDER BY id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query on-call periods: %w", err)
	}
	defer rows.Close()

	periods := make([]worklog.OnCallPeriod, 0, 8)
	for rows.Next() {
		period, err := scanOnCall(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate on-call periods: %w", err)
	}
	return periods, nil
}

// RestoreOnCallPeriods inserts periods with their original ids, preserving
// the user-visible sequential numbering. Only an empty period table accepts a
// restore; mixing restored and live numbering is not supported.
func (s *SQLiteStore) RestoreOnCallPeriods(periods []worklog.OnCallPeriod) error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM oncall_periods;`).Scan(&count); err != nil {
		return fmt.Errorf("count on-call periods: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("on-call periods already present, not restoring")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	for _, period := range periods {
		startDay, err := storageDay(period.StartDate)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		endDay := ""
		if period.EndDate != "" {
			if endDay, err = storageDay(period.EndDate); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		active := 0
		if period.Active {
			active = 1
		}
		_, err = tx.Exec(
			`INSERT INTO oncall_periods (id, start_date, start_time, end_date, end_time, active)
			 VALUES (?, ?, ?, ?, ?, ?);`,
			period.ID, startDay, period.StartTime, endDay, period.EndTime, active,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("restore on-call period %d: %w", period.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOnCall(row rowScanner) (worklog.OnCallPeriod, error) {
	var (
		period    worklog.OnCallPeriod
		startDay  string
		endDay    string
		activeInt int
	)
	if err := row.Scan(&period.ID, &startDay, &period.StartTime, &endDay, &period.EndTime, &activeInt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return worklog.OnCallPeriod{}, err
		}
		return worklog.OnCallPeriod{}, fmt.Errorf("scan on-call period: %w", err)
	}

	var err error
	period.StartDate, err = displayDate(startDay)
	if err != nil {
		return worklog.OnCallPeriod{}, err
	}
	if endDay != "" {
		period.EndDate, err = displayDate(endDay)
		if err != nil {
			return worklog.OnCallPeriod{}, err
		}
	}
	period.Active = activeInt != 0
	return period, nil
}
