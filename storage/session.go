package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"liftec/worklog"
)

// StartSession opens the single session slot. A second start while a session
// is running fails with ErrSessionActive.
func (s *SQLiteStore) StartSession(start time.Time) error {
	res, err := s.db.Exec(
		`INSERT OR IGNORE INTO session (slot, start_datetime) VALUES (1, ?);`,
		start.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read inserted row count: %w", err)
	}
	if rows == 0 {
		return ErrSessionActive
	}
	return nil
}

// ActiveSession returns the running session, if any, with its tasks in
// append order.
func (s *SQLiteStore) ActiveSession() (worklog.Session, bool, error) {
	var startRaw string
	err := s.db.QueryRow(`SELECT start_datetime FROM session WHERE slot = 1;`).Scan(&startRaw)
	if errors.Is(err, sql.ErrNoRows) {
		return worklog.Session{}, false, nil
	}
	if err != nil {
		return worklog.Session{}, false, fmt.Errorf("query session: %w", err)
	}

	start, err := time.Parse(time.RFC3339, startRaw)
	if err != nil {
		return worklog.Session{}, false, fmt.Errorf("parse session start %q: %w", startRaw, err)
	}

	rows, err := s.db.Query(`SELECT task_type, description FROM session_tasks ORDER BY position;`)
	if err != nil {
		return worklog.Session{}, false, fmt.Errorf("query session tasks: %w", err)
	}
	defer rows.Close()

	session := worklog.Session{Start: start}
	for rows.Next() {
		var (
			taskType    string
			description string
		)
		if err := rows.Scan(&taskType, &description); err != nil {
			return worklog.Session{}, false, fmt.Errorf("scan session task: %w", err)
		}
		session.Tasks = append(session.Tasks, worklog.Task{
			Type:        worklog.ParseTaskType(taskType),
			Description: description,
		})
	}
	if err := rows.Err(); err != nil {
		return worklog.Session{}, false, fmt.Errorf("iterate session tasks: %w", err)
	}
	return session, true, nil
}

// AppendSessionTask adds a task to the running session.
func (s *SQLiteStore) AppendSessionTask(task worklog.Task) error {
	_, active, err := s.ActiveSession()
	if err != nil {
		return err
	}
	if !active {
		return ErrNoSession
	}

	_, err = s.db.Exec(
		`INSERT INTO session_tasks (position, task_type, description)
		 VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM session_tasks), ?, ?);`,
		string(task.Type), task.Description,
	)
	if err != nil {
		return fmt.Errorf("append session task: %w", err)
	}
	return nil
}

// ClearSession drops the session slot and its tasks. Called after the derived
// entry has been persisted, and by an explicit cancel.
func (s *SQLiteStore) ClearSession() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM session_tasks;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear session tasks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM session;`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("clear session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
