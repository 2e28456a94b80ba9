package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"liftec/internal/timeutil"
	"liftec/worklog"
)

// dayLayout is the sortable storage format for calendar dates. Entries carry
// DD.MM.YYYY at the domain layer; the conversion happens on scan and insert.
const dayLayout = "2006-01-02"

var (
	ErrEntryNotFound = errors.New("worklog entry not found")
	// ErrDateTaken signals a duplicate-date write. Resolution (overwrite,
	// keep, cancel) is the caller's decision, never the store's.
	ErrDateTaken      = errors.New("an entry already exists for this date")
	ErrSessionActive  = errors.New("a session is already running")
	ErrNoSession      = errors.New("no session is running")
	ErrOnCallActive   = errors.New("an on-call period is already active")
	ErrNoActiveOnCall = errors.New("no on-call period is active")
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	day TEXT NOT NULL UNIQUE,
	start_time TEXT NOT NULL DEFAULT '',
	end_time TEXT NOT NULL DEFAULT '',
	pause TEXT NOT NULL DEFAULT '',
	travel_time TEXT NOT NULL DEFAULT '',
	surcharge TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS entry_tasks (
	entry_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	task_type TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (entry_id, position)
);

CREATE TABLE IF NOT EXISTS session (
	slot INTEGER PRIMARY KEY CHECK (slot = 1),
	start_datetime TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_tasks (
	position INTEGER PRIMARY KEY,
	task_type TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS oncall_periods (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	start_date TEXT NOT NULL,
	start_time TEXT NOT NULL,
	end_date TEXT NOT NULL DEFAULT '',
	end_time TEXT NOT NULL DEFAULT '',
	active INTEGER NOT NULL DEFAULT 1
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func storageDay(displayDate string) (string, error) {
	date, err := timeutil.ParseDate(displayDate)
	if err != nil {
		return "", err
	}
	return date.Format(dayLayout), nil
}

func displayDate(day string) (string, error) {
	date, err := time.ParseInLocation(dayLayout, day, time.Local)
	if err != nil {
		return "", fmt.Errorf("parse stored day %q: %w", day, err)
	}
	return timeutil.FormatDate(date), nil
}

// InsertEntry persists a new entry. A second entry for an occupied date is
// rejected with ErrDateTaken so the caller can offer overwrite/keep/cancel.
func (s *SQLiteStore) InsertEntry(entry worklog.Entry) (int64, error) {
	day, err := storageDay(entry.Date)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	res, err := tx.Exec(
		`INSERT OR IGNORE INTO entries (day, start_time, end_time, pause, travel_time, surcharge)
		 VALUES (?, ?, ?, ?, ?, ?);`,
		day, entry.StartTime, entry.EndTime, entry.Pause, entry.Travel, entry.Surcharge,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read inserted row count: %w", err)
	}
	if rows == 0 {
		_ = tx.Rollback()
		return 0, ErrDateTaken
	}

	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}

	if err := insertTasks(tx, id, entry.Tasks); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

// ReplaceEntryForDate removes any existing entry on the entry's date and
// inserts the given one; the overwrite branch of conflict resolution.
func (s *SQLiteStore) ReplaceEntryForDate(entry worklog.Entry) (int64, error) {
	day, err := storageDay(entry.Date)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	var existingID int64
	err = tx.QueryRow(`SELECT id FROM entries WHERE day = ?;`, day).Scan(&existingID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		_ = tx.Rollback()
		return 0, fmt.Errorf("query entry for day %s: %w", day, err)
	}
	if err == nil {
		if _, err := tx.Exec(`DELETE FROM entry_tasks WHERE entry_id = ?;`, existingID); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete tasks of entry %d: %w", existingID, err)
		}
		if _, err := tx.Exec(`DELETE FROM entries WHERE id = ?;`, existingID); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("delete entry %d: %w", existingID, err)
		}
	}

	res, err := tx.Exec(
		`INSERT INTO entries (day, start_time, end_time, pause, travel_time, surcharge)
		 VALUES (?, ?, ?, ?, ?, ?);`,
		day, entry.StartTime, entry.EndTime, entry.Pause, entry.Travel, entry.Surcharge,
	)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("read inserted row id: %w", err)
	}

	if err := insertTasks(tx, id, entry.Tasks); err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return id, nil
}

func insertTasks(tx *sql.Tx, entryID int64, tasks []worklog.Task) error {
	for position, task := range tasks {
		_, err := tx.Exec(
			`INSERT INTO entry_tasks (entry_id, position, task_type, description) VALUES (?, ?, ?, ?);`,
			entryID, position, string(task.Type), task.Description,
		)
		if err != nil {
			return fmt.Errorf("insert task %d of entry %d: %w", position, entryID, err)
		}
	}
	return nil
}

// UpdateEntry replaces all user-editable fields of the row with the entry's ID.
func (s *SQLiteStore) UpdateEntry(entry worklog.Entry) error {
	if entry.ID <= 0 {
		return fmt.Errorf("entry id must be > 0")
	}
	day, err := storageDay(entry.Date)
	if err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	res, err := tx.Exec(
		`UPDATE entries
		 SET day = ?, start_time = ?, end_time = ?, pause = ?, travel_time = ?, surcharge = ?
		 WHERE id = ?;`,
		day, entry.StartTime, entry.EndTime, entry.Pause, entry.Travel, entry.Surcharge, entry.ID,
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update entry %d: %w", entry.ID, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("read updated row count: %w", err)
	}
	if rows == 0 {
		_ = tx.Rollback()
		return ErrEntryNotFound
	}

	if _, err := tx.Exec(`DELETE FROM entry_tasks WHERE entry_id = ?;`, entry.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete tasks of entry %d: %w", entry.ID, err)
	}
	if err := insertTasks(tx, entry.ID, entry.Tasks); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// DeleteEntry removes the entry with the given ID and its tasks.
func (s *SQLiteStore) DeleteEntry(id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("entry id must be > 0")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM entry_tasks WHERE entry_id = ?;`, id); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("delete tasks of entry %d: %w", id, err)
	}
	res, err := tx.Exec(`DELETE FROM entries WHERE id = ?;`, id)
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("delete entry %d: %w", id, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("read deleted row count: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}
	return rows > 0, nil
}

// GetEntryByDate returns the entry on the given DD.MM.YYYY date, if any.
func (s *SQLiteStore) GetEntryByDate(date string) (worklog.Entry, bool, error) {
	day, err := storageDay(date)
	if err != nil {
		return worklog.Entry{}, false, err
	}
	entries, err := s.queryEntries(`WHERE day = ?`, day)
	if err != nil {
		return worklog.Entry{}, false, err
	}
	if len(entries) == 0 {
		return worklog.Entry{}, false, nil
	}
	return entries[0], true, nil
}

// ListEntries returns every entry, date-ordered ascending.
func (s *SQLiteStore) ListEntries() ([]worklog.Entry, error) {
	return s.queryEntries(``)
}

// EntriesInRange returns entries whose date falls inside [start, end],
// inclusive on both sides, date-ordered.
func (s *SQLiteStore) EntriesInRange(start, end time.Time) ([]worklog.Entry, error) {
	return s.queryEntries(`WHERE day BETWEEN ? AND ?`, start.Format(dayLayout), end.Format(dayLayout))
}

// EntriesForMonth returns the entries of one calendar month, date-ordered.
func (s *SQLiteStore) EntriesForMonth(year, month int) ([]worklog.Entry, error) {
	first := timeutil.Date(year, time.Month(month), 1)
	last := timeutil.Date(year, time.Month(month), timeutil.DaysInMonth(year, month))
	return s.EntriesInRange(first, last)
}

func (s *SQLiteStore) queryEntries(where string, args ...any) ([]worklog.Entry, error) {
	query := `
SELECT id, day, start_time, end_time, pause, travel_time, surcharge
FROM entries ` + where + `
ORDER BY day;`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]worklog.Entry, 0, 32)
	for rows.Next() {
		var (
			entry worklog.Entry
			day   string
		)
		if err := rows.Scan(&entry.ID, &day, &entry.StartTime, &entry.EndTime, &entry.Pause, &entry.Travel, &entry.Surcharge); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.Date, err = displayDate(day)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	for i := range entries {
		tasks, err := s.tasksForEntry(entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Tasks = tasks
	}
	return entries, nil
}

func (s *SQLiteStore) tasksForEntry(entryID int64) ([]worklog.Task, error) {
	rows, err := s.db.Query(
		`SELECT task_type, description FROM entry_tasks WHERE entry_id = ? ORDER BY position;`,
		entryID,
	)
	if err != nil {
		return nil, fmt.Errorf("query tasks of entry %d: %w", entryID, err)
	}
	defer rows.Close()

	tasks := make([]worklog.Task, 0, 4)
	for rows.Next() {
		var (
			taskType    string
			description string
		)
		if err := rows.Scan(&taskType, &description); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, worklog.Task{Type: worklog.ParseTaskType(taskType), Description: description})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return tasks, nil
}
