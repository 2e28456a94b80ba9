// Package importer reads exported LIFTEC CSV files back into worklog
// entries. Decoding is deliberately lenient: these files get hand-edited in
// spreadsheet applications and passed through legacy tools, so malformed
// lines are skipped, never fatal.
package importer

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"liftec/worklog"
)

const fieldCount = 11

type CSVReader struct{}

// Read decodes one exported CSV file. Lines with fewer than 11
// semicolon-delimited fields are skipped, as are lines whose date field is
// empty after quote-stripping (which also drops placeholder rows). The
// decoder tolerates a UTF-8 BOM and UTF-16 re-encodings from spreadsheet
// round-trips.
func (r *CSVReader) Read(path string) ([]worklog.Entry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	scanner := bufio.NewScanner(transform.NewReader(file, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	entries := make([]worklog.Entry, 0, 31)
	first := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if first {
			first = false
			continue // header line
		}

		entry, ok := decodeLine(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read csv file %s: %w", path, err)
	}

	return entries, nil
}

func decodeLine(line string) (worklog.Entry, bool) {
	parts := strings.Split(line, ";")
	if len(parts) < fieldCount {
		return worklog.Entry{}, false
	}

	date := stripQuotes(parts[0])
	if date == "" {
		return worklog.Entry{}, false
	}

	// Semicolons inside the quoted tasks column split it apart; rejoin the tail.
	tasksField := stripQuotes(strings.Join(parts[10:], ";"))

	entry := worklog.Entry{
		Date:      date,
		StartTime: stripQuotes(parts[1]),
		EndTime:   stripQuotes(parts[2]),
		Pause:     stripQuotes(parts[3]),
		Travel:    stripQuotes(parts[4]),
		Surcharge: stripQuotes(parts[5]),
		Tasks:     parseTasks(tasksField),
	}

	// Placeholder rows carry a date and nothing else; they pad the export to
	// a full month and must not come back as entries.
	if entry.StartTime == "" && entry.EndTime == "" && entry.Pause == "" &&
		entry.Travel == "" && entry.Surcharge == "" && len(entry.Tasks) == 0 {
		return worklog.Entry{}, false
	}
	return entry, true
}

// parseTasks splits the tasks column on commas and recovers the type from a
// trailing "[X]" suffix per segment, defaulting to untyped when no suffix
// matches.
func parseTasks(field string) []worklog.Task {
	if strings.TrimSpace(field) == "" {
		return nil
	}

	segments := strings.Split(field, ",")
	tasks := make([]worklog.Task, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		task := worklog.Task{Type: worklog.TaskNone, Description: segment}
		if idx := strings.LastIndex(segment, " ["); idx >= 0 && strings.HasSuffix(segment, "]") {
			code := segment[idx+2 : len(segment)-1]
			if parsed := worklog.ParseTaskType(code); parsed != worklog.TaskNone {
				task.Type = parsed
				task.Description = segment[:idx]
			}
		}
		tasks = append(tasks, task)
	}
	return tasks
}

func stripQuotes(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	return strings.ReplaceAll(value, `""`, `"`)
}
