package output

import (
	"fmt"
	"os"
	"strings"

	"liftec/worklog"
)

// CSVHeader is the fixed semicolon-delimited column row of every export.
const CSVHeader = "Datum;Start;Ende;Pause;Fahrtzeit;SZ;N;D;R;W;Taetigkeiten"

// csvBOM makes the target spreadsheet application detect UTF-8 instead of a
// legacy codepage.
const csvBOM = "\uFEFF"

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, rows []MonthlyRow, _ Meta) error {
	if err := os.WriteFile(path, EncodeCSV(rows), 0o644); err != nil {
		return fmt.Errorf("write csv output %s: %w", path, err)
	}
	return nil
}

// EncodeCSV serializes materialized rows into the fixed interchange layout.
// The format is bit-exact: BOM prefix, the CSVHeader line, one \n-terminated
// line per row, placeholder rows with every field quoted-empty.
func EncodeCSV(rows []MonthlyRow) []byte {
	var b strings.Builder
	b.WriteString(csvBOM)
	b.WriteString(CSVHeader)
	b.WriteByte('\n')

	for _, row := range rows {
		if row.IsPlaceholder() {
			b.WriteString(quoteCSVField(row.Date))
			b.WriteString(strings.Repeat(`;""`, 10))
			b.WriteByte('\n')
			continue
		}

		entry := row.Entry
		fields := []string{
			row.Date,
			entry.StartTime,
			entry.EndTime,
			entry.Pause,
			entry.Travel,
			entry.Surcharge,
		}
		for _, taskType := range worklog.TaskTypes {
			fields = append(fields, taskTypeMark(*entry, taskType))
		}
		b.WriteString(strings.Join(fields, ";"))
		b.WriteByte(';')
		b.WriteString(quoteCSVField(TasksCell(entry.Tasks)))
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func taskTypeMark(entry worklog.Entry, taskType worklog.TaskType) string {
	if entry.HasTaskType(taskType) {
		return "X"
	}
	return ""
}

// TasksCell renders the final column: the comma-joined list of
// "description [type]", with the bracket suffix omitted for untyped tasks.
func TasksCell(tasks []worklog.Task) string {
	parts := make([]string, 0, len(tasks))
	for _, task := range tasks {
		if task.Type == worklog.TaskNone {
			parts = append(parts, task.Description)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s [%s]", task.Description, task.Type))
	}
	return strings.Join(parts, ", ")
}

// quoteCSVField double-quote-wraps a field, doubling embedded quotes and
// collapsing embedded newlines to a single space.
func quoteCSVField(value string) string {
	value = strings.ReplaceAll(value, "\r\n", " ")
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}
