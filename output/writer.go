package output

import (
	"fmt"
	"strings"
)

// Meta carries the settings an export needs; writers never read global state.
type Meta struct {
	Username string
	Year     int
	Month    int
	Language string
}

type Writer interface {
	Write(path string, rows []MonthlyRow, meta Meta) error
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

// CSVFilename builds the export filename {username}_{YYYY}-{MM}.csv with
// spaces in the username replaced by underscores.
func CSVFilename(username string, year, month int) string {
	return fmt.Sprintf("%s_%04d-%02d.csv", strings.ReplaceAll(username, " ", "_"), year, month)
}

// ExcelFilename builds the export filename Arbeitszeit {username} {MonthName} {YYYY}.xlsx.
func ExcelFilename(username string, year, month int, lang string) string {
	return fmt.Sprintf("Arbeitszeit %s %s %04d.xlsx", username, MonthName(month, lang), year)
}

var monthNames = map[string][12]string{
	"de": {"Januar", "Februar", "März", "April", "Mai", "Juni",
		"Juli", "August", "September", "Oktober", "November", "Dezember"},
	"en": {"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
	"hr": {"Siječanj", "Veljača", "Ožujak", "Travanj", "Svibanj", "Lipanj",
		"Srpanj", "Kolovoz", "Rujan", "Listopad", "Studeni", "Prosinac"},
}

// MonthName returns the localized month name; German is the default language.
func MonthName(month int, lang string) string {
	names, ok := monthNames[lang]
	if !ok {
		names = monthNames["de"]
	}
	if month < 1 || month > 12 {
		return ""
	}
	return names[month-1]
}
