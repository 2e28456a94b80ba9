package output

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"liftec/internal/timeutil"
	"liftec/worklog"
)

// ExcelWriter emits the printable monthly timesheet workbook. The layout
// mirrors the shared paper template: merged title row, rotated task-type
// headers, shaded weekend rows, and a weekday column driven by a formula so
// a date edited in the sheet keeps its weekday in sync.
type ExcelWriter struct{}

var excelHeaders = []string{
	"Datum", "Wochentag", "Arbeitszeit ein", "Arbeitszeit aus", "Pause Dauer",
	"Fahrtzeit", "Schmutzzulage", "Neuanlage", "Demontage", "Reparatur",
	"Wartung", "Einsatzort/Tätigkeit/Bemerkungen",
}

const weekendFillColor = "DDDDDD"

type excelStyles struct {
	title    int
	name     int
	header   int
	rotated  int
	date     int
	dateWknd int
	timeVal  int
	timeWknd int
	timeZero int
	zeroWknd int
	text     int
	textWknd int
}

func (w *ExcelWriter) Write(path string, rows []MonthlyRow, meta Meta) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet, err := renameSheet(file, meta)
	if err != nil {
		return err
	}

	styles, err := buildStyles(file)
	if err != nil {
		return err
	}

	if err := writeTitleRow(file, sheet, styles, meta); err != nil {
		return err
	}
	if err := writeHeaderRow(file, sheet, styles); err != nil {
		return err
	}

	for i, row := range rows {
		if err := writeDataRow(file, sheet, styles, i+3, row); err != nil {
			return err
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}
	return nil
}

func renameSheet(file *excelize.File, meta Meta) (string, error) {
	title := fmt.Sprintf("Arbeitszeit %s %02d %04d", meta.Username, meta.Month, meta.Year)
	// Sheet names are capped at 31 characters by the file format.
	if runes := []rune(title); len(runes) > 31 {
		title = string(runes[:31])
	}
	if err := file.SetSheetName(file.GetSheetName(0), title); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}
	return title, nil
}

func buildStyles(file *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	timeFmt := "[h]:mm"
	// Renders stored zero durations as blank cells while keeping them numeric
	// for spreadsheet formulas.
	blankZeroFmt := "[h]:mm;;"
	dateFmt := "dd.mm.yyyy"

	weekendFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{weekendFillColor}}

	if styles.title, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFE699"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	}); err != nil {
		return styles, fmt.Errorf("create title style: %w", err)
	}
	if styles.name, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	}); err != nil {
		return styles, fmt.Errorf("create name style: %w", err)
	}
	if styles.header, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return styles, fmt.Errorf("create header style: %w", err)
	}
	if styles.rotated, err = file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "bottom", TextRotation: 90},
	}); err != nil {
		return styles, fmt.Errorf("create rotated header style: %w", err)
	}

	if styles.date, err = file.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt}); err != nil {
		return styles, fmt.Errorf("create date style: %w", err)
	}
	if styles.dateWknd, err = file.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt, Fill: weekendFill}); err != nil {
		return styles, fmt.Errorf("create weekend date style: %w", err)
	}
	if styles.timeVal, err = file.NewStyle(&excelize.Style{CustomNumFmt: &timeFmt}); err != nil {
		return styles, fmt.Errorf("create time style: %w", err)
	}
	if styles.timeWknd, err = file.NewStyle(&excelize.Style{CustomNumFmt: &timeFmt, Fill: weekendFill}); err != nil {
		return styles, fmt.Errorf("create weekend time style: %w", err)
	}
	if styles.timeZero, err = file.NewStyle(&excelize.Style{CustomNumFmt: &blankZeroFmt}); err != nil {
		return styles, fmt.Errorf("create blank-zero time style: %w", err)
	}
	if styles.zeroWknd, err = file.NewStyle(&excelize.Style{CustomNumFmt: &blankZeroFmt, Fill: weekendFill}); err != nil {
		return styles, fmt.Errorf("create weekend blank-zero style: %w", err)
	}
	if styles.text, err = file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return styles, fmt.Errorf("create text style: %w", err)
	}
	if styles.textWknd, err = file.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Fill:      weekendFill,
	}); err != nil {
		return styles, fmt.Errorf("create weekend text style: %w", err)
	}

	return styles, nil
}

func writeTitleRow(file *excelize.File, sheet string, styles excelStyles, meta Meta) error {
	if err := file.MergeCell(sheet, "A1", "G1"); err != nil {
		return fmt.Errorf("merge title cell: %w", err)
	}
	title := fmt.Sprintf("%s %04d", MonthName(meta.Month, meta.Language), meta.Year)
	if err := file.SetCellValue(sheet, "A1", title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if err := file.SetCellStyle(sheet, "A1", "G1", styles.title); err != nil {
		return fmt.Errorf("style title: %w", err)
	}

	if err := file.SetCellValue(sheet, "L1", fmt.Sprintf("NAME: %s", meta.Username)); err != nil {
		return fmt.Errorf("set name cell: %w", err)
	}
	if err := file.SetCellStyle(sheet, "L1", "L1", styles.name); err != nil {
		return fmt.Errorf("style name cell: %w", err)
	}

	if err := file.SetRowHeight(sheet, 1, 24); err != nil {
		return fmt.Errorf("set title row height: %w", err)
	}
	return nil
}

func writeHeaderRow(file *excelize.File, sheet string, styles excelStyles) error {
	for col, header := range excelHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}
	if err := file.SetCellStyle(sheet, "A2", "G2", styles.header); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	// Task-type columns: narrow with vertical labels.
	if err := file.SetCellStyle(sheet, "H2", "K2", styles.rotated); err != nil {
		return fmt.Errorf("style rotated headers: %w", err)
	}
	if err := file.SetCellStyle(sheet, "L2", "L2", styles.header); err != nil {
		return fmt.Errorf("style header row: %w", err)
	}
	if err := file.SetRowHeight(sheet, 2, 78); err != nil {
		return fmt.Errorf("set header row height: %w", err)
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "A", 11}, {"B", "B", 12}, {"C", "G", 10}, {"H", "K", 3.5}, {"L", "L", 46},
	}
	for _, w := range widths {
		if err := file.SetColWidth(sheet, w.from, w.to, w.width); err != nil {
			return fmt.Errorf("set column width %s:%s: %w", w.from, w.to, err)
		}
	}
	return nil
}

func writeDataRow(file *excelize.File, sheet string, styles excelStyles, rowNum int, row MonthlyRow) error {
	date, err := timeutil.ParseDate(row.Date)
	if err != nil {
		return err
	}
	weekend := date.Weekday() == time.Saturday || date.Weekday() == time.Sunday

	dateStyle := styles.date
	timeStyle := styles.timeVal
	zeroStyle := styles.timeZero
	textStyle := styles.text
	if weekend {
		dateStyle = styles.dateWknd
		timeStyle = styles.timeWknd
		zeroStyle = styles.zeroWknd
		textStyle = styles.textWknd
	}

	// Real date value, not a string; the weekday cell references it.
	dateCell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := file.SetCellValue(sheet, dateCell, date); err != nil {
		return fmt.Errorf("set date cell %s: %w", dateCell, err)
	}
	if err := file.SetCellStyle(sheet, dateCell, dateCell, dateStyle); err != nil {
		return fmt.Errorf("style date cell %s: %w", dateCell, err)
	}

	// Weekday by formula so a date edited in the sheet self-corrects.
	weekdayCell, _ := excelize.CoordinatesToCellName(2, rowNum)
	if err := file.SetCellFormula(sheet, weekdayCell, fmt.Sprintf(`TEXT(%s,"dddd")`, dateCell)); err != nil {
		return fmt.Errorf("set weekday formula %s: %w", weekdayCell, err)
	}
	if err := file.SetCellStyle(sheet, weekdayCell, weekdayCell, textStyle); err != nil {
		return fmt.Errorf("style weekday cell %s: %w", weekdayCell, err)
	}

	var entry worklog.Entry
	if row.Entry != nil {
		entry = *row.Entry
	}

	durations := []string{entry.StartTime, entry.EndTime, entry.Pause, entry.Travel, entry.Surcharge}
	for i, value := range durations {
		cell, _ := excelize.CoordinatesToCellName(3+i, rowNum)
		hours := timeutil.HHMMToHours(value)
		// Excel stores times as day fractions; [h]:mm keeps cumulative sums
		// past 24 hours readable.
		if err := file.SetCellValue(sheet, cell, hours/24); err != nil {
			return fmt.Errorf("set duration cell %s: %w", cell, err)
		}
		style := timeStyle
		if hours == 0 {
			style = zeroStyle
		}
		if err := file.SetCellStyle(sheet, cell, cell, style); err != nil {
			return fmt.Errorf("style duration cell %s: %w", cell, err)
		}
	}

	for i, taskType := range worklog.TaskTypes {
		cell, _ := excelize.CoordinatesToCellName(8+i, rowNum)
		if entry.HasTaskType(taskType) {
			if err := file.SetCellValue(sheet, cell, "X"); err != nil {
				return fmt.Errorf("set task mark %s: %w", cell, err)
			}
		}
		if err := file.SetCellStyle(sheet, cell, cell, textStyle); err != nil {
			return fmt.Errorf("style task mark %s: %w", cell, err)
		}
	}

	tasksCell, _ := excelize.CoordinatesToCellName(12, rowNum)
	if len(entry.Tasks) > 0 {
		if err := file.SetCellValue(sheet, tasksCell, TasksCell(entry.Tasks)); err != nil {
			return fmt.Errorf("set tasks cell %s: %w", tasksCell, err)
		}
	}
	if weekend {
		if err := file.SetCellStyle(sheet, tasksCell, tasksCell, styles.textWknd); err != nil {
			return fmt.Errorf("style tasks cell %s: %w", tasksCell, err)
		}
	}
	return nil
}
