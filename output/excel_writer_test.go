package output

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"liftec/worklog"
)

func writeTestWorkbook(t *testing.T, rows []MonthlyRow, meta Meta) *excelize.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	writer := &ExcelWriter{}
	if err := writer.Write(path, rows, meta); err != nil {
		t.Fatalf("write workbook: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { _ = file.Close() })
	return file
}

func TestExcelWriter_SheetTitleAndHeaders(t *testing.T) {
	meta := Meta{Username: "Max", Year: 2024, Month: 3, Language: "de"}
	rows := MaterializeMonth(2024, 3, nil)

	file := writeTestWorkbook(t, rows, meta)
	sheet := file.GetSheetName(0)
	if sheet != "Arbeitszeit Max 03 2024" {
		t.Fatalf("sheet name = %q", sheet)
	}

	title, err := file.GetCellValue(sheet, "A1")
	if err != nil || title != "März 2024" {
		t.Fatalf("title cell = %q err=%v", title, err)
	}
	name, err := file.GetCellValue(sheet, "L1")
	if err != nil || name != "NAME: Max" {
		t.Fatalf("name cell = %q err=%v", name, err)
	}

	header, err := file.GetCellValue(sheet, "B2")
	if err != nil || header != "Wochentag" {
		t.Fatalf("header B2 = %q err=%v", header, err)
	}
	rotated, err := file.GetCellValue(sheet, "H2")
	if err != nil || rotated != "Neuanlage" {
		t.Fatalf("header H2 = %q err=%v", rotated, err)
	}
}

func TestExcelWriter_WeekdayIsFormulaNotValue(t *testing.T) {
	meta := Meta{Username: "Max", Year: 2024, Month: 3, Language: "de"}
	rows := MaterializeMonth(2024, 3, nil)

	file := writeTestWorkbook(t, rows, meta)
	sheet := file.GetSheetName(0)

	formula, err := file.GetCellFormula(sheet, "B3")
	if err != nil {
		t.Fatalf("read weekday formula: %v", err)
	}
	if formula != `TEXT(A3,"dddd")` {
		t.Fatalf("weekday formula = %q, must reference the date cell", formula)
	}
}

func TestExcelWriter_OneRowPerCalendarDay(t *testing.T) {
	meta := Meta{Username: "Max", Year: 2024, Month: 2, Language: "de"}
	rows := MaterializeMonth(2024, 2, nil)

	file := writeTestWorkbook(t, rows, meta)
	sheet := file.GetSheetName(0)

	all, err := file.GetRows(sheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	// Title row + header row + 29 data rows for leap-year February.
	if len(all) != 31 {
		t.Fatalf("got %d rows, want 31", len(all))
	}
}

func TestExcelWriter_TaskMarksAndTasksColumn(t *testing.T) {
	entry := worklog.Entry{
		Date:      "04.03.2024",
		StartTime: "08:00",
		EndTime:   "16:00",
		Tasks: []worklog.Task{
			{Type: worklog.TaskRepair, Description: "Pumpe getauscht"},
		},
	}
	meta := Meta{Username: "Max", Year: 2024, Month: 3, Language: "de"}
	rows := MaterializeMonth(2024, 3, []worklog.Entry{entry})

	file := writeTestWorkbook(t, rows, meta)
	sheet := file.GetSheetName(0)

	// 04.03. is the fourth data row: spreadsheet row 6.
	mark, err := file.GetCellValue(sheet, "J6")
	if err != nil || mark != "X" {
		t.Fatalf("repair mark J6 = %q err=%v", mark, err)
	}
	other, err := file.GetCellValue(sheet, "H6")
	if err != nil || other != "" {
		t.Fatalf("unset mark H6 = %q err=%v", other, err)
	}
	tasks, err := file.GetCellValue(sheet, "L6")
	if err != nil || tasks != "Pumpe getauscht [R]" {
		t.Fatalf("tasks cell L6 = %q err=%v", tasks, err)
	}
}
