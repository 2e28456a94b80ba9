package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liftec/config"
	"liftec/output"
)

var (
	exportFormat string
	exportMonth  int
	exportYear   int
	exportOutput string
	exportDBPath string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a month as CSV or Excel timesheet",
	Long: `Export one calendar month as a timesheet. The sheet always carries one
row per calendar day; days without an entry become empty placeholder rows.
Months without a single stored entry are refused rather than exported empty.

CSV files are written with a UTF-8 byte order mark and semicolon separators
so spreadsheet applications open them correctly.`,
	Example: `
  # Current month as CSV into the working directory
  liftec export

  # March 2024 as Excel workbook
  liftec export --month 3 --year 2024 --format excel

  # Explicit target path
  liftec export --month 3 --year 2024 -o /tmp/march.csv
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		year, month, err := resolveMonth(exportMonth, exportYear)
		if err != nil {
			return err
		}

		writer, err := output.WriterForFormat(exportFormat)
		if err != nil {
			return err
		}

		store, err := openStore(exportDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.EntriesForMonth(year, month)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("no entries recorded for %02d/%04d, nothing to export", month, year)
		}

		path := exportOutput
		if path == "" {
			path = defaultExportPath(exportFormat, cfg, year, month)
		}

		rows := output.MaterializeMonth(year, month, entries)
		meta := output.Meta{
			Username: cfg.User.Name,
			Year:     year,
			Month:    month,
			Language: cfg.User.Language,
		}
		if err := writer.Write(path, rows, meta); err != nil {
			return err
		}

		fmt.Printf("Exported %02d/%04d (%d entries, %d rows) to %s\n", month, year, len(entries), len(rows), path)
		return nil
	},
}

func defaultExportPath(format string, cfg *config.Config, year, month int) string {
	switch strings.TrimSpace(strings.ToLower(format)) {
	case "excel", "xlsx":
		return output.ExcelFilename(cfg.User.Name, year, month, cfg.User.Language)
	default:
		return output.CSVFilename(cfg.User.Name, year, month)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv|excel")
	exportCmd.Flags().IntVar(&exportMonth, "month", 0, "Month to export (1-12, default: current)")
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "Year to export (default: current)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Target file path (default: derived from username and month)")
	exportCmd.Flags().StringVar(&exportDBPath, "db", "", "Path to local SQLite database")
}
