package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"liftec/importer"
	"liftec/storage"
)

var (
	importInput     string
	importOverwrite bool
	importDBPath    string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import entries from an exported CSV file",
	Long: `Import worklog entries from a CSV timesheet, typically a hand-edited
earlier export. Placeholder rows are ignored; rows whose date is already
occupied are skipped unless --overwrite is set.`,
	Example: `
  liftec import -i Max_Mustermann_2024-03.csv
  liftec import -i Max_Mustermann_2024-03.csv --overwrite
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := &importer.CSVReader{}
		entries, err := reader.Read(importInput)
		if err != nil {
			return err
		}

		store, err := openStore(importDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		imported, skipped := 0, 0
		for _, entry := range entries {
			if importOverwrite {
				if _, err := store.ReplaceEntryForDate(entry); err != nil {
					return fmt.Errorf("import %s: %w", entry.Date, err)
				}
				imported++
				continue
			}
			if _, err := store.InsertEntry(entry); err != nil {
				if errors.Is(err, storage.ErrDateTaken) {
					skipped++
					continue
				}
				return fmt.Errorf("import %s: %w", entry.Date, err)
			}
			imported++
		}

		fmt.Printf("Imported %d entries from %s", imported, importInput)
		if skipped > 0 {
			fmt.Printf(", skipped %d occupied dates (use --overwrite to replace)", skipped)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importInput, "input", "i", "", "CSV file to import")
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "Replace entries on already occupied dates")
	importCmd.Flags().StringVar(&importDBPath, "db", "", "Path to local SQLite database")

	_ = importCmd.MarkFlagRequired("input")
}
