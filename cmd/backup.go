package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"liftec/backup"
)

var (
	backupOutput    string
	backupInput     string
	backupOverwrite bool
	backupDBPath    string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Snapshot and restore the ledger as YAML",
}

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Write all entries and on-call periods to a YAML snapshot",
	Example: `
  liftec backup create -o liftec-backup.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(backupDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		count, err := backup.Create(store, backupOutput)
		if err != nil {
			return err
		}

		fmt.Printf("Backup written to %s (%d entries)\n", backupOutput, count)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Load a YAML snapshot into the ledger",
	Long: `Load a snapshot. Entries whose date is already occupied are skipped
unless --overwrite is set; on-call periods are only restored into an empty
period table so their numbering stays intact.`,
	Example: `
  liftec backup restore -i liftec-backup.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(backupDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := backup.Restore(store, backupInput, backupOverwrite)
		if err != nil {
			return err
		}

		fmt.Printf("Restored %d entries from %s", result.Restored, backupInput)
		if result.Skipped > 0 {
			fmt.Printf(", skipped %d occupied dates (use --overwrite to replace)", result.Skipped)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)

	backupCreateCmd.Flags().StringVarP(&backupOutput, "output", "o", "liftec-backup.yaml", "Snapshot file to write")
	backupRestoreCmd.Flags().StringVarP(&backupInput, "input", "i", "", "Snapshot file to load")
	backupRestoreCmd.Flags().BoolVar(&backupOverwrite, "overwrite", false, "Replace entries on already occupied dates")
	backupCmd.PersistentFlags().StringVar(&backupDBPath, "db", "", "Path to local SQLite database")

	_ = backupRestoreCmd.MarkFlagRequired("input")
}
