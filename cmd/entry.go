package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"liftec/config"
	"liftec/holiday"
	"liftec/internal/timeutil"
	"liftec/storage"
	"liftec/worklog"
)

var (
	entryDate      string
	entryAbsence   string
	entryStart     string
	entryEnd       string
	entryPause     string
	entryTravel    string
	entryOverwrite bool
	entryListMonth int
	entryListYear  int
	entryDeleteID  int64
	entryDBPath    string
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage worklog entries directly",
}

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an entry without a session",
	Long: `Record a worklog entry directly. The usual path is start/stop; entry add
covers the two cases a session cannot: absences (a date plus a reason, no
times) and retroactive work entries with explicit times.

Absence entries carry no hours; in exports the reason fills the activity
column and all time columns stay empty.`,
	Example: `
  # A vacation day
  liftec entry add --date 05.03.2024 --absence Urlaub

  # Yesterday's forgotten work day
  liftec entry add --date 04.03.2024 --start 08:00 --end 16:30 --pause 00:30
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date := strings.TrimSpace(entryDate)
		if _, err := timeutil.ParseDate(date); err != nil {
			return fmt.Errorf("parse --date %q: %w", entryDate, err)
		}

		entry := worklog.Entry{Date: date}
		if entryAbsence != "" {
			if entryStart != "" || entryEnd != "" {
				return errors.New("--absence cannot be combined with --start/--end")
			}
			entry.Tasks = []worklog.Task{{Type: worklog.TaskNone, Description: entryAbsence}}
		} else {
			if entryStart == "" || entryEnd == "" {
				return errors.New("either --absence or both --start and --end are required")
			}
			start, err := timeutil.ParseDateTime(date, entryStart)
			if err != nil {
				return fmt.Errorf("parse --start %q: %w", entryStart, err)
			}
			end, err := timeutil.ParseDateTime(date, entryEnd)
			if err != nil {
				return fmt.Errorf("parse --end %q: %w", entryEnd, err)
			}
			if !end.After(start) {
				return fmt.Errorf("--end %s must be after --start %s", entryEnd, entryStart)
			}
			entry.StartTime = entryStart
			entry.EndTime = entryEnd
			entry.Pause = entryPause
			entry.Travel = entryTravel
		}

		store, err := openStore(entryDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if entryOverwrite {
			if _, err := store.ReplaceEntryForDate(entry); err != nil {
				return err
			}
		} else {
			if _, err := store.InsertEntry(entry); err != nil {
				if errors.Is(err, storage.ErrDateTaken) {
					return fmt.Errorf("an entry for %s already exists; rerun with --overwrite to replace it", entry.Date)
				}
				return err
			}
		}

		if entry.IsWorkDay() {
			fmt.Printf("Entry saved for %s: %s-%s, net %s\n",
				entry.Date, entry.StartTime, entry.EndTime, timeutil.HoursToHHMM(entry.NetHours()))
		} else {
			fmt.Printf("Absence saved for %s: %s\n", entry.Date, entryAbsence)
		}
		if name, ok := holiday.Lookup(entry.Date, viper.GetString(config.KeyLanguage)); ok {
			fmt.Printf("Note: %s is a public holiday (%s)\n", entry.Date, name)
		}
		return nil
	},
}

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored entries",
	Long: `List stored entries in date order. Without flags all entries are shown;
--month and --year restrict the listing to one calendar month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(entryDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var entries []worklog.Entry
		if entryListMonth != 0 || entryListYear != 0 {
			year, month, err := resolveMonth(entryListMonth, entryListYear)
			if err != nil {
				return err
			}
			entries, err = store.EntriesForMonth(year, month)
			if err != nil {
				return err
			}
		} else {
			entries, err = store.ListEntries()
			if err != nil {
				return err
			}
		}

		if len(entries) == 0 {
			fmt.Println("No entries found.")
			return nil
		}
		for _, entry := range entries {
			fmt.Println(entryLine(entry))
		}
		return nil
	},
}

var entryEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an existing entry by date",
	Long: `Edit the times of an existing entry. Only the flags given change;
the surcharge is recomputed from the configured percentage whenever the
resulting entry records presence.`,
	Example: `
  # Correct a forgotten pause
  liftec entry edit --date 04.03.2024 --pause 00:45
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(entryDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		entry, found, err := store.GetEntryByDate(entryDate)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no entry for %s", entryDate)
		}

		if cmd.Flags().Changed("start") {
			entry.StartTime = entryStart
		}
		if cmd.Flags().Changed("end") {
			entry.EndTime = entryEnd
		}
		if cmd.Flags().Changed("pause") {
			entry.Pause = entryPause
		}
		if cmd.Flags().Changed("travel") {
			entry.Travel = entryTravel
		}
		if entry.IsWorkDay() {
			percent := viper.GetFloat64(config.KeySurchargePercent)
			entry.Surcharge = timeutil.HoursToHHMM(timeutil.SurchargeHours(entry.NetHours(), percent))
		}

		if err := store.UpdateEntry(entry); err != nil {
			return err
		}

		fmt.Printf("Entry updated: %s\n", entryLine(entry))
		return nil
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete an entry by id",
	Example: `
  liftec entry delete --id 42
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(entryDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		deleted, err := store.DeleteEntry(entryDeleteID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("no entry with id %d", entryDeleteID)
		}

		fmt.Printf("Entry %d deleted.\n", entryDeleteID)
		return nil
	},
}

func entryLine(entry worklog.Entry) string {
	if !entry.IsWorkDay() {
		reason := ""
		if len(entry.Tasks) > 0 {
			reason = entry.Tasks[0].Description
		}
		return fmt.Sprintf("%4d  %s  %s", entry.ID, entry.Date, reason)
	}

	var tasks []string
	for _, task := range entry.Tasks {
		tasks = append(tasks, taskLabel(task))
	}
	return fmt.Sprintf("%4d  %s  %s-%s  net %s  %s",
		entry.ID, entry.Date, entry.StartTime, entry.EndTime,
		timeutil.HoursToHHMM(entry.NetHours()), strings.Join(tasks, ", "))
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryEditCmd)
	entryCmd.AddCommand(entryDeleteCmd)

	entryAddCmd.Flags().StringVar(&entryDate, "date", "", "Entry date (DD.MM.YYYY)")
	entryAddCmd.Flags().StringVar(&entryAbsence, "absence", "", "Absence reason, e.g. Urlaub or Krankenstand")
	entryAddCmd.Flags().StringVar(&entryStart, "start", "", "Work start (HH:MM)")
	entryAddCmd.Flags().StringVar(&entryEnd, "end", "", "Work end (HH:MM)")
	entryAddCmd.Flags().StringVar(&entryPause, "pause", "", "Pause duration (HH:MM)")
	entryAddCmd.Flags().StringVar(&entryTravel, "travel", "", "Travel time (HH:MM)")
	entryAddCmd.Flags().BoolVar(&entryOverwrite, "overwrite", false, "Replace an existing entry on the same date")

	entryEditCmd.Flags().StringVar(&entryDate, "date", "", "Entry date (DD.MM.YYYY)")
	entryEditCmd.Flags().StringVar(&entryStart, "start", "", "Work start (HH:MM)")
	entryEditCmd.Flags().StringVar(&entryEnd, "end", "", "Work end (HH:MM)")
	entryEditCmd.Flags().StringVar(&entryPause, "pause", "", "Pause duration (HH:MM)")
	entryEditCmd.Flags().StringVar(&entryTravel, "travel", "", "Travel time (HH:MM)")

	entryListCmd.Flags().IntVar(&entryListMonth, "month", 0, "Restrict to month (1-12)")
	entryListCmd.Flags().IntVar(&entryListYear, "year", 0, "Restrict to year (default: current year when --month is set)")

	entryDeleteCmd.Flags().Int64Var(&entryDeleteID, "id", 0, "Entry id (see: liftec entry list)")

	entryCmd.PersistentFlags().StringVar(&entryDBPath, "db", "", "Path to local SQLite database")

	_ = entryAddCmd.MarkFlagRequired("date")
	_ = entryEditCmd.MarkFlagRequired("date")
	_ = entryDeleteCmd.MarkFlagRequired("id")
}
