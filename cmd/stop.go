package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liftec/config"
	"liftec/internal/timeutil"
	"liftec/storage"
	"liftec/worklog"
)

var (
	stopAt        string
	stopPause     string
	stopTravel    string
	stopOverwrite bool
	stopDBPath    string
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the running session and persist the worklog entry",
	Long: `End the running session. The session is converted into a worklog entry
for its start date: net hours are the clocked span minus pause and travel
time, and the surcharge is computed from the configured percentage, rounded
to half-hour granularity.

If an entry already exists for that date, the stop is rejected; pass
--overwrite to replace the existing entry. The session is kept either way
until the entry has been persisted.`,
	Example: `
  # End now with half an hour of pause
  liftec stop --pause 00:30

  # End at 16:30 and replace an existing entry for the day
  liftec stop --at 16:30 --overwrite
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		store, err := openStore(stopDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		session, active, err := store.ActiveSession()
		if err != nil {
			return err
		}
		if !active {
			return fmt.Errorf("no session is running; start one with: liftec start")
		}

		end := time.Now()
		if stopAt != "" {
			clock, parseErr := time.Parse(timeutil.ClockLayout, stopAt)
			if parseErr != nil {
				return fmt.Errorf("parse --at %q: %w", stopAt, parseErr)
			}
			end = time.Date(end.Year(), end.Month(), end.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
		}
		if !end.After(session.Start) {
			return fmt.Errorf("session end %s must be after its start %s", end.Format(timeutil.ClockLayout), session.Start.Format(timeutil.ClockLayout))
		}

		entry := worklog.NewEntryFromSession(session, end, stopPause, stopTravel, cfg.User.SurchargePercent)

		if stopOverwrite {
			if _, err := store.ReplaceEntryForDate(entry); err != nil {
				return err
			}
		} else {
			if _, err := store.InsertEntry(entry); err != nil {
				if errors.Is(err, storage.ErrDateTaken) {
					return fmt.Errorf("an entry for %s already exists; rerun with --overwrite to replace it, or delete it first", entry.Date)
				}
				return err
			}
		}

		if err := store.ClearSession(); err != nil {
			return err
		}

		fmt.Printf("Entry saved for %s: %s-%s, net %s, surcharge %s, tasks: %d\n",
			entry.Date, entry.StartTime, entry.EndTime,
			timeutil.HoursToHHMM(entry.NetHours()), entry.Surcharge, len(entry.Tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopCmd)

	stopCmd.Flags().StringVar(&stopAt, "at", "", "Session end time today (HH:MM, default: now)")
	stopCmd.Flags().StringVar(&stopPause, "pause", "", "Pause duration (HH:MM)")
	stopCmd.Flags().StringVar(&stopTravel, "travel", "", "Travel time (HH:MM)")
	stopCmd.Flags().BoolVar(&stopOverwrite, "overwrite", false, "Replace an existing entry on the same date")
	stopCmd.Flags().StringVar(&stopDBPath, "db", "", "Path to local SQLite database")
}
