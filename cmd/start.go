package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liftec/internal/timeutil"
	"liftec/storage"
)

var (
	startAt     string
	startDBPath string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a work session",
	Long: `Start the single work session slot. Only one session can run at a time;
end it with "liftec stop" to persist the derived worklog entry.`,
	Example: `
  # Start now
  liftec start

  # Backdate the start to 07:30 today
  liftec start --at 07:30
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		if startAt != "" {
			clock, err := time.Parse(timeutil.ClockLayout, startAt)
			if err != nil {
				return fmt.Errorf("parse --at %q: %w", startAt, err)
			}
			start = time.Date(start.Year(), start.Month(), start.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
		}

		store, err := openStore(startDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.StartSession(start); err != nil {
			if errors.Is(err, storage.ErrSessionActive) {
				return fmt.Errorf("a session is already running; stop it first with: liftec stop")
			}
			return err
		}

		fmt.Printf("Session started at %s %s\n", timeutil.FormatDate(start), start.Format(timeutil.ClockLayout))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().StringVar(&startAt, "at", "", "Session start time today (HH:MM, default: now)")
	startCmd.Flags().StringVar(&startDBPath, "db", "", "Path to local SQLite database")
}
