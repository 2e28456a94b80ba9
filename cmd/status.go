package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liftec/internal/timeutil"
)

var statusDBPath string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the running session and active on-call period",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(statusDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		session, active, err := store.ActiveSession()
		if err != nil {
			return err
		}
		if active {
			elapsed := timeutil.DurationHours(session.Start, time.Now())
			fmt.Printf("Session running since %s %s (%s elapsed), tasks: %d\n",
				timeutil.FormatDate(session.Start), session.Start.Format(timeutil.ClockLayout),
				timeutil.HoursToHHMM(elapsed), len(session.Tasks))
		} else {
			fmt.Println("No session running.")
		}

		period, onCall, err := store.ActiveOnCall()
		if err != nil {
			return err
		}
		if onCall {
			fmt.Printf("On-call since %s %s\n", period.StartDate, period.StartTime)
		} else {
			fmt.Println("No active on-call period.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVar(&statusDBPath, "db", "", "Path to local SQLite database")
}
