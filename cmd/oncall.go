package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"liftec/internal/timeutil"
	"liftec/oncall"
	"liftec/storage"
	"liftec/worklog"
)

var oncallDBPath string

var oncallCmd = &cobra.Command{
	Use:   "oncall",
	Short: "Track on-call periods",
	Long: `Track on-call availability. A period runs from oncall start to oncall stop
and may span several days. When a period ends, the hours already clocked as
regular work inside the period are subtracted from its span, so the printed
figure is the remaining pure availability time.`,
}

var oncallStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin an on-call period",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(oncallDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		period, err := store.StartOnCall(time.Now())
		if err != nil {
			if errors.Is(err, storage.ErrOnCallActive) {
				return fmt.Errorf("an on-call period is already active; end it first with: liftec oncall stop")
			}
			return err
		}

		fmt.Printf("On-call period %d started at %s %s\n", period.ID, period.StartDate, period.StartTime)
		return nil
	},
}

var oncallStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "End the active on-call period and print its reconciled hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(oncallDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		period, err := store.EndOnCall(time.Now())
		if err != nil {
			if errors.Is(err, storage.ErrNoActiveOnCall) {
				return fmt.Errorf("no on-call period is active; begin one with: liftec oncall start")
			}
			return err
		}

		hours, err := oncall.PeriodHours(store, period)
		if err != nil {
			return err
		}

		fmt.Printf("On-call period %d ended: %s %s - %s %s, on-call hours: %s\n",
			period.ID, period.StartDate, period.StartTime, period.EndDate, period.EndTime,
			timeutil.HoursToHHMM(hours))
		return nil
	},
}

var oncallListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded on-call periods",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(oncallDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		periods, err := store.ListOnCall()
		if err != nil {
			return err
		}
		if len(periods) == 0 {
			fmt.Println("No on-call periods recorded.")
			return nil
		}

		for _, period := range periods {
			fmt.Println(oncallLine(store, period))
		}
		return nil
	},
}

func oncallLine(store *storage.SQLiteStore, period worklog.OnCallPeriod) string {
	if period.Active {
		return fmt.Sprintf("%4d  %s %s - (active)", period.ID, period.StartDate, period.StartTime)
	}

	line := fmt.Sprintf("%4d  %s %s - %s %s", period.ID, period.StartDate, period.StartTime, period.EndDate, period.EndTime)
	hours, err := oncall.PeriodHours(store, period)
	if err != nil {
		return line
	}
	return fmt.Sprintf("%s  on-call %s", line, timeutil.HoursToHHMM(hours))
}

func init() {
	rootCmd.AddCommand(oncallCmd)
	oncallCmd.AddCommand(oncallStartCmd)
	oncallCmd.AddCommand(oncallStopCmd)
	oncallCmd.AddCommand(oncallListCmd)

	oncallCmd.PersistentFlags().StringVar(&oncallDBPath, "db", "", "Path to local SQLite database")
}
