package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"liftec/storage"
	"liftec/worklog"
)

var (
	taskType   string
	taskDesc   string
	taskDBPath string
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks of the running session",
}

var taskAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Attach a typed task to the running session",
	Long: `Attach a task to the running session. Task types map to the export
columns: N (Neuanlage), D (Demontage), R (Reparatur), W (Wartung); omit the
type for unclassified work.`,
	Example: `
  # Repair task
  liftec task add -t R -d "Pumpe getauscht"

  # Unclassified note
  liftec task add -d "Besprechung Einsatzplanung"
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		code := strings.ToUpper(strings.TrimSpace(taskType))
		if code != "" && worklog.ParseTaskType(code) == worklog.TaskNone {
			return fmt.Errorf("unknown task type %q (valid: N, D, R, W or empty)", taskType)
		}

		store, err := openStore(taskDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		task := worklog.Task{Type: worklog.ParseTaskType(code), Description: taskDesc}
		if err := store.AppendSessionTask(task); err != nil {
			if errors.Is(err, storage.ErrNoSession) {
				return fmt.Errorf("no session is running; start one with: liftec start")
			}
			return err
		}

		fmt.Printf("Task added: %s\n", taskLabel(task))
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks of the running session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore(taskDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		session, active, err := store.ActiveSession()
		if err != nil {
			return err
		}
		if !active {
			return fmt.Errorf("no session is running")
		}

		if len(session.Tasks) == 0 {
			fmt.Println("No tasks recorded yet.")
			return nil
		}
		for i, task := range session.Tasks {
			fmt.Printf("%d. %s\n", i+1, taskLabel(task))
		}
		return nil
	},
}

func taskLabel(task worklog.Task) string {
	if task.Type == worklog.TaskNone {
		return task.Description
	}
	return fmt.Sprintf("%s [%s]", task.Description, task.Type)
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)

	taskAddCmd.Flags().StringVarP(&taskType, "type", "t", "", "Task type: N|D|R|W (optional)")
	taskAddCmd.Flags().StringVarP(&taskDesc, "desc", "d", "", "Task description")
	taskCmd.PersistentFlags().StringVar(&taskDBPath, "db", "", "Path to local SQLite database")

	_ = taskAddCmd.MarkFlagRequired("desc")
}
