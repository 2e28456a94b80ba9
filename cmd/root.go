/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"liftec/config"
	"liftec/storage"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "liftec",
	Short: "Track work sessions and export monthly timesheets as CSV/Excel.",
	Long: `LIFTEC Timer tracks daily work sessions with typed tasks, on-call
periods and absences in a local SQLite ledger, and exports calendar-complete
monthly timesheets to CSV or Excel.

Each exported month carries exactly one row per calendar day; days without an
entry become empty placeholder rows so the printed sheet always covers the
full month.`,
	Example: `
  # Create configuration file
  liftec config create

  # Start a session and attach a task
  liftec start
  liftec task add -t R -d "Pumpe getauscht"

  # End the session (asks the ledger to persist the derived entry)
  liftec stop --pause 00:30

  # Record an absence
  liftec entry add --date 05.03.2024 --absence Urlaub

  # Track an on-call weekend
  liftec oncall start
  liftec oncall stop

  # Export March 2024 as Excel
  liftec export --month 3 --year 2024 --format excel

  # Re-import a hand-edited export
  liftec import -i Max_Mustermann_2024-03.csv
`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	config.SetDefaults()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "configFile", "", "Config file override (default discovery: $HOME/.liftec.yaml, then ./.liftec.yaml)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if !requiresConfig(cmd) {
			return nil
		}

		_, err := config.LoadAndValidate()
		return err
	}
}

// requiresConfig reports whether the command needs validated user settings.
// Stop derives the surcharge from the configured percentage; exports need the
// username and language.
func requiresConfig(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	switch cmd.Name() {
	case "stop", "export":
		return true
	default:
		return false
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".liftec")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintln(os.Stderr, "No config file found. Create one first with: liftec config create")
	}
}

// openStore opens the ledger database, preferring an explicit --db flag over
// the configured path.
func openStore(flagPath string) (*storage.SQLiteStore, error) {
	path := strings.TrimSpace(flagPath)
	if path == "" {
		path = viper.GetString(config.KeyDBPath)
	}
	return storage.OpenSQLite(path)
}

// resolveMonth fills missing month/year flags with the current calendar month
// and bounds-checks the month before it reaches any date arithmetic.
func resolveMonth(month, year int) (int, int, error) {
	now := time.Now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d: must be 1-12", month)
	}
	if year < 1 {
		return 0, 0, fmt.Errorf("invalid year %d", year)
	}
	return year, month, nil
}
