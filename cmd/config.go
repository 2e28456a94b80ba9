package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the liftec configuration file",
	Long: `Create, edit and display the liftec configuration file.

The configuration stores the values exports and surcharges derive from:
- user.name
- user.surcharge_percent
- user.language (de, en or hr)
- storage.db`,
	Example: `
  # Create default config in $HOME/.liftec.yaml
  liftec config create

  # Show active config and source file
  liftec config show

  # Open active config in editor (creates example if missing)
  liftec config edit
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
