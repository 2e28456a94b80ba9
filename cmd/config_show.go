package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"liftec/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values",
	Long: `Display the currently loaded configuration and the resolved config file
path. The configuration is validated before printing.`,
	Example: `
  # Show active configuration
  liftec config show
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if configPath := viper.ConfigFileUsed(); configPath != "" {
			fmt.Println("Config file loaded from:", configPath)
		}
		fmt.Println("Configuration:")
		fmt.Printf("user.name: %s\n", cfg.User.Name)
		fmt.Printf("user.surcharge_percent: %g\n", cfg.User.SurchargePercent)
		fmt.Printf("user.language: %s\n", cfg.User.Language)
		fmt.Printf("storage.db: %s\n", cfg.Storage.DB)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
