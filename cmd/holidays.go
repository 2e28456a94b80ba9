package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"liftec/config"
	"liftec/holiday"
	"liftec/internal/timeutil"
)

var (
	holidaysYear  int
	holidaysMonth int
)

var holidaysCmd = &cobra.Command{
	Use:   "holidays",
	Short: "List Austrian public holidays",
	Long: `List the Austrian public holidays of a year or a single month. Names are
printed in the configured language (de, en or hr). Movable feasts are
computed from the Easter date of the requested year.`,
	Example: `
  # All holidays of the current year
  liftec holidays

  # Holidays of May 2024
  liftec holidays --year 2024 --month 5
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		lang := viper.GetString(config.KeyLanguage)

		year, month, err := resolveMonth(holidaysMonth, holidaysYear)
		if err != nil {
			return err
		}

		var holidays []holiday.Holiday
		if holidaysMonth != 0 {
			holidays = holiday.InMonth(year, month, lang)
		} else {
			holidays = holiday.All(year, lang)
		}

		if len(holidays) == 0 {
			fmt.Println("No holidays in the selected range.")
			return nil
		}
		for _, h := range holidays {
			fmt.Printf("%s  %s\n", timeutil.FormatDate(h.Date), h.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(holidaysCmd)

	holidaysCmd.Flags().IntVar(&holidaysYear, "year", 0, "Year to list (default: current)")
	holidaysCmd.Flags().IntVar(&holidaysMonth, "month", 0, "Restrict to month (1-12)")
}
