package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath    string
	timezone  string
	language  string
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:           "babyfeed",
	Short:         "babyfeed tracks baby feedings and follows imported feeding schedules",
	Long:          "babyfeed is a self-hosted baby feeding tracker with statistics, monthly feeding plans, a shopping calculator and daily reminders.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&timezone, "tz", "", "IANA time zone (overrides TZ)")
	rootCmd.PersistentFlags().StringVar(&language, "lang", "", "Output language (overrides DEFAULT_LANGUAGE)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Base URL of the running server (overrides BABYFEED_SERVER)")
}
