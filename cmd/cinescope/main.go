package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "cinescope",
	Short:         "Cinescope test harness tooling",
	Long:          "Helpers around the Cinescope autotests: a local stand-in for the auth and movies services, migrations for the helper database, cleanup of generated test data and a smoke check of the target environment.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "dotenv file to load (default: .env)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
