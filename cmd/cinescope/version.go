package main

import (
	"fmt"

	"github.com/metinatakli/cinescope-autotests/internal/vcs"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Version:\t%s\n", vcs.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
