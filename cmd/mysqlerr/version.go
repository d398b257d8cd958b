package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ovh/mysqlerr"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the mysqlerr version and current commit",
	Long: "Display information about current mysqlerr version and\n" +
		"picked commit.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "mysqlerr overview")
		fmt.Fprintf(cmd.OutOrStdout(), "Version: %s\nCommit: %s\n", mysqlerr.Version, mysqlerr.Commit)
	},
}
