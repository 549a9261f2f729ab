package cmd

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		if jsonOut {
			_ = printJSON(map[string]string{
				"version": appVersion,
				"commit":  appCommit,
				"date":    appDate,
			})
			return
		}
		printf("botpanel %s (commit %s, built %s)", appVersion, appCommit, appDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
