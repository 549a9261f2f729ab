package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Print the bot's current log tail",
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		lines, err := client.Logs(context.Background())
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(map[string][]string{"logs": lines})
		}
		for _, line := range lines {
			printf("%s", line)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
}
