package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the bot's current lifecycle state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		status, err := client.Status(context.Background())
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(status)
		}

		printf("state:   %s", status.State)
		if status.Details != "" {
			printf("details: %s", status.Details)
		}
		if ts, ok := status.LastUpdateTime(); ok {
			printf("updated: %s", ts.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
