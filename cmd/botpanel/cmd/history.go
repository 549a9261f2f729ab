package cmd

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show per-profile action history",
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		history, err := client.History(context.Background())
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(history)
		}

		ids := make([]string, 0, len(history))
		for id := range history {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			profile := history[id]
			name := profile.Name()
			if name == "" {
				name = id
			}
			printf("%s (#%s) - %d actions", name, profile.SerialNumber(), len(profile.Actions))
			for _, action := range profile.Actions {
				printf("  %s  %-8s %s", action.Timestamp, action.ActionType, action.Details)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
