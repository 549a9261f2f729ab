package cmd

import (
	"context"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show per-profile aggregate statistics",
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		stats, err := client.Stats(context.Background())
		if err != nil {
			return err
		}

		if jsonOut {
			return printJSON(stats)
		}

		ids := make([]string, 0, len(stats))
		for id := range stats {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			record := stats[id]
			printf("%s:", id)

			keys := make([]string, 0, len(record))
			for k := range record {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				printf("  %-24s %v", k, record[k])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
