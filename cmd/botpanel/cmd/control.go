package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/botapi"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bot",
	RunE: func(_ *cobra.Command, _ []string) error {
		return sendControl(botapi.ControlStart)
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the bot",
	RunE: func(_ *cobra.Command, _ []string) error {
		return sendControl(botapi.ControlStop)
	},
}

func sendControl(action botapi.ControlAction) error {
	client, err := newClient(newLogger())
	if err != nil {
		return err
	}

	message, err := client.Control(context.Background(), action)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(map[string]string{"message": message})
	}
	printf("%s", message)
	return nil
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}
