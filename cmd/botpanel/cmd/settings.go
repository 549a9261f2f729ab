package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/configtree"
	"github.com/botpanel/botpanel/internal/fieldbind"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read and write the bot's settings document",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the settings document",
	RunE: func(_ *cobra.Command, _ []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		doc, err := client.Settings(context.Background())
		if err != nil {
			return err
		}

		data, err := configtree.EncodeIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		printf("%s", data)
		return nil
	},
}

var settingsPushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Replace the settings document with the contents of a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		doc, err := configtree.Decode(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", args[0], err)
		}
		if doc.Kind() != configtree.KindMap {
			return fmt.Errorf("%s: settings document must be a JSON object", args[0])
		}

		client, err := newClient(newLogger())
		if err != nil {
			return err
		}

		message, err := client.SaveSettings(context.Background(), doc)
		if err != nil {
			return err
		}
		printf("%s", message)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Edit one settings field and push the updated document",
	Long: `Fetches the current document, applies a single edit, and pushes the
result. The value is parsed according to the field's type: booleans, numbers,
and selects are validated; list fields take one entry per line.

Example: botpanel settings set schedule.check_interval_minutes 30`,
	Args: cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		client, err := newClient(newLogger())
		if err != nil {
			return err
		}
		ctx := context.Background()

		doc, err := client.Settings(ctx)
		if err != nil {
			return err
		}

		path, value := args[0], args[1]
		var target fieldbind.Field
		found := false
		for _, f := range fieldbind.BuildFields(doc) {
			if f.EditKey() == path {
				target = f
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no settings field %q", path)
		}
		if target.Widget == fieldbind.WidgetReadOnly {
			return fmt.Errorf("field %q is read-only", path)
		}

		updated, warnings := fieldbind.Apply(doc, fieldbind.Edits{path: value})
		for _, w := range warnings {
			if w.Path.String() == path {
				return fmt.Errorf("invalid value for %q: %s", path, w.Message)
			}
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}

		message, err := client.SaveSettings(ctx, updated)
		if err != nil {
			return err
		}
		printf("%s", message)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsPushCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
