package cmd

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/mockbot"
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Run a local mock bot backend",
	Long: `Serves the full backend REST API against a local SQLite database with
seeded profiles. Useful for developing the panel without a real bot:

  botpanel mock --addr :8350
  botpanel --api-url http://localhost:8350`,
	RunE: func(_ *cobra.Command, _ []string) error {
		logger := newLogger()

		store, err := mockbot.OpenStore(filepath.Join(cfg.Mock.DataDir, "mockbot.db"))
		if err != nil {
			return err
		}
		defer store.Close()

		if err := mockbot.Seed(store, cfg.Mock.Profiles); err != nil {
			return err
		}

		settingsFile := cfg.Mock.SettingsFile
		if settingsFile == "" {
			settingsFile = filepath.Join(cfg.Mock.DataDir, "settings.json")
		}
		settings, err := mockbot.NewSettingsStore(settingsFile)
		if err != nil {
			return err
		}

		runner := mockbot.NewRunner(store, logger)
		server := mockbot.NewServer(runner, store, settings,
			mockbot.WithServerLogger(logger),
			mockbot.WithAPIKey(cfg.API.Key),
		)

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger.Info("mock backend listening", "addr", cfg.Mock.Addr)
		err = server.ListenAndServe(ctx, cfg.Mock.Addr)

		// Wind down the simulated bot before the store closes.
		_ = runner.Stop()
		return err
	},
}

func init() {
	rootCmd.AddCommand(mockCmd)
}
