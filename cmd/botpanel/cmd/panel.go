package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/tui"
)

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Start the interactive control panel",
	RunE:  runPanel,
}

func init() {
	rootCmd.AddCommand(panelCmd)
}

func runPanel(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	client, err := newClient(logger)
	if err != nil {
		return err
	}

	backend := tui.NewBackend(client, cfg.Cache)
	model := tui.NewModel(backend, cfg, logger, appVersion)

	program := tea.NewProgram(model, tea.WithAltScreen())

	if path := watchableConfigPath(); path != "" {
		watcher, err := config.NewWatcher(path, func(c *config.Config) {
			program.Send(tui.ConfigReloadedMsg{Config: c})
		})
		if err != nil {
			logger.Warn("config watch disabled", "path", path, "error", err)
		} else {
			defer watcher.Close()
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running panel: %w", err)
	}
	return nil
}

// watchableConfigPath returns the config file to watch for live reloads,
// empty when the panel runs on defaults and environment alone.
func watchableConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	path := filepath.Join(".botpanel", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}
