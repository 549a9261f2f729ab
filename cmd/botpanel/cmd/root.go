// Package cmd wires the botpanel CLI: the interactive panel plus one-shot
// commands mirroring each page for scripting.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/botpanel/botpanel/internal/config"
)

var (
	cfgFile   string
	apiURL    string
	apiKey    string
	logLevel  string
	logFormat string
	jsonOut   bool

	// Version info - set via SetVersion()
	appVersion string
	appCommit  string
	appDate    string

	// Loaded in PersistentPreRunE, available to every command.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "botpanel",
	Short: "Remote control panel for the automation bot",
	Long: `botpanel talks to the bot backend's REST API: watch profile history,
start and stop the bot, edit its settings document, and tail its logs.

Running 'botpanel' without arguments starts the interactive panel.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initConfig()
	},
	RunE: runPanel,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion injects build-time version info.
func SetVersion(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: .botpanel/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "",
		"bot backend base URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "",
		"backend API key (sent as X-API-Key)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warning, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"log format (auto, text, json)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"emit machine-readable JSON on one-shot commands")

	// Bind flags to viper (errors are nil when flag exists)
	_ = viper.BindPFlag("api.url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("api.key", rootCmd.PersistentFlags().Lookup("api-key"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() error {
	loader := config.NewLoaderWithViper(viper.GetViper())
	if cfgFile != "" {
		loader = loader.WithConfigFile(cfgFile)
	}

	loaded, err := loader.Load()
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}
