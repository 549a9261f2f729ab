package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/logging"
)

// newLogger builds the process logger from config. One-shot commands log to
// stderr so stdout stays scriptable.
func newLogger() *logging.Logger {
	return logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

// newClient builds the backend client. It is the place where a missing
// backend URL turns into a user-facing error.
func newClient(logger *logging.Logger) (*botapi.Client, error) {
	if err := cfg.ValidateAPI(); err != nil {
		return nil, err
	}
	return botapi.New(cfg.API.URL, cfg.API.Key,
		botapi.WithLogger(logger),
		botapi.WithTimeouts(botapi.Timeouts{
			Status:   cfg.API.StatusTimeout,
			Control:  cfg.API.ControlTimeout,
			Settings: cfg.API.SettingsTimeout,
			History:  cfg.API.HistoryTimeout,
		}),
	)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printf(format string, args ...any) {
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}
