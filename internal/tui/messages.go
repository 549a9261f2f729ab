package tui

import (
	"time"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/clip"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/configtree"
	"github.com/botpanel/botpanel/internal/fieldbind"
)

// ConfigReloadedMsg is sent from outside the program when the config file
// changes on disk. Only the polling cadence is applied live; connection
// settings stay fixed for the life of the client.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// pollTickMsg fires the periodic status refresh.
type pollTickMsg time.Time

// statusMsg carries a fresh /status snapshot.
type statusMsg struct {
	status *botapi.Status
}

// historyMsg carries a /history payload.
type historyMsg struct {
	history botapi.History
	cached  bool
}

// statsMsg carries an /all_logs payload.
type statsMsg struct {
	stats  botapi.Stats
	cached bool
}

// logsMsg carries a /logs batch; every batch replaces the previous one.
type logsMsg struct {
	lines []string
}

// settingsMsg carries the settings document and its derived edit fields.
type settingsMsg struct {
	doc    *configtree.Value
	fields []fieldbind.Field
	cached bool
}

// controlResultMsg reports the outcome of a start/stop request.
type controlResultMsg struct {
	action  botapi.ControlAction
	message string
	err     error
}

// saveResultMsg reports the outcome of a settings push.
type saveResultMsg struct {
	message  string
	warnings []fieldbind.Warning
	err      error
}

// errMsg is a failed fetch for the named endpoint.
type errMsg struct {
	endpoint string
	err      error
}

// clipResultMsg reports a copy-to-clipboard outcome.
type clipResultMsg struct {
	result clip.Result
	err    error
}
