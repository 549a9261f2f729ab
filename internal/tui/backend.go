package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/clip"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/configtree"
	"github.com/botpanel/botpanel/internal/fieldbind"
)

// Backend bundles the API client with the TTL caches the pages read through.
type Backend struct {
	client   *botapi.Client
	history  *botapi.Cached[botapi.History]
	stats    *botapi.Cached[botapi.Stats]
	settings *botapi.Cached[*configtree.Value]
}

// NewBackend wraps client with the configured cache TTLs.
func NewBackend(client *botapi.Client, ttl config.CacheConfig) *Backend {
	return &Backend{
		client: client,
		history: botapi.NewCached(ttl.HistoryTTL, func(ctx context.Context) (botapi.History, error) {
			return client.History(ctx)
		}),
		stats: botapi.NewCached(ttl.StatsTTL, func(ctx context.Context) (botapi.Stats, error) {
			return client.Stats(ctx)
		}),
		settings: botapi.NewCached(ttl.SettingsTTL, func(ctx context.Context) (*configtree.Value, error) {
			return client.Settings(ctx)
		}),
	}
}

func (b *Backend) fetchStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := b.client.Status(context.Background())
		if err != nil {
			return errMsg{endpoint: "/status", err: err}
		}
		return statusMsg{status: status}
	}
}

func (b *Backend) fetchHistory() tea.Cmd {
	return func() tea.Msg {
		history, cached, err := b.history.Get(context.Background())
		if err != nil {
			return errMsg{endpoint: "/history", err: err}
		}
		return historyMsg{history: history, cached: cached}
	}
}

func (b *Backend) fetchStats() tea.Cmd {
	return func() tea.Msg {
		stats, cached, err := b.stats.Get(context.Background())
		if err != nil {
			return errMsg{endpoint: "/all_logs", err: err}
		}
		return statsMsg{stats: stats, cached: cached}
	}
}

func (b *Backend) fetchLogs() tea.Cmd {
	return func() tea.Msg {
		lines, err := b.client.Logs(context.Background())
		if err != nil {
			return errMsg{endpoint: "/logs", err: err}
		}
		return logsMsg{lines: lines}
	}
}

func (b *Backend) fetchSettings() tea.Cmd {
	return func() tea.Msg {
		doc, cached, err := b.settings.Get(context.Background())
		if err != nil {
			return errMsg{endpoint: "/settings", err: err}
		}
		return settingsMsg{doc: doc, fields: fieldbind.BuildFields(doc), cached: cached}
	}
}

func (b *Backend) sendControl(action botapi.ControlAction) tea.Cmd {
	return func() tea.Msg {
		message, err := b.client.Control(context.Background(), action)
		return controlResultMsg{action: action, message: message, err: err}
	}
}

func (b *Backend) saveSettings(doc *configtree.Value, warnings []fieldbind.Warning) tea.Cmd {
	return func() tea.Msg {
		message, err := b.client.SaveSettings(context.Background(), doc)
		if err == nil {
			b.settings.Invalidate()
		}
		return saveResultMsg{message: message, warnings: warnings, err: err}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := clip.WriteAll(text)
		return clipResultMsg{result: result, err: err}
	}
}
