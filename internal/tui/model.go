// Package tui is the interactive control panel. One root model owns the
// backend connection and polling cadence; each page renders one slice of the
// bot's state.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/botpanel/botpanel/internal/botapi"
	"github.com/botpanel/botpanel/internal/config"
	"github.com/botpanel/botpanel/internal/logging"
)

type page int

const (
	pageDashboard page = iota
	pageRun
	pageSettings
	pageStats
	pageLogs
)

var pageTitles = []string{"Dashboard", "Run Bot", "Settings", "Stats", "Logs"}

// Model is the root Bubble Tea model for the panel.
type Model struct {
	backend *Backend
	cfg     *config.Config
	logger  *logging.Logger
	version string

	page     page
	width    int
	height   int
	ready    bool
	quitting bool

	spinner  spinner.Model
	fetching int // in-flight requests, spinner shows while > 0

	status    *botapi.Status
	statusErr error
	flash     string // transient status bar message

	dashboard dashboardModel
	run       runModel
	settings  settingsModel
	stats     statsModel
	logs      logsModel

	help     helpModel
	showHelp bool
}

// NewModel creates the root model.
func NewModel(backend *Backend, cfg *config.Config, logger *logging.Logger, version string) Model {
	if logger == nil {
		logger = logging.NewNop()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		backend:   backend,
		cfg:       cfg,
		logger:    logger,
		version:   version,
		spinner:   sp,
		dashboard: newDashboardModel(),
		run:       newRunModel(),
		settings:  newSettingsModel(),
		stats:     newStatsModel(),
		logs:      newLogsModel(),
		help:      newHelpModel(),
	}
}

// Init starts the first fetches and the poll loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.trackFetch(m.backend.fetchStatus()),
		m.trackFetch(m.backend.fetchHistory()),
		m.pollTick(),
	)
}

// pollInterval picks the refresh cadence from the bot's activity.
func (m Model) pollInterval() time.Duration {
	if m.status != nil && m.status.Active() {
		return m.cfg.Refresh.Active
	}
	return m.cfg.Refresh.Idle
}

func (m Model) pollTick() tea.Cmd {
	return tea.Tick(m.pollInterval(), func(t time.Time) tea.Msg {
		return pollTickMsg(t)
	})
}

// trackFetch wraps a backend command so the spinner knows about it. The
// counter is decremented when the resulting message arrives.
func (m *Model) trackFetch(cmd tea.Cmd) tea.Cmd {
	m.fetching++
	return cmd
}

// Update routes messages to the active page.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.propagateSize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pollTickMsg:
		cmds := []tea.Cmd{m.trackFetch(m.backend.fetchStatus())}
		if cmd := m.refreshPageData(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.pollTick())
		return m, tea.Batch(cmds...)

	case statusMsg:
		m.fetchDone()
		m.status = msg.status
		m.statusErr = nil
		m.run.setStatus(msg.status)
		return m, nil

	case errMsg:
		m.fetchDone()
		if msg.endpoint == "/status" {
			m.statusErr = msg.err
			m.status = nil
			m.run.setStatus(nil)
		} else {
			m.flash = fmt.Sprintf("%s: %v", msg.endpoint, msg.err)
		}
		m.logger.Warn("fetch failed", "endpoint", msg.endpoint, "error", msg.err)
		return m, nil

	case historyMsg:
		m.fetchDone()
		m.dashboard.setHistory(msg.history)
		return m, nil

	case statsMsg:
		m.fetchDone()
		m.stats.setStats(msg.stats)
		return m, nil

	case logsMsg:
		m.fetchDone()
		m.logs.setLines(msg.lines)
		return m, nil

	case settingsMsg:
		m.fetchDone()
		m.settings.setDocument(msg.doc, msg.fields)
		return m, nil

	case controlResultMsg:
		m.fetchDone()
		if msg.err != nil {
			m.flash = fmt.Sprintf("%s failed: %v", msg.action, msg.err)
		} else {
			m.flash = msg.message
		}
		// Refresh immediately so the buttons track the new state.
		return m, m.trackFetch(m.backend.fetchStatus())

	case saveResultMsg:
		m.fetchDone()
		m.settings.setSaveResult(msg)
		if msg.err != nil {
			m.flash = fmt.Sprintf("save failed: %v", msg.err)
		} else {
			m.flash = msg.message
			return m, m.trackFetch(m.backend.fetchSettings())
		}
		return m, nil

	case ConfigReloadedMsg:
		if msg.Config != nil {
			m.cfg.Refresh = msg.Config.Refresh
			m.flash = "config reloaded"
		}
		return m, nil

	case clipResultMsg:
		if msg.err != nil {
			m.flash = fmt.Sprintf("copy failed: %v", msg.err)
		} else if msg.result.FilePath != "" {
			m.flash = "clipboard unavailable, wrote " + msg.result.FilePath
		} else {
			m.flash = "copied to clipboard"
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) fetchDone() {
	if m.fetching > 0 {
		m.fetching--
	}
}

func (m *Model) propagateSize() {
	contentHeight := m.height - 5 // header, tabs, status bar
	if contentHeight < 3 {
		contentHeight = 3
	}
	m.dashboard.setSize(m.width, contentHeight)
	m.settings.setSize(m.width, contentHeight)
	m.stats.setSize(m.width, contentHeight)
	m.logs.setSize(m.width, contentHeight)
	m.help.setSize(m.width, m.height)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "esc", "q", "?":
			m.showHelp = false
		}
		return m, nil
	}

	// Pages with text entry swallow most keys while editing.
	if m.page == pageSettings && m.settings.capturesKeys() {
		return m.updateSettingsPage(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true
		return m, nil

	case "tab":
		return m.switchPage((m.page + 1) % page(len(pageTitles)))
	case "shift+tab":
		return m.switchPage((m.page + page(len(pageTitles)) - 1) % page(len(pageTitles)))
	case "1":
		return m.switchPage(pageDashboard)
	case "2":
		return m.switchPage(pageRun)
	case "3":
		return m.switchPage(pageSettings)
	case "4":
		return m.switchPage(pageStats)
	case "5":
		return m.switchPage(pageLogs)

	case "R":
		// Hard refresh: drop caches and refetch everything visible.
		m.backend.history.Invalidate()
		m.backend.stats.Invalidate()
		m.backend.settings.Invalidate()
		cmds := []tea.Cmd{m.trackFetch(m.backend.fetchStatus())}
		if cmd := m.refreshPageData(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		m.flash = "refreshing"
		return m, tea.Batch(cmds...)
	}

	return m.updateActivePage(msg)
}

// switchPage changes tabs and kicks off the fetch the new page needs.
func (m Model) switchPage(p page) (tea.Model, tea.Cmd) {
	if p == m.page {
		return m, nil
	}
	m.page = p
	m.flash = ""
	if cmd := m.refreshPageData(); cmd != nil {
		return m, cmd
	}
	return m, nil
}

// refreshPageData returns the fetch command for the active page's data, nil
// when the page only needs status.
func (m *Model) refreshPageData() tea.Cmd {
	switch m.page {
	case pageDashboard:
		return m.trackFetch(m.backend.fetchHistory())
	case pageSettings:
		if !m.settings.hasDocument() || !m.settings.dirty() {
			return m.trackFetch(m.backend.fetchSettings())
		}
	case pageStats:
		return m.trackFetch(m.backend.fetchStats())
	case pageLogs:
		return m.trackFetch(m.backend.fetchLogs())
	}
	return nil
}

func (m Model) updateActivePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.page {
	case pageDashboard:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.update(msg)
		return m, cmd

	case pageRun:
		action, ok := m.run.update(msg)
		if ok {
			m.flash = ""
			return m, m.trackFetch(m.backend.sendControl(action))
		}
		return m, nil

	case pageSettings:
		return m.updateSettingsPage(msg)

	case pageStats:
		var cmd tea.Cmd
		m.stats, cmd = m.stats.update(msg)
		return m, cmd

	case pageLogs:
		var cmd tea.Cmd
		var copyText string
		m.logs, cmd, copyText = m.logs.update(msg)
		if copyText != "" {
			return m, copyToClipboard(copyText)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) updateSettingsPage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var action settingsAction
	m.settings, cmd, action = m.settings.update(msg)

	switch action.kind {
	case settingsActionSave:
		return m, m.trackFetch(m.backend.saveSettings(action.doc, action.warnings))
	case settingsActionCopy:
		return m, copyToClipboard(action.copyText)
	case settingsActionReload:
		m.backend.settings.Invalidate()
		return m, m.trackFetch(m.backend.fetchSettings())
	}
	return m, cmd
}

// View renders the full screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.help.view()
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n")
	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	switch m.page {
	case pageDashboard:
		b.WriteString(m.dashboard.view())
	case pageRun:
		b.WriteString(m.run.view())
	case pageSettings:
		b.WriteString(m.settings.view())
	case pageStats:
		b.WriteString(m.stats.view())
	case pageLogs:
		b.WriteString(m.logs.view())
	}

	b.WriteString("\n")
	b.WriteString(m.statusBarView())
	return b.String()
}

func (m Model) headerView() string {
	logo := logoStyle.Render("botpanel")
	state := "disconnected"
	style := errorStyle
	if m.status != nil {
		state = m.status.State
		style = stateStyle(state)
	}
	indicator := style.Render(iconDot + " " + state)

	var busy string
	if m.fetching > 0 {
		busy = " " + m.spinner.View()
	}

	left := logo + "  " + indicator + busy
	right := mutedStyle.Render(m.version)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) tabsView() string {
	var tabs []string
	for i, title := range pageTitles {
		label := fmt.Sprintf("%d %s", i+1, title)
		if page(i) == m.page {
			tabs = append(tabs, tabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, tabInactiveStyle.Render(label))
		}
	}
	return strings.Join(tabs, tabSeparatorStyle.Render("│"))
}

func (m Model) statusBarView() string {
	if m.statusErr != nil {
		return errorStyle.Render(iconCross + " " + m.statusErr.Error())
	}
	if m.flash != "" {
		return statusBarStyle.Render(m.flash)
	}

	parts := []string{"tab: switch page", "R: refresh", "?: help", "q: quit"}
	if m.status != nil {
		if ts, ok := m.status.LastUpdateTime(); ok {
			parts = append(parts, "updated "+ts.Format("15:04:05"))
		}
	}
	return statusBarStyle.Render(strings.Join(parts, "  "+iconChevron+"  "))
}
