package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// logsModel is the log tail page. Each poll replaces the whole batch; the
// viewport sticks to the bottom unless the user scrolled away.
type logsModel struct {
	lines    []string
	viewport viewport.Model
	follow   bool
	loaded   bool
}

func newLogsModel() logsModel {
	return logsModel{
		viewport: viewport.New(0, 0),
		follow:   true,
	}
}

func (l *logsModel) setSize(width, height int) {
	l.viewport.Width = width
	l.viewport.Height = height - 3
	l.render()
}

func (l *logsModel) setLines(lines []string) {
	l.lines = lines
	l.loaded = true
	l.render()
}

func (l *logsModel) render() {
	l.viewport.SetContent(strings.Join(l.lines, "\n"))
	if l.follow {
		l.viewport.GotoBottom()
	}
}

// update returns text to copy when the user asked for it.
func (l logsModel) update(msg tea.KeyMsg) (logsModel, tea.Cmd, string) {
	switch msg.String() {
	case "f":
		l.follow = !l.follow
		if l.follow {
			l.viewport.GotoBottom()
		}
		return l, nil, ""

	case "c":
		if len(l.lines) > 0 {
			return l, nil, strings.Join(l.lines, "\n")
		}
		return l, nil, ""

	case "up", "k", "pgup", "b":
		l.follow = false
	}

	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return l, cmd, ""
}

func (l logsModel) view() string {
	if !l.loaded {
		return mutedStyle.Render("loading logs...")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Logs (%d lines)", len(l.lines))))
	if l.follow {
		b.WriteString(mutedStyle.Render("  following"))
	}
	b.WriteString("\n\n")

	if len(l.lines) == 0 {
		b.WriteString(mutedStyle.Render("no log output"))
	} else {
		b.WriteString(l.viewport.View())
	}
	b.WriteString("\n")
	b.WriteString(statusBarStyle.Render("f: toggle follow  " + iconChevron + "  c: copy all"))
	return b.String()
}
