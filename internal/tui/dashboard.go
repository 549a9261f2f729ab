package tui

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/botpanel/botpanel/internal/botapi"
)

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// extractURLs pulls the distinct URLs out of a profile's action details, in
// first-seen order.
func extractURLs(actions []botapi.Action) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, a := range actions {
		for _, u := range urlPattern.FindAllString(a.Details, -1) {
			u = strings.TrimRight(u, ".,;)")
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	return urls
}

const recentWindow = 7 * 24 * time.Hour

// filterRecent keeps actions from the past seven days. Actions whose
// timestamp does not parse are dropped while the filter is on.
func filterRecent(actions []botapi.Action, now time.Time) []botapi.Action {
	cutoff := now.Add(-recentWindow)
	var out []botapi.Action
	for _, a := range actions {
		if ts, ok := a.Time(); ok && !ts.Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}

// dashboardModel is the history page: profiles on the left, actions on the
// right. Row zero of the list is the combined all-profiles view.
type dashboardModel struct {
	history    botapi.History
	profileIDs []string
	selected   int // 0 = all profiles, i > 0 = profileIDs[i-1]
	recentOnly bool
	actions    viewport.Model
	width      int
	height     int
	loaded     bool
	now        func() time.Time
}

func newDashboardModel() dashboardModel {
	return dashboardModel{
		actions: viewport.New(0, 0),
		now:     time.Now,
	}
}

func (d *dashboardModel) setSize(width, height int) {
	d.width = width
	d.height = height
	d.actions.Width = width - listPaneWidth(width) - 4
	d.actions.Height = height - 2
	d.renderActions()
}

func listPaneWidth(total int) int {
	w := total / 3
	if w < 24 {
		w = 24
	}
	return w
}

func (d *dashboardModel) setHistory(history botapi.History) {
	d.history = history
	d.loaded = true

	ids := make([]string, 0, len(history))
	for id := range history {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	d.profileIDs = ids
	if d.selected > len(ids) {
		d.selected = 0
	}
	d.renderActions()
}

func (d dashboardModel) allSelected() bool {
	return d.selected == 0
}

func (d dashboardModel) selectedProfile() (string, botapi.ProfileHistory, bool) {
	if d.allSelected() || d.selected > len(d.profileIDs) {
		return "", botapi.ProfileHistory{}, false
	}
	id := d.profileIDs[d.selected-1]
	return id, d.history[id], true
}

// visibleActions returns the action set for the current selection and
// filter, newest first. In the combined view each action is prefixed with
// its profile's display name.
func (d dashboardModel) visibleActions() []botapi.Action {
	var actions []botapi.Action
	if d.allSelected() {
		for _, id := range d.profileIDs {
			profile := d.history[id]
			name := profile.Name()
			if name == "" {
				name = id
			}
			for _, a := range profile.Actions {
				a.Details = name + ": " + a.Details
				actions = append(actions, a)
			}
		}
	} else if _, profile, ok := d.selectedProfile(); ok {
		actions = append(actions, profile.Actions...)
	}

	if d.recentOnly {
		actions = filterRecent(actions, d.now())
	}

	// Newest first. Unparsable timestamps sort by raw string.
	sort.SliceStable(actions, func(i, j int) bool {
		ti, iok := actions[i].Time()
		tj, jok := actions[j].Time()
		if iok && jok {
			return ti.After(tj)
		}
		return actions[i].Timestamp > actions[j].Timestamp
	})
	return actions
}

func (d *dashboardModel) renderActions() {
	actions := d.visibleActions()

	var b strings.Builder
	for _, a := range actions {
		b.WriteString(labelStyle.Render(a.Timestamp))
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(fmt.Sprintf("%-8s", a.ActionType)))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(a.Details))
		b.WriteString("\n")
	}
	if len(actions) == 0 {
		if d.recentOnly {
			b.WriteString(mutedStyle.Render("no actions in the past 7 days"))
		} else {
			b.WriteString(mutedStyle.Render("no actions recorded"))
		}
	}
	d.actions.SetContent(b.String())
	d.actions.GotoTop()
}

func (d dashboardModel) update(msg tea.KeyMsg) (dashboardModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if d.selected > 0 {
			d.selected--
			d.renderActions()
		}
		return d, nil
	case "down", "j":
		if d.selected < len(d.profileIDs) {
			d.selected++
			d.renderActions()
		}
		return d, nil
	case "w":
		d.recentOnly = !d.recentOnly
		d.renderActions()
		return d, nil
	case "u":
		if urls := extractURLs(d.visibleActions()); len(urls) > 0 {
			return d, copyToClipboard(strings.Join(urls, "\n"))
		}
		return d, nil
	}

	var cmd tea.Cmd
	d.actions, cmd = d.actions.Update(msg)
	return d, cmd
}

func (d dashboardModel) view() string {
	if !d.loaded {
		return mutedStyle.Render("loading history...")
	}
	if len(d.profileIDs) == 0 {
		return mutedStyle.Render("the bot has no profiles yet")
	}

	var list strings.Builder
	list.WriteString(headerStyle.Render("Profiles"))
	list.WriteString("\n\n")
	list.WriteString(d.listRow(0, "All profiles", ""))
	for i, id := range d.profileIDs {
		profile := d.history[id]
		name := profile.Name()
		if name == "" {
			name = id
		}
		list.WriteString(d.listRow(i+1, name, profile.SerialNumber()))
	}

	left := lipgloss.NewStyle().Width(listPaneWidth(d.width)).Render(list.String())

	var right strings.Builder
	actions := d.visibleActions()
	title := fmt.Sprintf("Actions (%d)", len(actions))
	if d.recentOnly {
		title += " · past 7 days"
	}
	right.WriteString(headerStyle.Render(title))
	if urls := extractURLs(actions); len(urls) > 0 {
		right.WriteString(mutedStyle.Render(fmt.Sprintf("   %d urls, press u to copy", len(urls))))
	}
	right.WriteString("\n\n")
	right.WriteString(d.actions.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right.String())
}

func (d dashboardModel) listRow(index int, name, serial string) string {
	line := name
	if serial != "" {
		line = fmt.Sprintf("%s  %s", name, mutedStyle.Render("#"+serial))
	}
	if index == d.selected {
		line = selectedRowStyle.Render(iconChevron + " " + line)
	} else {
		line = "  " + line
	}
	return line + "\n"
}
