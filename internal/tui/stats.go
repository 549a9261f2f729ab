package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/botpanel/botpanel/internal/botapi"
)

// Keys shown at the top of a profile's stats, in this order. Everything else
// follows alphabetically.
var headlineStatKeys = []string{
	"name", "serial_number", "engagement_rate", "ctr", "total_actions",
}

// statsModel is the profile statistics page.
type statsModel struct {
	stats      botapi.Stats
	profileIDs []string
	selected   int
	detail     viewport.Model
	width      int
	height     int
	loaded     bool
}

func newStatsModel() statsModel {
	return statsModel{detail: viewport.New(0, 0)}
}

func (s *statsModel) setSize(width, height int) {
	s.width = width
	s.height = height
	s.detail.Width = width - listPaneWidth(width) - 4
	s.detail.Height = height - 2
	s.renderDetail()
}

func (s *statsModel) setStats(stats botapi.Stats) {
	s.stats = stats
	s.loaded = true

	ids := make([]string, 0, len(stats))
	for id := range stats {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	s.profileIDs = ids
	if s.selected >= len(ids) {
		s.selected = 0
	}
	s.renderDetail()
}

func (s statsModel) selectedRecord() (string, botapi.StatsRecord, bool) {
	if s.selected >= len(s.profileIDs) {
		return "", nil, false
	}
	id := s.profileIDs[s.selected]
	return id, s.stats[id], true
}

// orderedKeys returns headline keys first, then the rest alphabetically.
func orderedKeys(record botapi.StatsRecord) []string {
	headline := make(map[string]bool, len(headlineStatKeys))
	var keys []string
	for _, k := range headlineStatKeys {
		if _, ok := record[k]; ok {
			keys = append(keys, k)
			headline[k] = true
		}
	}
	var rest []string
	for k := range record {
		if !headline[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func (s *statsModel) renderDetail() {
	_, record, ok := s.selectedRecord()
	if !ok {
		s.detail.SetContent(mutedStyle.Render("no stats yet"))
		return
	}

	var b strings.Builder
	for _, key := range orderedKeys(record) {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", statLabel(key))))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(formatStatValue(key, record[key])))
		b.WriteString("\n")
	}
	s.detail.SetContent(b.String())
	s.detail.GotoTop()
}

func (s statsModel) update(msg tea.KeyMsg) (statsModel, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
			s.renderDetail()
		}
		return s, nil
	case "down", "j":
		if s.selected < len(s.profileIDs)-1 {
			s.selected++
			s.renderDetail()
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.detail, cmd = s.detail.Update(msg)
	return s, cmd
}

func (s statsModel) view() string {
	if !s.loaded {
		return mutedStyle.Render("loading stats...")
	}
	if len(s.profileIDs) == 0 {
		return mutedStyle.Render("no profile statistics available")
	}

	var list strings.Builder
	list.WriteString(headerStyle.Render("Profiles"))
	list.WriteString("\n\n")
	for i, id := range s.profileIDs {
		record := s.stats[id]
		name := id
		if n, ok := record["name"].(string); ok && n != "" {
			name = n
		}
		line := name
		if rate, ok := record["engagement_rate"]; ok {
			line += "  " + mutedStyle.Render(formatStatValue("engagement_rate", rate))
		}
		if i == s.selected {
			line = selectedRowStyle.Render(iconChevron + " " + line)
		} else {
			line = "  " + line
		}
		list.WriteString(line)
		list.WriteString("\n")
	}

	left := lipgloss.NewStyle().Width(listPaneWidth(s.width)).Render(list.String())

	var right strings.Builder
	right.WriteString(headerStyle.Render("Profile Stats"))
	right.WriteString("\n\n")
	right.WriteString(s.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right.String())
}
