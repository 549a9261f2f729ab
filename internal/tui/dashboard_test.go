package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/botapi"
)

func TestExtractURLs(t *testing.T) {
	actions := []botapi.Action{
		{Details: "liked post https://example.com/p/1"},
		{Details: "no url here"},
		{Details: "visited https://example.com/u/alice and https://example.com/p/1"},
		{Details: "trailing punctuation https://example.com/p/2."},
	}

	urls := extractURLs(actions)
	assert.Equal(t, []string{
		"https://example.com/p/1",
		"https://example.com/u/alice",
		"https://example.com/p/2",
	}, urls)
}

func TestExtractURLsEmpty(t *testing.T) {
	assert.Empty(t, extractURLs(nil))
	assert.Empty(t, extractURLs([]botapi.Action{{Details: "plain text"}}))
}

func TestDashboardSelection(t *testing.T) {
	d := newDashboardModel()
	d.setSize(100, 30)
	d.setHistory(botapi.History{
		"profile_2": {ProfileInfo: map[string]any{"name": "Bruno"}},
		"profile_1": {ProfileInfo: map[string]any{"name": "Alice"}},
	})

	// Profiles are sorted by ID for a stable list.
	require.Equal(t, []string{"profile_1", "profile_2"}, d.profileIDs)

	// Row zero is the combined view.
	assert.True(t, d.allSelected())

	d, _ = d.update(tea.KeyMsg{Type: tea.KeyDown})
	id, _, ok := d.selectedProfile()
	require.True(t, ok)
	assert.Equal(t, "profile_1", id)

	d, _ = d.update(tea.KeyMsg{Type: tea.KeyDown})
	id, _, _ = d.selectedProfile()
	assert.Equal(t, "profile_2", id)

	// Down past the end stays put.
	d, _ = d.update(tea.KeyMsg{Type: tea.KeyDown})
	id, _, _ = d.selectedProfile()
	assert.Equal(t, "profile_2", id)
}

func TestDashboardSelectionSurvivesShrink(t *testing.T) {
	d := newDashboardModel()
	d.setSize(100, 30)
	d.setHistory(botapi.History{
		"a": {}, "b": {}, "c": {},
	})
	d.selected = 3

	d.setHistory(botapi.History{"a": {}})
	assert.True(t, d.allSelected())
}

func TestDashboardCombinedViewMergesNewestFirst(t *testing.T) {
	d := newDashboardModel()
	d.setSize(100, 30)
	d.setHistory(botapi.History{
		"profile_1": {
			ProfileInfo: map[string]any{"name": "Alice"},
			Actions: []botapi.Action{
				{Timestamp: "2026-08-20 10:00:00", ActionType: "like", Details: "a"},
			},
		},
		"profile_2": {
			ProfileInfo: map[string]any{"name": "Bruno"},
			Actions: []botapi.Action{
				{Timestamp: "2026-08-21 10:00:00", ActionType: "reply", Details: "b"},
			},
		},
	})

	actions := d.visibleActions()
	require.Len(t, actions, 2)
	assert.Equal(t, "Bruno: b", actions[0].Details)
	assert.Equal(t, "Alice: a", actions[1].Details)
}

func TestDashboardRecentFilter(t *testing.T) {
	d := newDashboardModel()
	d.setSize(100, 30)
	d.now = func() time.Time {
		return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	}
	d.setHistory(botapi.History{
		"profile_1": {
			Actions: []botapi.Action{
				{Timestamp: "2026-08-27 09:00:00", Details: "fresh"},
				{Timestamp: "2026-08-01 09:00:00", Details: "stale"},
				{Timestamp: "not a date", Details: "unparsable"},
			},
		},
	})
	d.selected = 1

	require.Len(t, d.visibleActions(), 3)

	d, _ = d.update(keyRunes("w"))
	actions := d.visibleActions()
	require.Len(t, actions, 1)
	assert.Equal(t, "fresh", actions[0].Details)

	d, _ = d.update(keyRunes("w"))
	assert.Len(t, d.visibleActions(), 3)
}
