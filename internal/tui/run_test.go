package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/botapi"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRunShortcutsRespectState(t *testing.T) {
	r := newRunModel()

	// No status yet: nothing fires.
	_, ok := r.update(keyRunes("s"))
	assert.False(t, ok)

	r.setStatus(&botapi.Status{State: botapi.StateIdle})
	action, ok := r.update(keyRunes("s"))
	require.True(t, ok)
	assert.Equal(t, botapi.ControlStart, action)

	// Stop is disabled while idle.
	_, ok = r.update(keyRunes("x"))
	assert.False(t, ok)

	r.setStatus(&botapi.Status{State: botapi.StateRunning})
	action, ok = r.update(keyRunes("x"))
	require.True(t, ok)
	assert.Equal(t, botapi.ControlStop, action)

	// Start is disabled while running.
	_, ok = r.update(keyRunes("s"))
	assert.False(t, ok)
}

func TestRunStartAllowedFromErrorAndStopped(t *testing.T) {
	r := newRunModel()
	for _, state := range []string{botapi.StateError, botapi.StateStopped, botapi.StateIdle} {
		r.setStatus(&botapi.Status{State: state})
		_, ok := r.update(keyRunes("s"))
		assert.True(t, ok, "start should be allowed from %s", state)
	}
	for _, state := range []string{botapi.StateStarting, botapi.StateStopping, botapi.StateRunning} {
		r.setStatus(&botapi.Status{State: state})
		_, ok := r.update(keyRunes("s"))
		assert.False(t, ok, "start should be blocked from %s", state)
	}
}

func TestRunStopAllowedFromStarting(t *testing.T) {
	r := newRunModel()
	r.setStatus(&botapi.Status{State: botapi.StateStarting})
	action, ok := r.update(keyRunes("x"))
	require.True(t, ok)
	assert.Equal(t, botapi.ControlStop, action)
}

func TestRunFocusFollowsEnablement(t *testing.T) {
	r := newRunModel()
	r.setStatus(&botapi.Status{State: botapi.StateIdle})
	assert.Equal(t, 0, r.focused)

	// When the bot starts running, focus moves to the stop button.
	r.setStatus(&botapi.Status{State: botapi.StateRunning})
	assert.Equal(t, 1, r.focused)

	action, ok := r.update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, ok)
	assert.Equal(t, botapi.ControlStop, action)
}
