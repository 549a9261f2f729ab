package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/botpanel/botpanel/internal/configtree"
	"github.com/botpanel/botpanel/internal/fieldbind"
)

func testSettingsDoc(t *testing.T) *configtree.Value {
	t.Helper()
	doc, err := configtree.Decode([]byte(`{
		"headless": true,
		"threads": 2,
		"mode": "prod",
		"log_level": "info",
		"group_id": null,
		"ad_identifiers": ["sponsored"]
	}`))
	require.NoError(t, err)
	return doc
}

func loadedSettings(t *testing.T) settingsModel {
	t.Helper()
	s := newSettingsModel()
	s.setSize(100, 30)
	doc := testSettingsDoc(t)
	s.setDocument(doc, fieldbind.BuildFields(doc))
	return s
}

func selectField(t *testing.T, s *settingsModel, path string) {
	t.Helper()
	for i, idx := range s.visible {
		if s.fields[idx].Path.String() == path {
			s.selected = i
			return
		}
	}
	t.Fatalf("no visible field %q", path)
}

func TestSettingsCheckboxToggleInPlace(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "headless")

	s, _, action := s.update(keyRunes(" "))
	assert.Equal(t, settingsActionNone, action.kind)
	assert.Equal(t, "false", s.edits["headless"])
	assert.True(t, s.dirty())

	// Toggling back to the original drops the edit entirely.
	s, _, _ = s.update(keyRunes(" "))
	assert.False(t, s.dirty())
}

func TestSettingsSelectCyclesOptions(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "mode")

	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "dev", s.edits["mode"])

	// Cycling wraps back to the original value, clearing the edit.
	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, s.dirty())
}

func TestSettingsTextEditFlow(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "threads")

	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, settingsModeEdit, s.mode)
	assert.True(t, s.capturesKeys())
	assert.Equal(t, "2", s.input.Value())

	s.input.SetValue("3")
	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, settingsModeList, s.mode)
	assert.Equal(t, "3", s.edits["threads"])
}

func TestSettingsEscCancelsEdit(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "threads")

	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	s.input.SetValue("99")
	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, settingsModeList, s.mode)
	assert.False(t, s.dirty())
}

func TestSettingsReadOnlyFieldNotEditable(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "ad_identifiers")

	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, settingsModeList, s.mode)
	assert.False(t, s.dirty())
}

func TestSettingsSaveProducesEditedDocument(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "threads")
	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	s.input.SetValue("4")
	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEnter})

	s, _, action := s.update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.Equal(t, settingsActionSave, action.kind)
	require.NotNil(t, action.doc)

	threads, ok := action.doc.Get("threads")
	require.True(t, ok)
	assert.Equal(t, int64(4), threads.IntVal())

	// The unedited fields survive untouched.
	headless, ok := action.doc.Get("headless")
	require.True(t, ok)
	assert.True(t, headless.BoolVal())
}

func TestSettingsSaveWithoutEditsIsNoop(t *testing.T) {
	s := loadedSettings(t)
	_, _, action := s.update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, settingsActionNone, action.kind)
}

func TestSettingsFuzzyFilter(t *testing.T) {
	s := loadedSettings(t)

	s, _, _ = s.update(keyRunes("/"))
	assert.Equal(t, settingsModeFilter, s.mode)

	s.filter.SetValue("thrd")
	s.applyFilter()
	require.Len(t, s.visible, 1)
	assert.Equal(t, "threads", s.fields[s.visible[0]].Path.String())

	// Esc clears the filter.
	s, _, _ = s.update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, settingsModeList, s.mode)
	assert.Len(t, s.visible, len(s.fields))
}

func TestSettingsDiscardEdit(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "headless")
	s, _, _ = s.update(keyRunes(" "))
	require.True(t, s.dirty())

	s, _, _ = s.update(keyRunes("d"))
	assert.False(t, s.dirty())
}

func TestSettingsReloadAction(t *testing.T) {
	s := loadedSettings(t)
	_, _, action := s.update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, settingsActionReload, action.kind)
}

func TestSettingsSetDocumentResetsEdits(t *testing.T) {
	s := loadedSettings(t)
	selectField(t, &s, "headless")
	s, _, _ = s.update(keyRunes(" "))
	require.True(t, s.dirty())

	doc := testSettingsDoc(t)
	s.setDocument(doc, fieldbind.BuildFields(doc))
	assert.False(t, s.dirty())
}
