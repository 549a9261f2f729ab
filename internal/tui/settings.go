package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/botpanel/botpanel/internal/configtree"
	"github.com/botpanel/botpanel/internal/fieldbind"
)

type settingsActionKind int

const (
	settingsActionNone settingsActionKind = iota
	settingsActionSave
	settingsActionCopy
	settingsActionReload
)

// settingsAction is what the settings page asks the root model to do.
type settingsAction struct {
	kind     settingsActionKind
	doc      *configtree.Value
	warnings []fieldbind.Warning
	copyText string
}

type settingsMode int

const (
	settingsModeList settingsMode = iota
	settingsModeFilter
	settingsModeEdit
)

// settingsModel is the settings editor page. It renders the flattened field
// list, collects edits keyed by path, and applies them to the original
// document on save.
type settingsModel struct {
	doc    *configtree.Value
	fields []fieldbind.Field
	edits  fieldbind.Edits

	mode     settingsMode
	selected int
	visible  []int // indexes into fields after filtering

	filter textinput.Model
	input  textinput.Model
	area   textarea.Model

	warnings []fieldbind.Warning
	saveErr  error
	saved    bool

	width  int
	height int
	scroll int
}

func newSettingsModel() settingsModel {
	filter := textinput.New()
	filter.Placeholder = "filter fields"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	input := textinput.New()
	input.CharLimit = 1024

	area := textarea.New()
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetHeight(8)

	return settingsModel{
		edits:  fieldbind.Edits{},
		filter: filter,
		input:  input,
		area:   area,
	}
}

func (s *settingsModel) setSize(width, height int) {
	s.width = width
	s.height = height
	s.input.Width = width - 8
	s.area.SetWidth(width - 8)
}

func (s *settingsModel) setDocument(doc *configtree.Value, fields []fieldbind.Field) {
	s.doc = doc
	s.fields = fields
	s.edits = fieldbind.Edits{}
	s.warnings = nil
	s.saveErr = nil
	s.saved = false
	s.applyFilter()
	if s.selected >= len(s.visible) {
		s.selected = 0
	}
}

func (s *settingsModel) setSaveResult(msg saveResultMsg) {
	s.saveErr = msg.err
	s.warnings = msg.warnings
	s.saved = msg.err == nil
}

func (s settingsModel) hasDocument() bool { return s.doc != nil }

func (s settingsModel) dirty() bool { return len(s.edits) > 0 }

// capturesKeys reports whether the page is in a text-entry mode that should
// see every keystroke.
func (s settingsModel) capturesKeys() bool {
	return s.mode == settingsModeFilter || s.mode == settingsModeEdit
}

func (s *settingsModel) applyFilter() {
	query := strings.TrimSpace(s.filter.Value())
	if query == "" {
		s.visible = make([]int, len(s.fields))
		for i := range s.fields {
			s.visible[i] = i
		}
		return
	}

	targets := make([]string, len(s.fields))
	for i, f := range s.fields {
		targets[i] = f.Path.String()
	}
	matches := fuzzy.Find(query, targets)
	s.visible = make([]int, 0, len(matches))
	for _, m := range matches {
		s.visible = append(s.visible, m.Index)
	}
	if s.selected >= len(s.visible) {
		s.selected = 0
	}
}

func (s settingsModel) selectedField() (fieldbind.Field, bool) {
	if s.selected >= len(s.visible) {
		return fieldbind.Field{}, false
	}
	return s.fields[s.visible[s.selected]], true
}

// currentValue is the field's pending edit if one exists, otherwise its
// formatted original.
func (s settingsModel) currentValue(f fieldbind.Field) string {
	if v, ok := s.edits[f.EditKey()]; ok {
		return v
	}
	return fieldbind.FormatValue(f)
}

func (s settingsModel) update(msg tea.KeyMsg) (settingsModel, tea.Cmd, settingsAction) {
	switch s.mode {
	case settingsModeFilter:
		return s.updateFilter(msg)
	case settingsModeEdit:
		return s.updateEdit(msg)
	}
	return s.updateList(msg)
}

func (s settingsModel) updateList(msg tea.KeyMsg) (settingsModel, tea.Cmd, settingsAction) {
	none := settingsAction{}

	switch msg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil, none

	case "down", "j":
		if s.selected < len(s.visible)-1 {
			s.selected++
		}
		return s, nil, none

	case "/":
		s.mode = settingsModeFilter
		s.filter.Focus()
		return s, textinput.Blink, none

	case "enter", "e":
		return s.beginEdit()

	case " ":
		// Space toggles checkboxes in place.
		if f, ok := s.selectedField(); ok && f.Widget == fieldbind.WidgetCheckbox {
			if s.currentValue(f) == "true" {
				s.setEdit(f, "false")
			} else {
				s.setEdit(f, "true")
			}
		}
		return s, nil, none

	case "d":
		// Discard the pending edit on the selected field.
		if f, ok := s.selectedField(); ok {
			delete(s.edits, f.EditKey())
		}
		return s, nil, none

	case "c":
		if f, ok := s.selectedField(); ok {
			return s, nil, settingsAction{kind: settingsActionCopy, copyText: s.currentValue(f)}
		}
		return s, nil, none

	case "C":
		// Copy the whole document with pending edits applied.
		if s.doc != nil {
			doc, _ := fieldbind.Apply(s.doc, s.edits)
			if data, err := configtree.EncodeIndent(doc, "", "  "); err == nil {
				return s, nil, settingsAction{kind: settingsActionCopy, copyText: string(data)}
			}
		}
		return s, nil, none

	case "ctrl+s", "w":
		if s.doc == nil || !s.dirty() {
			return s, nil, none
		}
		doc, warnings := fieldbind.Apply(s.doc, s.edits)
		return s, nil, settingsAction{kind: settingsActionSave, doc: doc, warnings: warnings}

	case "ctrl+r":
		return s, nil, settingsAction{kind: settingsActionReload}
	}
	return s, nil, none
}

func (s settingsModel) updateFilter(msg tea.KeyMsg) (settingsModel, tea.Cmd, settingsAction) {
	none := settingsAction{}

	switch msg.String() {
	case "enter", "esc":
		s.mode = settingsModeList
		s.filter.Blur()
		if msg.String() == "esc" {
			s.filter.SetValue("")
			s.applyFilter()
		}
		return s, nil, none
	}

	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.applyFilter()
	return s, cmd, none
}

func (s settingsModel) beginEdit() (settingsModel, tea.Cmd, settingsAction) {
	none := settingsAction{}
	f, ok := s.selectedField()
	if !ok || f.Widget == fieldbind.WidgetReadOnly {
		return s, nil, none
	}

	value := s.currentValue(f)
	switch f.Widget {
	case fieldbind.WidgetCheckbox:
		// Checkbox edits happen in place, same as space.
		if value == "true" {
			s.setEdit(f, "false")
		} else {
			s.setEdit(f, "true")
		}
		return s, nil, none

	case fieldbind.WidgetSelect:
		// Cycle to the next option.
		options := f.Constraints.Options
		for i, opt := range options {
			if opt == value {
				s.setEdit(f, options[(i+1)%len(options)])
				return s, nil, none
			}
		}
		if len(options) > 0 {
			s.setEdit(f, options[0])
		}
		return s, nil, none

	case fieldbind.WidgetMultilineList, fieldbind.WidgetYAMLList:
		s.mode = settingsModeEdit
		s.area.SetValue(value)
		s.area.Focus()
		return s, textarea.Blink, none

	default:
		s.mode = settingsModeEdit
		s.input.SetValue(value)
		s.input.CursorEnd()
		s.input.Focus()
		return s, textinput.Blink, none
	}
}

func (s settingsModel) updateEdit(msg tea.KeyMsg) (settingsModel, tea.Cmd, settingsAction) {
	none := settingsAction{}
	f, ok := s.selectedField()
	if !ok {
		s.mode = settingsModeList
		return s, nil, none
	}
	multiline := f.Widget == fieldbind.WidgetMultilineList || f.Widget == fieldbind.WidgetYAMLList

	switch msg.String() {
	case "esc":
		s.mode = settingsModeList
		s.input.Blur()
		s.area.Blur()
		return s, nil, none

	case "enter":
		if !multiline {
			s.setEdit(f, s.input.Value())
			s.mode = settingsModeList
			s.input.Blur()
			return s, nil, none
		}

	case "ctrl+d":
		if multiline {
			s.setEdit(f, s.area.Value())
			s.mode = settingsModeList
			s.area.Blur()
			return s, nil, none
		}
	}

	var cmd tea.Cmd
	if multiline {
		s.area, cmd = s.area.Update(msg)
	} else {
		s.input, cmd = s.input.Update(msg)
	}
	return s, cmd, none
}

// setEdit records an edit, dropping it again when it matches the original.
func (s *settingsModel) setEdit(f fieldbind.Field, value string) {
	if value == fieldbind.FormatValue(f) {
		delete(s.edits, f.EditKey())
		return
	}
	s.edits[f.EditKey()] = value
	s.saved = false
}

func (s settingsModel) view() string {
	if s.doc == nil {
		return mutedStyle.Render("loading settings...")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Settings"))
	if s.dirty() {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  %s %d unsaved", iconDot, len(s.edits))))
	} else if s.saved {
		b.WriteString(successStyle.Render("  " + iconCheck + " saved"))
	}
	if s.filter.Value() != "" || s.mode == settingsModeFilter {
		b.WriteString("   ")
		b.WriteString(s.filter.View())
	}
	b.WriteString("\n\n")

	b.WriteString(s.listView())

	if s.mode == settingsModeEdit {
		b.WriteString("\n")
		b.WriteString(s.editView())
	}

	if s.saveErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(iconCross + " " + s.saveErr.Error()))
	}
	for _, w := range s.warnings {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("%s %s: %s", iconWarn, w.Path, w.Message)))
	}

	b.WriteString("\n")
	b.WriteString(s.footerView())
	return b.String()
}

func (s settingsModel) listView() string {
	if len(s.visible) == 0 {
		return mutedStyle.Render("no fields match the filter")
	}

	rows := s.height - 10
	if rows < 5 {
		rows = 5
	}
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := start + rows
	if end > len(s.visible) {
		end = len(s.visible)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		f := s.fields[s.visible[i]]
		b.WriteString(s.rowView(f, i == s.selected))
		b.WriteString("\n")
	}
	if end < len(s.visible) {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  … %d more", len(s.visible)-end)))
		b.WriteString("\n")
	}
	return b.String()
}

func (s settingsModel) rowView(f fieldbind.Field, selected bool) string {
	path := f.Path.String()
	value := s.currentValue(f)
	if f.Widget == fieldbind.WidgetReadOnly {
		value = f.Original.DisplayString()
	}
	value = firstLine(value)
	if len(value) > 48 {
		value = value[:45] + "…"
	}

	marker := "  "
	if _, edited := s.edits[f.EditKey()]; edited {
		marker = warningStyle.Render(iconDot) + " "
	}

	var line string
	if f.Widget == fieldbind.WidgetReadOnly {
		line = fmt.Sprintf("%s%s = %s %s", marker, path, value, mutedStyle.Render("(read-only)"))
	} else {
		line = fmt.Sprintf("%s%s = %s", marker, path, value)
	}
	if selected {
		return selectedRowStyle.Render(line)
	}
	return line
}

func (s settingsModel) editView() string {
	f, ok := s.selectedField()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("editing "))
	b.WriteString(headerStyle.Render(f.Path.String()))
	if hint := constraintHint(f); hint != "" {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(hint))
	}
	b.WriteString("\n")

	switch f.Widget {
	case fieldbind.WidgetMultilineList, fieldbind.WidgetYAMLList:
		b.WriteString(inputStyle.Render(s.area.View()))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("ctrl+d: apply  " + iconChevron + "  esc: cancel"))
	default:
		b.WriteString(inputStyle.Render(s.input.View()))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("enter: apply  " + iconChevron + "  esc: cancel"))
	}
	return b.String()
}

func (s settingsModel) footerView() string {
	parts := []string{"enter: edit", "/: filter", "c: copy value", "d: discard edit"}
	if s.dirty() {
		parts = append(parts, "ctrl+s: save")
	}
	parts = append(parts, "ctrl+r: reload")
	return statusBarStyle.Render(strings.Join(parts, "  "+iconChevron+"  "))
}

func constraintHint(f fieldbind.Field) string {
	c := f.Constraints
	switch f.Widget {
	case fieldbind.WidgetSelect:
		return "one of " + strings.Join(c.Options, ", ")
	case fieldbind.WidgetIntInput, fieldbind.WidgetFloatInput:
		var parts []string
		if c.Min != nil {
			parts = append(parts, fmt.Sprintf("min %g", *c.Min))
		}
		if c.Max != nil {
			parts = append(parts, fmt.Sprintf("max %g", *c.Max))
		}
		if c.Step != 0 {
			parts = append(parts, fmt.Sprintf("step %g", c.Step))
		}
		return strings.Join(parts, ", ")
	case fieldbind.WidgetMultilineList:
		return "one entry per line"
	case fieldbind.WidgetYAMLList:
		return "YAML list"
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + "…"
	}
	return s
}
