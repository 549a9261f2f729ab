package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/botpanel/botpanel/internal/botapi"
)

// runModel is the start/stop page. Button enablement follows the lifecycle
// state: start from idle, error, or stopped; stop from running or starting.
type runModel struct {
	status   *botapi.Status
	focused  int // 0 start, 1 stop
	statusOK bool
}

func newRunModel() runModel {
	return runModel{}
}

func (r *runModel) setStatus(status *botapi.Status) {
	r.status = status
	r.statusOK = status != nil

	// Keep focus on an enabled button when the state flips.
	if status != nil {
		if r.focused == 0 && !status.CanStart() && status.CanStop() {
			r.focused = 1
		}
		if r.focused == 1 && !status.CanStop() && status.CanStart() {
			r.focused = 0
		}
	}
}

// update returns the control action to send, if the key confirmed one.
func (r *runModel) update(msg tea.KeyMsg) (botapi.ControlAction, bool) {
	switch msg.String() {
	case "left", "h", "right", "l":
		r.focused = 1 - r.focused
		return "", false

	case "enter", " ":
		if r.status == nil {
			return "", false
		}
		if r.focused == 0 && r.status.CanStart() {
			return botapi.ControlStart, true
		}
		if r.focused == 1 && r.status.CanStop() {
			return botapi.ControlStop, true
		}
		return "", false

	case "s":
		if r.status != nil && r.status.CanStart() {
			return botapi.ControlStart, true
		}
		return "", false

	case "x":
		if r.status != nil && r.status.CanStop() {
			return botapi.ControlStop, true
		}
		return "", false
	}
	return "", false
}

func (r runModel) view() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Bot Control"))
	b.WriteString("\n\n")

	if !r.statusOK {
		b.WriteString(errorStyle.Render(iconCross + " backend unreachable"))
		b.WriteString("\n\n")
		b.WriteString(mutedStyle.Render("controls are disabled until the backend responds"))
		return b.String()
	}

	b.WriteString(labelStyle.Render("State    "))
	b.WriteString(stateStyle(r.status.State).Render(iconDot + " " + r.status.State))
	b.WriteString("\n")

	if r.status.Details != "" {
		b.WriteString(labelStyle.Render("Details  "))
		b.WriteString(valueStyle.Render(r.status.Details))
		b.WriteString("\n")
	}
	if ts, ok := r.status.LastUpdateTime(); ok {
		b.WriteString(labelStyle.Render("Updated  "))
		b.WriteString(valueStyle.Render(ts.Format("2006-01-02 15:04:05")))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(r.buttonView("Start (s)", r.status.CanStart(), r.focused == 0))
	b.WriteString("  ")
	b.WriteString(r.buttonView("Stop (x)", r.status.CanStop(), r.focused == 1))
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("enter: press focused button  " + iconChevron + "  arrows: move focus"))

	return b.String()
}

func (r runModel) buttonView(label string, enabled, focused bool) string {
	if !enabled {
		return buttonDisabledStyle.Render(label)
	}
	if focused {
		return buttonActiveStyle.Render(label)
	}
	return buttonStyle.Render(label)
}
