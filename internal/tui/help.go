package tui

import (
	_ "embed"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

// helpModel renders the key reference overlay. The markdown is re-rendered
// when the terminal width changes.
type helpModel struct {
	rendered string
	width    int
}

func newHelpModel() helpModel {
	return helpModel{}
}

func (h *helpModel) setSize(width, _ int) {
	if width == h.width && h.rendered != "" {
		return
	}
	h.width = width

	wrap := width - 4
	if wrap < 40 {
		wrap = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		h.rendered = helpMarkdown
		return
	}
	out, err := renderer.Render(helpMarkdown)
	if err != nil {
		h.rendered = helpMarkdown
		return
	}
	h.rendered = out
}

func (h helpModel) view() string {
	if h.rendered == "" {
		return helpMarkdown
	}
	return h.rendered + statusBarStyle.Render("esc: close help")
}
