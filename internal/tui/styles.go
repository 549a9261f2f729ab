package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - modern dark theme
var (
	primaryColor = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	warningColor = lipgloss.Color("#F59E0B") // Amber
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
	textColor    = lipgloss.Color("#F9FAFB") // White
	dimColor     = lipgloss.Color("#9CA3AF") // Light gray
	borderColor  = lipgloss.Color("#374151") // Border
	surfaceColor = lipgloss.Color("#1F2937") // Surface background
)

const (
	iconDot       = "●"
	iconDotHollow = "○"
	iconCheck     = "✓"
	iconCross     = "✗"
	iconChevron   = "›"
	iconWarn      = "▲"
)

var (
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	tabActiveStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(primaryColor).
			Padding(0, 1).
			Bold(true)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(dimColor).
				Padding(0, 1)

	tabSeparatorStyle = lipgloss.NewStyle().
				Foreground(borderColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	valueStyle = lipgloss.NewStyle().
			Foreground(textColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(surfaceColor).
				Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)

	panelActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(primaryColor).
				Padding(0, 1)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	buttonStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(surfaceColor).
			Padding(0, 2)

	buttonActiveStyle = lipgloss.NewStyle().
				Foreground(textColor).
				Background(primaryColor).
				Padding(0, 2).
				Bold(true)

	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Background(surfaceColor).
				Padding(0, 2)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(primaryColor)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)

// stateStyle picks a color for a bot lifecycle state.
func stateStyle(state string) lipgloss.Style {
	switch state {
	case "running":
		return successStyle
	case "starting", "stopping":
		return warningStyle
	case "error":
		return errorStyle
	case "stopped", "idle":
		return mutedStyle
	default:
		return labelStyle
	}
}
