// Package output renders analysis results for the terminal.
package output

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#64b5f6")
	colorSuccess = lipgloss.Color("#66bb6a")
	colorWarning = lipgloss.Color("#fff59d")
	colorError   = lipgloss.Color("#ef5350")
	colorMuted   = lipgloss.Color("#888888")
)

// Styles used by the report renderer.
var (
	styleHeader  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Foreground(colorError)
	styleMuted   = lipgloss.NewStyle().Foreground(colorMuted)
	styleLabel   = lipgloss.NewStyle().Width(16)
)

// SetNoColor replaces every style with an unstyled one.
func SetNoColor(disabled bool) {
	if !disabled {
		return
	}
	plain := lipgloss.NewStyle()
	styleHeader = plain
	styleSuccess = plain
	styleWarning = plain
	styleError = plain
	styleMuted = plain
	styleLabel = plain.Width(16)
}
