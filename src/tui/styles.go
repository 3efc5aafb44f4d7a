package tui

import (
	"github.com/charmbracelet/lipgloss"

	"trytravis/src/travis"
)

// Styles for the watch display
var (
	waitingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))  // Yellow
	runningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Bright yellow
	passedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Bright green
	failedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Bright red
	erroredStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Bright red
	canceledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // Bright black

	headerStyle = lipgloss.NewStyle().Bold(true)
	spinStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// stateGlyph maps a job state class onto its single-character marker and the
// style its row is rendered in.
func stateGlyph(kind travis.StateKind) (string, lipgloss.Style) {
	switch kind {
	case travis.StateRunning:
		return "*", runningStyle
	case travis.StatePassed:
		return "P", passedStyle
	case travis.StateFailed:
		return "X", failedStyle
	case travis.StateErrored:
		return "!", erroredStyle
	case travis.StateCanceled:
		return "X", canceledStyle
	default:
		return "*", waitingStyle
	}
}
