package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// VisualWidth returns the display width of text, accounting for multi-byte
// characters.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// PadRight pads text with spaces to exactly width visual columns. Text wider
// than width is returned unchanged.
func PadRight(s string, width int) string {
	if pad := width - VisualWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
