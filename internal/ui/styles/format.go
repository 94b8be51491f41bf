// Package styles contains Lip Gloss style definitions.
package styles

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}

	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}

	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	return truncate.StringWithTail(s, uint(maxWidth), "...")
}

// PadRight pads s with spaces to exactly width display cells, truncating if needed.
func PadRight(s string, width int) string {
	if width < 1 {
		return ""
	}
	s = TruncateString(s, width)
	if gap := width - runewidth.StringWidth(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
