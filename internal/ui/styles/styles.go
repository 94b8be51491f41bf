// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#CCCCCC"} // Main/primary text
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#BBBBBB"} // Paths, secondary info
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"} // Empty-state text

	// Semantic color names - Border
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"} // Unfocused borders
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused pane border

	// Semantic color names - Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"} // Saved indicator
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"} // Dirty indicator
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"} // Errors

	// Selection indicator color (used for ">" prefix in the tree)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Tree colors
	TreeDirColor     = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}
	TreeChangedColor = lipgloss.AdaptiveColor{Light: "#FF9F43", Dark: "#F59E0B"} // Changed marker

	// Diff colors
	DiffAddedColor   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	DiffRemovedColor = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	DiffHunkColor    = lipgloss.AdaptiveColor{Light: "#179299", Dark: "#94E2D5"}
	DiffHeaderColor  = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	DiffContextColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Selection indicator style
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// Tree styles
	TreeDirStyle     = lipgloss.NewStyle().Foreground(TreeDirColor).Bold(true)
	TreeFileStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	TreeChangedStyle = lipgloss.NewStyle().Foreground(TreeChangedColor).Bold(true)
	TreeBranchStyle  = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Diff styles
	DiffAddedStyle   = lipgloss.NewStyle().Foreground(DiffAddedColor)
	DiffRemovedStyle = lipgloss.NewStyle().Foreground(DiffRemovedColor)
	DiffHunkStyle    = lipgloss.NewStyle().Foreground(DiffHunkColor).Bold(true)
	DiffHeaderStyle  = lipgloss.NewStyle().Foreground(DiffHeaderColor).Bold(true)
	DiffContextStyle = lipgloss.NewStyle().Foreground(DiffContextColor)

	// Save status indicators
	SavedStyle  = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	DirtyStyle  = lipgloss.NewStyle().Foreground(StatusWarningColor)
	SavingStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error display
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	// Loading spinner color
	SpinnerColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#FFF"}
)

// ApplyTheme applies custom theme colors from configuration.
// Empty strings are ignored, keeping the default values.
func ApplyTheme(colors map[string]string) {
	if c, ok := colors["text.muted"]; ok && c != "" {
		TextMutedColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
		BorderDefaultColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
	}
	if c, ok := colors["status.error"]; ok && c != "" {
		StatusErrorColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
	}
	if c, ok := colors["status.success"]; ok && c != "" {
		StatusSuccessColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
	}
	if c, ok := colors["tree.changed"]; ok && c != "" {
		TreeChangedColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
		TreeChangedStyle = lipgloss.NewStyle().Foreground(TreeChangedColor).Bold(true)
	}
	if c, ok := colors["diff.added"]; ok && c != "" {
		DiffAddedColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
		DiffAddedStyle = lipgloss.NewStyle().Foreground(DiffAddedColor)
	}
	if c, ok := colors["diff.removed"]; ok && c != "" {
		DiffRemovedColor = lipgloss.AdaptiveColor{Light: c, Dark: c}
		DiffRemovedStyle = lipgloss.NewStyle().Foreground(DiffRemovedColor)
	}
}
