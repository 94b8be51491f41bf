package diffpane

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/ui/styles"
)

// Model holds the diff pane state: classified lines plus a scroll window.
type Model struct {
	lines     []Line
	scrollTop int
	width     int
	height    int
}

// New creates an empty diff pane.
func New() Model {
	return Model{}
}

// SetContent replaces the displayed diff and resets scroll position.
func (m *Model) SetContent(diffText string) {
	m.lines = ClassifyLines(diffText)
	m.scrollTop = 0
}

// Lines returns the classified lines currently displayed.
func (m *Model) Lines() []Line {
	return m.lines
}

// Empty reports whether the pane has no diff to show.
func (m *Model) Empty() bool {
	return len(m.lines) == 0
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampScroll()
}

// ScrollUp moves the window up by n lines.
func (m *Model) ScrollUp(n int) {
	m.scrollTop -= n
	m.clampScroll()
}

// ScrollDown moves the window down by n lines.
func (m *Model) ScrollDown(n int) {
	m.scrollTop += n
	m.clampScroll()
}

// GotoTop scrolls to the first line.
func (m *Model) GotoTop() {
	m.scrollTop = 0
}

// GotoBottom scrolls so the last line is visible.
func (m *Model) GotoBottom() {
	m.scrollTop = len(m.lines) - m.viewportHeight()
	m.clampScroll()
}

func (m *Model) clampScroll() {
	maxScroll := max(len(m.lines)-m.viewportHeight(), 0)
	m.scrollTop = min(m.scrollTop, maxScroll)
	m.scrollTop = max(m.scrollTop, 0)
}

func (m *Model) viewportHeight() int {
	if m.height > 0 {
		return m.height
	}
	return 1
}

// View renders the visible window of classified lines.
func (m *Model) View() string {
	if len(m.lines) == 0 {
		muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		return muted.Render("No changes")
	}

	var sb strings.Builder

	viewportHeight := m.viewportHeight()
	endIdx := min(m.scrollTop+viewportHeight, len(m.lines))

	if m.scrollTop > 0 {
		muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(muted.Render(fmt.Sprintf("  ↑ %d more above", m.scrollTop)))
		sb.WriteString("\n")
	}

	for i := m.scrollTop; i < endIdx; i++ {
		sb.WriteString(m.renderLine(m.lines[i]))
		sb.WriteString("\n")
	}

	remaining := len(m.lines) - endIdx
	if remaining > 0 {
		muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(muted.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderLine styles a single line by its kind. Blank lines become a single
// space placeholder so they keep their row instead of collapsing.
func (m *Model) renderLine(line Line) string {
	text := line.Text
	if text == "" {
		text = " "
	}
	if m.width > 0 && lipgloss.Width(text) > m.width {
		text = styles.TruncateString(text, m.width)
	}

	switch line.Kind {
	case KindAddition:
		return styles.DiffAddedStyle.Render(text)
	case KindDeletion:
		return styles.DiffRemovedStyle.Render(text)
	case KindHunk:
		return styles.DiffHunkStyle.Render(text)
	case KindMeta:
		return styles.DiffHeaderStyle.Render(text)
	default:
		return styles.DiffContextStyle.Render(text)
	}
}
