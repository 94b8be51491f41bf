// Package filetree renders the sidebar file tree with changed markers.
package filetree

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/tree"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// row is one visible line of the tree: a node plus its rendered branch prefix.
type row struct {
	node   *tree.Node
	prefix string
}

// Model holds the tree pane state.
type Model struct {
	root      *tree.Node
	rows      []row
	cursor    int
	expanded  map[string]bool
	changed   tree.ChangedSet
	width     int
	height    int
	scrollTop int
}

// New creates an empty tree pane. Call SetTree once a snapshot is available.
func New() Model {
	return Model{expanded: make(map[string]bool)}
}

// SetTree replaces the displayed snapshot. Expansion state is kept for paths
// that survive the refetch; the root is always expanded.
func (m *Model) SetTree(root *tree.Node) {
	m.root = root
	if root != nil {
		m.expanded[root.Path] = true
	}
	m.refresh()
}

// SetChanged replaces the changed set used for markers.
func (m *Model) SetChanged(changed tree.ChangedSet) {
	m.changed = changed
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// MoveCursor moves the cursor by delta, respecting bounds.
func (m *Model) MoveCursor(delta int) {
	newPos := m.cursor + delta
	newPos = max(newPos, 0)
	newPos = min(newPos, len(m.rows)-1)
	newPos = max(newPos, 0) // Handle empty rows case
	m.cursor = newPos
	m.ensureCursorVisible()
}

// SelectedNode returns the node under the cursor, or nil.
func (m *Model) SelectedNode() *tree.Node {
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		return m.rows[m.cursor].node
	}
	return nil
}

// SelectByPath moves the cursor to the node with the given path, expanding
// ancestors as needed. Returns false if the path is not in the snapshot.
func (m *Model) SelectByPath(path string) bool {
	if m.root == nil || m.root.Find(path) == nil {
		return false
	}
	m.expandAncestors(path)
	m.refresh()
	for i, r := range m.rows {
		if r.node.Path == path {
			m.cursor = i
			m.ensureCursorVisible()
			return true
		}
	}
	return false
}

// ToggleExpand flips the expansion state of the directory under the cursor.
// Files are left to the caller (selection).
func (m *Model) ToggleExpand() {
	node := m.SelectedNode()
	if node == nil || !node.IsDir {
		return
	}
	m.expanded[node.Path] = !m.expanded[node.Path]
	m.refresh()
}

// expandAncestors marks every directory on the way to path as expanded.
func (m *Model) expandAncestors(path string) {
	for i, r := range path {
		if r == '/' {
			m.expanded[path[:i]] = true
		}
	}
	if m.root != nil {
		m.expanded[m.root.Path] = true
	}
}

// refresh rebuilds the visible rows after tree or expansion changes.
func (m *Model) refresh() {
	m.rows = m.rows[:0]
	if m.root == nil {
		m.cursor = 0
		return
	}

	// Root's children are the top level; the root itself is not a row.
	m.flatten(m.root, "")

	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

func (m *Model) flatten(dir *tree.Node, prefix string) {
	for i, child := range dir.Children {
		isLast := i == len(dir.Children)-1

		connector := "├─ "
		childPrefix := prefix + "│  "
		if isLast {
			connector = "└─ "
			childPrefix = prefix + "   "
		}

		m.rows = append(m.rows, row{node: child, prefix: prefix + connector})
		if child.IsDir && m.expanded[child.Path] {
			m.flatten(child, childPrefix)
		}
	}
}

func (m *Model) ensureCursorVisible() {
	viewportHeight := m.viewportHeight()
	if viewportHeight <= 0 {
		return
	}

	if m.cursor >= m.scrollTop+viewportHeight {
		m.scrollTop = m.cursor - viewportHeight + 1
	}
	if m.cursor < m.scrollTop {
		m.scrollTop = m.cursor
	}

	maxScroll := max(len(m.rows)-viewportHeight, 0)
	m.scrollTop = min(m.scrollTop, maxScroll)
	m.scrollTop = max(m.scrollTop, 0)
}

func (m *Model) viewportHeight() int {
	if m.height > 1 {
		return m.height - 1
	}
	return 1
}

// View renders the visible window of the tree.
func (m *Model) View() string {
	if m.root == nil || len(m.rows) == 0 {
		muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		return muted.Render("No files")
	}

	var sb strings.Builder

	viewportHeight := m.viewportHeight()
	endIdx := min(m.scrollTop+viewportHeight, len(m.rows))

	if m.scrollTop > 0 {
		muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(muted.Render(fmt.Sprintf("  ↑ %d more above", m.scrollTop)))
		sb.WriteString("\n")
	}

	for i := m.scrollTop; i < endIdx; i++ {
		sb.WriteString(m.renderRow(m.rows[i], i == m.cursor))
		sb.WriteString("\n")
	}

	remaining := len(m.rows) - endIdx
	if remaining > 0 {
		muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
		sb.WriteString(muted.Render(fmt.Sprintf("  ↓ %d more below", remaining)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) renderRow(r row, isSelected bool) string {
	var sb strings.Builder

	if isSelected {
		sb.WriteString(styles.SelectionIndicatorStyle.Render(">"))
	} else {
		sb.WriteString(" ")
	}

	sb.WriteString(styles.TreeBranchStyle.Render(r.prefix))

	name := r.node.Name
	if r.node.IsDir {
		if m.expanded[r.node.Path] {
			name += "/"
		} else {
			name += "/…"
		}
	}

	isChanged := tree.IsChanged(r.node, m.changed)
	if isChanged {
		sb.WriteString(styles.TreeChangedStyle.Render(name))
		sb.WriteString(" ")
		sb.WriteString(styles.TreeChangedStyle.Render("●"))
	} else {
		sb.WriteString(name)
	}

	rendered := sb.String()
	if m.width > 0 && lipgloss.Width(rendered) > m.width {
		rendered = styles.TruncateString(rendered, m.width)
	}
	return rendered
}
