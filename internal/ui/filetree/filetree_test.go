package filetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/tree"
)

func sampleTree() *tree.Node {
	return &tree.Node{
		Name: "repo", Path: "", IsDir: true,
		Children: []*tree.Node{
			{
				Name: "src", Path: "src", IsDir: true,
				Children: []*tree.Node{
					{Name: "app.ts", Path: "src/app.ts"},
					{Name: "main.ts", Path: "src/main.ts"},
				},
			},
			{Name: "README.md", Path: "README.md"},
		},
	}
}

func TestModel_EmptyTree(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	assert.Contains(t, m.View(), "No files")
}

func TestModel_TopLevelRows(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())

	// Collapsed by default: only top-level entries visible
	require.NotNil(t, m.SelectedNode())
	assert.Equal(t, "src", m.SelectedNode().Path)

	m.MoveCursor(1)
	assert.Equal(t, "README.md", m.SelectedNode().Path)

	// Clamped at the end
	m.MoveCursor(5)
	assert.Equal(t, "README.md", m.SelectedNode().Path)
}

func TestModel_ToggleExpand(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())

	m.ToggleExpand() // expand src
	m.MoveCursor(1)
	require.NotNil(t, m.SelectedNode())
	assert.Equal(t, "src/app.ts", m.SelectedNode().Path)

	m.MoveCursor(-1)
	m.ToggleExpand() // collapse src
	m.MoveCursor(1)
	assert.Equal(t, "README.md", m.SelectedNode().Path)
}

func TestModel_ToggleExpandIgnoresFiles(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())

	m.MoveCursor(1) // README.md
	m.ToggleExpand()
	assert.Equal(t, "README.md", m.SelectedNode().Path)
}

func TestModel_SelectByPath_ExpandsAncestors(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())

	ok := m.SelectByPath("src/main.ts")
	require.True(t, ok)
	assert.Equal(t, "src/main.ts", m.SelectedNode().Path)
}

func TestModel_SelectByPath_Missing(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())

	assert.False(t, m.SelectByPath("src/missing.ts"))
}

func TestModel_ChangedMarker(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())
	m.SetChanged(tree.NewChangedSet([]string{"src/app.ts"}))

	// Collapsed src directory carries the marker for its descendant
	view := m.View()
	assert.Contains(t, view, "●")
}

func TestModel_NoMarkerWhenUnchanged(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())

	assert.NotContains(t, m.View(), "●")
}

func TestModel_ExpansionSurvivesRefetch(t *testing.T) {
	m := New()
	m.SetSize(40, 10)
	m.SetTree(sampleTree())
	m.ToggleExpand() // expand src

	// Fresh snapshot replaces the old one wholesale
	m.SetTree(sampleTree())
	m.MoveCursor(1)
	assert.Equal(t, "src/app.ts", m.SelectedNode().Path, "expansion state kept across refetch")
}
