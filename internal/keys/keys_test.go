package keys

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap_KeyAssignments(t *testing.T) {
	keys := DefaultKeyMap()

	tests := []struct {
		name     string
		binding  key.Binding
		expected []string
	}{
		{"Up uses k and up", keys.Up, []string{"k", "up"}},
		{"Down uses j and down", keys.Down, []string{"j", "down"}},
		{"Open uses enter", keys.Open, []string{"enter"}},
		{"Toggle uses space", keys.Toggle, []string{" "}},
		{"Refresh uses r", keys.Refresh, []string{"r"}},
		{"Diff uses d", keys.Diff, []string{"d"}},
		{"FocusEditor uses tab", keys.FocusEditor, []string{"tab"}},
		{"Quit uses q and ctrl+c", keys.Quit, []string{"q", "ctrl+c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.binding.Keys())
		})
	}
}

func TestDefaultKeyMap_HelpTextDefined(t *testing.T) {
	keys := DefaultKeyMap()

	for _, row := range keys.FullHelp() {
		for _, b := range row {
			help := b.Help()
			require.NotEmpty(t, help.Key, "key help should not be empty")
			require.NotEmpty(t, help.Desc, "description help should not be empty")
		}
	}
}

func TestDefaultEditorKeyMap_SaveNotQ(t *testing.T) {
	// Plain letters must stay typeable in the editor buffer, so editor-pane
	// bindings use modifiers only.
	keys := DefaultEditorKeyMap()

	require.Equal(t, []string{"ctrl+s"}, keys.Save.Keys())
	require.Equal(t, []string{"ctrl+d"}, keys.Diff.Keys())
	require.NotContains(t, keys.Quit.Keys(), "q", "editor quit must not swallow the letter q")
}

func TestDefaultDiffKeyMap_CloseKeys(t *testing.T) {
	keys := DefaultDiffKeyMap()

	require.Contains(t, keys.Escape.Keys(), "esc")
	require.Contains(t, keys.Escape.Keys(), "d")
}

func TestShortHelp(t *testing.T) {
	require.Len(t, DefaultKeyMap().ShortHelp(), 2)
	require.Len(t, DefaultEditorKeyMap().ShortHelp(), 3)
	require.Len(t, DefaultDiffKeyMap().ShortHelp(), 2)
}
