// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for browsing the file tree.
type KeyMap struct {
	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Actions
	Open    key.Binding
	Toggle  key.Binding
	Refresh key.Binding
	Diff    key.Binding

	// General
	FocusEditor key.Binding
	Help        key.Binding
	Escape      key.Binding
	Quit        key.Binding
	ToggleBar   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "collapse"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "expand"),
		),

		// Actions
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open file"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "expand/collapse"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh tree"),
		),
		Diff: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "view diff"),
		),

		// General
		FocusEditor: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus editor"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleBar: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},       // Navigation
		{k.Open, k.Toggle, k.Refresh, k.Diff}, // Actions
		{k.FocusEditor, k.Help, k.ToggleBar, k.Escape, k.Quit}, // General
	}
}

// EditorKeyMap defines the keybindings active while the editor pane has focus.
type EditorKeyMap struct {
	FocusTree key.Binding
	Save      key.Binding
	Diff      key.Binding
	Escape    key.Binding
	Quit      key.Binding
}

// DefaultEditorKeyMap returns the keybindings for the editor pane.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		FocusTree: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus tree"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save now"),
		),
		Diff: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "view diff"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to tree"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Diff, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusTree, k.Save, k.Diff},
		{k.Escape, k.Quit},
	}
}

// DiffKeyMap defines the keybindings active in the diff view.
type DiffKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultDiffKeyMap returns the keybindings for the diff view.
func DefaultDiffKeyMap() DiffKeyMap {
	return DiffKeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "scroll down"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc", "d"),
			key.WithHelp("esc", "close diff"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k DiffKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Escape, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k DiffKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Escape, k.Quit},
	}
}
