package styles

import (
	"fmt"
	"sort"
)

// themePresets maps preset names to the color tokens they override.
// The "default" preset is empty: it keeps the built-in palette.
var themePresets = map[string]map[string]string{
	"default": {},
	"catppuccin-mocha": {
		"text.muted":     "#6C7086",
		"status.error":   "#F38BA8",
		"status.success": "#A6E3A1",
		"tree.changed":   "#FAB387",
		"diff.added":     "#A6E3A1",
		"diff.removed":   "#F38BA8",
	},
	"catppuccin-latte": {
		"text.muted":     "#9CA0B0",
		"status.error":   "#D20F39",
		"status.success": "#40A02B",
		"tree.changed":   "#FE640B",
		"diff.added":     "#40A02B",
		"diff.removed":   "#D20F39",
	},
	"dracula": {
		"text.muted":     "#6272A4",
		"status.error":   "#FF5555",
		"status.success": "#50FA7B",
		"tree.changed":   "#FFB86C",
		"diff.added":     "#50FA7B",
		"diff.removed":   "#FF5555",
	},
	"nord": {
		"text.muted":     "#4C566A",
		"status.error":   "#BF616A",
		"status.success": "#A3BE8C",
		"tree.changed":   "#EBCB8B",
		"diff.added":     "#A3BE8C",
		"diff.removed":   "#BF616A",
	},
	"high-contrast": {
		"text.muted":     "#BBBBBB",
		"status.error":   "#FF0000",
		"status.success": "#00FF00",
		"tree.changed":   "#FFFF00",
		"diff.added":     "#00FF00",
		"diff.removed":   "#FF0000",
	},
}

// PresetNames returns the available preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyPreset applies a built-in theme preset by name.
func ApplyPreset(name string) error {
	colors, ok := themePresets[name]
	if !ok {
		return fmt.Errorf("unknown theme preset: %q", name)
	}
	ApplyTheme(colors)
	return nil
}
