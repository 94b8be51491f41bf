package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetNames_SortedAndComplete(t *testing.T) {
	names := PresetNames()

	assert.Equal(t, []string{
		"catppuccin-latte",
		"catppuccin-mocha",
		"default",
		"dracula",
		"high-contrast",
		"nord",
	}, names)
}

func TestApplyPreset_UnknownName(t *testing.T) {
	err := ApplyPreset("solarized")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solarized")
}

func TestApplyPreset_OverridesColors(t *testing.T) {
	original := TreeChangedColor
	t.Cleanup(func() {
		TreeChangedColor = original
	})

	require.NoError(t, ApplyPreset("dracula"))
	assert.Equal(t, "#FFB86C", TreeChangedColor.Dark)
}
