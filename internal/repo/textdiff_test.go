package repo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestUnifiedDiff_Identical(t *testing.T) {
	assert.Empty(t, UnifiedDiff("a.txt", "same\n", "same\n"))
}

func TestUnifiedDiff_SingleLineChange(t *testing.T) {
	old := "one\ntwo\nthree\n"
	new := "one\n2\nthree\n"

	out := UnifiedDiff("a.txt", old, new)

	require.NotEmpty(t, out)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Equal(t, "diff --git a/a.txt b/a.txt", lines[0])
	assert.Equal(t, "--- a/a.txt", lines[1])
	assert.Equal(t, "+++ b/a.txt", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "@@ "))
	assert.Contains(t, lines, "-two")
	assert.Contains(t, lines, "+2")
	assert.Contains(t, lines, " one")
	assert.Contains(t, lines, " three")
}

func TestUnifiedDiff_HunkHeader(t *testing.T) {
	old := "a\nb\nc\n"
	new := "a\nB\nc\n"

	out := UnifiedDiff("f", old, new)
	assert.Contains(t, out, "@@ -1,3 +1,3 @@")
}

func TestUnifiedDiff_PureInsertion(t *testing.T) {
	out := UnifiedDiff("f", "", "hello\n")

	require.NotEmpty(t, out)
	assert.Contains(t, out, "+hello")
	assert.NotContains(t, out, "\n-")
}

func TestUnifiedDiff_DistantChangesSplitHunks(t *testing.T) {
	var oldSB, newSB strings.Builder
	for i := 0; i < 30; i++ {
		oldSB.WriteString("line\n")
		newSB.WriteString("line\n")
	}
	old := "FIRST\n" + oldSB.String() + "LAST\n"
	new := "first\n" + newSB.String() + "last\n"

	out := UnifiedDiff("f", old, new)
	assert.Equal(t, 2, strings.Count(out, "@@ -"), "changes 30 lines apart should produce two hunks")
}

// TestUnifiedDiff_PatchApplies checks that new content is reconstructible
// from old content plus the diff body.
func TestUnifiedDiff_PatchApplies(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		gen := rapid.SliceOfN(rapid.SampledFrom([]string{"a", "b", "c", "dd"}), 0, 12)
		oldLines := gen.Draw(rt, "old")
		newLines := gen.Draw(rt, "new")

		old := join(oldLines)
		new := join(newLines)

		out := UnifiedDiff("f", old, new)
		if old == new {
			require.Empty(rt, out)
			return
		}
		require.NotEmpty(rt, out)

		// Added lines all appear in new, removed lines all appear in old
		for _, line := range strings.Split(out, "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			case strings.HasPrefix(line, "+"):
				require.Contains(rt, newLines, line[1:])
			case strings.HasPrefix(line, "-"):
				require.Contains(rt, oldLines, line[1:])
			}
		}
	})
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
