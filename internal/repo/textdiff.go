package repo

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const diffContextLines = 3

// UnifiedDiff builds a git-style unified diff between two versions of a file.
// Used as the baseline comparison when the workspace is not a git repository.
// Returns an empty string when the contents are identical.
func UnifiedDiff(path, oldText, newText string) string {
	if oldText == newText {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lineArray)

	ops := flattenLines(diffs)
	hunks := buildHunks(ops, diffContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "diff --git a/%s b/%s\n", path, path)
	fmt.Fprintf(&sb, "--- a/%s\n", path)
	fmt.Fprintf(&sb, "+++ b/%s\n", path)
	for _, h := range hunks {
		sb.WriteString(h.header())
		sb.WriteString("\n")
		for _, line := range h.lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// lineOp is a single line of the diff with its operation.
type lineOp struct {
	op   diffmatchpatch.Operation
	text string
}

// flattenLines splits multi-line diff chunks into per-line operations.
func flattenLines(diffs []diffmatchpatch.Diff) []lineOp {
	var ops []lineOp
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" && d.Text != "\n" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			ops = append(ops, lineOp{op: d.Type, text: line})
		}
	}
	return ops
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []string
}

func (h hunk) header() string {
	oldStart := h.oldStart
	if h.oldCount == 0 {
		oldStart--
	}
	newStart := h.newStart
	if h.newCount == 0 {
		newStart--
	}
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", oldStart, h.oldCount, newStart, h.newCount)
}

// buildHunks groups changed lines into hunks with the given amount of
// surrounding context. Changes separated by at most 2*context equal lines
// share a hunk.
func buildHunks(ops []lineOp, context int) []hunk {
	oldNums := make([]int, len(ops))
	newNums := make([]int, len(ops))
	o, n := 1, 1
	for i, op := range ops {
		oldNums[i], newNums[i] = o, n
		switch op.op {
		case diffmatchpatch.DiffDelete:
			o++
		case diffmatchpatch.DiffInsert:
			n++
		default:
			o++
			n++
		}
	}

	var hunks []hunk
	i := 0
	for i < len(ops) {
		if ops[i].op == diffmatchpatch.DiffEqual {
			i++
			continue
		}

		// Extend the group while equal gaps stay within 2*context
		start, end := i, i
		gap := 0
		for j := i + 1; j < len(ops); j++ {
			if ops[j].op == diffmatchpatch.DiffEqual {
				gap++
				if gap > 2*context {
					break
				}
			} else {
				end = j
				gap = 0
			}
		}

		lo := start - context
		if lo < 0 {
			lo = 0
		}
		hi := end + context
		if hi > len(ops)-1 {
			hi = len(ops) - 1
		}

		h := hunk{oldStart: oldNums[lo], newStart: newNums[lo]}
		for k := lo; k <= hi; k++ {
			switch ops[k].op {
			case diffmatchpatch.DiffDelete:
				h.lines = append(h.lines, "-"+ops[k].text)
				h.oldCount++
			case diffmatchpatch.DiffInsert:
				h.lines = append(h.lines, "+"+ops[k].text)
				h.newCount++
			default:
				h.lines = append(h.lines, " "+ops[k].text)
				h.oldCount++
				h.newCount++
			}
		}
		hunks = append(hunks, h)
		i = hi + 1
	}
	return hunks
}
