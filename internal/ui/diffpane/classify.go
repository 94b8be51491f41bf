// Package diffpane renders a unified diff with per-line classification.
package diffpane

import "strings"

// LineKind categorizes a single line of unified-diff output.
type LineKind int

const (
	KindContext LineKind = iota
	KindAddition
	KindDeletion
	KindHunk
	KindMeta
)

// Line is one classified line of diff text.
type Line struct {
	Text string
	Kind LineKind
}

// ClassifyLines splits diffText on newlines and classifies each line.
// First match wins: addition, deletion, hunk header, metadata, context.
// Empty input returns nil; callers render that as the "no changes" state
// rather than an empty line list.
func ClassifyLines(diffText string) []Line {
	if diffText == "" {
		return nil
	}

	raw := strings.Split(diffText, "\n")
	lines := make([]Line, len(raw))
	for i, text := range raw {
		lines[i] = Line{Text: text, Kind: classify(text)}
	}
	return lines
}

func classify(line string) LineKind {
	switch {
	case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
		return KindAddition
	case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
		return KindDeletion
	case strings.HasPrefix(line, "@@"):
		return KindHunk
	case strings.HasPrefix(line, "diff") || strings.HasPrefix(line, "index"):
		return KindMeta
	default:
		return KindContext
	}
}
