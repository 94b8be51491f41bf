package app

import (
	"sort"
	"strings"
)

// RelativeChanged maps changed paths to workspace-relative labels for the
// sidebar: the workdir prefix is stripped when present, otherwise the path
// is kept as-is. The result is sorted lexicographically by the relative form.
func RelativeChanged(workdir string, paths []string) []string {
	prefix := strings.TrimSuffix(workdir, "/") + "/"

	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, strings.TrimPrefix(p, prefix))
	}
	sort.Strings(out)
	return out
}
