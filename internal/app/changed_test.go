package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelativeChanged(t *testing.T) {
	tests := []struct {
		name    string
		workdir string
		paths   []string
		want    []string
	}{
		{
			name:    "strips the workspace prefix",
			workdir: "/repo",
			paths:   []string{"/repo/src/app.ts"},
			want:    []string{"src/app.ts"},
		},
		{
			name:    "sorts the result",
			workdir: "/repo",
			paths:   []string{"/repo/src/b.ts", "/repo/README.md", "/repo/src/a.ts"},
			want:    []string{"README.md", "src/a.ts", "src/b.ts"},
		},
		{
			name:    "tolerates a trailing slash on the workdir",
			workdir: "/repo/",
			paths:   []string{"/repo/src/app.ts"},
			want:    []string{"src/app.ts"},
		},
		{
			name:    "passes already-relative paths through",
			workdir: "/repo",
			paths:   []string{"src/app.ts", "docs/guide.md"},
			want:    []string{"docs/guide.md", "src/app.ts"},
		},
		{
			name:    "empty input",
			workdir: "/repo",
			paths:   nil,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeChanged(tt.workdir, tt.paths))
		})
	}
}
