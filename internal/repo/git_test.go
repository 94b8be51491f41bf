package repo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatusPorcelain(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []string
	}{
		{
			name:     "empty output",
			output:   "",
			expected: nil,
		},
		{
			name:     "modified and untracked",
			output:   " M src/app.ts\n?? notes.md\n",
			expected: []string{"src/app.ts", "notes.md"},
		},
		{
			name:     "rename reports new path",
			output:   "R  old.go -> new.go\n",
			expected: []string{"new.go"},
		},
		{
			name:     "quoted path",
			output:   ` M "weird name.txt"` + "\n",
			expected: []string{"weird name.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseStatusPorcelain(tt.output))
		})
	}
}

func TestParseGitError(t *testing.T) {
	base := errors.New("exit status 128")

	err := parseGitError("fatal: not a git repository (or any of the parent directories): .git", base)
	assert.ErrorIs(t, err, ErrNotGitRepo)

	err = parseGitError("fatal: path 'x.go' does not exist in 'HEAD'", base)
	assert.ErrorIs(t, err, ErrPathNotTracked)

	err = parseGitError("fatal: something else", base)
	assert.NotErrorIs(t, err, ErrNotGitRepo)
	assert.ErrorIs(t, err, base)
}
