// Package repo provides workspace file access, change detection, and diffs.
package repo

import (
	"context"
	"errors"

	"github.com/zjrosen/quill/internal/tree"
)

// Workspace errors.
var (
	// ErrOutsideWorkspace indicates a path that escapes the workspace root.
	ErrOutsideWorkspace = errors.New("path outside workspace")

	// ErrIsDirectory indicates a file operation was attempted on a directory.
	ErrIsDirectory = errors.New("path is a directory")
)

// Service defines workspace operations for the editor surface. All paths are
// workspace-relative using forward slashes.
type Service interface {
	// Root returns the absolute workspace root directory.
	Root() string

	// Tree returns a snapshot of the workspace file tree.
	Tree(ctx context.Context) (*tree.Node, error)

	// ChangedFiles returns the sorted relative paths of files that differ
	// from the baseline.
	ChangedFiles(ctx context.Context) ([]string, error)

	// ReadFile returns the current content of a file.
	ReadFile(ctx context.Context, path string) (string, error)

	// WriteFile persists content to a file, creating it if needed.
	WriteFile(ctx context.Context, path, content string) error

	// Diff returns the unified diff of a file against its baseline.
	// An unchanged file yields an empty string.
	Diff(ctx context.Context, path string) (string, error)

	// InvalidateDiff drops any cached diff for path, forcing the next Diff
	// call to recompute.
	InvalidateDiff(ctx context.Context, path string)
}
