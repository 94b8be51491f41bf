package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Git-specific errors.
var (
	// ErrNotGitRepo indicates the workspace is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrPathNotTracked indicates the path is unknown to git.
	ErrPathNotTracked = errors.New("path not tracked")
)

// GitExecutor defines the interface for the git operations the workspace
// service needs. This abstraction allows for easy testing with mock
// implementations.
type GitExecutor interface {
	IsGitRepo() bool
	// ChangedFiles returns workspace-relative paths of files that differ
	// from HEAD, including untracked files.
	ChangedFiles() ([]string, error)
	// FileDiff returns the unified diff for a single file against HEAD.
	// Untracked files produce a diff against the empty file.
	FileDiff(path string) (string, error)
	// HeadContent returns the committed content of a file at HEAD.
	// Returns ErrPathNotTracked for files git does not know about.
	HeadContent(path string) (string, error)
}

// Compile-time check that RealExecutor implements GitExecutor.
var _ GitExecutor = (*RealExecutor)(nil)

// RealExecutor implements GitExecutor by executing actual git commands.
type RealExecutor struct {
	workDir string
}

// NewRealExecutor creates a new RealExecutor rooted at workDir.
func NewRealExecutor(workDir string) *RealExecutor {
	return &RealExecutor{workDir: workDir}
}

// runGitOutput executes a git command and returns stdout and any error.
func (e *RealExecutor) runGitOutput(args ...string) (string, error) {
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.Command("git", args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", parseGitError(stderrStr, err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}

	return stdout.String(), nil
}

// parseGitError converts git stderr messages to specific error types.
func parseGitError(stderr string, originalErr error) error {
	stderrLower := strings.ToLower(stderr)

	if strings.Contains(stderrLower, "not a git repository") {
		return fmt.Errorf("%w: %s", ErrNotGitRepo, stderr)
	}

	// Unknown path: fatal: path '<p>' does not exist in 'HEAD'
	if strings.Contains(stderrLower, "does not exist in") ||
		strings.Contains(stderrLower, "exists on disk, but not in") {
		return fmt.Errorf("%w: %s", ErrPathNotTracked, stderr)
	}

	return fmt.Errorf("git error: %s: %w", stderr, originalErr)
}

// IsGitRepo checks if the workspace is inside a git repository.
func (e *RealExecutor) IsGitRepo() bool {
	_, err := e.runGitOutput("rev-parse", "--git-dir")
	return err == nil
}

// ChangedFiles returns the workspace-relative paths that differ from HEAD.
// Output is parsed from `git status --porcelain`, which already includes
// untracked files.
func (e *RealExecutor) ChangedFiles() ([]string, error) {
	output, err := e.runGitOutput("status", "--porcelain")
	if err != nil {
		return nil, err
	}
	return parseStatusPorcelain(output), nil
}

// parseStatusPorcelain extracts paths from `git status --porcelain` output.
// Renames report the new path.
func parseStatusPorcelain(output string) []string {
	var files []string
	for _, line := range strings.Split(output, "\n") {
		// Format: XY <path>, or XY <old> -> <new> for renames
		if len(line) < 4 {
			continue
		}
		path := line[3:]
		if idx := strings.Index(path, " -> "); idx >= 0 {
			path = path[idx+4:]
		}
		path = strings.Trim(path, `"`)
		if path != "" {
			files = append(files, path)
		}
	}
	return files
}

// FileDiff returns the unified diff for a single file against HEAD.
func (e *RealExecutor) FileDiff(path string) (string, error) {
	output, err := e.runGitOutput("diff", "HEAD", "--", path)
	if err != nil {
		return "", err
	}
	if output != "" {
		return output, nil
	}

	// Untracked files have no diff against HEAD, synthesize one against
	// /dev/null so new files still render.
	untracked, err := e.isUntracked(path)
	if err != nil || !untracked {
		return output, err
	}
	return e.runGitDiffOutput("diff", "--no-index", "--", "/dev/null", path)
}

// runGitDiffOutput is runGitOutput for diff commands, where git exits 1 when
// the inputs differ.
func (e *RealExecutor) runGitDiffOutput(args ...string) (string, error) {
	//nolint:gosec // G204: args come from controlled sources
	cmd := exec.Command("git", args...)
	if e.workDir != "" {
		cmd.Dir = e.workDir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 && stdout.Len() > 0 {
			return stdout.String(), nil
		}
		stderrStr := strings.TrimSpace(stderr.String())
		if stderrStr != "" {
			return "", parseGitError(stderrStr, err)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

// HeadContent returns the committed content of a file at HEAD.
func (e *RealExecutor) HeadContent(path string) (string, error) {
	return e.runGitOutput("show", "HEAD:"+path)
}

func (e *RealExecutor) isUntracked(path string) (bool, error) {
	output, err := e.runGitOutput("ls-files", "--others", "--exclude-standard", "--", path)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(output) != "", nil
}
