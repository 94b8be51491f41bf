package repo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zjrosen/quill/internal/cachemanager"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/tree"
)

const diffCacheTTL = 5 * time.Second

// Compile-time check that FSService implements Service.
var _ Service = (*FSService)(nil)

// FSService implements Service over the local filesystem. Change detection
// and diffs use git when the workspace is a repository; otherwise a baseline
// snapshot is taken the first time each file is read, and diffs are computed
// in-process against it.
type FSService struct {
	root       string
	showHidden bool
	ignore     map[string]struct{}
	git        GitExecutor
	useGit     bool

	mu        sync.Mutex
	baselines map[string]string

	diffCache *cachemanager.InMemoryCacheManager[string, string]
	diffs     *cachemanager.ReadThroughCache[string, string, string]
}

// NewFSService creates a workspace service rooted at root. git may be nil to
// force the baseline-snapshot fallback.
func NewFSService(root string, cfg config.TreeConfig, git GitExecutor) *FSService {
	ignore := make(map[string]struct{}, len(cfg.Ignore))
	for _, name := range cfg.Ignore {
		ignore[name] = struct{}{}
	}

	s := &FSService{
		root:       root,
		showHidden: cfg.ShowHidden,
		ignore:     ignore,
		git:        git,
		useGit:     git != nil && git.IsGitRepo(),
		baselines:  make(map[string]string),
		diffCache:  cachemanager.NewInMemoryCacheManager[string, string]("diff", diffCacheTTL, time.Minute),
	}
	s.diffs = cachemanager.NewReadThroughCache[string, string, string](s.diffCache, s.computeDiff, false)

	log.Info(log.CatRepo, "Workspace service initialized", "root", root, "git", s.useGit)
	return s
}

// Root returns the absolute workspace root directory.
func (s *FSService) Root() string {
	return s.root
}

// Tree returns a snapshot of the workspace file tree. Directories sort
// before files, both alphabetically. Ignored and hidden entries are skipped.
func (s *FSService) Tree(ctx context.Context) (*tree.Node, error) {
	_, span := otel.Tracer("quill/repo").Start(ctx, "repo.Tree")
	defer span.End()

	root, err := s.buildDir("")
	if err != nil {
		log.ErrorErr(log.CatRepo, "Failed to build tree", err, "root", s.root)
		return nil, fmt.Errorf("building tree: %w", err)
	}
	span.SetAttributes(attribute.Int("tree.files", root.FileCount()))
	return root, nil
}

// buildDir builds the node for the directory at the given relative path.
func (s *FSService) buildDir(rel string) (*tree.Node, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))

	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", abs, err)
	}

	node := &tree.Node{
		Name:  filepath.Base(abs),
		Path:  rel,
		IsDir: true,
	}
	if rel == "" {
		node.Name = filepath.Base(s.root)
	}

	for _, entry := range entries {
		name := entry.Name()
		if s.skip(name, entry.IsDir()) {
			continue
		}
		childRel := name
		if rel != "" {
			childRel = rel + "/" + name
		}

		if entry.IsDir() {
			child, err := s.buildDir(childRel)
			if err != nil {
				// Unreadable subdirectory, show it empty rather than
				// failing the whole tree
				log.Warn(log.CatRepo, "Skipping unreadable directory", "path", childRel, "error", err)
				child = &tree.Node{Name: name, Path: childRel, IsDir: true}
			}
			node.Children = append(node.Children, child)
		} else {
			node.Children = append(node.Children, &tree.Node{Name: name, Path: childRel})
		}
	}

	// Directories first, then files, both alphabetical
	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name < b.Name
	})

	return node, nil
}

func (s *FSService) skip(name string, isDir bool) bool {
	if name == ".git" {
		return true
	}
	if !s.showHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if isDir {
		if _, ignored := s.ignore[name]; ignored {
			return true
		}
	}
	return false
}

// ChangedFiles returns the sorted relative paths of files that differ from
// the baseline. Without git, only files read during this session can report
// as changed.
func (s *FSService) ChangedFiles(ctx context.Context) ([]string, error) {
	if s.useGit {
		files, err := s.git.ChangedFiles()
		if err != nil {
			return nil, fmt.Errorf("listing changed files: %w", err)
		}
		sort.Strings(files)
		return files, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var files []string
	for path, baseline := range s.baselines {
		current, err := s.readAbs(path)
		if err != nil {
			// Deleted since baseline still counts as changed
			files = append(files, path)
			continue
		}
		if current != baseline {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadFile returns the current content of a file and records the baseline
// snapshot on first read.
func (s *FSService) ReadFile(ctx context.Context, path string) (string, error) {
	rel, err := s.normalize(path)
	if err != nil {
		return "", err
	}

	content, err := s.readAbs(rel)
	if err != nil {
		log.ErrorErr(log.CatRepo, "Failed to read file", err, "path", rel)
		return "", err
	}

	if !s.useGit {
		s.mu.Lock()
		if _, seen := s.baselines[rel]; !seen {
			s.baselines[rel] = content
		}
		s.mu.Unlock()
	}

	return content, nil
}

// WriteFile persists content to a file and invalidates its cached diff.
func (s *FSService) WriteFile(ctx context.Context, path, content string) error {
	rel, err := s.normalize(path)
	if err != nil {
		return err
	}

	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		log.ErrorErr(log.CatRepo, "Failed to write file", err, "path", rel)
		return fmt.Errorf("writing %s: %w", rel, err)
	}

	log.Debug(log.CatRepo, "Wrote file", "path", rel, "bytes", len(content))
	s.InvalidateDiff(ctx, rel)
	return nil
}

// Diff returns the unified diff of a file against its baseline. Results are
// cached briefly and invalidated on write.
func (s *FSService) Diff(ctx context.Context, path string) (string, error) {
	ctx, span := otel.Tracer("quill/repo").Start(ctx, "repo.Diff")
	defer span.End()
	span.SetAttributes(attribute.String("file.path", path))

	rel, err := s.normalize(path)
	if err != nil {
		return "", err
	}
	return s.diffs.Get(ctx, "diff:"+rel, rel, diffCacheTTL)
}

// InvalidateDiff drops any cached diff for path.
func (s *FSService) InvalidateDiff(ctx context.Context, path string) {
	rel, err := s.normalize(path)
	if err != nil {
		return
	}
	_ = s.diffCache.Delete(ctx, "diff:"+rel)
}

// computeDiff is the cache loader behind Diff.
func (s *FSService) computeDiff(ctx context.Context, rel string) (string, error) {
	if s.useGit {
		out, err := s.git.FileDiff(rel)
		if err != nil {
			return "", fmt.Errorf("diffing %s: %w", rel, err)
		}
		return out, nil
	}

	s.mu.Lock()
	baseline, seen := s.baselines[rel]
	s.mu.Unlock()
	if !seen {
		return "", nil
	}

	current, err := s.readAbs(rel)
	if err != nil {
		current = ""
	}
	return UnifiedDiff(rel, baseline, current), nil
}

// normalize validates a workspace-relative path and cleans it.
func (s *FSService) normalize(path string) (string, error) {
	cleaned := filepath.ToSlash(filepath.Clean(filepath.FromSlash(path)))
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("%w: %q", ErrIsDirectory, path)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("%w: %q", ErrOutsideWorkspace, path)
	}
	return cleaned, nil
}

func (s *FSService) readAbs(rel string) (string, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %q", ErrIsDirectory, rel)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
