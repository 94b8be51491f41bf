package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
)

// TestSessionDatabase_OpensInEmptyStorageDir verifies that the session
// database initializes from scratch, the condition on first launch.
func TestSessionDatabase_OpensInEmptyStorageDir(t *testing.T) {
	baseDir := t.TempDir()

	db, err := sqlite.NewDB(filepath.Join(baseDir, "quill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NotNil(t, db.SessionRepository())
}

// TestDefaultConfig_RoundTrips verifies the generated default config file is
// valid YAML that parses back to the defaults.
func TestDefaultConfig_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".quill", "config.yaml")

	require.NoError(t, config.WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "auto_refresh: true")
	require.Contains(t, string(data), "save_debounce_ms: 800")
}
