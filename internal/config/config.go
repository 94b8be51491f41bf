// Package config provides configuration types and defaults for quill.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/zjrosen/quill/internal/log"
)

// Config holds all configuration options for quill.
type Config struct {
	// WorkspaceDir is the root directory whose files are browsed and edited.
	// Default: current directory.
	WorkspaceDir string `mapstructure:"workspace_dir"`

	// AutoRefresh re-reads the file tree when the workspace changes on disk.
	AutoRefresh bool `mapstructure:"auto_refresh"`

	UI      UIConfig      `mapstructure:"ui"`
	Theme   ThemeConfig   `mapstructure:"theme"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Tree    TreeConfig    `mapstructure:"tree"`
	Storage StorageConfig `mapstructure:"storage"`
	Tracing TracingConfig `mapstructure:"tracing"`
	Flags   map[string]bool
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	ShowLineNums  bool `mapstructure:"show_line_numbers"` // Line numbers in the editor pane
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "catppuccin-latte",
	// "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Mode forces light or dark mode. If empty, uses terminal detection.
	// Valid values: "light", "dark", ""
	Mode string `mapstructure:"mode"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     diff:
	//       added: "#00FF00"
	// Or quoted dot notation:
	//   colors:
	//     "diff.added": "#00FF00"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// EditorConfig holds editing behavior configuration.
type EditorConfig struct {
	// SaveDebounceMs is the idle interval after the last keystroke before
	// the buffer is written to disk.
	// Default: 800
	SaveDebounceMs int `mapstructure:"save_debounce_ms"`

	// SavedStatusMs is how long the "saved" indicator stays visible after
	// a successful write.
	// Default: 2000
	SavedStatusMs int `mapstructure:"saved_status_ms"`

	// TabWidth is the rendered width of a tab character.
	// Default: 4
	TabWidth int `mapstructure:"tab_width"`
}

// TreeConfig holds file tree configuration.
type TreeConfig struct {
	// ShowHidden includes dotfiles in the tree listing.
	// Default: false
	ShowHidden bool `mapstructure:"show_hidden"`

	// Ignore lists directory names excluded from the tree and the watcher.
	// Default: node_modules, vendor, dist, build, target
	Ignore []string `mapstructure:"ignore"`
}

// StorageConfig holds session storage location configuration.
type StorageConfig struct {
	// BaseDir is the root directory for session storage.
	// Default: ~/.quill
	BaseDir string `mapstructure:"base_dir"`
}

// TracingConfig holds tracing configuration.
type TracingConfig struct {
	// Enabled controls whether tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/quill/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// 1.0 = all traces, 0.1 = 10% of traces
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// DefaultTracesFilePath returns the default path for trace file export.
// Returns ~/.config/quill/traces/traces.jsonl or empty string if home dir unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quill", "traces", "traces.jsonl")
}

// DefaultStorageBaseDir returns the default path for session storage.
// Returns ~/.quill or empty string if home dir unavailable.
func DefaultStorageBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".quill")
}

// DefaultIgnore returns the directory names excluded from the tree by default.
func DefaultIgnore() []string {
	return []string{"node_modules", "vendor", "dist", "build", "target"}
}

// ValidateEditor checks editor configuration for errors.
// Returns nil if the configuration is valid (zero values use defaults).
func ValidateEditor(editor EditorConfig) error {
	if editor.SaveDebounceMs < 0 {
		return fmt.Errorf("editor.save_debounce_ms must be non-negative, got %d", editor.SaveDebounceMs)
	}
	if editor.SavedStatusMs < 0 {
		return fmt.Errorf("editor.saved_status_ms must be non-negative, got %d", editor.SavedStatusMs)
	}
	if editor.TabWidth < 0 {
		return fmt.Errorf("editor.tab_width must be non-negative, got %d", editor.TabWidth)
	}
	return nil
}

// ValidateStorage checks storage configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateStorage(storage StorageConfig) error {
	if storage.BaseDir != "" && !filepath.IsAbs(storage.BaseDir) {
		return fmt.Errorf("storage.base_dir must be an absolute path, got %q", storage.BaseDir)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// Validate checks the whole configuration for errors.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateStorage(cfg.Storage); err != nil {
		return err
	}
	if err := ValidateTracing(cfg.Tracing); err != nil {
		return err
	}
	return nil
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		AutoRefresh: true,
		UI: UIConfig{
			ShowStatusBar: true,
			ShowLineNums:  true,
		},
		Theme: ThemeConfig{
			Preset: "",
		},
		Editor: EditorConfig{
			SaveDebounceMs: 800,
			SavedStatusMs:  2000,
			TabWidth:       4,
		},
		Tree: TreeConfig{
			ShowHidden: false,
			Ignore:     DefaultIgnore(),
		},
		Storage: StorageConfig{
			BaseDir: DefaultStorageBaseDir(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Quill Configuration

# Root directory whose files are browsed and edited (default: current directory)
# workspace_dir: /path/to/project

# Re-read the file tree when the workspace changes on disk
auto_refresh: true

# UI settings
ui:
  show_status_bar: true    # Show status bar at bottom
  show_line_numbers: true  # Show line numbers in the editor pane

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # Use a preset (run 'quill themes' to see available presets):
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default quill theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   catppuccin-latte  - Warm, cozy light theme
  #   dracula           - Dark theme with vibrant colors
  #   nord              - Arctic, north-bluish palette
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   diff.added: "#73F59F"
  #   diff.removed: "#FF8787"
  #   tree.changed: "#F59E0B"

# Editor behavior
editor:
  save_debounce_ms: 800  # Idle time after the last keystroke before auto-save
  saved_status_ms: 2000  # How long the "saved" indicator stays visible
  tab_width: 4

# File tree settings
tree:
  show_hidden: false  # Include dotfiles in the listing
  # Directory names excluded from the tree and the watcher
  ignore:
    - node_modules
    - vendor
    - dist
    - build
    - target

# Session storage location
# storage:
#   base_dir: ~/.quill

# Tracing configuration
# tracing:
#   enabled: false                 # Enable/disable tracing (default: false)
#   exporter: file                 # Export backend: none, file, stdout, otlp (default: file)
#   file_path: ~/.config/quill/traces/traces.jsonl  # Output file for file exporter
#   otlp_endpoint: localhost:4317  # OTLP collector endpoint (for otlp exporter)
#   sample_rate: 1.0               # Trace sampling rate 0.0-1.0 (default: 1.0)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
