package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/quill/internal/app"
	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/infrastructure/sqlite"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/repo"
	"github.com/zjrosen/quill/internal/session/store"
	"github.com/zjrosen/quill/internal/tracing"
	"github.com/zjrosen/quill/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query the terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version = "dev"
	cfgFile string
	debug   bool
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:     "quill",
	Short:   "A terminal ui for editing workspace files",
	Long:    `A terminal user interface for browsing a workspace file tree, editing files with debounced auto-save, and reviewing unified diffs against the baseline.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"enable debug logging (also via QUILL_DEBUG)")
	rootCmd.Flags().StringP("workspace", "w", "",
		"workspace directory to browse and edit")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable automatic refresh when the workspace changes on disk")

	// Bind flags to viper
	_ = viper.BindPFlag("workspace_dir", rootCmd.Flags().Lookup("workspace"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_refresh", defaults.AutoRefresh)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.show_line_numbers", defaults.UI.ShowLineNums)
	viper.SetDefault("editor.save_debounce_ms", defaults.Editor.SaveDebounceMs)
	viper.SetDefault("editor.saved_status_ms", defaults.Editor.SavedStatusMs)
	viper.SetDefault("editor.tab_width", defaults.Editor.TabWidth)
	viper.SetDefault("tree.show_hidden", defaults.Tree.ShowHidden)
	viper.SetDefault("tree.ignore", defaults.Tree.Ignore)
	viper.SetDefault("storage.base_dir", defaults.Storage.BaseDir)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .quill/config.yaml (current directory)
		// 2. ~/.config/quill/config.yaml (user config)
		if _, err := os.Stat(".quill/config.yaml"); err == nil {
			viper.SetConfigFile(".quill/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "quill"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .quill/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := ".quill/config.yaml"
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Use configured workspace or current directory
	workspace := cfg.WorkspaceDir
	if workspace == "" {
		var err error
		workspace, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("getting current directory: %w", err)
		}
	}
	workspace, err := filepath.Abs(workspace)
	if err != nil {
		return fmt.Errorf("resolving workspace path: %w", err)
	}
	if info, err := os.Stat(workspace); err != nil || !info.IsDir() {
		return fmt.Errorf("workspace is not a directory: %s", workspace)
	}
	cfg.WorkspaceDir = workspace

	// Handle --no-auto-refresh flag (negated logic)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.AutoRefresh = false
	}

	baseDir := cfg.Storage.BaseDir
	if baseDir == "" {
		baseDir = config.DefaultStorageBaseDir()
	}
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return fmt.Errorf("creating storage directory: %w", err)
	}

	if debug || os.Getenv("QUILL_DEBUG") != "" {
		cleanup, logErr := log.Init(filepath.Join(baseDir, "quill.log"))
		if logErr != nil {
			return fmt.Errorf("initializing debug log: %w", logErr)
		}
		defer cleanup()
	}

	applyTheme(cfg.Theme)

	// The provider registers itself globally; repo spans pick it up
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	db, err := sqlite.NewDB(filepath.Join(baseDir, "quill.db"))
	if err != nil {
		return fmt.Errorf("opening session database: %w", err)
	}
	defer func() { _ = db.Close() }()

	st := store.New(db.SessionRepository())
	if _, err := st.Open(workspace); err != nil {
		return fmt.Errorf("opening session: %w", err)
	}

	svc := repo.NewFSService(workspace, cfg.Tree, repo.NewRealExecutor(workspace))

	model := app.New(cfg, svc, st)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, runErr := p.Run()

	// Clean up listener and watcher resources
	if fm, ok := final.(app.Model); ok {
		if closeErr := fm.Close(); closeErr != nil && runErr == nil {
			runErr = closeErr
		}
	}
	if closeErr := st.Close(); closeErr != nil && runErr == nil {
		runErr = closeErr
	}

	if runErr != nil {
		return fmt.Errorf("running program: %w", runErr)
	}
	return nil
}

// applyTheme applies the configured mode, preset, and color overrides.
// Individual overrides win over the preset.
func applyTheme(theme config.ThemeConfig) {
	switch theme.Mode {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	if theme.Preset != "" {
		if err := styles.ApplyPreset(theme.Preset); err != nil {
			log.Warn(log.CatConfig, "Ignoring unknown theme preset", "preset", theme.Preset)
		}
	}
	styles.ApplyTheme(theme.FlattenedColors())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
