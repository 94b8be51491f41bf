// Package app contains the root application model composing the sidebar,
// editor pane, and status bar over the session store.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/editor"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/pubsub"
	"github.com/zjrosen/quill/internal/repo"
	"github.com/zjrosen/quill/internal/session/store"
	"github.com/zjrosen/quill/internal/ui/filetree"
	"github.com/zjrosen/quill/internal/ui/styles"
	"github.com/zjrosen/quill/internal/watcher"
)

// paneFocus identifies which pane receives keyboard input.
type paneFocus int

const (
	focusTree paneFocus = iota
	focusEditor
)

const sidebarWidth = 36

// Model is the root application state.
type Model struct {
	cfg   config.Config
	svc   repo.Service
	store *store.Store
	keys  keys.KeyMap

	filetree filetree.Model
	editor   editor.Model

	// Sidebar changed list, workspace-relative and sorted
	changed []string

	treeLoading   bool
	focus         paneFocus
	showStatusBar bool

	// Command issued once from Init to restore the session's open file
	restoreCmd tea.Cmd

	// Store subscription keeps panes mirroring store state
	storeCtx      context.Context
	storeCancel   context.CancelFunc
	storeListener *pubsub.ContinuousListener[store.Event]

	// File watcher for auto-refresh
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]

	width  int
	height int
}

// New creates the root model. The session store must already be open; the
// watcher is started here when auto-refresh is enabled.
func New(cfg config.Config, svc repo.Service, st *store.Store) Model {
	m := Model{
		cfg:           cfg,
		svc:           svc,
		store:         st,
		keys:          keys.DefaultKeyMap(),
		filetree:      filetree.New(),
		editor:        editor.New(svc, cfg.Editor),
		focus:         focusTree,
		showStatusBar: cfg.UI.ShowStatusBar,
		treeLoading:   true,
	}

	m.editor = m.editor.SetShowLineNumbers(cfg.UI.ShowLineNums)
	m.editor = m.editor.SetWorkdirKnown()
	m.filetree.SetChanged(st.ChangedSet())

	m.storeCtx, m.storeCancel = context.WithCancel(context.Background())
	m.storeListener = pubsub.NewContinuousListener(m.storeCtx, st.Broker())

	if cfg.AutoRefresh {
		w, err := watcher.New(watcher.Config{
			Root:   svc.Root(),
			Ignore: cfg.Tree.Ignore,
		})
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
				m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		// Watcher init errors are not fatal - the app works without auto-refresh
	}

	// Resuming a session restores its open file
	if open := st.OpenFile(); open != "" {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.OpenFile(open)
		m.editor = m.editor.SetFileChanged(st.ChangedSet().Contains(open))
		m.restoreCmd = cmd
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		fetchTreeCmd(m.svc),
		fetchChangedCmd(m.svc),
		m.storeListener.Listen(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.restoreCmd != nil {
		cmds = append(cmds, m.restoreCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case treeLoadedMsg:
		m.treeLoading = false
		if msg.err != nil {
			// Soft failure keeps the previous tree on screen
			log.Warn(log.CatTree, "Tree fetch failed", "error", msg.err)
			return m, nil
		}
		m.filetree.SetTree(msg.root)
		return m, nil

	case changedLoadedMsg:
		if msg.err != nil {
			log.Warn(log.CatRepo, "Changed-file fetch failed", "error", msg.err)
			return m, nil
		}
		// The store publishes ChangedSetChanged, which updates the panes
		m.store.ReplaceChanged(msg.paths)
		return m, nil

	case pubsub.Event[store.Event]:
		return m.handleStoreEvent(msg.Payload)

	case pubsub.Event[watcher.WatcherEvent]:
		return m.handleWatcherEvent(msg.Payload)
	}

	prevStatus := m.editor.SaveStatus()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if prevStatus != editor.SaveStatusSaved && m.editor.SaveStatus() == editor.SaveStatusSaved {
		m.store.RecordSave()
	}
	return m, cmd
}

func (m Model) handleStoreEvent(event store.Event) (tea.Model, tea.Cmd) {
	switch event.Kind {
	case store.OpenFileChanged:
		var cmd tea.Cmd
		m.editor, cmd = m.editor.OpenFile(event.OpenFile)
		m.editor = m.editor.SetFileChanged(m.store.ChangedSet().Contains(event.OpenFile))
		m.filetree.SelectByPath(event.OpenFile)
		m.focus = focusEditor
		m.editor = m.editor.Focus()
		return m, tea.Batch(cmd, m.storeListener.Listen())

	case store.ChangedSetChanged:
		m.changed = RelativeChanged(m.svc.Root(), event.Changed)
		m.filetree.SetChanged(m.store.ChangedSet())
		m.layout()
		if open := m.editor.OpenPath(); open != "" {
			m.editor = m.editor.SetFileChanged(m.store.ChangedSet().Contains(open))
		}
		return m, m.storeListener.Listen()
	}

	return m, m.storeListener.Listen()
}

func (m Model) handleWatcherEvent(event watcher.WatcherEvent) (tea.Model, tea.Cmd) {
	switch event.Type {
	case watcher.WorkspaceChanged:
		log.Debug(log.CatWatcher, "Workspace changed, refreshing")
		if open := m.editor.OpenPath(); open != "" {
			m.svc.InvalidateDiff(context.Background(), open)
		}
		m.treeLoading = true
		return m, tea.Batch(
			fetchTreeCmd(m.svc),
			fetchChangedCmd(m.svc),
			m.listenWatcher(),
		)

	case watcher.WatcherError:
		log.Warn(log.CatWatcher, "Watcher error received", "error", event.Error)
	}

	return m, m.listenWatcher()
}

func (m Model) listenWatcher() tea.Cmd {
	if m.watcherListener == nil {
		return nil
	}
	return m.watcherListener.Listen()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Quit works from either pane; plain q only while browsing the tree
	if key.Matches(msg, m.keys.Quit) && (m.focus == focusTree || msg.String() == "ctrl+c") {
		return m, tea.Quit
	}

	if m.focus == focusEditor {
		switch {
		case key.Matches(msg, m.keys.FocusEditor): // Tab returns to the tree
			m.focus = focusTree
			m.editor = m.editor.Blur()
			return m, nil
		case msg.String() == "esc" && !m.editor.InDiffMode():
			m.focus = focusTree
			m.editor = m.editor.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.filetree.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.filetree.MoveCursor(1)
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Toggle):
		m.filetree.ToggleExpand()
	case key.Matches(msg, m.keys.Open):
		return m.openSelected()
	case key.Matches(msg, m.keys.Refresh):
		m.treeLoading = true
		return m, tea.Batch(fetchTreeCmd(m.svc), fetchChangedCmd(m.svc))
	case key.Matches(msg, m.keys.Diff):
		if m.editor.DiffOffered() {
			var cmd tea.Cmd
			m.editor, cmd = m.editor.ToggleDiff()
			m.focus = focusEditor
			m.editor = m.editor.Focus()
			return m, cmd
		}
	case key.Matches(msg, m.keys.FocusEditor):
		if m.editor.State() != editor.StateEmpty && m.editor.State() != editor.StateNoFileOpen {
			m.focus = focusEditor
			m.editor = m.editor.Focus()
		}
	case key.Matches(msg, m.keys.ToggleBar):
		m.showStatusBar = !m.showStatusBar
		m.layout()
	}

	return m, nil
}

// openSelected writes the tree selection to the store. The editor reacts to
// the store's OpenFileChanged event, not to the keypress itself.
func (m Model) openSelected() (tea.Model, tea.Cmd) {
	node := m.filetree.SelectedNode()
	if node == nil {
		return m, nil
	}
	if node.IsDir {
		m.filetree.ToggleExpand()
		return m, nil
	}
	if err := m.store.SetOpenFile(node.Path); err != nil {
		log.ErrorErr(log.CatStore, "Failed to select file", err, "path", node.Path)
	}
	return m, nil
}

func (m *Model) layout() {
	contentHeight := m.height
	if m.showStatusBar {
		contentHeight--
	}
	if contentHeight < 3 {
		contentHeight = 3
	}

	editorWidth := m.width - sidebarWidth
	if editorWidth < 20 {
		editorWidth = 20
	}

	// Inner sizes exclude the pane borders
	treeHeight := contentHeight - len(m.changedSection()) - 2
	m.filetree.SetSize(sidebarWidth-2, treeHeight)
	m.editor = m.editor.SetSize(editorWidth-2, contentHeight-2)
}

// changedSection renders the sidebar's changed-files list.
func (m Model) changedSection() []string {
	if len(m.changed) == 0 {
		return nil
	}

	lines := make([]string, 0, len(m.changed)+1)
	header := lipgloss.NewStyle().Foreground(styles.TextSecondaryColor).Bold(true)
	lines = append(lines, header.Render(fmt.Sprintf("Changed (%d)", len(m.changed))))
	for _, rel := range m.changed {
		label := styles.TruncateString(rel, sidebarWidth-6)
		lines = append(lines, styles.TreeChangedStyle.Render("● ")+label)
	}
	return lines
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	contentHeight := m.height
	if m.showStatusBar {
		contentHeight--
	}
	if contentHeight < 3 {
		contentHeight = 3
	}

	treeTitle := "Files"
	if m.treeLoading {
		treeTitle = "Files (loading…)"
	}

	treeBody := m.filetree.View()
	if section := m.changedSection(); len(section) > 0 {
		treeBody += "\n" + strings.Join(section, "\n")
	}
	sidebar := styles.RenderPane(treeBody, treeTitle, sidebarWidth, contentHeight, m.focus == focusTree)

	editorTitle := m.editor.FileName()
	if editorTitle == "" {
		editorTitle = "Editor"
	}
	if m.editor.InDiffMode() {
		editorTitle += " (diff)"
	}

	editorWidth := m.width - sidebarWidth
	if editorWidth < 20 {
		editorWidth = 20
	}
	editorPane := styles.RenderPane(m.editor.View(), editorTitle, editorWidth, contentHeight, m.focus == focusEditor)

	view := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, editorPane)
	if m.showStatusBar {
		view += "\n" + m.statusBar()
	}
	return view
}

func (m Model) statusBar() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	var left string
	if name := m.editor.FileName(); name != "" {
		left = name
		if status := m.editor.StatusLine(); status != "" {
			left += "  " + status
		}
		if m.editor.DiffOffered() && !m.editor.InDiffMode() {
			left += "  " + muted.Render("d: diff")
		}
	} else {
		left = muted.Render("enter: open file")
	}

	right := muted.Render(fmt.Sprintf("%d changed  ?: help", len(m.changed)))

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return left + strings.Repeat(" ", padding) + right
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.editor = m.editor.Teardown()

	if m.storeCancel != nil {
		m.storeCancel()
	}
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
