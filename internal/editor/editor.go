// Package editor owns the open-file lifecycle for one session: content
// buffering, dirty tracking, debounced persistence, and edit/diff switching.
package editor

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/quill/internal/config"
	"github.com/zjrosen/quill/internal/keys"
	"github.com/zjrosen/quill/internal/log"
	"github.com/zjrosen/quill/internal/repo"
	"github.com/zjrosen/quill/internal/ui/diffpane"
	"github.com/zjrosen/quill/internal/ui/styles"
)

// Debounce and status-flash timing defaults.
const (
	DefaultSaveDebounce        = 800 * time.Millisecond
	DefaultSavedStatusDuration = 2 * time.Second
)

// State is the controller's position in the open-file lifecycle.
type State int

const (
	// StateEmpty means no working directory has been resolved yet.
	StateEmpty State = iota
	// StateNoFileOpen means the workspace is known but nothing is open.
	StateNoFileOpen
	// StateLoading means a content fetch is in flight for a new open path.
	StateLoading
	// StateEditing means content is loaded and the buffer is mutable.
	StateEditing
	// StateDiffLoading means a diff fetch is in flight.
	StateDiffLoading
	// StateDiffView means the diff is displayed; the buffer sits untouched
	// underneath.
	StateDiffView
)

// SaveStatus is the observable persistence phase. It is decoupled from
// Dirty() because it also encodes the transient Saving/Saved feedback.
type SaveStatus int

const (
	SaveStatusNone SaveStatus = iota
	SaveStatusDirty
	SaveStatusSaving
	SaveStatusSaved
)

// Model is the editor session controller.
type Model struct {
	svc      repo.Service
	keys     keys.EditorKeyMap
	diffKeys keys.DiffKeyMap

	state        State
	openPath     string
	buffer       textarea.Model
	savedContent string
	saveStatus   SaveStatus
	fileChanged  bool // Open file is a member of the changed set
	diffPane     diffpane.Model

	// saveGen counts debounce arms. A fired timer whose generation no longer
	// matches was superseded and is ignored; bumping the counter is how a
	// pending save is abandoned on edit, file switch, or teardown.
	saveGen        int
	saveDebounce   time.Duration
	savedStatusDur time.Duration
	tabWidth       int

	width  int
	height int
}

// New creates a controller in the Empty state.
func New(svc repo.Service, cfg config.EditorConfig) Model {
	buffer := textarea.New()
	buffer.ShowLineNumbers = true
	buffer.Prompt = ""
	buffer.CharLimit = 0

	debounce := DefaultSaveDebounce
	if cfg.SaveDebounceMs > 0 {
		debounce = time.Duration(cfg.SaveDebounceMs) * time.Millisecond
	}
	savedDur := DefaultSavedStatusDuration
	if cfg.SavedStatusMs > 0 {
		savedDur = time.Duration(cfg.SavedStatusMs) * time.Millisecond
	}
	tabWidth := cfg.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	return Model{
		svc:            svc,
		keys:           keys.DefaultEditorKeyMap(),
		diffKeys:       keys.DefaultDiffKeyMap(),
		state:          StateEmpty,
		buffer:         buffer,
		diffPane:       diffpane.New(),
		saveDebounce:   debounce,
		savedStatusDur: savedDur,
		tabWidth:       tabWidth,
	}
}

// SetShowLineNumbers toggles line numbers in the buffer.
func (m Model) SetShowLineNumbers(show bool) Model {
	m.buffer.ShowLineNumbers = show
	return m
}

// SetSize sets the pane dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.buffer.SetWidth(width)
	m.buffer.SetHeight(height)
	m.diffPane.SetSize(width, height)
	return m
}

// SetWorkdirKnown moves Empty to NoFileOpen once a workspace is resolved.
func (m Model) SetWorkdirKnown() Model {
	if m.state == StateEmpty {
		m.state = StateNoFileOpen
	}
	return m
}

// State returns the current lifecycle state.
func (m Model) State() State { return m.state }

// OpenPath returns the currently open file path, or empty.
func (m Model) OpenPath() string { return m.openPath }

// FileName returns the basename of the open file, or empty.
func (m Model) FileName() string {
	if m.openPath == "" {
		return ""
	}
	return path.Base(m.openPath)
}

// Buffer returns the current buffer content.
func (m Model) Buffer() string { return m.buffer.Value() }

// SavedContent returns the last content known to be persisted.
func (m Model) SavedContent() string { return m.savedContent }

// SaveStatus returns the observable persistence phase.
func (m Model) SaveStatus() SaveStatus { return m.saveStatus }

// Dirty reports whether the buffer differs from the last persisted content.
// Always false when no file is open; derived, never stored.
func (m Model) Dirty() bool {
	switch m.state {
	case StateEditing, StateDiffLoading, StateDiffView:
		return m.buffer.Value() != m.savedContent
	default:
		return false
	}
}

// DiffOffered reports whether the diff toggle is available: only when the
// open file is a member of the session's changed set.
func (m Model) DiffOffered() bool {
	switch m.state {
	case StateEditing, StateDiffLoading, StateDiffView:
		return m.fileChanged
	default:
		return false
	}
}

// InDiffMode reports whether the pane shows the diff instead of the buffer.
func (m Model) InDiffMode() bool {
	return m.state == StateDiffLoading || m.state == StateDiffView
}

// OpenFile switches the controller to a new path and starts the content
// fetch. Any pending debounced save for the previous file is abandoned; its
// in-flight write may still complete but its result is dropped by the
// path guard. Diff mode resets unconditionally.
func (m Model) OpenFile(p string) (Model, tea.Cmd) {
	if m.state == StateEmpty || p == "" {
		return m, nil
	}

	m.saveGen++
	m.openPath = p
	m.savedContent = ""
	m.saveStatus = SaveStatusNone
	m.fileChanged = false
	m.state = StateLoading
	m.buffer.Reset()
	m.diffPane.SetContent("")

	log.Debug(log.CatEditor, "Opening file", "path", p)
	return m, loadFileCmd(m.svc, p)
}

// CloseFile discards the open file without persisting the buffer.
func (m Model) CloseFile() Model {
	if m.state == StateEmpty {
		return m
	}
	m.saveGen++
	m.openPath = ""
	m.savedContent = ""
	m.saveStatus = SaveStatusNone
	m.fileChanged = false
	m.state = StateNoFileOpen
	m.buffer.Reset()
	return m
}

// SetFileChanged records whether the open file is in the changed set. When
// the file drops out of the set while the diff is showing, the pane falls
// back to the buffer since the toggle is no longer offered.
func (m Model) SetFileChanged(changed bool) Model {
	m.fileChanged = changed
	if !changed && m.InDiffMode() {
		m.state = StateEditing
	}
	return m
}

// ToggleDiff flips between the buffer and the diff view. Entering refetches
// the diff; leaving returns straight to the resident buffer.
func (m Model) ToggleDiff() (Model, tea.Cmd) {
	switch m.state {
	case StateEditing:
		if !m.fileChanged {
			return m, nil
		}
		m.state = StateDiffLoading
		return m, loadDiffCmd(m.svc, m.openPath)
	case StateDiffView, StateDiffLoading:
		m.state = StateEditing
		return m, nil
	default:
		return m, nil
	}
}

// Teardown abandons any pending debounce timer. No other cleanup is needed;
// controller state does not outlive the session panel.
func (m Model) Teardown() Model {
	m.saveGen++
	return m
}

// Focus gives keyboard focus to the edit buffer.
func (m Model) Focus() Model {
	m.buffer.Focus()
	return m
}

// Blur removes keyboard focus from the edit buffer.
func (m Model) Blur() Model {
	m.buffer.Blur()
	return m
}

// Update handles messages. Stale async results are dropped here.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case fileLoadedMsg:
		if msg.path != m.openPath || m.state != StateLoading {
			return m, nil
		}
		if msg.err != nil {
			log.ErrorErr(log.CatEditor, "Failed to load file", msg.err, "path", msg.path)
			// Sentinel buffer with empty saved content so the failure shows
			// as dirty instead of passing for a clean file
			m.buffer.SetValue(fmt.Sprintf("Unable to load %s: %v", msg.path, msg.err))
			m.savedContent = ""
		} else {
			m.buffer.SetValue(msg.content)
			m.savedContent = msg.content
		}
		m.saveStatus = SaveStatusNone
		m.state = StateEditing
		return m, nil

	case saveDebounceMsg:
		if msg.path != m.openPath || msg.gen != m.saveGen {
			return m, nil
		}
		m.saveStatus = SaveStatusSaving
		log.Debug(log.CatEditor, "Debounce fired, persisting", "path", msg.path)
		return m, saveCmd(m.svc, msg.path, msg.content)

	case saveResultMsg:
		if msg.path != m.openPath {
			return m, nil
		}
		if msg.err != nil {
			log.ErrorErr(log.CatEditor, "Failed to save file", msg.err, "path", msg.path)
			if m.saveStatus == SaveStatusSaving {
				m.saveStatus = SaveStatusDirty
			}
			return m, nil
		}
		m.savedContent = msg.content
		if m.saveStatus == SaveStatusSaving {
			m.saveStatus = SaveStatusSaved
			return m, savedDisplayCmd(msg.path, m.savedStatusDur)
		}
		return m, nil

	case savedDisplayMsg:
		if msg.path == m.openPath && m.saveStatus == SaveStatusSaved {
			m.saveStatus = SaveStatusNone
		}
		return m, nil

	case diffLoadedMsg:
		if msg.path != m.openPath || m.state != StateDiffLoading {
			return m, nil
		}
		diff := msg.diff
		if msg.err != nil {
			// Degrades to the "no changes" rendering
			log.ErrorErr(log.CatEditor, "Failed to load diff", msg.err, "path", msg.path)
			diff = ""
		}
		m.diffPane.SetContent(diff)
		m.state = StateDiffView
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state {
	case StateEditing:
		return m.handleEditingKey(msg)
	case StateDiffView:
		switch {
		case key.Matches(msg, m.diffKeys.Up):
			m.diffPane.ScrollUp(1)
		case key.Matches(msg, m.diffKeys.Down):
			m.diffPane.ScrollDown(1)
		case key.Matches(msg, m.diffKeys.Escape), key.Matches(msg, m.keys.Diff):
			return m.ToggleDiff()
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleEditingKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Diff):
		return m.ToggleDiff()
	case key.Matches(msg, m.keys.Save):
		return m.flushNow()
	}

	before := m.buffer.Value()

	var cmd tea.Cmd
	if msg.Type == tea.KeyTab {
		m.buffer.InsertString(strings.Repeat(" ", m.tabWidth))
	} else {
		m.buffer, cmd = m.buffer.Update(msg)
	}

	if m.buffer.Value() != before {
		return m.armSave(cmd)
	}
	return m, cmd
}

// armSave marks the buffer dirty and (re)arms the trailing-edge debounce,
// capturing the buffer value now.
func (m Model) armSave(extra tea.Cmd) (Model, tea.Cmd) {
	m.saveStatus = SaveStatusDirty
	m.saveGen++
	arm := armSaveCmd(m.openPath, m.buffer.Value(), m.saveGen, m.saveDebounce)
	if extra != nil {
		return m, tea.Batch(extra, arm)
	}
	return m, arm
}

// flushNow persists the current buffer immediately, superseding any pending
// debounce timer.
func (m Model) flushNow() (Model, tea.Cmd) {
	if !m.Dirty() {
		return m, nil
	}
	m.saveGen++
	m.saveStatus = SaveStatusSaving
	return m, saveCmd(m.svc, m.openPath, m.buffer.Value())
}

// StatusLine renders the save-status indicator for the status bar.
func (m Model) StatusLine() string {
	switch m.saveStatus {
	case SaveStatusDirty:
		return styles.DirtyStyle.Render("● Modified")
	case SaveStatusSaving:
		return styles.SavingStyle.Render("Saving…")
	case SaveStatusSaved:
		return styles.SavedStyle.Render("✓ Saved")
	default:
		if m.Dirty() {
			return styles.DirtyStyle.Render("● Modified")
		}
		return ""
	}
}

// View renders the pane for the current state.
func (m Model) View() string {
	muted := lipgloss.NewStyle().Foreground(styles.TextMutedColor)

	switch m.state {
	case StateEmpty:
		return muted.Render("No workspace")
	case StateNoFileOpen:
		return muted.Render("Select a file to begin editing")
	case StateLoading:
		return muted.Render(fmt.Sprintf("Loading %s…", m.FileName()))
	case StateDiffLoading:
		return muted.Render(fmt.Sprintf("Loading diff for %s…", m.FileName()))
	case StateDiffView:
		return m.diffPane.View()
	default:
		return m.buffer.View()
	}
}
