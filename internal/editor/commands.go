package editor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/repo"
)

// Async result messages. Every message carries the path (and debounce
// generation where applicable) it was issued for; Update drops any message
// whose target no longer matches current state.

type fileLoadedMsg struct {
	path    string
	content string
	err     error
}

type saveDebounceMsg struct {
	path    string
	content string // Buffer value captured at arm time
	gen     int
}

type saveResultMsg struct {
	path    string
	content string
	err     error
}

type savedDisplayMsg struct {
	path string
}

type diffLoadedMsg struct {
	path string
	diff string
	err  error
}

func loadFileCmd(svc repo.Service, path string) tea.Cmd {
	return func() tea.Msg {
		content, err := svc.ReadFile(context.Background(), path)
		return fileLoadedMsg{path: path, content: content, err: err}
	}
}

func armSaveCmd(path, content string, gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return saveDebounceMsg{path: path, content: content, gen: gen}
	})
}

func saveCmd(svc repo.Service, path, content string) tea.Cmd {
	return func() tea.Msg {
		err := svc.WriteFile(context.Background(), path, content)
		return saveResultMsg{path: path, content: content, err: err}
	}
}

func savedDisplayCmd(path string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return savedDisplayMsg{path: path}
	})
}

func loadDiffCmd(svc repo.Service, path string) tea.Cmd {
	return func() tea.Msg {
		diff, err := svc.Diff(context.Background(), path)
		return diffLoadedMsg{path: path, diff: diff, err: err}
	}
}
