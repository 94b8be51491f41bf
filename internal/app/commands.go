package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/quill/internal/repo"
	"github.com/zjrosen/quill/internal/tree"
)

type treeLoadedMsg struct {
	root *tree.Node
	err  error
}

type changedLoadedMsg struct {
	paths []string
	err   error
}

func fetchTreeCmd(svc repo.Service) tea.Cmd {
	return func() tea.Msg {
		root, err := svc.Tree(context.Background())
		return treeLoadedMsg{root: root, err: err}
	}
}

func fetchChangedCmd(svc repo.Service) tea.Cmd {
	return func() tea.Msg {
		paths, err := svc.ChangedFiles(context.Background())
		return changedLoadedMsg{paths: paths, err: err}
	}
}
