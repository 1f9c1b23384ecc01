package ui

import (
	"github.com/archie-linux/process-explorer/monitor"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	SortCPU key.Binding
	SortMem key.Binding
	Detail  key.Binding
	Tree    key.Binding
	Filter  key.Binding
	Kill    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "select up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "select down"),
		),
		SortCPU: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cpu"),
		),
		SortMem: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mem"),
		),
		Detail: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "cmdline"),
		),
		Tree: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "tree/list"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "/"),
			key.WithHelp("f", "filter"),
		),
		Kill: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "kill"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SortCPU, k.SortMem, k.Detail, k.Tree, k.Filter, k.Kill, k.Up, k.Down, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SortCPU, k.SortMem},
		{k.Tree, k.Detail, k.Filter},
		{k.Up, k.Down, k.Kill},
		{k.Help, k.Quit},
	}
}

// command maps a key press onto an engine command. Keys that only
// change the UI mode (filter, help) and unmapped keys report false.
func (k keyMap) command(msg tea.KeyMsg) (monitor.Command, bool) {
	switch {
	case key.Matches(msg, k.SortCPU):
		return monitor.Command{Kind: monitor.CmdSortByCPU}, true
	case key.Matches(msg, k.SortMem):
		return monitor.Command{Kind: monitor.CmdSortByMemory}, true
	case key.Matches(msg, k.Detail):
		return monitor.Command{Kind: monitor.CmdToggleDetail}, true
	case key.Matches(msg, k.Tree):
		return monitor.Command{Kind: monitor.CmdToggleTree}, true
	case key.Matches(msg, k.Up):
		return monitor.Command{Kind: monitor.CmdMoveUp}, true
	case key.Matches(msg, k.Down):
		return monitor.Command{Kind: monitor.CmdMoveDown}, true
	case key.Matches(msg, k.Kill):
		return monitor.Command{Kind: monitor.CmdKillSelected}, true
	case key.Matches(msg, k.Quit):
		return monitor.Command{Kind: monitor.CmdQuit}, true
	}
	return monitor.Command{}, false
}
