package monitor

import "github.com/archie-linux/process-explorer/model"

// CommandKind enumerates what the operator can ask the engine to do.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdSortByCPU
	CmdSortByMemory
	CmdToggleDetail
	CmdToggleTree
	CmdSetFilter
	CmdMoveUp
	CmdMoveDown
	CmdKillSelected
	CmdQuit
)

// Command is one operator request. Filter is only read by CmdSetFilter.
type Command struct {
	Kind   CommandKind
	Filter string
}

// Effect is what the caller has to do after a command: the engine does
// no I/O itself for Quit and KillSelected.
type Effect struct {
	Quit bool
	Kill model.Selection
}
