package config

import "github.com/archie-linux/process-explorer/model"

// ViewMode selects between the flat list and the process tree.
type ViewMode int

const (
	ListView ViewMode = iota
	TreeView
)

func (v ViewMode) String() string {
	if v == TreeView {
		return "Tree"
	}
	return "List"
}

// EngineConfig is the operator-controlled state that survives refresh
// cycles. It is only changed by explicit commands.
type EngineConfig struct {
	Sorter     model.Sorter
	Filter     string
	Mode       ViewMode
	ShowDetail bool // render the command line under each row
	Selected   model.Selection
	Scroll     int
}
