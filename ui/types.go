package ui

import (
	"github.com/archie-linux/process-explorer/monitor"
	"github.com/archie-linux/process-explorer/proc"
)

// Messages

type updateMsg monitor.Update

type killResultMsg struct {
	pid     int32
	outcome proc.Outcome
	err     error
}

type statusMsg struct {
	text    string
	isError bool
}

// UI Modes

type uiMode int

const (
	normalMode uiMode = iota
	filterMode
	confirmKillMode
	helpMode
)
