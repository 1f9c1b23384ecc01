package ui

import (
	"context"
	"errors"
	"time"

	"github.com/archie-linux/process-explorer/monitor"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// lines outside the process rows: title, summary, header, footer,
	// help, status and prompt
	chromeLines = 8

	defaultWidth = 120
	defaultRows  = 20
)

// Model holds TUI state. Operator state lives in the engine.
type Model struct {
	ctx    context.Context
	engine *monitor.Engine
	view   monitor.View

	keys keyMap
	help help.Model

	filterInput textinput.Model
	prevFilter  string
	mode        uiMode

	statusText  string
	statusError bool

	killPID  int32
	killName string

	width  int
	height int
}

func NewModel(ctx context.Context, engine *monitor.Engine) Model {
	ti := textinput.New()
	ti.Placeholder = "filter by process name..."
	ti.CharLimit = 64
	ti.Prompt = "Filter: "

	m := Model{
		ctx:         ctx,
		engine:      engine,
		keys:        defaultKeyMap(),
		help:        help.New(),
		filterInput: ti,
		mode:        normalMode,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Run starts the poll loop and the bubbletea program and blocks until
// the operator quits or ctx is cancelled.
func Run(ctx context.Context, engine *monitor.Engine, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewModel(ctx, engine), tea.WithAltScreen(), tea.WithContext(ctx))

	go engine.Loop(ctx, interval, func(u monitor.Update) {
		p.Send(updateMsg(u))
	})

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

// visibleRows is the number of processes that fit on screen.
func (m Model) visibleRows(detail bool) int {
	rows := defaultRows
	if m.height > 0 {
		rows = m.height - chromeLines
	}
	if detail {
		rows /= 2
	}
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m Model) lineWidth() int {
	if m.width > 0 {
		return m.width
	}
	return defaultWidth
}

// refresh re-presents the last snapshot after a state change.
func (m *Model) refresh() {
	m.engine.Viewport(m.visibleRows(m.engine.Config().ShowDetail))
	m.view = m.engine.Current()
}
