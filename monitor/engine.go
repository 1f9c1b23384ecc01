package monitor

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/archie-linux/process-explorer/config"
	"github.com/archie-linux/process-explorer/model"
	"github.com/archie-linux/process-explorer/proc"
)

// Update is the result of one capture, handed from the poll loop to the
// render loop.
type Update struct {
	Snapshot *model.Snapshot
	System   proc.Summary
	Err      error
}

// View is everything the render loop needs to paint one frame.
type View struct {
	Config        config.EngineConfig
	Rows          []Row
	Ordered       []model.ProcessRecord // navigation order
	Tree          *ProcessTree          // nil in list view
	Snapshot      *model.Snapshot
	System        proc.Summary
	SelectedIndex int // -1 when nothing is selected
}

// Engine owns the EngineConfig and ties the collector, tree builder,
// filter/sort engine, selection navigator and terminator together.
// All exported methods are safe for concurrent use.
type Engine struct {
	Collector  *Collector
	Terminator *proc.Terminator
	System     func(context.Context) proc.Summary

	logger *log.Logger

	mu      sync.Mutex
	cfg     config.EngineConfig
	last    *model.Snapshot
	summary proc.Summary
	ordered []model.ProcessRecord
	visible int
}

func NewEngine(collector *Collector, terminator *proc.Terminator, cfg config.EngineConfig, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Engine{
		Collector:  collector,
		Terminator: terminator,
		System:     proc.ReadSummary,
		logger:     logger,
		cfg:        cfg,
	}
}

// Config returns a copy of the current configuration.
func (e *Engine) Config() config.EngineConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Refresh captures a new snapshot and presents it. On capture failure
// the previous view is returned together with the error.
func (e *Engine) Refresh(ctx context.Context) (View, error) {
	u := e.capture(ctx)
	if u.Err != nil {
		return e.Current(), u.Err
	}
	return e.Present(u), nil
}

// Present makes u the current snapshot (if it carries one) and builds
// the view for it under the current configuration.
func (e *Engine) Present(u Update) View {
	e.mu.Lock()
	defer e.mu.Unlock()
	if u.Snapshot != nil {
		e.last = u.Snapshot
		e.summary = u.System
	}
	return e.presentLocked()
}

// Current rebuilds the view of the last snapshot, e.g. after a command
// changed the sort order or the filter.
func (e *Engine) Current() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.presentLocked()
}

// Viewport tells the engine how many rows fit on screen so the scroll
// offset can follow the selection.
func (e *Engine) Viewport(rows int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = rows
}

func (e *Engine) presentLocked() View {
	var records []model.ProcessRecord
	if e.last != nil {
		records = e.last.Records
	}

	v := View{
		Snapshot:      e.last,
		System:        e.summary,
		SelectedIndex: -1,
	}

	if e.cfg.Mode == config.TreeView {
		v.Tree = BuildTree(model.Filter(records, e.cfg.Filter))
		v.Rows = v.Tree.Flatten()
		v.Ordered = make([]model.ProcessRecord, len(v.Rows))
		for i := range v.Rows {
			v.Ordered[i] = v.Rows[i].Record
		}
	} else {
		v.Ordered = model.SelectRecords(records, e.cfg.Filter, e.cfg.Sorter.Key, e.cfg.Sorter.Descending)
		v.Rows = make([]Row, len(v.Ordered))
		for i := range v.Ordered {
			v.Rows[i] = Row{Record: v.Ordered[i]}
		}
	}

	e.cfg.Selected = Reconcile(v.Ordered, e.cfg.Selected)
	v.SelectedIndex = indexOf(v.Ordered, e.cfg.Selected)
	if e.visible > 0 {
		e.cfg.Scroll = FollowSelection(e.cfg.Scroll, v.SelectedIndex, e.visible, len(v.Ordered))
	} else {
		e.cfg.Scroll = 0
	}

	e.ordered = v.Ordered
	v.Config = e.cfg
	return v
}

// OnKey applies one operator command to the configuration. Movement
// works on the ordered sequence of the last presented view.
func (e *Engine) OnKey(cmd Command) Effect {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch cmd.Kind {
	case CmdSortByCPU:
		e.cfg.Sorter.Toggle(model.SortByCPU)
	case CmdSortByMemory:
		e.cfg.Sorter.Toggle(model.SortByMemory)
	case CmdToggleDetail:
		e.cfg.ShowDetail = !e.cfg.ShowDetail
	case CmdToggleTree:
		if e.cfg.Mode == config.TreeView {
			e.cfg.Mode = config.ListView
		} else {
			e.cfg.Mode = config.TreeView
		}
	case CmdSetFilter:
		e.cfg.Filter = cmd.Filter
	case CmdMoveUp:
		e.cfg.Selected = MoveUp(e.ordered, e.cfg.Selected)
	case CmdMoveDown:
		e.cfg.Selected = MoveDown(e.ordered, e.cfg.Selected)
	case CmdKillSelected:
		if e.cfg.Selected.Valid {
			return Effect{Kill: e.cfg.Selected}
		}
	case CmdQuit:
		return Effect{Quit: true}
	}
	return Effect{}
}

// Terminate runs the terminator for pid and drops the selection when
// the selected process went away because of it.
func (e *Engine) Terminate(ctx context.Context, pid int32) (proc.Outcome, error) {
	outcome, err := e.Terminator.Terminate(ctx, pid)
	if err != nil {
		e.logger.Printf("terminate PID %d: %v", pid, err)
		return outcome, err
	}
	e.logger.Printf("terminate PID %d: %s", pid, outcome)

	if outcome.Succeeded() {
		e.mu.Lock()
		if e.cfg.Selected.Valid && e.cfg.Selected.PID == pid {
			e.cfg.Selected = model.NoSelection
		}
		e.mu.Unlock()
	}
	return outcome, nil
}

// Loop captures immediately and then once per interval, handing each
// result to sink, until ctx is cancelled. A capture that returns after
// cancellation is dropped.
func (e *Engine) Loop(ctx context.Context, interval time.Duration, sink func(Update)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		u := e.capture(ctx)
		if ctx.Err() != nil {
			return
		}
		if u.Err != nil {
			e.logger.Printf("capture failed: %v", u.Err)
		}
		sink(u)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (e *Engine) capture(ctx context.Context) Update {
	snap, err := e.Collector.Capture(ctx)
	if err != nil {
		return Update{Err: err}
	}
	u := Update{Snapshot: snap}
	if e.System != nil {
		u.System = e.System(ctx)
	}
	return u
}
