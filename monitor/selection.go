package monitor

import "github.com/archie-linux/process-explorer/model"

// Selection is tracked by PID, never by position: the ordered sequence
// is rebuilt every cycle and its length and order change with it.

// Reconcile keeps sel if its PID is still in ordered, otherwise clears it.
func Reconcile(ordered []model.ProcessRecord, sel model.Selection) model.Selection {
	if indexOf(ordered, sel) < 0 {
		return model.NoSelection
	}
	return sel
}

// MoveDown selects the record after sel. Without a selection it picks
// the first record; at the end it stays on the last one.
func MoveDown(ordered []model.ProcessRecord, sel model.Selection) model.Selection {
	if len(ordered) == 0 {
		return model.NoSelection
	}
	i := indexOf(ordered, sel)
	switch {
	case i < 0:
		i = 0
	case i < len(ordered)-1:
		i++
	}
	return model.Select(ordered[i].PID)
}

// MoveUp selects the record before sel. Without a selection it picks
// the last record; at the start it stays on the first one.
func MoveUp(ordered []model.ProcessRecord, sel model.Selection) model.Selection {
	if len(ordered) == 0 {
		return model.NoSelection
	}
	i := indexOf(ordered, sel)
	switch {
	case i < 0:
		i = len(ordered) - 1
	case i > 0:
		i--
	}
	return model.Select(ordered[i].PID)
}

// FollowSelection returns a scroll offset that keeps row index inside a
// window of visible rows. A negative index leaves scroll clamped only.
func FollowSelection(scroll, index, visible, total int) int {
	if visible < 1 {
		visible = 1
	}
	if index >= 0 {
		if index < scroll {
			scroll = index
		}
		if index >= scroll+visible {
			scroll = index - visible + 1
		}
	}
	if limit := total - visible; scroll > limit {
		scroll = limit
	}
	if scroll < 0 {
		scroll = 0
	}
	return scroll
}

func indexOf(ordered []model.ProcessRecord, sel model.Selection) int {
	if !sel.Valid {
		return -1
	}
	for i := range ordered {
		if ordered[i].PID == sel.PID {
			return i
		}
	}
	return -1
}
