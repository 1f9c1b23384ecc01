package monitor

import (
	"testing"

	"github.com/archie-linux/process-explorer/model"

	"github.com/stretchr/testify/assert"
)

func ordered(ids ...int32) []model.ProcessRecord {
	out := make([]model.ProcessRecord, len(ids))
	for i, id := range ids {
		out[i] = model.ProcessRecord{PID: id}
	}
	return out
}

func TestReconcile(t *testing.T) {
	seq := ordered(30, 10, 20)

	assert.Equal(t, model.Select(10), Reconcile(seq, model.Select(10)))
	assert.Equal(t, model.NoSelection, Reconcile(seq, model.Select(99)), "exited process clears the selection")
	assert.Equal(t, model.NoSelection, Reconcile(seq, model.NoSelection))
	assert.Equal(t, model.NoSelection, Reconcile(nil, model.Select(10)))
}

func TestMoveDown(t *testing.T) {
	seq := ordered(30, 10, 20)

	sel := MoveDown(seq, model.NoSelection)
	assert.Equal(t, model.Select(30), sel, "no selection picks the first")

	sel = MoveDown(seq, sel)
	assert.Equal(t, model.Select(10), sel)

	sel = MoveDown(seq, sel)
	assert.Equal(t, model.Select(20), sel)

	sel = MoveDown(seq, sel)
	assert.Equal(t, model.Select(20), sel, "stops at the last element")
}

func TestMoveUp(t *testing.T) {
	seq := ordered(30, 10, 20)

	sel := MoveUp(seq, model.NoSelection)
	assert.Equal(t, model.Select(20), sel, "no selection picks the last")

	sel = MoveUp(seq, model.Select(10))
	assert.Equal(t, model.Select(30), sel)

	sel = MoveUp(seq, sel)
	assert.Equal(t, model.Select(30), sel, "stops at the first element")
}

func TestMoveFollowsPIDNotPosition(t *testing.T) {
	// the selected process moved from index 0 to index 2 after a resort
	seq := ordered(10, 20, 30)
	assert.Equal(t, model.Select(20), MoveUp(seq, model.Select(30)))
	assert.Equal(t, model.Select(30), MoveDown(seq, model.Select(20)))
}

func TestMoveStaleSelection(t *testing.T) {
	seq := ordered(1, 2)
	assert.Equal(t, model.Select(1), MoveDown(seq, model.Select(77)))
	assert.Equal(t, model.Select(2), MoveUp(seq, model.Select(77)))
}

func TestMoveEmpty(t *testing.T) {
	assert.Equal(t, model.NoSelection, MoveDown(nil, model.Select(1)))
	assert.Equal(t, model.NoSelection, MoveUp(nil, model.NoSelection))
}

func TestFollowSelection(t *testing.T) {
	tests := []struct {
		name                          string
		scroll, index, visible, total int
		want                          int
	}{
		{"inside window", 0, 3, 10, 50, 0},
		{"below window", 0, 12, 10, 50, 3},
		{"above window", 20, 5, 10, 50, 5},
		{"no selection keeps scroll", 7, -1, 10, 50, 7},
		{"clamped to end", 45, -1, 10, 50, 40},
		{"short list", 4, 1, 10, 3, 0},
		{"zero visible", 0, 4, 0, 10, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FollowSelection(tt.scroll, tt.index, tt.visible, tt.total))
		})
	}
}
