package monitor

import (
	"sort"
	"testing"

	"github.com/archie-linux/process-explorer/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(pid, ppid int32, name string) model.ProcessRecord {
	return model.ProcessRecord{PID: pid, PPID: ppid, Name: name}
}

// childIDs collects every id that appears as a child.
func childIDs(t *ProcessTree) []int32 {
	var out []int32
	for _, kids := range t.Children {
		out = append(out, kids...)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func TestBuildTree_Chain(t *testing.T) {
	tree := BuildTree([]model.ProcessRecord{
		rec(3, 2, "editor"),
		rec(1, 0, "init"),
		rec(2, 1, "shell"),
	})

	assert.Equal(t, map[int32][]int32{
		0: {1},
		1: {2},
		2: {3},
	}, tree.Children)
	assert.Equal(t, 3, tree.Len())
	assert.Equal(t, "shell", tree.Records[2].Name)
}

func TestBuildTree_NodeSetIsExactlyTheSnapshot(t *testing.T) {
	records := []model.ProcessRecord{
		rec(1, 0, "init"),
		rec(50, 1, "sshd"),
		rec(51, 50, "sshd"),
		rec(52, 51, "bash"),
		rec(60, 4000, "orphan"), // parent already exited
		rec(70, 1, "cron"),
		rec(71, 70, "job"),
		rec(80, 80, "self"),
	}
	tree := BuildTree(records)

	assert.Equal(t, []int32{1, 50, 51, 52, 60, 70, 71, 80}, childIDs(tree))
	for _, id := range childIDs(tree) {
		assert.Contains(t, tree.Records, id)
	}
	assert.Equal(t, []int32{1, 60, 80}, tree.Children[RootPID])
	assert.Equal(t, []int32{50, 70}, tree.Children[1], "children in ascending PID order")
}

func TestBuildTree_CycleIsAttachedToRoot(t *testing.T) {
	tree := BuildTree([]model.ProcessRecord{
		rec(1, 0, "init"),
		rec(20, 21, "a"),
		rec(21, 22, "b"),
		rec(22, 20, "c"),
		rec(23, 22, "d"),
	})

	assert.Equal(t, []int32{1, 20, 21, 22, 23}, childIDs(tree))
	assert.Equal(t, []int32{1, 20}, tree.Children[RootPID], "lowest PID of the cycle moves to the root")

	rows := tree.Flatten()
	require.Len(t, rows, 5)
	seen := map[int32]bool{}
	for _, r := range rows {
		assert.False(t, seen[r.Record.PID], "PID %d visited twice", r.Record.PID)
		seen[r.Record.PID] = true
	}
}

func TestBuildTree_KernelIdleProcess(t *testing.T) {
	// pid 0 present, as some platforms report it; it is not a parent
	tree := BuildTree([]model.ProcessRecord{
		rec(0, 0, "kernel_task"),
		rec(1, 0, "launchd"),
		rec(5, 0, "other"),
		rec(6, 1, "child"),
	})

	assert.Equal(t, []int32{0, 1, 5, 6}, childIDs(tree))

	rows := tree.Flatten()
	require.Len(t, rows, 4)

	type line struct {
		pid    int32
		depth  int
		branch string
	}
	got := make([]line, len(rows))
	for i, r := range rows {
		got[i] = line{r.Record.PID, r.Depth, r.Branch}
	}
	assert.Equal(t, []line{
		{0, 0, ""},
		{1, 0, ""},
		{6, 1, "└─ "},
		{5, 0, ""},
	}, got)
}

func TestBuildTree_Empty(t *testing.T) {
	tree := BuildTree(nil)
	assert.Zero(t, tree.Len())
	assert.Empty(t, tree.Flatten())
}

func TestFlatten_DepthAndBranches(t *testing.T) {
	tree := BuildTree([]model.ProcessRecord{
		rec(1, 0, "init"),
		rec(2, 1, "shell"),
		rec(3, 2, "editor"),
		rec(4, 1, "cron"),
		rec(9, 0, "kthreadd"),
	})

	rows := tree.Flatten()
	require.Len(t, rows, 5)

	type line struct {
		pid    int32
		depth  int
		branch string
	}
	got := make([]line, len(rows))
	for i, r := range rows {
		got[i] = line{r.Record.PID, r.Depth, r.Branch}
	}
	assert.Equal(t, []line{
		{1, 0, ""},
		{2, 1, "├─ "},
		{3, 2, "│  └─ "},
		{4, 1, "└─ "},
		{9, 0, ""},
	}, got)
}

func TestFlatten_MaxDepth(t *testing.T) {
	records := make([]model.ProcessRecord, 0, MaxDepth+10)
	for i := int32(1); i <= MaxDepth+10; i++ {
		records = append(records, rec(i, i-1, "link"))
	}
	tree := BuildTree(records)

	rows := tree.Flatten()
	assert.Len(t, rows, MaxDepth)
	assert.Equal(t, MaxDepth-1, rows[len(rows)-1].Depth)
}

func TestFlatten_IgnoresDanglingChildren(t *testing.T) {
	tree := &ProcessTree{
		Children: map[int32][]int32{0: {1, 2}, 1: {1, 3}},
		Records:  map[int32]model.ProcessRecord{1: rec(1, 0, "a"), 2: rec(2, 0, "b")},
	}
	rows := tree.Flatten()
	require.Len(t, rows, 2)
	assert.Equal(t, int32(1), rows[0].Record.PID)
	assert.Equal(t, int32(2), rows[1].Record.PID)
}
