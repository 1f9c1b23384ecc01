package monitor

import (
	"sort"

	"github.com/archie-linux/process-explorer/model"
)

// RootPID is the synthetic parent of every process whose real parent is
// not part of the snapshot.
const RootPID int32 = 0

// MaxDepth bounds tree walks regardless of what the platform reports.
const MaxDepth = 256

// ProcessTree is the parent -> children adjacency of one snapshot.
type ProcessTree struct {
	Children map[int32][]int32
	Records  map[int32]model.ProcessRecord
}

// Row is one line of a flattened view.
type Row struct {
	Record model.ProcessRecord
	Depth  int
	Branch string // drawn prefix, empty for top level and list view
}

// BuildTree links records under their parents. Children lists are in
// ascending PID order. Every record appears exactly once as a child:
// orphans, self-parented entries and members of a parent cycle end up
// under RootPID.
func BuildTree(records []model.ProcessRecord) *ProcessTree {
	t := &ProcessTree{
		Children: make(map[int32][]int32),
		Records:  make(map[int32]model.ProcessRecord, len(records)),
	}
	for _, r := range records {
		t.Records[r.PID] = r
	}

	parent := make(map[int32]int32, len(t.Records))
	for pid, r := range t.Records {
		p := r.PPID
		if _, ok := t.Records[p]; !ok || p == pid || pid == RootPID {
			p = RootPID
		}
		parent[pid] = p
		t.Children[p] = append(t.Children[p], pid)
	}
	for p := range t.Children {
		sortPIDs(t.Children[p])
	}

	t.attachUnreachable(parent)
	return t
}

// attachUnreachable moves nodes that cannot be reached from the root,
// which only happens inside a parent cycle, onto the root.
func (t *ProcessTree) attachUnreachable(parent map[int32]int32) {
	seen := make(map[int32]bool, len(t.Records))
	var mark func(pid int32)
	mark = func(pid int32) {
		for _, c := range t.Children[pid] {
			if !seen[c] {
				seen[c] = true
				mark(c)
			}
		}
	}
	mark(RootPID)
	if len(seen) == len(t.Records) {
		return
	}

	pending := make([]int32, 0)
	for pid := range t.Records {
		if !seen[pid] {
			pending = append(pending, pid)
		}
	}
	sortPIDs(pending)

	for _, pid := range pending {
		if seen[pid] {
			continue
		}
		old := parent[pid]
		t.Children[old] = removePID(t.Children[old], pid)
		if len(t.Children[old]) == 0 {
			delete(t.Children, old)
		}
		t.Children[RootPID] = append(t.Children[RootPID], pid)
		parent[pid] = RootPID
		seen[pid] = true
		mark(pid)
	}
	sortPIDs(t.Children[RootPID])
}

// Len is the number of processes in the tree.
func (t *ProcessTree) Len() int {
	return len(t.Records)
}

// Flatten walks the tree depth first from RootPID. A visited set and
// MaxDepth keep the walk finite on malformed input.
func (t *ProcessTree) Flatten() []Row {
	rows := make([]Row, 0, len(t.Records))
	visited := make(map[int32]bool, len(t.Records))

	var walk func(pid int32, depth int, indent string)
	walk = func(pid int32, depth int, indent string) {
		if depth >= MaxDepth {
			return
		}
		kids := t.Children[pid]
		for i, child := range kids {
			if visited[child] {
				continue
			}
			rec, ok := t.Records[child]
			if !ok {
				continue
			}
			visited[child] = true

			last := i == len(kids)-1
			branch, next := "", ""
			if depth > 0 {
				branch = indent + "├─ "
				next = indent + "│  "
				if last {
					branch = indent + "└─ "
					next = indent + "   "
				}
			}
			rows = append(rows, Row{Record: rec, Depth: depth, Branch: branch})
			// a PID 0 record shares the root's key; its children are the top level
			if child != RootPID {
				walk(child, depth+1, next)
			}
		}
	}
	walk(RootPID, 0, "")
	return rows
}

func sortPIDs(pids []int32) {
	sort.Slice(pids, func(i, j int) bool { return pids[i] < pids[j] })
}

func removePID(pids []int32, pid int32) []int32 {
	out := pids[:0]
	for _, p := range pids {
		if p != pid {
			out = append(out, p)
		}
	}
	return out
}
