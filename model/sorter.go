package model

import (
	"sort"
	"strings"
)

type SortKey int

const (
	SortByCPU SortKey = iota
	SortByMemory
)

// sortValues maps each key to the numeric value it orders by.
// New keys only need an entry here and a name in sortNames.
var sortValues = map[SortKey]func(*ProcessRecord) float64{
	SortByCPU:    func(r *ProcessRecord) float64 { return r.CPU },
	SortByMemory: func(r *ProcessRecord) float64 { return r.Mem },
}

var sortNames = map[SortKey]string{
	SortByCPU:    "cpu",
	SortByMemory: "memory",
}

func (k SortKey) String() string {
	if name, ok := sortNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseSortKey resolves a key by its name.
func ParseSortKey(name string) (SortKey, bool) {
	for k, n := range sortNames {
		if strings.EqualFold(n, name) {
			return k, true
		}
	}
	return 0, false
}

// Sorter is the key/direction pair the operator picks.
type Sorter struct {
	Key        SortKey
	Descending bool
}

func NewSorter() Sorter {
	return Sorter{
		Key:        SortByCPU,
		Descending: true, // highest CPU first
	}
}

// Toggle flips the direction when key is already active, otherwise
// switches to key in descending order.
func (s *Sorter) Toggle(key SortKey) {
	if s.Key == key {
		s.Descending = !s.Descending
	} else {
		s.Key = key
		s.Descending = true
	}
}

// Filter keeps the records whose name contains filter, ignoring case.
// An empty filter keeps everything. The input is never modified.
func Filter(records []ProcessRecord, filter string) []ProcessRecord {
	out := make([]ProcessRecord, 0, len(records))
	if filter == "" {
		return append(out, records...)
	}

	needle := strings.ToLower(filter)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	return out
}

// Sort returns a copy of records ordered by key. Equal values keep
// ascending PID order whatever the direction; keys without a value
// extractor compare as zero.
func Sort(records []ProcessRecord, key SortKey, descending bool) []ProcessRecord {
	sorted := make([]ProcessRecord, len(records))
	copy(sorted, records)

	value, ok := sortValues[key]
	if !ok {
		value = func(*ProcessRecord) float64 { return 0 }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := &sorted[i], &sorted[j]
		va, vb := value(a), value(b)
		if va != vb {
			if descending {
				return va > vb
			}
			return va < vb
		}
		return a.PID < b.PID
	})
	return sorted
}

// SelectRecords filters and then sorts. It is a pure function of its inputs.
func SelectRecords(records []ProcessRecord, filter string, key SortKey, descending bool) []ProcessRecord {
	return Sort(Filter(records, filter), key, descending)
}
