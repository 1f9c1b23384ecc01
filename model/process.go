package model

import "time"

// Unavailable replaces a command line that could not be read.
const Unavailable = "[Not accessible]"

// MaxRows caps how many rows a single view renders.
const MaxRows = 500

// Status is the lifecycle state reported for a process.
type Status string

const (
	StatusRunning  Status = "running"
	StatusSleeping Status = "sleeping"
	StatusStopped  Status = "stopped"
	StatusZombie   Status = "zombie"
	StatusIdle     Status = "idle"
	StatusWaiting  Status = "waiting"
	StatusLocked   Status = "locked"
	StatusUnknown  Status = "unknown"
)

// ProcessRecord is one process at one sampling instant.
// Records are values; a new cycle builds new ones.
type ProcessRecord struct {
	PID     int32
	PPID    int32
	Name    string
	User    string
	Status  Status
	CPU     float64 // percent since the previous sample of this PID
	Mem     float64 // RSS as percent of total memory
	Threads int32

	CreatedAt time.Time
	Age       time.Duration

	Cmdline string
}

// Snapshot is the set of processes seen in one capture.
type Snapshot struct {
	Records    []ProcessRecord
	CapturedAt time.Time
}

// Lookup returns the record for pid, if present.
func (s *Snapshot) Lookup(pid int32) (ProcessRecord, bool) {
	if s == nil {
		return ProcessRecord{}, false
	}
	for _, r := range s.Records {
		if r.PID == pid {
			return r, true
		}
	}
	return ProcessRecord{}, false
}

// Running counts records in the running state.
func (s *Snapshot) Running() int {
	if s == nil {
		return 0
	}
	n := 0
	for _, r := range s.Records {
		if r.Status == StatusRunning {
			n++
		}
	}
	return n
}

// Len is the number of records, zero for a nil snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}
