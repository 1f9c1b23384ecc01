package monitor

import (
	"context"
	"fmt"

	"github.com/archie-linux/process-explorer/model"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Handle is the per-process query surface the collector needs.
// *process.Process from gopsutil satisfies it through hostHandle.
type Handle interface {
	PID() int32
	NameWithContext(ctx context.Context) (string, error)
	PpidWithContext(ctx context.Context) (int32, error)
	UsernameWithContext(ctx context.Context) (string, error)
	StatusWithContext(ctx context.Context) ([]string, error)
	TimesWithContext(ctx context.Context) (*cpu.TimesStat, error)
	MemoryInfoWithContext(ctx context.Context) (*process.MemoryInfoStat, error)
	NumThreadsWithContext(ctx context.Context) (int32, error)
	CreateTimeWithContext(ctx context.Context) (int64, error)
	CmdlineWithContext(ctx context.Context) (string, error)
}

// Source enumerates live processes and reports total memory.
type Source interface {
	Processes(ctx context.Context) ([]Handle, error)
	TotalMemory(ctx context.Context) (uint64, error)
}

type hostHandle struct {
	*process.Process
}

func (h hostHandle) PID() int32 { return h.Pid }

// HostSource reads the local process table through gopsutil.
type HostSource struct{}

func (HostSource) Processes(ctx context.Context) ([]Handle, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	handles := make([]Handle, 0, len(procs))
	for _, p := range procs {
		handles = append(handles, hostHandle{p})
	}
	return handles, nil
}

func (HostSource) TotalMemory(ctx context.Context) (uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("read memory: %w", err)
	}
	return vm.Total, nil
}

// statusFromStates maps gopsutil state names onto model.Status.
func statusFromStates(states []string) model.Status {
	if len(states) == 0 {
		return model.StatusUnknown
	}
	switch states[0] {
	case process.Running:
		return model.StatusRunning
	case process.Sleep:
		return model.StatusSleeping
	case process.Stop:
		return model.StatusStopped
	case process.Zombie:
		return model.StatusZombie
	case process.Idle:
		return model.StatusIdle
	case process.Wait, process.Blocked:
		return model.StatusWaiting
	case process.Lock:
		return model.StatusLocked
	}
	return model.StatusUnknown
}
