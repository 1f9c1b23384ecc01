package proc

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Summary is the host-wide context shown above the process table.
type Summary struct {
	Load1, Load5, Load15 float64
	Uptime               time.Duration
	MemUsedPercent       float64
}

// ReadSummary is best effort: fields it cannot read stay zero.
func ReadSummary(ctx context.Context) Summary {
	var s Summary

	if avg, err := load.AvgWithContext(ctx); err == nil {
		s.Load1, s.Load5, s.Load15 = avg.Load1, avg.Load5, avg.Load15
	}
	if up, err := host.UptimeWithContext(ctx); err == nil {
		s.Uptime = time.Duration(up) * time.Second
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		s.MemUsedPercent = vm.UsedPercent
	}

	return s
}
