package monitor

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/archie-linux/process-explorer/model"
)

const maxWorkers = 8

// minCPUWindow is the shortest wall interval a CPU percentage is computed
// over. Shorter deltas are dominated by clock-tick rounding.
const minCPUWindow = 200 * time.Millisecond

// cpuSample is the previous observation of one process, used to turn
// cumulative CPU time into a percentage.
type cpuSample struct {
	created int64 // ms since epoch, detects PID reuse
	seconds float64
	at      time.Time
}

// observation is what one worker reads for one process.
type observation struct {
	rec     model.ProcessRecord
	created int64
	seconds float64
	rss     uint64
}

// Collector captures snapshots of the process table. It keeps the
// previous CPU sample of every PID between captures and nothing else.
type Collector struct {
	Source  Source
	Workers int
	Now     func() time.Time

	mu   sync.Mutex
	prev map[int32]cpuSample
}

func NewCollector(src Source) *Collector {
	workers := runtime.NumCPU()
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return &Collector{
		Source:  src,
		Workers: workers,
		Now:     time.Now,
		prev:    make(map[int32]cpuSample),
	}
}

// Capture reads every visible process. Processes that exit or deny
// access while being read are left out of the snapshot; only a failure
// to list the process table at all is returned as an error.
func (c *Collector) Capture(ctx context.Context) (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	handles, err := c.Source.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	// Memory percentages degrade to zero if the total is unknown.
	total, _ := c.Source.TotalMemory(ctx)

	now := c.now()
	observed := c.observeAll(ctx, handles)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := &model.Snapshot{
		Records:    make([]model.ProcessRecord, 0, len(observed)),
		CapturedAt: now,
	}
	next := make(map[int32]cpuSample, len(observed))

	for _, o := range observed {
		rec := o.rec
		if _, dup := next[rec.PID]; dup {
			continue
		}

		sample := cpuSample{created: o.created, seconds: o.seconds, at: now}
		if p, ok := c.prev[rec.PID]; ok && p.created == o.created {
			wall := now.Sub(p.at)
			switch {
			case wall < minCPUWindow:
				// too close to the last sample, measure from it next time
				sample = p
			case o.seconds >= p.seconds:
				rec.CPU = (o.seconds - p.seconds) / wall.Seconds() * 100
			}
		}
		if total > 0 {
			rec.Mem = float64(o.rss) * 100 / float64(total)
		}
		if age := now.Sub(rec.CreatedAt); age > 0 {
			rec.Age = age
		}

		next[rec.PID] = sample
		snap.Records = append(snap.Records, rec)
	}

	c.prev = next
	return snap, nil
}

func (c *Collector) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// observeAll fans the per-process reads out over a bounded set of
// workers. Result order is not meaningful.
func (c *Collector) observeAll(ctx context.Context, handles []Handle) []observation {
	workers := c.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(handles) {
		workers = len(handles)
	}

	results := make([]observation, len(handles))
	found := make([]bool, len(handles))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], found[i] = observe(ctx, handles[i])
			}
		}()
	}

feed:
	for i := range handles {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	out := results[:0]
	for i := range results {
		if found[i] {
			out = append(out, results[i])
		}
	}
	return out
}

// observe reads one process. Name, parent, start time and CPU times are
// required; the rest fall back to placeholders.
func observe(ctx context.Context, h Handle) (observation, bool) {
	name, err := h.NameWithContext(ctx)
	if err != nil {
		return observation{}, false
	}
	ppid, err := h.PpidWithContext(ctx)
	if err != nil {
		return observation{}, false
	}
	created, err := h.CreateTimeWithContext(ctx)
	if err != nil {
		return observation{}, false
	}
	times, err := h.TimesWithContext(ctx)
	if err != nil || times == nil {
		return observation{}, false
	}

	rec := model.ProcessRecord{
		PID:       h.PID(),
		PPID:      ppid,
		Name:      name,
		User:      "?",
		Status:    model.StatusUnknown,
		Threads:   1,
		CreatedAt: time.UnixMilli(created),
		Cmdline:   model.Unavailable,
	}

	if user, err := h.UsernameWithContext(ctx); err == nil && user != "" {
		rec.User = user
	}
	if states, err := h.StatusWithContext(ctx); err == nil {
		rec.Status = statusFromStates(states)
	}
	if n, err := h.NumThreadsWithContext(ctx); err == nil && n > 0 {
		rec.Threads = n
	}
	if cmd, err := h.CmdlineWithContext(ctx); err == nil {
		rec.Cmdline = cmd
	}

	var rss uint64
	if mi, err := h.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		rss = mi.RSS
	}

	return observation{
		rec:     rec,
		created: created,
		seconds: times.User + times.System,
		rss:     rss,
	}, true
}
