package proc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"golang.org/x/sys/unix"
)

// ErrInvalidPID is returned for PIDs that would address a process group.
var ErrInvalidPID = errors.New("invalid PID")

// Outcome is the end state of one termination request.
type Outcome int

const (
	Unknown Outcome = iota
	Terminated
	ForceKilled
	NotFound
	Denied
)

func (o Outcome) String() string {
	switch o {
	case Terminated:
		return "terminated"
	case ForceKilled:
		return "force killed"
	case NotFound:
		return "not found"
	case Denied:
		return "permission denied"
	}
	return "unknown"
}

// Succeeded reports whether the process is gone because of the request.
func (o Outcome) Succeeded() bool {
	return o == Terminated || o == ForceKilled
}

// KillProcess sends a signal to the given PID
func KillProcess(pid int, sig unix.Signal) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}

	if err := unix.Kill(pid, sig); err != nil {
		return fmt.Errorf("failed to send signal %v to PID %d: %w", sig, pid, err)
	}

	return nil
}

// Control is the OS surface the Terminator drives.
type Control interface {
	Signal(pid int32, sig unix.Signal) error
	Alive(ctx context.Context, pid int32) (bool, error)
}

// HostControl signals real processes. A zombie counts as dead: it has
// exited and only waits for its parent to reap it.
type HostControl struct{}

func (HostControl) Signal(pid int32, sig unix.Signal) error {
	return KillProcess(int(pid), sig)
}

func (HostControl) Alive(ctx context.Context, pid int32) (bool, error) {
	p, err := process.NewProcessWithContext(ctx, pid)
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("look up PID %d: %w", pid, err)
	}

	states, err := p.StatusWithContext(ctx)
	if err != nil {
		return process.PidExistsWithContext(ctx, pid)
	}
	for _, s := range states {
		if s == process.Zombie {
			return false, nil
		}
	}
	return true, nil
}

// Terminator asks a process to exit and kills it if it is still there
// after the grace interval. There is exactly one escalation.
type Terminator struct {
	Control Control
	Grace   time.Duration
}

func NewTerminator(grace time.Duration) *Terminator {
	return &Terminator{Control: HostControl{}, Grace: grace}
}

// Terminate runs SIGTERM, grace wait, liveness check, SIGKILL.
// A PID that no longer exists yields NotFound and a missing permission
// yields Denied, both without error. Cancelling ctx during the grace
// wait abandons the request with ctx.Err().
func (t *Terminator) Terminate(ctx context.Context, pid int32) (Outcome, error) {
	if pid <= 0 {
		return Unknown, fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}

	if err := t.Control.Signal(pid, unix.SIGTERM); err != nil {
		return classify(err)
	}

	timer := time.NewTimer(t.Grace)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return Unknown, ctx.Err()
	case <-timer.C:
	}

	alive, err := t.Control.Alive(ctx, pid)
	if err == nil && !alive {
		return Terminated, nil
	}

	if err := t.Control.Signal(pid, unix.SIGKILL); err != nil {
		if errors.Is(err, unix.ESRCH) {
			// exited between the check and the kill
			return Terminated, nil
		}
		return classify(err)
	}
	return ForceKilled, nil
}

func classify(err error) (Outcome, error) {
	switch {
	case errors.Is(err, unix.ESRCH):
		return NotFound, nil
	case errors.Is(err, unix.EPERM):
		return Denied, nil
	}
	return Unknown, err
}
