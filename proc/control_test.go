package proc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// scripted answers each Signal call from a queue and reports a fixed
// liveness after the grace wait.
type scripted struct {
	replies []error
	alive   bool
	sent    []unix.Signal
}

func (s *scripted) Signal(_ int32, sig unix.Signal) error {
	s.sent = append(s.sent, sig)
	if len(s.replies) == 0 {
		return nil
	}
	err := s.replies[0]
	s.replies = s.replies[1:]
	return err
}

func (s *scripted) Alive(context.Context, int32) (bool, error) {
	return s.alive, nil
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		name    string
		ctl     *scripted
		want    Outcome
		signals []unix.Signal
	}{
		{
			name:    "exits on SIGTERM",
			ctl:     &scripted{},
			want:    Terminated,
			signals: []unix.Signal{unix.SIGTERM},
		},
		{
			name:    "ignores SIGTERM",
			ctl:     &scripted{alive: true},
			want:    ForceKilled,
			signals: []unix.Signal{unix.SIGTERM, unix.SIGKILL},
		},
		{
			name:    "already gone",
			ctl:     &scripted{replies: []error{unix.ESRCH}},
			want:    NotFound,
			signals: []unix.Signal{unix.SIGTERM},
		},
		{
			name:    "not ours",
			ctl:     &scripted{replies: []error{unix.EPERM}},
			want:    Denied,
			signals: []unix.Signal{unix.SIGTERM},
		},
		{
			name:    "exits right before SIGKILL",
			ctl:     &scripted{alive: true, replies: []error{nil, unix.ESRCH}},
			want:    Terminated,
			signals: []unix.Signal{unix.SIGTERM, unix.SIGKILL},
		},
		{
			name:    "SIGKILL denied",
			ctl:     &scripted{alive: true, replies: []error{nil, unix.EPERM}},
			want:    Denied,
			signals: []unix.Signal{unix.SIGTERM, unix.SIGKILL},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term := &Terminator{Control: tt.ctl, Grace: time.Millisecond}

			got, err := term.Terminate(context.Background(), 4242)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.signals, tt.ctl.sent)
		})
	}
}

func TestTerminate_UnexpectedError(t *testing.T) {
	term := &Terminator{Control: &scripted{replies: []error{unix.EINVAL}}, Grace: time.Millisecond}

	got, err := term.Terminate(context.Background(), 4242)
	assert.ErrorIs(t, err, unix.EINVAL)
	assert.Equal(t, Unknown, got)
}

func TestTerminate_InvalidPID(t *testing.T) {
	ctl := &scripted{}
	term := &Terminator{Control: ctl, Grace: time.Millisecond}

	for _, pid := range []int32{0, -1} {
		_, err := term.Terminate(context.Background(), pid)
		assert.ErrorIs(t, err, ErrInvalidPID)
	}
	assert.Empty(t, ctl.sent, "never signals a process group")
}

func TestTerminate_CancelDuringGrace(t *testing.T) {
	ctl := &scripted{alive: true}
	term := &Terminator{Control: ctl, Grace: time.Hour}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	got, err := term.Terminate(ctx, 4242)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, Unknown, got)
	assert.Equal(t, []unix.Signal{unix.SIGTERM}, ctl.sent)
}

func TestOutcome(t *testing.T) {
	assert.True(t, Terminated.Succeeded())
	assert.True(t, ForceKilled.Succeeded())
	assert.False(t, NotFound.Succeeded())
	assert.False(t, Denied.Succeeded())
	assert.False(t, Unknown.Succeeded())

	assert.Equal(t, "force killed", ForceKilled.String())
	assert.Equal(t, "not found", NotFound.String())
	assert.Equal(t, "unknown", Outcome(99).String())
}

func TestKillProcessInvalidPID(t *testing.T) {
	assert.ErrorIs(t, KillProcess(0, unix.SIGTERM), ErrInvalidPID)
}
