// internal/session/session.go
package session

import (
	"errors"
	"time"

	"go.uber.org/atomic"

	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/display"
	"github.com/tamzrod/giga-relay/internal/status"
)

// Channels are the two queues the task drains. It never sends on them.
type Channels struct {
	Commands  <-chan command.Command
	Reconnect <-chan struct{}
}

// Task is the device session task. It is the only goroutine that touches
// the transport; everything else sees the connectivity flag and counters.
type Task struct {
	cfg      Config
	opener   Opener
	ch       Channels
	shutdown *atomic.Bool
	limiter  *display.Limiter
	out      Output
	mirror   Mirror
	now      func() time.Time

	// owned by Run
	state       status.State
	link        Link
	pending     *command.Command // failed send, resent first after reopen
	opened      bool
	lastAttempt time.Time

	// readable from any goroutine
	connected    *atomic.Bool
	triggered    *atomic.Bool
	stateView    *atomic.Uint32
	sent         *atomic.Uint64
	received     *atomic.Uint64
	suppressed   *atomic.Uint64
	decodeErrors *atomic.Uint64
	reconnects   *atomic.Uint64

	done chan struct{}
}

// New creates a task with immutable config. mirror may be nil.
func New(
	cfg Config,
	opener Opener,
	ch Channels,
	shutdown *atomic.Bool,
	limiter *display.Limiter,
	out Output,
	mirror Mirror,
) (*Task, error) {
	if opener == nil {
		return nil, errors.New("session: opener required")
	}
	if ch.Commands == nil || ch.Reconnect == nil {
		return nil, errors.New("session: both channels required")
	}
	if shutdown == nil {
		return nil, errors.New("session: shutdown flag required")
	}
	if cfg.Timeout <= 0 {
		return nil, errors.New("session: timeout must be > 0")
	}
	if cfg.IdleTick <= 0 {
		cfg.IdleTick = cfg.Timeout
	}
	if limiter == nil {
		limiter = display.NewLimiter(0)
	}
	if mirror == nil {
		mirror = noMirror{}
	}

	return &Task{
		cfg:          cfg,
		opener:       opener,
		ch:           ch,
		shutdown:     shutdown,
		limiter:      limiter,
		out:          out,
		mirror:       mirror,
		now:          time.Now,
		state:        status.StateDisconnected,
		connected:    atomic.NewBool(false),
		triggered:    atomic.NewBool(false),
		stateView:    atomic.NewUint32(uint32(status.StateDisconnected)),
		sent:         atomic.NewUint64(0),
		received:     atomic.NewUint64(0),
		suppressed:   atomic.NewUint64(0),
		decodeErrors: atomic.NewUint64(0),
		reconnects:   atomic.NewUint64(0),
		done:         make(chan struct{}),
	}, nil
}

// Connected is the read-only view of the connectivity flag.
// It may lag the task by at most one loop iteration.
func (t *Task) Connected() bool {
	return t.connected.Load()
}

// State is the last state published by the task.
func (t *Task) State() status.State {
	return status.State(t.stateView.Load())
}

// Done is closed when Run returns.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Stats returns a copy of the counters.
func (t *Task) Stats() status.Snapshot {
	return status.Snapshot{
		State:        t.State(),
		Sent:         t.sent.Load(),
		Received:     t.received.Load(),
		Suppressed:   t.suppressed.Load(),
		DecodeErrors: t.decodeErrors.Load(),
		Reconnects:   t.reconnects.Load(),
		Triggered:    t.triggered.Load(),
	}
}

func (t *Task) setState(s status.State) {
	t.state = s
	t.stateView.Store(uint32(s))
}

func (t *Task) notice(format string, args ...any) {
	if t.out != nil {
		t.out.Notice(format, args...)
	}
}
