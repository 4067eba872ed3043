// internal/relay/supervisor.go
package relay

import (
	"errors"
	"io"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/tamzrod/giga-relay/internal/display"
	"github.com/tamzrod/giga-relay/internal/logging"
	"github.com/tamzrod/giga-relay/internal/session"
	"github.com/tamzrod/giga-relay/internal/status"
)

// Settings is the runtime subset of config the supervisor needs.
type Settings struct {
	Port              string
	Timeout           time.Duration
	RetryInterval     time.Duration
	TelemetryInterval time.Duration
}

// Supervisor wires the input task and the session task and joins them.
// One shot: Run may be called once.
type Supervisor struct {
	settings Settings
	opener   session.Opener
	mirror   session.Mirror
	in       io.Reader
	printer  *display.Printer
}

func NewSupervisor(s Settings, opener session.Opener, mirror session.Mirror, in io.Reader, out io.Writer) (*Supervisor, error) {
	if opener == nil {
		return nil, errors.New("relay: opener required")
	}
	if in == nil || out == nil {
		return nil, errors.New("relay: input and output required")
	}
	return &Supervisor{
		settings: s,
		opener:   opener,
		mirror:   mirror,
		in:       in,
		printer:  display.NewPrinter(out),
	}, nil
}

// Run blocks until the operator quits (or input ends) and both tasks
// have finished. It returns the session's final counters.
func (s *Supervisor) Run() (status.Snapshot, error) {
	shutdown := atomic.NewBool(false)
	ch := NewChannels()

	task, err := session.New(
		session.Config{
			Port:          s.settings.Port,
			Timeout:       s.settings.Timeout,
			RetryInterval: s.settings.RetryInterval,
		},
		s.opener,
		ch.Session(),
		shutdown,
		display.NewLimiter(s.settings.TelemetryInterval),
		s.printer,
		s.mirror,
	)
	if err != nil {
		return status.Snapshot{}, err
	}

	input := NewInput(s.in, ch, shutdown, s.printer, task.Done())

	logging.Infof("relay starting on %s (timeout %s, telemetry every %s)",
		s.settings.Port, s.settings.Timeout, s.settings.TelemetryInterval)
	s.printer.Notice("relay on %s: q quit, r reconnect, /t=N test command", s.settings.Port)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		task.Run()
	}()
	go func() {
		defer wg.Done()
		input.Run()
	}()
	wg.Wait()

	snap := task.Stats()
	if left := len(ch.Commands); left > 0 {
		logging.Warningf("%d queued commands discarded at shutdown", left)
	}
	logging.Infof("relay stopped: %s", status.Encode(snap))
	s.printer.Notice("stopped: %s", status.Encode(snap))
	return snap, nil
}
