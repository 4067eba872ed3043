// internal/session/runner.go
package session

import (
	"errors"
	"time"

	"github.com/tamzrod/giga-relay/internal/command"
	"github.com/tamzrod/giga-relay/internal/logging"
	"github.com/tamzrod/giga-relay/internal/status"
)

// Run drives the state machine until the shutdown flag is observed.
// One goroutine per device. The flag is checked at the top of every iteration.
func (t *Task) Run() {
	defer close(t.done)

	t.setState(status.StateConnecting)

	for {
		if t.shutdown.Load() {
			t.terminate()
			return
		}

		switch t.state {
		case status.StateConnecting:
			t.connect()
		case status.StateDisconnected:
			t.idle()
		case status.StateConnected:
			t.step()
		default:
			t.terminate()
			return
		}
	}
}

// ------------------------------------------------------------
// Connecting
// ------------------------------------------------------------

func (t *Task) connect() {
	t.lastAttempt = t.now()

	link, err := t.opener.Open(t.cfg.Port, t.cfg.Timeout)
	if err != nil {
		logging.Warningf("open %s failed: %v", t.cfg.Port, err)
		t.notice("device unavailable on %s: %v (enter r to retry)", t.cfg.Port, err)
		t.setState(status.StateDisconnected)
		return
	}

	t.link = link
	if t.opened {
		t.reconnects.Inc()
	}
	t.opened = true
	t.connected.Store(true)
	t.mirror.SetOnline(true)

	logging.Infof("connected to %s", t.cfg.Port)
	t.notice("connected to %s", t.cfg.Port)
	t.setState(status.StateConnected)
}

// ------------------------------------------------------------
// Disconnected
// ------------------------------------------------------------

// idle waits at most one tick for a reconnect request or a due retry.
// Queued commands stay queued.
func (t *Task) idle() {
	wait := t.cfg.IdleTick
	retryDue := false

	if t.cfg.RetryInterval > 0 {
		until := t.lastAttempt.Add(t.cfg.RetryInterval).Sub(t.now())
		if until <= 0 {
			t.setState(status.StateConnecting)
			return
		}
		if until <= wait {
			wait = until
			retryDue = true
		}
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case _, ok := <-t.ch.Reconnect:
		if !ok {
			t.shutdown.Store(true)
			return
		}
		t.drainReconnect()
		t.setState(status.StateConnecting)
	case <-timer.C:
		if retryDue {
			t.setState(status.StateConnecting)
		}
	}
}

// ------------------------------------------------------------
// Connected
// ------------------------------------------------------------

// step is one Connected iteration: reconnect signal, then one command,
// then one bounded receive.
func (t *Task) step() {
	select {
	case _, ok := <-t.ch.Reconnect:
		if !ok {
			t.shutdown.Store(true)
			return
		}
		t.drainReconnect()
		logging.Infof("reconnect requested on %s", t.cfg.Port)
		t.notice("reconnecting to %s", t.cfg.Port)
		t.dropLink()
		t.setState(status.StateConnecting)
		return
	default:
	}

	if !t.sendNext() {
		return
	}

	t.receiveOne()
}

// sendNext forwards the pending command or one queued command.
// It returns false when the state left Connected.
func (t *Task) sendNext() bool {
	var cmd command.Command

	if t.pending != nil {
		cmd = *t.pending
	} else {
		select {
		case c, ok := <-t.ch.Commands:
			if !ok {
				t.shutdown.Store(true)
				return false
			}
			cmd = c
		default:
			return true
		}
	}

	if t.shutdown.Load() {
		return false
	}

	if err := t.link.Send(cmd); err != nil {
		// unencodable commands are dropped
		if errors.Is(err, ErrLinkLost) {
			t.pending = &cmd
		} else {
			t.pending = nil
		}
		logging.Errorf("send %s to %s failed: %v", cmd, t.cfg.Port, err)
		t.notice("send failed, device disconnected: %v (enter r to reconnect)", err)
		t.dropLink()
		t.setState(status.StateDisconnected)
		return false
	}

	t.pending = nil
	t.sent.Inc()
	logging.Debugf("sent %s", cmd)
	return true
}

func (t *Task) receiveOne() {
	msg, err := t.link.Receive()
	switch {
	case err == nil:
		t.deliver(msg)

	case errors.Is(err, ErrNoData):
		// read timeout, nothing this cycle

	case errors.Is(err, ErrDecode):
		t.decodeErrors.Inc()
		logging.Warningf("dropping undecodable frame: %v", err)

	default:
		logging.Errorf("link to %s lost: %v", t.cfg.Port, err)
		t.notice("device disconnected: %v (enter r to reconnect)", err)
		t.dropLink()
		t.setState(status.StateDisconnected)
	}
}

func (t *Task) deliver(msg command.DeviceMessage) {
	t.received.Inc()
	t.mirror.Publish(msg)
	t.trackSensor(msg)

	if !t.limiter.Allow(msg, t.now()) {
		t.suppressed.Inc()
		return
	}
	if t.out != nil {
		t.out.Message(msg)
	}
}

// ------------------------------------------------------------
// helpers
// ------------------------------------------------------------

// drainReconnect collapses any further pending reconnect requests into one.
func (t *Task) drainReconnect() {
	for {
		select {
		case _, ok := <-t.ch.Reconnect:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// dropLink closes and forgets the current handle.
func (t *Task) dropLink() {
	if t.link != nil {
		if err := t.link.Close(); err != nil {
			logging.Warningf("close %s: %v", t.cfg.Port, err)
		}
		t.link = nil
	}
	if t.connected.Load() {
		t.connected.Store(false)
		t.mirror.SetOnline(false)
	}
}

func (t *Task) terminate() {
	t.setState(status.StateClosing)
	t.dropLink()
	t.setState(status.StateTerminated)
	logging.Infof("session task for %s terminated", t.cfg.Port)
}
