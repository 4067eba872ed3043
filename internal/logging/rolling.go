// internal/logging/rolling.go
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const defaultRotate = 24 * time.Hour

// rollingFile is an io.Writer that reopens a dated file once the
// rotation period has elapsed. Old files are never deleted.
type rollingFile struct {
	mu       sync.Mutex
	dir      string
	name     string
	period   time.Duration
	file     *os.File
	openedAt time.Time
	now      func() time.Time
}

func openRolling(dir, name string, period time.Duration) (*rollingFile, error) {
	if period <= 0 {
		period = defaultRotate
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("log dir %s: %w", dir, err)
	}

	r := &rollingFile{
		dir:    dir,
		name:   name,
		period: period,
		now:    time.Now,
	}
	if err := r.rotate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *rollingFile) path(t time.Time) string {
	return filepath.Join(r.dir, fmt.Sprintf("%s-%s.log", r.name, t.Format("2006-01-02")))
}

// rotate must be called with mu held (or before the writer is shared).
func (r *rollingFile) rotate() error {
	t := r.now()
	f, err := os.OpenFile(r.path(t), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if r.file != nil {
		_ = r.file.Close()
	}
	r.file = f
	r.openedAt = t
	return nil
}

func (r *rollingFile) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return 0, os.ErrClosed
	}
	if r.now().Sub(r.openedAt) >= r.period {
		// keep writing to the old file if the new one cannot be opened
		_ = r.rotate()
	}
	return r.file.Write(p)
}

func (r *rollingFile) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.file == nil {
		return nil
	}
	err := r.file.Sync()
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	r.file = nil
	return err
}
