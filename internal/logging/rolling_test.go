// internal/logging/rolling_test.go
package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRollingFile_RotatesAfterPeriod(t *testing.T) {
	dir := t.TempDir()

	day1 := time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC)
	now := day1

	r := &rollingFile{dir: dir, name: "relay", period: time.Hour, now: func() time.Time { return now }}
	if err := r.rotate(); err != nil {
		t.Fatalf("rotate err=%v", err)
	}

	if _, err := r.Write([]byte("first\n")); err != nil {
		t.Fatalf("write err=%v", err)
	}

	now = day1.Add(2 * time.Hour)
	if _, err := r.Write([]byte("second\n")); err != nil {
		t.Fatalf("write err=%v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close err=%v", err)
	}

	first, err := os.ReadFile(filepath.Join(dir, "relay-2026-03-01.log"))
	if err != nil {
		t.Fatalf("read day1: %v", err)
	}
	if string(first) != "first\n" {
		t.Fatalf("day1 content=%q", first)
	}

	second, err := os.ReadFile(filepath.Join(dir, "relay-2026-03-02.log"))
	if err != nil {
		t.Fatalf("read day2: %v", err)
	}
	if string(second) != "second\n" {
		t.Fatalf("day2 content=%q", second)
	}
}

func TestRollingFile_WriteAfterClose(t *testing.T) {
	r, err := openRolling(t.TempDir(), "relay", 0)
	if err != nil {
		t.Fatalf("open err=%v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close err=%v", err)
	}
	if _, err := r.Write([]byte("x")); err == nil {
		t.Fatalf("expected error writing to closed file")
	}
}
