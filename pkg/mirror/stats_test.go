package mirror

import (
	"testing"
	"time"
)

func TestStatsWindow(t *testing.T) {
	s := newStats()
	s.window = 50 * time.Millisecond

	if _, _, ok := s.add(1024); ok {
		t.Fatalf("summary reported before the window elapsed")
	}
	time.Sleep(60 * time.Millisecond)
	fps, avgKB, ok := s.add(3 * 1024)
	if !ok {
		t.Fatalf("no summary after the window elapsed")
	}
	if fps <= 0 {
		t.Errorf("got %v fps, want a positive rate", fps)
	}
	if avgKB != 2 {
		t.Errorf("got %v KB average, want 2", avgKB)
	}
	if _, _, ok = s.add(1024); ok {
		t.Errorf("summary reported right after a reset")
	}
}
