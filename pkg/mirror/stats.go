package mirror

import (
	"sync"
	"time"
)

// stats accumulates encoded frame sizes over one second windows.
type stats struct {
	mu     sync.Mutex
	window time.Duration
	start  time.Time
	frames int
	bytes  int
}

func newStats() *stats {
	return &stats{window: time.Second, start: time.Now()}
}

// add records one encoded frame and returns the window summary when
// the window has elapsed, resetting it for the next one.
func (s *stats) add(n int) (fps float64, avgKB float64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.bytes += n
	elapsed := time.Since(s.start)
	if elapsed < s.window {
		return 0, 0, false
	}
	fps = float64(s.frames) / elapsed.Seconds()
	avgKB = float64(s.bytes) / float64(s.frames) / 1024
	s.frames, s.bytes = 0, 0
	s.start = time.Now()
	return fps, avgKB, true
}
