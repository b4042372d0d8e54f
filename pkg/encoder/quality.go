package encoder

import "sync"

const (
	qualityStepDown = 5
	qualityStepUp   = 2
	overBudget      = 1.2
	underBudget     = 0.7
)

// Quality tracks the compression level for the encoder, optionally
// adapting it to keep each frame near its share of a bandwidth budget.
//
// Oversized frames drop the level fast, undersized frames raise it
// slowly, and the band between the two thresholds leaves it alone so
// the value doesn't oscillate around the target.
type Quality struct {
	mu       sync.Mutex
	value    int
	base     int
	min      int
	target   float64 // KB per frame
	adaptive bool
}

func NewQuality(base int, min int, fps int, bandwidthKBps int, adaptive bool) *Quality {
	if min > base {
		min = base
	}
	q := &Quality{value: base, base: base, min: min, adaptive: adaptive}
	if fps > 0 {
		q.target = float64(bandwidthKBps) / float64(fps)
	}
	return q
}

// Value returns the level for the next encode.
func (q *Quality) Value() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value
}

// Target returns the per frame size budget in kilobytes.
func (q *Quality) Target() float64 { return q.target }

// Adjust feeds the size of the last encoded frame, in kilobytes,
// back into the controller.
func (q *Quality) Adjust(sizeKB float64) {
	if !q.adaptive || q.target <= 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case sizeKB > q.target*overBudget:
		if q.value-qualityStepDown > q.min {
			q.value -= qualityStepDown
		} else {
			q.value = q.min
		}
	case sizeKB < q.target*underBudget:
		if q.value+qualityStepUp < q.base {
			q.value += qualityStepUp
		} else {
			q.value = q.base
		}
	}
}
