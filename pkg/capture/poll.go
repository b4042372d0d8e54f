package capture

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/kbinani/screenshot"
	"github.com/sidecast/sidecast/pkg/logger"
)

// Poller continuously captures the region at the target rate and keeps
// only the most recent frame, so reads never block on a grab.
type Poller struct {
	region   Region
	interval time.Duration
	grab     GrabFn
	log      *logger.Logger

	mu     sync.Mutex
	latest *image.RGBA

	done chan struct{}
	wg   sync.WaitGroup
}

func NewPoller(region Region, fps int, log *logger.Logger) (*Poller, error) {
	return newPoller(region, fps, log, screenshot.CaptureRect)
}

func newPoller(region Region, fps int, log *logger.Logger, grab GrabFn) (*Poller, error) {
	if _, err := grab(region.Bounds()); err != nil {
		return nil, fmt.Errorf("capture probe of %v failed: %w", region, err)
	}
	p := &Poller{
		region:   region,
		interval: time.Second / time.Duration(fps),
		grab:     grab,
		log:      log,
		done:     make(chan struct{}),
	}
	p.wg.Add(1)
	go p.loop()
	return p, nil
}

func (p *Poller) loop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			img, err := p.grab(p.region.Bounds())
			if err != nil {
				p.log.Debug().Err(err).Msg("capture miss")
				continue
			}
			p.mu.Lock()
			p.latest = img
			p.mu.Unlock()
		}
	}
}

// AcquireFrame hands out a copy of the most recent frame without
// waiting for a fresh capture, or nil when none was produced yet.
// Copying keeps callers free to draw over the buffer.
func (p *Poller) AcquireFrame(int) (*image.RGBA, error) {
	p.mu.Lock()
	latest := p.latest
	p.mu.Unlock()
	if latest == nil {
		return nil, nil
	}
	return cloneRGBA(latest), nil
}

func (p *Poller) Close() error {
	close(p.done)
	p.wg.Wait()
	p.mu.Lock()
	p.latest = nil
	p.mu.Unlock()
	return nil
}

func (p *Poller) Name() string { return "poll" }
