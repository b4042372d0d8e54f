package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
)

// GrabFn performs one synchronous blocking capture of the rectangle.
type GrabFn func(image.Rectangle) (*image.RGBA, error)

// Grabber captures the region with a synchronous grab per call.
// Grab handles are not guaranteed to be shareable between threads, so
// every worker slot lazily builds a handle of its own on first use and
// never lends it out.
type Grabber struct {
	region  Region
	factory func() GrabFn
	slots   []GrabFn
}

func NewGrabber(region Region, workers int) *Grabber {
	return newGrabber(region, workers, func() GrabFn { return screenshot.CaptureRect })
}

func newGrabber(region Region, workers int, factory func() GrabFn) *Grabber {
	return &Grabber{region: region, factory: factory, slots: make([]GrabFn, workers)}
}

func (g *Grabber) AcquireFrame(slot int) (*image.RGBA, error) {
	if slot < 0 || slot >= len(g.slots) {
		return nil, fmt.Errorf("no capture slot %v of %v", slot, len(g.slots))
	}
	grab := g.slots[slot]
	if grab == nil {
		grab = g.factory()
		g.slots[slot] = grab
	}
	return grab(g.region.Bounds())
}

func (g *Grabber) Close() error { return nil }
func (g *Grabber) Name() string { return "grab" }
