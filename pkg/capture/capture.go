package capture

import (
	"errors"
	"image"

	"github.com/sidecast/sidecast/pkg/logger"
)

// Backend supplies raw frames of one desktop region.
//
// AcquireFrame returns (nil, nil) when no frame is ready yet, which is
// a normal condition right after start. The slot param identifies the
// calling worker; backends holding thread-affine resources key them by
// slot and expect at most one concurrent caller per slot.
type Backend interface {
	AcquireFrame(slot int) (*image.RGBA, error)
	Close() error
	Name() string
}

var ErrNoDisplays = errors.New("no active displays")

// NewBackend picks a capture strategy for the region.
//
// The poll strategy keeps its own capture pace and never blocks reads;
// a failure to start it is not fatal and downgrades to the synchronous
// grabber unless the grabber was requested explicitly.
func NewBackend(pref string, region Region, fps int, workers int, log *logger.Logger) Backend {
	if pref == "grab" {
		return NewGrabber(region, workers)
	}
	p, err := NewPoller(region, fps, log)
	if err != nil {
		log.Warn().Err(err).Msg("poll capture is unavailable, falling back to grab")
		return NewGrabber(region, workers)
	}
	return p
}

// cloneRGBA copies a frame so callers may mutate it freely.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := &image.RGBA{
		Pix:    make([]uint8, len(src.Pix)),
		Stride: src.Stride,
		Rect:   src.Rect,
	}
	copy(dst.Pix, src.Pix)
	return dst
}
