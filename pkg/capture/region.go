package capture

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/sidecast/sidecast/pkg/logger"
)

// Region is the desktop rectangle being captured,
// immutable after startup resolution.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Left+r.Width, r.Top+r.Height)
}

func (r Region) Origin() image.Point { return image.Pt(r.Left, r.Top) }

// Scaled returns the output dimensions after applying the scale factor.
func (r Region) Scaled(scale float64) (int, int) {
	if scale >= 1.0 {
		return r.Width, r.Height
	}
	w, h := int(float64(r.Width)*scale), int(float64(r.Height)*scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func (r Region) String() string { return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.Left, r.Top) }

func fromRect(b image.Rectangle) Region {
	return Region{Left: b.Min.X, Top: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
}

// Monitors lists capturable regions: the 0th entry covers the bounds of
// all displays together, the rest map 1:1 to the display enumeration.
func Monitors() []Region {
	n := screenshot.NumActiveDisplays()
	if n < 1 {
		return nil
	}
	all := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		all = all.Union(screenshot.GetDisplayBounds(i))
	}
	list := make([]Region, 0, n+1)
	list = append(list, fromRect(all))
	for i := 0; i < n; i++ {
		list = append(list, fromRect(screenshot.GetDisplayBounds(i)))
	}
	return list
}

// ResolveRegion maps the logical monitor index onto the monitor list:
// 0 selects all displays, positive values select single displays,
// anything else selects the last display. A missing monitor resolves
// to the last display instead of failing since the requested one may
// simply be unplugged; the substitution is reported.
func ResolveRegion(monitor int, log *logger.Logger) (Region, error) {
	monitors := Monitors()
	if len(monitors) == 0 {
		return Region{}, ErrNoDisplays
	}
	for i, m := range monitors[1:] {
		log.Debug().Msgf("monitor %d: %v", i+1, m)
	}
	region, substituted := pickRegion(monitors, monitor)
	if substituted {
		log.Warn().Msgf("monitor %v is not present, capturing monitor %v instead",
			monitor, len(monitors)-1)
	}
	return region, nil
}

func pickRegion(monitors []Region, monitor int) (Region, bool) {
	if monitor >= 0 && monitor < len(monitors) {
		return monitors[monitor], false
	}
	return monitors[len(monitors)-1], monitor > 0
}
