package cursor

import "image"

// Query reads the absolute desktop pointer position.
type Query interface {
	// Position reports the pointer location in desktop coordinates.
	// ok is false when the position can't be read on this system.
	Position() (p image.Point, ok bool)
	Close() error
}

type nullQuery struct{}

func (nullQuery) Position() (image.Point, bool) { return image.Point{}, false }
func (nullQuery) Close() error                  { return nil }
