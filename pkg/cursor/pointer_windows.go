//go:build windows

package cursor

import (
	"image"
	"syscall"
	"unsafe"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	procGetCursorPos = user32.NewProc("GetCursorPos")
)

type winPoint struct {
	X, Y int32
}

type winQuery struct{}

func NewQuery() Query { return winQuery{} }

func (winQuery) Position() (image.Point, bool) {
	var pt winPoint
	ret, _, _ := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(pt.X), int(pt.Y)), true
}

func (winQuery) Close() error { return nil }
