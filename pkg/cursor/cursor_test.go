package cursor

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func genTestFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rectangle{Max: image.Point{X: w, Y: h}})
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff})
		}
	}
	return img
}

func clonePix(img *image.RGBA) []byte {
	pix := make([]byte, len(img.Pix))
	copy(pix, img.Pix)
	return pix
}

func TestDrawSkipsUntouchedFrames(t *testing.T) {
	tests := []struct {
		name   string
		abs    image.Point
		origin image.Point
		scale  float64
	}{
		{name: "left of region", abs: image.Pt(-5, 10), origin: image.Pt(0, 0), scale: 1},
		{name: "beyond scaled width", abs: image.Pt(250, 10), origin: image.Pt(0, 0), scale: 0.5},
		{name: "above region origin", abs: image.Pt(110, 40), origin: image.Pt(100, 50), scale: 1},
		{name: "glyph below min size", abs: image.Pt(10, 10), origin: image.Pt(0, 0), scale: 0.2},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			frame := genTestFrame(100, 100)
			before := clonePix(frame)
			Draw(frame, test.abs, test.origin, test.scale)
			if !bytes.Equal(before, frame.Pix) {
				t.Errorf("frame was modified, but the pointer glyph should not render")
			}
		})
	}
}

func TestDrawAnchorsGlyphAtPointer(t *testing.T) {
	frame := genTestFrame(100, 100)
	Draw(frame, image.Pt(300, 200), image.Pt(300, 200), 1)

	// the apex carries the outline
	if r, _, _, _ := frame.At(0, 0).RGBA(); r == 0x4040 {
		t.Errorf("apex pixel untouched, glyph should start at the frame origin")
	}
	// just inside the left edge sits the fill
	if r, g, b, _ := frame.At(1, 8).RGBA(); r>>8 < 200 || g>>8 < 200 || b>>8 < 200 {
		t.Errorf("got interior pixel %v %v %v, want near-white fill", r>>8, g>>8, b>>8)
	}
	// nothing renders past the glyph box
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x < 12 && y < 18 {
				continue
			}
			if r, g, b, _ := frame.At(x, y).RGBA(); r != 0x4040 || g != 0x4040 || b != 0x4040 {
				t.Fatalf("pixel (%v,%v) modified outside the glyph box", x, y)
			}
		}
	}
}

func TestDrawScalesPointerCoordinates(t *testing.T) {
	frame := genTestFrame(100, 100)
	// desktop (400,250) against origin (300,200) at half scale lands on (50,25)
	Draw(frame, image.Pt(400, 250), image.Pt(300, 200), 0.5)

	changed := 0
	box := image.Rect(48, 23, 58, 36)
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			r, g, b, _ := frame.At(x, y).RGBA()
			if r == 0x4040 && g == 0x4040 && b == 0x4040 {
				continue
			}
			changed++
			if !image.Pt(x, y).In(box) {
				t.Fatalf("pixel (%v,%v) modified outside the expected glyph area", x, y)
			}
		}
	}
	if changed == 0 {
		t.Errorf("no pixels modified, expected a glyph at the scaled position")
	}
}
