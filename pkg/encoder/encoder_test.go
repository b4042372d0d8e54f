package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"math/rand"
	"testing"
)

func genTestImage(w, h int, seed int64) *image.RGBA {
	r := rand.New(rand.NewSource(seed))
	img := image.NewRGBA(image.Rectangle{Max: image.Point{X: w, Y: h}})
	for i := range img.Pix {
		img.Pix[i] = uint8(r.Intn(256))
	}
	return img
}

func TestJPEGRoundTrip(t *testing.T) {
	j := NewJPEG()
	frame := genTestImage(64, 48, 1)
	data, err := j.Encode(frame, 80)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("produced undecodable output, %v", err)
	}
	if img.Bounds() != frame.Bounds() {
		t.Errorf("got bounds %v, want %v", img.Bounds(), frame.Bounds())
	}
}

func TestJPEGQualityAffectsSize(t *testing.T) {
	j := NewJPEG()
	frame := genTestImage(128, 96, 2)
	lo, err := j.Encode(frame, 30)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	hi, err := j.Encode(frame, 90)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(hi) <= len(lo) {
		t.Errorf("quality 90 produced %v bytes, quality 30 produced %v, want the former to be larger", len(hi), len(lo))
	}
}

func TestJPEGBufferReuse(t *testing.T) {
	j := NewJPEG()
	first, err := j.Encode(genTestImage(64, 48, 3), 75)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	keep := make([]byte, len(first))
	copy(keep, first)
	if _, err = j.Encode(genTestImage(64, 48, 4), 75); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.Equal(keep, first) {
		t.Errorf("earlier payload was clobbered by a later encode")
	}
	if _, err = jpeg.Decode(bytes.NewReader(first)); err != nil {
		t.Errorf("earlier payload is no longer decodable, %v", err)
	}
}
