package encoder

import (
	"bytes"
	"image"
	"image/jpeg"
	"sync"
)

// Codec turns raw frames into compressed payloads.
type Codec interface {
	Encode(frame *image.RGBA, quality int) ([]byte, error)
}

// JPEG compresses frames with the standard library codec.
// Scratch buffers are pooled and reused across calls.
type JPEG struct {
	pool sync.Pool
}

func NewJPEG() *JPEG {
	return &JPEG{pool: sync.Pool{New: func() any { return new(bytes.Buffer) }}}
}

func (j *JPEG) Encode(frame *image.RGBA, quality int) ([]byte, error) {
	buf := j.pool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		j.pool.Put(buf)
	}()
	if err := jpeg.Encode(buf, frame, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}
