package cursor

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

const (
	glyphBase = 16
	// glyphs smaller than this are imperceptible and skipped
	minGlyphSize = 4
)

var (
	fillSrc    = image.NewUniform(color.White)
	outlineSrc = image.NewUniform(color.Black)
)

// Draw composites a pointer glyph onto the frame.
//
// The absolute desktop position is converted to region-relative,
// scale-adjusted coordinates; nothing is drawn when the point lands
// outside the frame. The glyph is a small filled triangle with a one
// pixel contrasting outline, scaled with the frame.
func Draw(frame *image.RGBA, abs image.Point, origin image.Point, scale float64) {
	b := frame.Bounds()
	x := int(float64(abs.X-origin.X) * scale)
	y := int(float64(abs.Y-origin.Y) * scale)
	if x < 0 || x >= b.Dx() || y < 0 || y >= b.Dy() {
		return
	}
	size := int(glyphBase * scale)
	if size < minGlyphSize {
		return
	}

	fx, fy, fs := float32(x), float32(y), float32(size)
	v := [3][2]float32{
		{fx, fy},
		{fx, fy + fs},
		{fx + 0.6*fs, fy + 0.75*fs},
	}

	fill := vector.NewRasterizer(b.Dx(), b.Dy())
	fill.MoveTo(v[0][0], v[0][1])
	fill.LineTo(v[1][0], v[1][1])
	fill.LineTo(v[2][0], v[2][1])
	fill.ClosePath()
	fill.Draw(frame, b, fillSrc, image.Point{})

	outline := vector.NewRasterizer(b.Dx(), b.Dy())
	strokeEdge(outline, v[0], v[1])
	strokeEdge(outline, v[1], v[2])
	strokeEdge(outline, v[2], v[0])
	outline.Draw(frame, b, outlineSrc, image.Point{})
}

// strokeEdge adds a one pixel wide quad covering the segment.
func strokeEdge(z *vector.Rasterizer, p0, p1 [2]float32) {
	dx, dy := p1[0]-p0[0], p1[1]-p0[1]
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*0.5, dx/length*0.5
	z.MoveTo(p0[0]+nx, p0[1]+ny)
	z.LineTo(p1[0]+nx, p1[1]+ny)
	z.LineTo(p1[0]-nx, p1[1]-ny)
	z.LineTo(p0[0]-nx, p0[1]-ny)
	z.ClosePath()
}
