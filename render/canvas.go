// Package render owns the software framebuffer sprites paint into and the
// presenter that turns it into terminal cells.
package render

import (
	"image"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/geometry"
)

// Canvas is an RGBA framebuffer addressed in pixels
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a canvas of the given size; negative sizes clamp to 0
func NewCanvas(dims geometry.Dimensions) *Canvas {
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, max(dims.Width, 0), max(dims.Height, 0)))}
}

// Dimensions returns the canvas size in pixels
func (c *Canvas) Dimensions() geometry.Dimensions {
	b := c.img.Bounds()
	return geometry.Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// Resize reallocates the pixel buffer when dims change; contents are lost
func (c *Canvas) Resize(dims geometry.Dimensions) {
	if dims == c.Dimensions() {
		return
	}
	c.img = image.NewRGBA(image.Rect(0, 0, max(dims.Width, 0), max(dims.Height, 0)))
}

// Image exposes the underlying buffer (alpha-premultiplied)
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Clear fills every pixel with bg
func (c *Canvas) Clear(bg color.Color) {
	xdraw.Draw(c.img, c.img.Bounds(), image.NewUniform(bg), image.Point{}, xdraw.Src)
}

// At returns the straight-alpha color at p, or transparent black outside
func (c *Canvas) At(p geometry.Position) color.Color {
	if !(image.Point{X: p.X, Y: p.Y}).In(c.img.Bounds()) {
		return color.Color{}
	}
	px := c.img.RGBAAt(p.X, p.Y)
	if px.A == 0 {
		return color.Color{}
	}
	unmul := func(v uint8) uint8 { return uint8((uint32(v)*255 + uint32(px.A)/2) / uint32(px.A)) }
	return color.Color{R: unmul(px.R), G: unmul(px.G), B: unmul(px.B), A: px.A}
}

// Fill paints r with col using source-over blending
func (c *Canvas) Fill(r geometry.Rectangle, col color.Color) {
	dst := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
	xdraw.Draw(c.img, dst, image.NewUniform(col), image.Point{}, xdraw.Over)
}

// Copy draws tex with its top-left at `at`
// Scaling applies to the destination size, flips mirror within it, and the
// result is rotated clockwise about the destination centre
func (c *Canvas) Copy(tex image.Image, at geometry.Position, t geometry.Transform) {
	sr := tex.Bounds()
	if sr.Empty() {
		return
	}

	if t.IsIdentity() {
		dst := sr.Sub(sr.Min).Add(image.Point{X: at.X, Y: at.Y})
		xdraw.Draw(c.img, dst, tex, sr.Min, xdraw.Over)
		return
	}

	xdraw.NearestNeighbor.Transform(c.img, transformMatrix(sr, at, t), tex, sr, xdraw.Over, nil)
}

// TransformedDimensions returns the unrotated destination size of a
// texture of size dims under t
func TransformedDimensions(dims geometry.Dimensions, t geometry.Transform) geometry.Dimensions {
	return geometry.Dimensions{
		Width:  int(math.Round(float64(dims.Width) * t.ScaleX())),
		Height: int(math.Round(float64(dims.Height) * t.ScaleY())),
	}
}

// transformMatrix maps source pixel space to canvas space:
// centre, flip, scale, rotate, then translate to the destination centre
func transformMatrix(sr image.Rectangle, at geometry.Position, t geometry.Transform) f64.Aff3 {
	sw, sh := float64(sr.Dx()), float64(sr.Dy())
	dst := TransformedDimensions(geometry.Dimensions{Width: sr.Dx(), Height: sr.Dy()}, t)

	a, b := t.ScaleX(), t.ScaleY()
	if t.FlipH() {
		a = -a
	}
	if t.FlipV() {
		b = -b
	}

	rad := t.Rotation() * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)

	// linear part R·diag(a, b)
	m00, m01 := cos*a, -sin*b
	m10, m11 := sin*a, cos*b

	cx := float64(at.X) + float64(dst.Width)/2
	cy := float64(at.Y) + float64(dst.Height)/2
	ox := float64(sr.Min.X) + sw/2
	oy := float64(sr.Min.Y) + sh/2

	return f64.Aff3{
		m00, m01, cx - m00*ox - m01*oy,
		m10, m11, cy - m10*ox - m11*oy,
	}
}
