// Package sprites defines the drawable things a game places on screen each
// frame.
package sprites

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/render"
)

// Sprite is anything that can be drawn at a position with a transform
type Sprite interface {
	Dimensions() geometry.Dimensions
	Render(dst *render.Canvas, at geometry.Position, t geometry.Transform) error
}

// freezer is implemented by sprites whose pixels become read-only once
// they are rendered or prepared
type freezer interface {
	freeze()
}

// Prepare freezes a paintable sprite ahead of its first render
// Other sprites are left alone
func Prepare(s Sprite) {
	if f, ok := s.(freezer); ok {
		f.freeze()
	}
}

// RenderSprite is a paintable pixel surface
// Painting is allowed until the sprite is first rendered or prepared
type RenderSprite struct {
	img    *image.RGBA
	frozen bool
}

// NewRenderSprite allocates a transparent surface; both dimensions must be
// positive
func NewRenderSprite(dims geometry.Dimensions) (*RenderSprite, error) {
	if dims.Width <= 0 || dims.Height <= 0 {
		return nil, errs.ClientLogic("RenderSprite: width and height must both be positive")
	}
	return newRenderSprite(dims), nil
}

func newRenderSprite(dims geometry.Dimensions) *RenderSprite {
	return &RenderSprite{img: image.NewRGBA(image.Rect(0, 0, dims.Width, dims.Height))}
}

// CanPaint reports whether the surface still accepts paint
func (s *RenderSprite) CanPaint() bool {
	return !s.frozen
}

// FillSurface replaces every pixel with c
func (s *RenderSprite) FillSurface(c color.Color) error {
	return s.fill(s.img.Bounds(), c, "RenderSprite.FillSurface")
}

// FillRectangle replaces the pixels inside r with c
func (s *RenderSprite) FillRectangle(r geometry.Rectangle, c color.Color) error {
	return s.fill(image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height), c, "RenderSprite.FillRectangle")
}

// SetPixel replaces a single pixel
func (s *RenderSprite) SetPixel(p geometry.Position, c color.Color) error {
	return s.fill(image.Rect(p.X, p.Y, p.X+1, p.Y+1), c, "RenderSprite.SetPixel")
}

func (s *RenderSprite) fill(r image.Rectangle, c color.Color, who string) error {
	if s.frozen {
		return &errs.LatePaintError{Who: who}
	}
	s.paint(r, c)
	return nil
}

// paint ignores the frozen flag; callers own a surface nobody has rendered
func (s *RenderSprite) paint(r image.Rectangle, c color.Color) {
	xdraw.Draw(s.img, r.Intersect(s.img.Bounds()), image.NewUniform(c), image.Point{}, xdraw.Src)
}

func (s *RenderSprite) freeze() {
	s.frozen = true
}

func (s *RenderSprite) Dimensions() geometry.Dimensions {
	return imageDims(s.img)
}

func (s *RenderSprite) Render(dst *render.Canvas, at geometry.Position, t geometry.Transform) error {
	s.frozen = true
	dst.Copy(s.img, at, t)
	return nil
}

func imageDims(img image.Image) geometry.Dimensions {
	if img == nil {
		return geometry.Dimensions{}
	}
	b := img.Bounds()
	return geometry.Dimensions{Width: b.Dx(), Height: b.Dy()}
}
