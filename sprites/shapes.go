package sprites

import (
	"image"

	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/render"
	"github.com/lixenwraith/ge211/resource"
)

// RectangleSprite is a solid rectangle
type RectangleSprite struct {
	*RenderSprite
}

// NewRectangleSprite fills a dims-sized surface with c
func NewRectangleSprite(dims geometry.Dimensions, c color.Color) (*RectangleSprite, error) {
	if dims.Width <= 0 || dims.Height <= 0 {
		return nil, errs.ClientLogic("RectangleSprite: width and height must both be positive")
	}
	return &RectangleSprite{RenderSprite: solidRectangle(dims, c)}, nil
}

func solidRectangle(dims geometry.Dimensions, c color.Color) *RenderSprite {
	s := newRenderSprite(dims)
	s.paint(s.img.Bounds(), c)
	return s
}

// Recolor replaces the surface with a fresh one, so it works after render
func (r *RectangleSprite) Recolor(c color.Color) {
	r.RenderSprite = solidRectangle(r.Dimensions(), c)
}

// CircleSprite is a filled circle inside a 2r×2r square
type CircleSprite struct {
	*RenderSprite
	radius int
}

// NewCircleSprite draws a circle of the given radius
func NewCircleSprite(radius int, c color.Color) (*CircleSprite, error) {
	if radius <= 0 {
		return nil, errs.ClientLogic("CircleSprite: radius must be positive")
	}
	return &CircleSprite{RenderSprite: solidCircle(radius, c), radius: radius}, nil
}

// Quadrants are mirrored so the circle is symmetric about its centre
func solidCircle(radius int, c color.Color) *RenderSprite {
	s := newRenderSprite(geometry.Dimensions{Width: 2 * radius, Height: 2 * radius})
	cx, cy := radius, radius
	for y := 0; y < radius; y++ {
		for x := 0; x < radius; x++ {
			if x*x+y*y >= radius*radius {
				continue
			}
			s.img.Set(cx+x, cy+y, c)
			s.img.Set(cx+x, cy-y-1, c)
			s.img.Set(cx-x-1, cy+y, c)
			s.img.Set(cx-x-1, cy-y-1, c)
		}
	}
	return s
}

// Radius returns the circle radius in pixels
func (c *CircleSprite) Radius() int {
	return c.radius
}

// Recolor redraws the circle in a new color
func (c *CircleSprite) Recolor(col color.Color) {
	c.RenderSprite = solidCircle(c.radius, col)
}

// ImageSprite displays a decoded image file
type ImageSprite struct {
	img *image.RGBA
}

// NewImageSprite loads filename through loc
func NewImageSprite(loc *resource.Locator, filename string) (*ImageSprite, error) {
	img, err := resource.LoadImage(loc, filename)
	if err != nil {
		return nil, err
	}
	return &ImageSprite{img: img}, nil
}

// ImageSpriteFrom wraps an already decoded image
func ImageSpriteFrom(img image.Image) *ImageSprite {
	return &ImageSprite{img: resource.ToRGBA(img)}
}

func (s *ImageSprite) Dimensions() geometry.Dimensions {
	return imageDims(s.img)
}

func (s *ImageSprite) Render(dst *render.Canvas, at geometry.Position, t geometry.Transform) error {
	dst.Copy(s.img, at, t)
	return nil
}
