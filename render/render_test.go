package render

import (
	"image"
	imgcolor "image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/geometry"
)

var (
	red   = color.RGB(255, 0, 0)
	green = color.RGB(0, 255, 0)
	blue  = color.RGB(0, 0, 255)
)

func pos(x, y int) geometry.Position { return geometry.Position{X: x, Y: y} }

// quad returns a 2x2 texture: red, blue / green, white
func quad() *image.RGBA {
	tex := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tex.Set(0, 0, red)
	tex.Set(1, 0, blue)
	tex.Set(0, 1, green)
	tex.Set(1, 1, color.White)
	return tex
}

func TestCanvasClearAndAt(t *testing.T) {
	c := NewCanvas(geometry.Dimensions{Width: 4, Height: 3})
	assert.Equal(t, geometry.Dimensions{Width: 4, Height: 3}, c.Dimensions())

	c.Clear(blue)
	assert.Equal(t, blue, c.At(pos(3, 2)))
	assert.Equal(t, color.Color{}, c.At(pos(4, 0)), "outside reads transparent")

	c.Resize(geometry.Dimensions{Width: 2, Height: 2})
	assert.Equal(t, geometry.Dimensions{Width: 2, Height: 2}, c.Dimensions())
}

func TestCopyIdentity(t *testing.T) {
	c := NewCanvas(geometry.Dimensions{Width: 4, Height: 4})
	c.Clear(color.Black)
	c.Copy(quad(), pos(1, 1), geometry.Identity())

	assert.Equal(t, color.Black, c.At(pos(0, 0)))
	assert.Equal(t, red, c.At(pos(1, 1)))
	assert.Equal(t, blue, c.At(pos(2, 1)))
	assert.Equal(t, green, c.At(pos(1, 2)))
	assert.Equal(t, color.White, c.At(pos(2, 2)))
	assert.Equal(t, color.Black, c.At(pos(3, 3)))
}

func TestCopyFlips(t *testing.T) {
	c := NewCanvas(geometry.Dimensions{Width: 2, Height: 2})

	c.Clear(color.Black)
	c.Copy(quad(), pos(0, 0), geometry.FlipH())
	assert.Equal(t, blue, c.At(pos(0, 0)))
	assert.Equal(t, red, c.At(pos(1, 0)))

	c.Clear(color.Black)
	c.Copy(quad(), pos(0, 0), geometry.FlipV())
	assert.Equal(t, green, c.At(pos(0, 0)))
	assert.Equal(t, red, c.At(pos(0, 1)))
}

func TestCopyRotatesClockwise(t *testing.T) {
	c := NewCanvas(geometry.Dimensions{Width: 2, Height: 2})
	c.Clear(color.Black)
	c.Copy(quad(), pos(0, 0), geometry.Rotation(90))

	assert.Equal(t, green, c.At(pos(0, 0)))
	assert.Equal(t, red, c.At(pos(1, 0)))
	assert.Equal(t, blue, c.At(pos(1, 1)))
	assert.Equal(t, color.White, c.At(pos(0, 1)))
}

func TestCopyScales(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 1, 1))
	tex.Set(0, 0, red)

	c := NewCanvas(geometry.Dimensions{Width: 4, Height: 4})
	c.Clear(color.Black)
	c.Copy(tex, pos(1, 1), geometry.Scale(2))

	for p := range (geometry.Rectangle{X: 1, Y: 1, Width: 2, Height: 2}).All() {
		assert.Equal(t, red, c.At(p), p.String())
	}
	assert.Equal(t, color.Black, c.At(pos(3, 3)))
	assert.Equal(t, geometry.Dimensions{Width: 2, Height: 2},
		TransformedDimensions(geometry.Dimensions{Width: 1, Height: 1}, geometry.Scale(2)))
}

func TestCopyBlendsAlpha(t *testing.T) {
	tex := image.NewRGBA(image.Rect(0, 0, 1, 1))
	tex.Set(0, 0, imgcolor.NRGBA{R: 255, A: 128})

	c := NewCanvas(geometry.Dimensions{Width: 1, Height: 1})
	c.Clear(color.Black)
	c.Copy(tex, pos(0, 0), geometry.Identity())

	got := c.At(pos(0, 0))
	assert.Equal(t, uint8(255), got.A)
	assert.InDelta(t, 128, int(got.R), 1)
	assert.Equal(t, uint8(0), got.G)
}

func TestPresenterHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(3, 2)

	c := NewCanvas(geometry.Dimensions{Width: 3, Height: 4})
	c.Clear(color.Black)
	c.Fill(geometry.Rectangle{X: 0, Y: 0, Width: 1, Height: 1}, red)
	c.Fill(geometry.Rectangle{X: 0, Y: 1, Width: 1, Height: 1}, blue)

	p := NewPresenter(screen)
	assert.Equal(t, 6, p.Present(c), "first frame writes every cell")

	r, _, style, _ := screen.GetContent(0, 0)
	assert.Equal(t, HalfBlock, r)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, red.Tcell(), fg)
	assert.Equal(t, blue.Tcell(), bg)

	assert.Equal(t, 0, p.Present(c), "unchanged frame writes nothing")

	c.Fill(geometry.Rectangle{X: 2, Y: 3, Width: 1, Height: 1}, green)
	assert.Equal(t, 1, p.Present(c))
	_, _, style, _ = screen.GetContent(2, 1)
	_, bg, _ = style.Decompose()
	assert.Equal(t, green.Tcell(), bg)

	p.Invalidate()
	assert.Equal(t, 6, p.Present(c))
}

func TestPresenterPadsSmallCanvas(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(2, 1)

	c := NewCanvas(geometry.Dimensions{Width: 1, Height: 1})
	c.Clear(color.White)

	NewPresenter(screen).Present(c)

	_, _, style, _ := screen.GetContent(1, 0)
	fg, bg, _ := style.Decompose()
	assert.Equal(t, color.Black.Tcell(), fg)
	assert.Equal(t, color.Black.Tcell(), bg)

	_, _, style, _ = screen.GetContent(0, 0)
	fg, _, _ = style.Decompose()
	assert.Equal(t, color.White.Tcell(), fg)
}
