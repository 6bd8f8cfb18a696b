package sprites

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/ge211/clock"
	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/render"
)

func dims(w, h int) geometry.Dimensions { return geometry.Dimensions{Width: w, Height: h} }
func pos(x, y int) geometry.Position    { return geometry.Position{X: x, Y: y} }

func blankCanvas(w, h int) *render.Canvas {
	c := render.NewCanvas(dims(w, h))
	c.Clear(color.Black)
	return c
}

func TestRectangleSprite(t *testing.T) {
	_, err := NewRectangleSprite(dims(0, 3), color.White)
	assert.ErrorIs(t, err, errs.ErrClientLogic)

	r, err := NewRectangleSprite(dims(2, 3), color.MediumRed)
	require.NoError(t, err)
	assert.Equal(t, dims(2, 3), r.Dimensions())

	c := blankCanvas(4, 4)
	require.NoError(t, r.Render(c, pos(1, 0), geometry.Identity()))
	assert.Equal(t, color.MediumRed, c.At(pos(1, 0)))
	assert.Equal(t, color.MediumRed, c.At(pos(2, 2)))
	assert.Equal(t, color.Black, c.At(pos(3, 0)))

	assert.False(t, r.CanPaint())

	r.Recolor(color.MediumBlue)
	assert.True(t, r.CanPaint(), "recolor paints a fresh surface")
	require.NoError(t, r.Render(c, pos(0, 0), geometry.Identity()))
	assert.Equal(t, color.MediumBlue, c.At(pos(0, 0)))
}

func TestSetZeroTransformDraws(t *testing.T) {
	r, err := NewRectangleSprite(dims(4, 4), color.MediumRed)
	require.NoError(t, err)

	set := NewSet().AddTransformed(r, pos(0, 0), 0, geometry.Transform{})
	c := blankCanvas(4, 4)
	require.NoError(t, set.Render(c))
	assert.Equal(t, color.MediumRed, c.At(pos(2, 2)))
	assert.Equal(t, color.MediumRed, c.At(pos(3, 3)))
}

func TestCircleSprite(t *testing.T) {
	_, err := NewCircleSprite(0, color.White)
	assert.ErrorIs(t, err, errs.ErrClientLogic)

	circle, err := NewCircleSprite(4, color.White)
	require.NoError(t, err)
	assert.Equal(t, dims(8, 8), circle.Dimensions())
	assert.Equal(t, 4, circle.Radius())

	c := blankCanvas(8, 8)
	require.NoError(t, circle.Render(c, pos(0, 0), geometry.Identity()))

	// x²+y² < r² around the centre, mirrored into all four quadrants
	assert.Equal(t, color.White, c.At(pos(4, 4)))
	assert.Equal(t, color.White, c.At(pos(3, 3)))
	assert.Equal(t, color.White, c.At(pos(7, 4)))
	assert.Equal(t, color.White, c.At(pos(0, 3)))
	assert.Equal(t, color.Black, c.At(pos(0, 0)))
	assert.Equal(t, color.Black, c.At(pos(7, 7)))
	assert.Equal(t, color.Black, c.At(pos(7, 0)))

	circle.Recolor(color.MediumRed)
	require.NoError(t, circle.Render(c, pos(0, 0), geometry.Identity()))
	assert.Equal(t, color.MediumRed, c.At(pos(4, 4)))
}

func TestRenderSpriteLatePaint(t *testing.T) {
	_, err := NewRenderSprite(dims(-1, 1))
	assert.ErrorIs(t, err, errs.ErrClientLogic)

	s, err := NewRenderSprite(dims(2, 2))
	require.NoError(t, err)
	assert.True(t, s.CanPaint())
	require.NoError(t, s.FillSurface(color.White))
	require.NoError(t, s.FillRectangle(geometry.Rectangle{Width: 1, Height: 2}, color.MediumGreen))
	require.NoError(t, s.SetPixel(pos(1, 1), color.MediumRed))

	c := blankCanvas(2, 2)
	require.NoError(t, s.Render(c, pos(0, 0), geometry.Identity()))
	assert.Equal(t, color.MediumGreen, c.At(pos(0, 1)))
	assert.Equal(t, color.White, c.At(pos(1, 0)))
	assert.Equal(t, color.MediumRed, c.At(pos(1, 1)))

	assert.False(t, s.CanPaint())
	err = s.SetPixel(pos(0, 0), color.Black)
	var late *errs.LatePaintError
	require.ErrorAs(t, err, &late)
	assert.Equal(t, "RenderSprite.SetPixel", late.Who)
	assert.ErrorIs(t, err, errs.ErrClientLogic)
}

func TestPrepareFreezes(t *testing.T) {
	s, err := NewRenderSprite(dims(1, 1))
	require.NoError(t, err)
	Prepare(s)
	assert.ErrorIs(t, s.FillSurface(color.White), errs.ErrClientLogic)

	Prepare(ImageSpriteFrom(image.NewRGBA(image.Rect(0, 0, 1, 1))))
}

func TestImageSpriteFrom(t *testing.T) {
	img := image.NewRGBA(image.Rect(2, 2, 5, 4))
	img.Set(2, 2, color.MediumCyan)
	s := ImageSpriteFrom(img)
	assert.Equal(t, dims(3, 2), s.Dimensions())

	c := blankCanvas(3, 2)
	require.NoError(t, s.Render(c, pos(0, 0), geometry.Identity()))
	assert.Equal(t, color.MediumCyan, c.At(pos(0, 0)))
}

func TestTextBuilderDefaults(t *testing.T) {
	b := NewTextBuilder(nil)
	assert.Equal(t, color.White, b.Color())
	assert.True(t, b.Antialias())
	assert.Equal(t, 0, b.WordWrap())
	assert.NotNil(t, b.Font())

	b.WithWordWrap(-5).Add("x = ", 3).Addf(", y = %d", 4)
	assert.Equal(t, 0, b.WordWrap())
	assert.Equal(t, "x = 3, y = 4", b.Message())

	b.WithMessage("reset")
	assert.Equal(t, "reset", b.Message())
}

func TestTextBuilderAddConcatenates(t *testing.T) {
	b := NewTextBuilder(nil).Add(1, 2).Add(3.5, true, "!")
	assert.Equal(t, "123.5true!", b.Message())
}

func TestTextSprite(t *testing.T) {
	empty := NewTextSprite("", nil)
	assert.True(t, empty.Empty())
	assert.Equal(t, dims(0, 0), empty.Dimensions())
	err := empty.Render(blankCanvas(1, 1), pos(0, 0), geometry.Identity())
	assert.ErrorIs(t, err, errs.ErrClientLogic)

	// basicfont.Face7x13 has a 7 pixel advance and 13 pixel line height
	hi := NewTextSprite("hi", nil)
	require.False(t, hi.Empty())
	assert.Equal(t, dims(14, 13), hi.Dimensions())

	c := blankCanvas(14, 13)
	require.NoError(t, hi.Render(c, pos(0, 0), geometry.Identity()))
	lit := 0
	for p := range (geometry.Rectangle{Width: 14, Height: 13}).All() {
		if c.At(p) == color.White {
			lit++
		}
	}
	assert.Positive(t, lit)

	hi.Reconfigure(NewTextBuilder(nil))
	assert.True(t, hi.Empty())
}

func TestTextSpriteWordWrap(t *testing.T) {
	s := NewTextBuilder(nil).WithMessage("aa bb cc").WithWordWrap(35).Build()
	assert.Equal(t, dims(35, 26), s.Dimensions())

	s = NewTextBuilder(nil).WithMessage("one\ntwo").WithAntialias(false).Build()
	assert.Equal(t, dims(21, 26), s.Dimensions())
}

func TestMultiplexedSprite(t *testing.T) {
	small, err := NewRectangleSprite(dims(1, 1), color.White)
	require.NoError(t, err)
	big, err := NewRectangleSprite(dims(2, 2), color.White)
	require.NoError(t, err)

	fake := clock.NewFake(time.Unix(0, 0))
	m := NewMultiplexedSprite(func(age time.Duration) Sprite {
		switch {
		case age < time.Second:
			return small
		case age < 2*time.Second:
			return big
		default:
			return nil
		}
	}, fake)

	assert.Equal(t, dims(1, 1), m.Dimensions())
	fake.Advance(1500 * time.Millisecond)
	assert.Equal(t, dims(2, 2), m.Dimensions())
	fake.Advance(time.Second)
	assert.Equal(t, dims(0, 0), m.Dimensions())
	assert.NoError(t, m.Render(blankCanvas(1, 1), pos(0, 0), geometry.Identity()))

	m.Reset()
	assert.Equal(t, dims(1, 1), m.Dimensions())
}

func TestSetOrdersByZStably(t *testing.T) {
	mk := func(c color.Color) Sprite {
		s, err := NewRectangleSprite(dims(1, 1), c)
		require.NoError(t, err)
		return s
	}

	set := NewSet()
	set.Add(mk(color.MediumRed), pos(0, 0), 5)
	set.Add(mk(color.MediumGreen), pos(0, 0), 1)
	set.Add(mk(color.MediumBlue), pos(1, 0), 2)
	set.Add(mk(color.MediumYellow), pos(1, 0), 2)
	set.AddTransformed(mk(color.White), pos(2, 0), 0, geometry.Scale(1))
	assert.Equal(t, 5, set.Len())

	c := blankCanvas(3, 1)
	require.NoError(t, set.Render(c))
	assert.Equal(t, color.MediumRed, c.At(pos(0, 0)), "higher z on top")
	assert.Equal(t, color.MediumYellow, c.At(pos(1, 0)), "equal z keeps insertion order")
	assert.Equal(t, color.White, c.At(pos(2, 0)))

	set.Reset()
	assert.Equal(t, 0, set.Len())

	set.Add(NewTextSprite("", nil), pos(0, 0), 0)
	assert.ErrorIs(t, set.Render(c), errs.ErrClientLogic)
}
