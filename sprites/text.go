package sprites

import (
	"fmt"
	"image"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/ge211/color"
	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/geometry"
	"github.com/lixenwraith/ge211/render"
	"github.com/lixenwraith/ge211/resource"
)

// TextBuilder accumulates the settings for a TextSprite
type TextBuilder struct {
	message   strings.Builder
	font      *resource.Font
	color     color.Color
	antialias bool
	wordWrap  int
}

// NewTextBuilder starts with white antialiased text and no wrapping
// A nil font selects resource.DefaultFont
func NewTextBuilder(f *resource.Font) *TextBuilder {
	if f == nil {
		f = resource.DefaultFont()
	}
	return &TextBuilder{font: f, color: color.White, antialias: true}
}

// WithMessage replaces the message
func (b *TextBuilder) WithMessage(msg string) *TextBuilder {
	b.message.Reset()
	b.message.WriteString(msg)
	return b
}

// Add appends each value's default format to the message, with no separators
func (b *TextBuilder) Add(values ...any) *TextBuilder {
	for _, v := range values {
		fmt.Fprint(&b.message, v)
	}
	return b
}

// Addf appends a formatted string to the message
func (b *TextBuilder) Addf(format string, args ...any) *TextBuilder {
	fmt.Fprintf(&b.message, format, args...)
	return b
}

func (b *TextBuilder) WithFont(f *resource.Font) *TextBuilder {
	if f != nil {
		b.font = f
	}
	return b
}

func (b *TextBuilder) WithColor(c color.Color) *TextBuilder {
	b.color = c
	return b
}

func (b *TextBuilder) WithAntialias(on bool) *TextBuilder {
	b.antialias = on
	return b
}

// WithWordWrap wraps lines at width pixels; 0 disables wrapping and
// negative values clamp to 0
func (b *TextBuilder) WithWordWrap(width int) *TextBuilder {
	b.wordWrap = max(width, 0)
	return b
}

func (b *TextBuilder) Message() string      { return b.message.String() }
func (b *TextBuilder) Font() *resource.Font { return b.font }
func (b *TextBuilder) Color() color.Color   { return b.color }
func (b *TextBuilder) Antialias() bool      { return b.antialias }
func (b *TextBuilder) WordWrap() int        { return b.wordWrap }

// Build rasterises the current settings
func (b *TextBuilder) Build() *TextSprite {
	return &TextSprite{img: rasterize(b)}
}

// TextSprite is a rendered string
// An empty message yields an empty sprite, which cannot be rendered
type TextSprite struct {
	img *image.RGBA
}

// NewTextSprite renders msg in white with f
func NewTextSprite(msg string, f *resource.Font) *TextSprite {
	return NewTextBuilder(f).WithMessage(msg).Build()
}

// Reconfigure re-rasterises from b
func (t *TextSprite) Reconfigure(b *TextBuilder) {
	t.img = rasterize(b)
}

// Empty reports whether there is nothing to render
func (t *TextSprite) Empty() bool {
	return t.img == nil
}

func (t *TextSprite) Dimensions() geometry.Dimensions {
	return imageDims(t.img)
}

func (t *TextSprite) Render(dst *render.Canvas, at geometry.Position, tr geometry.Transform) error {
	if t.Empty() {
		return errs.ClientLogic("Attempt to render empty TextSprite")
	}
	dst.Copy(t.img, at, tr)
	return nil
}

func rasterize(b *TextBuilder) *image.RGBA {
	msg := b.Message()
	if msg == "" {
		return nil
	}

	face := b.font.Face()
	lines := layoutLines(face, msg, b.wordWrap)

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	ascent := metrics.Ascent.Ceil()

	width := 1
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	bounds := image.Rect(0, 0, width, lineHeight*len(lines))

	mask := image.NewAlpha(bounds)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
	for i, line := range lines {
		d.Dot = fixed.P(0, ascent+i*lineHeight)
		d.DrawString(line)
	}

	if !b.antialias {
		for i, a := range mask.Pix {
			if a >= 0x80 {
				mask.Pix[i] = 0xff
			} else {
				mask.Pix[i] = 0
			}
		}
	}

	out := image.NewRGBA(bounds)
	xdraw.DrawMask(out, bounds, image.NewUniform(b.color), image.Point{}, mask, image.Point{}, xdraw.Src)
	return out
}

// layoutLines splits msg on newlines and, when wrap > 0, greedily packs
// words into lines no wider than wrap pixels
// A single word wider than wrap gets a line of its own
func layoutLines(face font.Face, msg string, wrap int) []string {
	paragraphs := strings.Split(msg, "\n")
	if wrap <= 0 {
		return paragraphs
	}

	limit := fixed.I(wrap)
	var lines []string
	for _, para := range paragraphs {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		current := words[0]
		for _, w := range words[1:] {
			candidate := current + " " + w
			if font.MeasureString(face, candidate) <= limit {
				current = candidate
				continue
			}
			lines = append(lines, current)
			current = w
		}
		lines = append(lines, current)
	}
	return lines
}
