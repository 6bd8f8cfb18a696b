package resource

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"github.com/lixenwraith/ge211/errs"
	"github.com/lixenwraith/ge211/session"
)

// Font is a typeface at a particular size
type Font struct {
	name string
	size float64
	face font.Face
}

// LoadFont loads a TrueType or OpenType font at size points (72 DPI, so
// one point is one pixel)
func LoadFont(loc *Locator, name string, size float64) (*Font, error) {
	if err := session.Check("Loading a font"); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, errs.ClientLogic("Font size must be positive, got %v", size)
	}

	data, err := loc.ReadFile(name)
	if err != nil {
		return nil, err
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, &errs.FontLoadError{Filename: name, Reason: err}
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &errs.FontLoadError{Filename: name, Reason: err}
	}
	return &Font{name: name, size: size, face: face}, nil
}

// DefaultFont returns the built-in 7x13 bitmap face
func DefaultFont() *Font {
	return &Font{name: "basicfont.Face7x13", size: 13, face: basicfont.Face7x13}
}

func (f *Font) Name() string    { return f.name }
func (f *Font) Size() float64   { return f.size }
func (f *Font) Face() font.Face { return f.face }

// LineHeight returns the distance between baselines in pixels
func (f *Font) LineHeight() int {
	return f.face.Metrics().Height.Ceil()
}
