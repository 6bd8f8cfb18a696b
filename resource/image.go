package resource

import (
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/ge211/errs"
)

// LoadImage decodes a png, jpeg, gif, bmp, tiff or webp resource into RGBA
func LoadImage(loc *Locator, name string) (*image.RGBA, error) {
	rc, err := loc.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, &errs.ImageLoadError{Filename: name, Reason: err}
	}
	return ToRGBA(img), nil
}

// ToRGBA returns img as *image.RGBA with its origin at (0, 0)
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}
