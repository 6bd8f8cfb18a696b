// Package color provides an 8-bit RGBA color type with HSLA and HSVA views.
package color

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color stores explicit 8-bit color channels, decoupled from tcell
// The zero value is transparent black
type Color struct {
	R, G, B, A uint8
}

// Predefined colors
var (
	White         = RGB(255, 255, 255)
	Black         = RGB(0, 0, 0)
	MediumRed     = FromHSLA(0, 0.5, 0.5, 1)
	MediumGreen   = FromHSLA(120, 0.5, 0.5, 1)
	MediumBlue    = FromHSLA(240, 0.5, 0.5, 1)
	MediumCyan    = FromHSLA(180, 0.5, 0.5, 1)
	MediumMagenta = FromHSLA(300, 0.5, 0.5, 1)
	MediumYellow  = FromHSLA(60, 0.5, 0.5, 1)
)

// RGB returns an opaque color
func RGB(r, g, b uint8) Color {
	return Color{r, g, b, 255}
}

// FromRGBA builds a color from unit-interval channels, scaling each by 255
func FromRGBA(r, g, b, a float64) Color {
	return Color{unitToByte(r), unitToByte(g), unitToByte(b), unitToByte(a)}
}

// FromHSLA builds a color from hue (degrees), saturation, lightness and alpha
func FromHSLA(hue, saturation, lightness, alpha float64) Color {
	c := colorful.Hsl(normaliseHue(hue), clampUnit(saturation), clampUnit(lightness))
	return FromRGBA(c.R, c.G, c.B, alpha)
}

// FromHSVA builds a color from hue (degrees), saturation, value and alpha
func FromHSVA(hue, saturation, value, alpha float64) Color {
	c := colorful.Hsv(normaliseHue(hue), clampUnit(saturation), clampUnit(value))
	return FromRGBA(c.R, c.G, c.B, alpha)
}

// ToHSLA converts to the hue-saturation-lightness model
// Achromatic colors report hue 0
func (c Color) ToHSLA() HSLA {
	h, s, l := c.colorful().Hsl()
	return HSLA{Hue: h, Saturation: s, Lightness: l, Alpha: float64(c.A) / 255}
}

// ToHSVA converts to the hue-saturation-value model
func (c Color) ToHSVA() HSVA {
	h, s, v := c.colorful().Hsv()
	return HSVA{Hue: h, Saturation: s, Value: v, Alpha: float64(c.A) / 255}
}

// Blend returns the weighted average (1-weight)*c + weight*that, per channel
func (c Color) Blend(weight float64, that Color) Color {
	return Color{
		R: weightedByte(c.R, weight, that.R),
		G: weightedByte(c.G, weight, that.G),
		B: weightedByte(c.B, weight, that.B),
		A: weightedByte(c.A, weight, that.A),
	}
}

// Invert inverts the color channels and keeps alpha
func (c Color) Invert() Color {
	return Color{^c.R, ^c.G, ^c.B, c.A}
}

// RotateHue rotates the hue by degrees, in the HSV model
func (c Color) RotateHue(degrees float64) Color {
	return c.ToHSVA().RotateHue(degrees).ToRGBA()
}

// Lighten moves lightness toward 1 by unit amount
func (c Color) Lighten(amount float64) Color {
	return c.ToHSLA().Lighten(amount).ToRGBA()
}

// Darken moves lightness toward 0 by unit amount
func (c Color) Darken(amount float64) Color {
	return c.ToHSLA().Darken(amount).ToRGBA()
}

// Saturate moves saturation toward 1 by unit amount
func (c Color) Saturate(amount float64) Color {
	return c.ToHSLA().Saturate(amount).ToRGBA()
}

// Desaturate moves saturation toward 0 by unit amount
func (c Color) Desaturate(amount float64) Color {
	return c.ToHSLA().Desaturate(amount).ToRGBA()
}

// FadeIn moves alpha toward opaque by unit amount
func (c Color) FadeIn(amount float64) Color {
	c.A = weightedByte(c.A, amount, 255)
	return c
}

// FadeOut moves alpha toward transparent by unit amount
func (c Color) FadeOut(amount float64) Color {
	c.A = weightedByte(c.A, amount, 0)
	return c
}

// Over composites c over dst using source-over alpha blending
func (c Color) Over(dst Color) Color {
	switch c.A {
	case 255:
		return c
	case 0:
		return dst
	}
	sa := float64(c.A) / 255
	da := float64(dst.A) / 255
	outA := sa + da*(1-sa)
	if outA == 0 {
		return Color{}
	}
	mix := func(s, d uint8) uint8 {
		v := (float64(s)*sa + float64(d)*da*(1-sa)) / outA
		return uint8(math.Round(v))
	}
	return Color{
		R: mix(c.R, dst.R),
		G: mix(c.G, dst.G),
		B: mix(c.B, dst.B),
		A: uint8(math.Round(outA * 255)),
	}
}

// RGBA implements image/color.Color with alpha-premultiplied channels
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 255
	g = uint32(c.G) * a / 255
	b = uint32(c.B) * a / 255
	return r | r<<8, g | g<<8, b | b<<8, a | a<<8
}

// Tcell converts to a terminal true-color value, ignoring alpha
func (c Color) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func (c Color) String() string {
	return fmt.Sprintf("Color{%d, %d, %d, %d}", c.R, c.G, c.B, c.A)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// unitToByte truncates like the 8-bit conversion it models, with a small
// tolerance so values such as 0.99999999 still map to 255
func unitToByte(x float64) uint8 {
	return uint8(clampUnit(x)*255 + 1e-6)
}

func weightedByte(x uint8, weight float64, goal uint8) uint8 {
	v := (1-weight)*float64(x) + weight*float64(goal)
	return uint8(math.Max(0, math.Min(255, v)))
}

func weighted(x, weight, goal float64) float64 {
	return (1-weight)*x + weight*goal
}

func clampUnit(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func normaliseHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}
