package color

// HSLA is a color in the hue-saturation-lightness-alpha model
// Hue is in degrees; the other components are in [0, 1]
type HSLA struct {
	Hue        float64
	Saturation float64
	Lightness  float64
	Alpha      float64
}

// ToRGBA converts back to an 8-bit color
func (c HSLA) ToRGBA() Color {
	return FromHSLA(c.Hue, c.Saturation, c.Lightness, c.Alpha)
}

// RotateHue adds degrees to the hue, wrapping into [0, 360)
func (c HSLA) RotateHue(degrees float64) HSLA {
	c.Hue = normaliseHue(c.Hue + degrees)
	return c
}

func (c HSLA) Saturate(amount float64) HSLA {
	c.Saturation = weighted(c.Saturation, amount, 1)
	return c
}

func (c HSLA) Desaturate(amount float64) HSLA {
	c.Saturation = weighted(c.Saturation, amount, 0)
	return c
}

func (c HSLA) Lighten(amount float64) HSLA {
	c.Lightness = weighted(c.Lightness, amount, 1)
	return c
}

func (c HSLA) Darken(amount float64) HSLA {
	c.Lightness = weighted(c.Lightness, amount, 0)
	return c
}

func (c HSLA) FadeIn(amount float64) HSLA {
	c.Alpha = weighted(c.Alpha, amount, 1)
	return c
}

func (c HSLA) FadeOut(amount float64) HSLA {
	c.Alpha = weighted(c.Alpha, amount, 0)
	return c
}

// HSVA is a color in the hue-saturation-value-alpha model
type HSVA struct {
	Hue        float64
	Saturation float64
	Value      float64
	Alpha      float64
}

// ToRGBA converts back to an 8-bit color
func (c HSVA) ToRGBA() Color {
	return FromHSVA(c.Hue, c.Saturation, c.Value, c.Alpha)
}

// RotateHue adds degrees to the hue, wrapping into [0, 360)
func (c HSVA) RotateHue(degrees float64) HSVA {
	c.Hue = normaliseHue(c.Hue + degrees)
	return c
}

func (c HSVA) Saturate(amount float64) HSVA {
	c.Saturation = weighted(c.Saturation, amount, 1)
	return c
}

func (c HSVA) Desaturate(amount float64) HSVA {
	c.Saturation = weighted(c.Saturation, amount, 0)
	return c
}

// Revalue moves value toward 1
func (c HSVA) Revalue(amount float64) HSVA {
	c.Value = weighted(c.Value, amount, 1)
	return c
}

// Devalue moves value toward 0
func (c HSVA) Devalue(amount float64) HSVA {
	c.Value = weighted(c.Value, amount, 0)
	return c
}

func (c HSVA) FadeIn(amount float64) HSVA {
	c.Alpha = weighted(c.Alpha, amount, 1)
	return c
}

func (c HSVA) FadeOut(amount float64) HSVA {
	c.Alpha = weighted(c.Alpha, amount, 0)
	return c
}
