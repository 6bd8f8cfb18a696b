package geometry

import "math"

// Transform describes how a sprite is scaled, flipped and rotated when drawn
// The zero value is the identity
type Transform struct {
	rotation float64
	// scales are stored as offsets from 1
	dScaleX float64
	dScaleY float64
	flipH   bool
	flipV   bool
}

// Identity returns the transform that leaves sprites unchanged
func Identity() Transform {
	return Transform{}
}

// Rotation returns a transform rotating clockwise by degrees
func Rotation(degrees float64) Transform {
	return Identity().SetRotation(degrees)
}

// FlipH returns a transform mirroring horizontally
func FlipH() Transform {
	return Identity().SetFlipH(true)
}

// FlipV returns a transform mirroring vertically
func FlipV() Transform {
	return Identity().SetFlipV(true)
}

// Scale returns a transform scaling both axes by factor
func Scale(factor float64) Transform {
	return Identity().SetScale(factor)
}

// ScaleX returns a transform scaling the horizontal axis by factor
func ScaleX(factor float64) Transform {
	return Identity().SetScaleX(factor)
}

// ScaleY returns a transform scaling the vertical axis by factor
func ScaleY(factor float64) Transform {
	return Identity().SetScaleY(factor)
}

// SetRotation returns a copy with rotation normalised into [0, 360)
func (t Transform) SetRotation(degrees float64) Transform {
	t.rotation = normaliseDegrees(degrees)
	return t
}

// SetFlipH returns a copy with the horizontal flip set
func (t Transform) SetFlipH(flip bool) Transform {
	t.flipH = flip
	return t
}

// SetFlipV returns a copy with the vertical flip set
func (t Transform) SetFlipV(flip bool) Transform {
	t.flipV = flip
	return t
}

// SetScale returns a copy with both scale factors set
func (t Transform) SetScale(factor float64) Transform {
	t.dScaleX = factor - 1
	t.dScaleY = factor - 1
	return t
}

// SetScaleX returns a copy with the horizontal scale set
func (t Transform) SetScaleX(factor float64) Transform {
	t.dScaleX = factor - 1
	return t
}

// SetScaleY returns a copy with the vertical scale set
func (t Transform) SetScaleY(factor float64) Transform {
	t.dScaleY = factor - 1
	return t
}

func (t Transform) Rotation() float64 { return t.rotation }
func (t Transform) FlipH() bool       { return t.flipH }
func (t Transform) FlipV() bool       { return t.flipV }
func (t Transform) ScaleX() float64   { return t.dScaleX + 1 }
func (t Transform) ScaleY() float64   { return t.dScaleY + 1 }

// IsIdentity reports whether t equals Identity()
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Compose combines two transforms: rotations add, flips xor, scales multiply
func (t Transform) Compose(o Transform) Transform {
	return Identity().
		SetRotation(t.rotation + o.rotation).
		SetFlipH(t.flipH != o.flipH).
		SetFlipV(t.flipV != o.flipV).
		SetScaleX(t.ScaleX() * o.ScaleX()).
		SetScaleY(t.ScaleY() * o.ScaleY())
}

// Inverse returns the transform that undoes t's rotation and scaling
// Flips are kept as-is
func (t Transform) Inverse() Transform {
	return Identity().
		SetRotation(360 - t.rotation).
		SetFlipH(t.flipH).
		SetFlipV(t.flipV).
		SetScaleX(1 / t.ScaleX()).
		SetScaleY(1 / t.ScaleY())
}

// Equal reports whether all fields match
func (t Transform) Equal(o Transform) bool {
	return t == o
}

func normaliseDegrees(degrees float64) float64 {
	d := math.Mod(degrees, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}
