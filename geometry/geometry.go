// Package geometry provides the coordinate types used throughout the engine:
// dimensions, positions, rectangles and rendering transforms.
//
// The types are generic over any numeric coordinate. Screen geometry uses
// int coordinates through the Dimensions, Position and Rectangle aliases,
// while simulations typically use float64 and convert when drawing.
package geometry

import (
	"fmt"
	"iter"
)

// Coordinate is any type usable as a geometry coordinate
type Coordinate interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Dims represents the size of a two-dimensional object
type Dims[T Coordinate] struct {
	Width  T
	Height T
}

// Add returns the componentwise sum
func (d Dims[T]) Add(o Dims[T]) Dims[T] {
	return Dims[T]{d.Width + o.Width, d.Height + o.Height}
}

// Sub returns the componentwise difference
func (d Dims[T]) Sub(o Dims[T]) Dims[T] {
	return Dims[T]{d.Width - o.Width, d.Height - o.Height}
}

// Neg negates both components
func (d Dims[T]) Neg() Dims[T] {
	return Dims[T]{-d.Width, -d.Height}
}

// Mul multiplies both components by s
func (d Dims[T]) Mul(s T) Dims[T] {
	return Dims[T]{d.Width * s, d.Height * s}
}

// Scale multiplies both components by a float factor, converting back to T
func (d Dims[T]) Scale(s float64) Dims[T] {
	return Dims[T]{T(float64(d.Width) * s), T(float64(d.Height) * s)}
}

// Div divides both components by s
func (d Dims[T]) Div(s T) Dims[T] {
	return Dims[T]{d.Width / s, d.Height / s}
}

// MulDims multiplies componentwise
func (d Dims[T]) MulDims(o Dims[T]) Dims[T] {
	return Dims[T]{d.Width * o.Width, d.Height * o.Height}
}

// Eq reports whether both components are equal
func (d Dims[T]) Eq(o Dims[T]) bool {
	return d == o
}

// LessEq reports whether d fits inside o in both dimensions
func (d Dims[T]) LessEq(o Dims[T]) bool {
	return d.Width <= o.Width && d.Height <= o.Height
}

// Less reports whether d fits inside o and differs from it
func (d Dims[T]) Less(o Dims[T]) bool {
	return d.LessEq(o) && d != o
}

// GreaterEq reports whether o fits inside d
func (d Dims[T]) GreaterEq(o Dims[T]) bool {
	return o.LessEq(d)
}

// Greater reports whether o fits inside d and differs from it
func (d Dims[T]) Greater(o Dims[T]) bool {
	return o.Less(d)
}

// Area returns Width * Height
func (d Dims[T]) Area() T {
	return d.Width * d.Height
}

func (d Dims[T]) String() string {
	return fmt.Sprintf("Dims<%T>(%v, %v)", d.Width, d.Width, d.Height)
}

// ConvertDims converts dimensions between coordinate types
func ConvertDims[U, T Coordinate](d Dims[T]) Dims[U] {
	return Dims[U]{U(d.Width), U(d.Height)}
}

// Posn is a position in two-dimensional space, with y increasing downward
type Posn[T Coordinate] struct {
	X T
	Y T
}

// Origin returns the position (0, 0)
func Origin[T Coordinate]() Posn[T] {
	return Posn[T]{}
}

// PosnFromDims treats dimensions as an offset from the origin
func PosnFromDims[T Coordinate](d Dims[T]) Posn[T] {
	return Posn[T]{d.Width, d.Height}
}

// ConvertPosn converts a position between coordinate types
func ConvertPosn[U, T Coordinate](p Posn[T]) Posn[U] {
	return Posn[U]{U(p.X), U(p.Y)}
}

// Eq reports whether both coordinates are equal
func (p Posn[T]) Eq(o Posn[T]) bool {
	return p == o
}

// Plus offsets the position by d, same as DownRightBy
func (p Posn[T]) Plus(d Dims[T]) Posn[T] {
	return p.DownRightBy(d)
}

// Minus offsets the position by -d, same as UpLeftBy
func (p Posn[T]) Minus(d Dims[T]) Posn[T] {
	return p.UpLeftBy(d)
}

// Sub returns the displacement from o to p
func (p Posn[T]) Sub(o Posn[T]) Dims[T] {
	return Dims[T]{p.X - o.X, p.Y - o.Y}
}

// UpBy moves the position up by dy
func (p Posn[T]) UpBy(dy T) Posn[T] {
	return Posn[T]{p.X, p.Y - dy}
}

// DownBy moves the position down by dy
func (p Posn[T]) DownBy(dy T) Posn[T] {
	return Posn[T]{p.X, p.Y + dy}
}

// LeftBy moves the position left by dx
func (p Posn[T]) LeftBy(dx T) Posn[T] {
	return Posn[T]{p.X - dx, p.Y}
}

// RightBy moves the position right by dx
func (p Posn[T]) RightBy(dx T) Posn[T] {
	return Posn[T]{p.X + dx, p.Y}
}

// UpLeftBy moves the position up by d.Height and left by d.Width
func (p Posn[T]) UpLeftBy(d Dims[T]) Posn[T] {
	return Posn[T]{p.X - d.Width, p.Y - d.Height}
}

// UpRightBy moves the position up by d.Height and right by d.Width
func (p Posn[T]) UpRightBy(d Dims[T]) Posn[T] {
	return Posn[T]{p.X + d.Width, p.Y - d.Height}
}

// DownLeftBy moves the position down by d.Height and left by d.Width
func (p Posn[T]) DownLeftBy(d Dims[T]) Posn[T] {
	return Posn[T]{p.X - d.Width, p.Y + d.Height}
}

// DownRightBy moves the position down by d.Height and right by d.Width
func (p Posn[T]) DownRightBy(d Dims[T]) Posn[T] {
	return Posn[T]{p.X + d.Width, p.Y + d.Height}
}

func (p Posn[T]) String() string {
	return fmt.Sprintf("Posn<%T>(%v, %v)", p.X, p.X, p.Y)
}

// Rect is an axis-aligned rectangle given by its top-left corner and size
type Rect[T Coordinate] struct {
	X      T
	Y      T
	Width  T
	Height T
}

// RectFromTopLeft builds a rectangle from its top-left corner
func RectFromTopLeft[T Coordinate](tl Posn[T], d Dims[T]) Rect[T] {
	return Rect[T]{tl.X, tl.Y, d.Width, d.Height}
}

// RectFromTopRight builds a rectangle from its top-right corner
func RectFromTopRight[T Coordinate](tr Posn[T], d Dims[T]) Rect[T] {
	return RectFromTopLeft(tr.LeftBy(d.Width), d)
}

// RectFromBottomLeft builds a rectangle from its bottom-left corner
func RectFromBottomLeft[T Coordinate](bl Posn[T], d Dims[T]) Rect[T] {
	return RectFromTopLeft(bl.UpBy(d.Height), d)
}

// RectFromBottomRight builds a rectangle from its bottom-right corner
func RectFromBottomRight[T Coordinate](br Posn[T], d Dims[T]) Rect[T] {
	return RectFromTopLeft(br.UpLeftBy(d), d)
}

// RectFromCenter builds a rectangle from its center
func RectFromCenter[T Coordinate](c Posn[T], d Dims[T]) Rect[T] {
	return RectFromTopLeft(c.UpLeftBy(d.Div(2)), d)
}

// Dimensions returns the rectangle's size
func (r Rect[T]) Dimensions() Dims[T] {
	return Dims[T]{r.Width, r.Height}
}

// TopLeft returns the top-left corner
func (r Rect[T]) TopLeft() Posn[T] {
	return Posn[T]{r.X, r.Y}
}

// TopRight returns the top-right corner
func (r Rect[T]) TopRight() Posn[T] {
	return r.TopLeft().RightBy(r.Width)
}

// BottomLeft returns the bottom-left corner
func (r Rect[T]) BottomLeft() Posn[T] {
	return r.TopLeft().DownBy(r.Height)
}

// BottomRight returns the bottom-right corner
func (r Rect[T]) BottomRight() Posn[T] {
	return r.TopLeft().DownRightBy(r.Dimensions())
}

// Center returns the top-left corner offset by half the dimensions
func (r Rect[T]) Center() Posn[T] {
	return r.TopLeft().DownRightBy(r.Dimensions().Div(2))
}

// Empty reports whether the rectangle covers no area
func (r Rect[T]) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside the rectangle
// Left and top edges are inclusive; right and bottom edges are exclusive
func (r Rect[T]) Contains(p Posn[T]) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Intersects reports whether two rectangles share any area
func (r Rect[T]) Intersects(o Rect[T]) bool {
	return !r.Intersection(o).Empty()
}

// Intersection returns the overlap of two rectangles, or the zero Rect if none
func (r Rect[T]) Intersection(o Rect[T]) Rect[T] {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.X+r.Width, o.X+o.Width)
	y1 := min(r.Y+r.Height, o.Y+o.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect[T]{}
	}
	return Rect[T]{x0, y0, x1 - x0, y1 - y0}
}

// All yields every unit position inside the rectangle
// Iteration is column-major: x outer, y inner
func (r Rect[T]) All() iter.Seq[Posn[T]] {
	return func(yield func(Posn[T]) bool) {
		for x := r.X; x < r.X+r.Width; x++ {
			for y := r.Y; y < r.Y+r.Height; y++ {
				if !yield(Posn[T]{x, y}) {
					return
				}
			}
		}
	}
}

func (r Rect[T]) String() string {
	return fmt.Sprintf("Rect<%T>(%v, %v, %v, %v)", r.X, r.X, r.Y, r.Width, r.Height)
}

// ConvertRect converts a rectangle between coordinate types
func ConvertRect[U, T Coordinate](r Rect[T]) Rect[U] {
	return Rect[U]{U(r.X), U(r.Y), U(r.Width), U(r.Height)}
}

// Screen geometry aliases
type (
	Dimensions = Dims[int]
	Position   = Posn[int]
	Rectangle  = Rect[int]
)
