package turtle

import (
	"errors"
	"math"
)

// ErrZeroHeading is returned when a heading cannot be normalized.
var ErrZeroHeading = errors.New("heading has zero length")

// Vec2 is a point or direction in the plane.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * f.
func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Len returns the Euclidean length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector of v, or ErrZeroHeading for zero or non-finite vectors.
func (v Vec2) Normalize() (Vec2, error) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec2{}, ErrZeroHeading
	}
	return v.Scale(1 / l), nil
}

// Segment is a straight line drawn by the cursor.
type Segment struct {
	Start Vec2 `json:"start"`
	End   Vec2 `json:"end"`
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

// Extend grows b to include p.
func (b Bounds) Extend(p Vec2) Bounds {
	return Bounds{
		Min: Vec2{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max: Vec2{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
	}
}
