package turtle

import "math"

// Cursor is a position plus a unit heading.
type Cursor struct {
	position Vec2
	heading  Vec2
}

// NewCursor creates a cursor. The heading is normalized.
func NewCursor(position, heading Vec2) (Cursor, error) {
	h, err := heading.Normalize()
	if err != nil {
		return Cursor{}, err
	}
	return Cursor{position: position, heading: h}, nil
}

// Position returns the current position.
func (c Cursor) Position() Vec2 { return c.position }

// Heading returns the current unit heading.
func (c Cursor) Heading() Vec2 { return c.heading }

// SetPosition moves the cursor without drawing.
func (c *Cursor) SetPosition(p Vec2) { c.position = p }

// SetHeading replaces the heading; it is normalized.
func (c *Cursor) SetHeading(h Vec2) error {
	n, err := h.Normalize()
	if err != nil {
		return err
	}
	c.heading = n
	return nil
}

// Rotate turns the heading counter-clockwise by radians.
func (c *Cursor) Rotate(radians float64) {
	sin, cos := math.Sincos(radians)
	h := Vec2{
		X: c.heading.X*cos - c.heading.Y*sin,
		Y: c.heading.X*sin + c.heading.Y*cos,
	}
	// Renormalize to keep rounding drift from accumulating over long runs.
	if n, err := h.Normalize(); err == nil {
		c.heading = n
	}
}

// RotateDegrees turns the heading counter-clockwise by degrees.
func (c *Cursor) RotateDegrees(degrees float64) {
	c.Rotate(degrees * math.Pi / 180)
}

// Forward moves the cursor along its heading.
func (c *Cursor) Forward(distance float64) {
	c.position = c.position.Add(c.heading.Scale(distance))
}
