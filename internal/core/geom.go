// Package core provides fundamental types and utilities shared by the engine and
// the terminal platform. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

// Point is a position in field pixels. Y grows downwards.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned bounding box in field pixels, stored as its edges.
type Rect struct {
	X0, Y0 float64 // Top-left corner
	X1, Y1 float64 // Bottom-right corner
}

// RectAround returns the w×h rectangle centred on (cx, cy).
func RectAround(cx, cy, w, h float64) Rect {
	return Rect{
		X0: cx - w/2,
		Y0: cy - h/2,
		X1: cx + w/2,
		Y1: cy + h/2,
	}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float64 {
	return r.X1 - r.X0
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float64 {
	return r.Y1 - r.Y0
}

// Overlaps reports whether two rectangles share interior area.
// Touching edges do not overlap, and any NaN coordinate never overlaps.
func (r Rect) Overlaps(other Rect) bool {
	return r.X0 < other.X1 && r.X1 > other.X0 && r.Y0 < other.Y1 && r.Y1 > other.Y0
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
