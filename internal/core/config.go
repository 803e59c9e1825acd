package core

import "math"

// Viewport maps field pixels onto terminal cells.
// The field keeps its own geometry; only the projection depends on the terminal.
type Viewport struct {
	ScreenW int     // Screen width in characters
	ScreenH int     // Screen height in characters (play area, HUD excluded)
	FieldW  float64 // Field width in pixels
	FieldH  float64 // Field height in pixels
}

// NewViewport creates a viewport for the given screen and field sizes.
func NewViewport(screenW, screenH int, fieldW, fieldH float64) Viewport {
	return Viewport{ScreenW: screenW, ScreenH: screenH, FieldW: fieldW, FieldH: fieldH}
}

// Col converts a field x coordinate into a screen column.
func (v Viewport) Col(x float64) int {
	if v.FieldW <= 0 {
		return 0
	}
	return int(math.Floor(x * float64(v.ScreenW) / v.FieldW))
}

// Row converts a field y coordinate into a screen row.
func (v Viewport) Row(y float64) int {
	if v.FieldH <= 0 {
		return 0
	}
	return int(math.Floor(y * float64(v.ScreenH) / v.FieldH))
}

// Cell converts a field point into a screen cell.
func (v Viewport) Cell(p Point) (int, int) {
	return v.Col(p.X), v.Row(p.Y)
}
