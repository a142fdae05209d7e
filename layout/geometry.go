package layout

import (
	"math"

	"github.com/SaiNageswarS/paragraph/core"
)

// Overlaps reports whether the horizontal ranges of a and b intersect once
// both are widened by margin on each side. Touching ranges count.
func Overlaps(a, b core.Rect, margin float64) bool {
	return a.X0-margin <= b.X1+margin && b.X0-margin <= a.X1+margin
}

// SimilarHeight reports whether a and b start within margin of each other
// vertically.
func SimilarHeight(a, b core.Rect, margin float64) bool {
	return math.Abs(a.Y0-b.Y0) <= margin
}

// FlipY converts a bottom-left origin rectangle into top-left origin.
func FlipY(r core.Rect, pageHeight float64) core.Rect {
	return core.Rect{X0: r.X0, Y0: pageHeight - r.Y1, X1: r.X1, Y1: pageHeight - r.Y0}
}
