package engine

// MinKnots is the smallest number of knots (two intervals) a spline is built
// from.
const MinKnots = 3

// Cubic spline coefficients
const (
	// third is the diagonal factor (h[i-1] + h[i]) / 3 of the moment system.
	third = 1.0 / 3.0

	// sixth is the off-diagonal factor h[i] / 6 of the moment system and the
	// 1/6 of the cubic terms.
	sixth = 1.0 / 6.0

	// half is the 1/2 of the quadratic terms of the first derivative.
	half = 0.5
)
