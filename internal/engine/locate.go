package engine

import "math"

// Locate returns the bracketing interval [t[low], t[high]) of x by bisection.
// low is the largest index with t[low] <= x, clamped to [0, len(t)-2] so that
// x == t[len(t)-1] falls into the last interval, and high is always low+1.
// The knot array of a cyclic spline ends with the closing knot, so the seam is
// an ordinary interval; callers reduce queries with [Wrap] first.
//
// t must be sorted and hold at least two values.
func Locate(t []float64, x float64) (low, high int) {
	low, high = 0, len(t)-1
	for high-low > 1 {
		mid := int(uint(low+high) >> 1)
		if x >= t[mid] {
			low = mid
		} else {
			high = mid
		}
	}

	return low, low + 1
}

// Wrap reduces x into [start, end) modulo the period end - start.
func Wrap(x, start, end float64) float64 {
	period := end - start
	if x >= start && x < end {
		return x
	}
	r := math.Mod(x-start, period)
	if r < 0 {
		r += period
	}
	x = start + r
	if x >= end {
		// rounding of r + period
		x = start
	}
	return x
}
