// Package spline fits smooth piecewise-cubic curves through ordered 3D samples
// and evaluates them in pure Go.
//
// A curve interpolates every sample: given positions P[i] at strictly
// increasing parameters t[i], the fitted spline passes through each P[i] at
// t[i] and is twice continuously differentiable in between. Each axis is an
// interpolating cubic spline whose second derivatives ("moments") at the knots
// solve a tridiagonal system, so construction is O(n) and every query is a
// binary search plus a closed-form cubic.
//
// # Features
//
//   - Natural (free-ended) and cyclic (closed, periodic) boundary conditions
//   - Position, velocity and acceleration at any parameter
//   - Moving orthonormal frames (tangent, normal, binormal) as 4x4 affine transforms
//   - Curve riding: express one curve's samples in another curve's moving frame
//   - Samples read from delimited text with per-axis defaults and a scaled or
//     synthesized time column
//   - Extra attribute columns interpolated along the curve
//
// # Quick Start
//
// Fit a curve through points and evaluate it:
//
//	c, err := spline.NewCyclic(
//	    []float64{0, 1, 2, 3, 4},
//	    []r3.Vec{{X: 1}, {Y: 1}, {X: -1}, {Y: -1}, {X: 1}},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	p := c.At(0.5)
//	f := c.OrthonormalFrame(0.5)
//
// Build a curve from a CSV file with columns T, X, Y, Z:
//
//	c, err := spline.Load("path.csv", spline.DefaultConfig())
//
// # Boundary Conditions
//
//   - [Natural]: zero curvature at both ends. Queries outside [Start, End]
//     evaluate to the zero vector and the identity frame.
//   - [Cyclic]: the last sample closes the curve and both derivatives match
//     across the seam. Queries are wrapped modulo End - Start.
//
// # Frames
//
// [SplineCurve.OrthonormalFrame] returns a [Frame] whose columns are the unit
// tangent, the acceleration with its tangential part removed (normalised), their
// cross product, and the position. Where the curve is locally straight the
// normal falls back to a fixed direction perpendicular to the tangent, so the
// frame is always orthonormal. [Frame.Dense] returns the frame as a
// gonum/mat 4x4 matrix mapping local homogeneous coordinates to world space.
//
// # Curve Riding
//
// Set [Config.Reference] (or use [FromPointsRiding]) to read samples as local
// offsets (x along the tangent, y along the normal, z along the binormal) of
// another curve at the sample's own parameter. The offsets are mapped to world
// space before fitting, so the result interpolates the world-space positions.
//
// # Degenerate Curves
//
// A curve needs at least three samples. With fewer, construction succeeds but
// [SplineCurve.Ready] reports false and the curve evaluates like [Identity].
//
// # Errors
//
// Construction fails with [ErrParse] when a selected column holds text that is
// not a number, and with [ErrNonMonotonic] when parameter values do not
// strictly increase. Evaluation never fails.
//
// # Thread Safety
//
// Curves are immutable after construction; all evaluation methods are safe for
// concurrent use.
package spline
