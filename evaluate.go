package spline

import (
	"slices"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/engine"
	"github.com/tphakala/go-spline3d/internal/geom"
)

// SplineCurve is an interpolating cubic spline through 3D samples. It is
// immutable once built, and all methods are safe for concurrent use.
//
// A curve built from fewer than three samples is degenerate: it keeps its
// samples for inspection but evaluates like [Identity].
type SplineCurve struct {
	spline *engine.Spline // nil while degenerate

	times      []float64
	points     []r3.Vec
	attrNames  []string
	attrValues [][]float64
	boundary   Boundary
	reference  Curve
}

// Ready reports whether the spline has been fitted. It is false for curves
// with fewer than three samples.
func (c *SplineCurve) Ready() bool {
	return c.spline != nil
}

// Len returns the number of samples.
func (c *SplineCurve) Len() int {
	return len(c.times)
}

// Boundary returns the boundary condition the curve was built with.
func (c *SplineCurve) Boundary() Boundary {
	return c.boundary
}

// Reference returns the curve this curve rides, or nil.
func (c *SplineCurve) Reference() Curve {
	return c.reference
}

// Knots returns a copy of the parameter values.
func (c *SplineCurve) Knots() []float64 {
	return slices.Clone(c.times)
}

// Positions returns a copy of the sample positions in world space.
func (c *SplineCurve) Positions() []r3.Vec {
	return slices.Clone(c.points)
}

// Moments returns a copy of the per-knot second derivatives, or nil for a
// degenerate curve.
func (c *SplineCurve) Moments() []r3.Vec {
	if c.spline == nil {
		return nil
	}
	return slices.Clone(c.spline.Moments())
}

// Start returns the first parameter value, or 0 for an empty curve.
func (c *SplineCurve) Start() float64 {
	if len(c.times) == 0 {
		return 0
	}
	return c.times[0]
}

// End returns the last parameter value, or 0 for an empty curve.
func (c *SplineCurve) End() float64 {
	if len(c.times) == 0 {
		return 0
	}
	return c.times[len(c.times)-1]
}

// Attributes returns the names of the attribute columns in configuration
// order.
func (c *SplineCurve) Attributes() []string {
	return slices.Clone(c.attrNames)
}

// Attribute returns a copy of the per-sample values of the named attribute.
func (c *SplineCurve) Attribute(name string) ([]float64, bool) {
	i := slices.Index(c.attrNames, name)
	if i < 0 {
		return nil, false
	}
	return slices.Clone(c.attrValues[i]), true
}

// AttributeAt linearly interpolates the named attribute at t. It follows the
// range policy of At and returns 0 where At returns the zero vector.
func (c *SplineCurve) AttributeAt(name string, t float64) (float64, bool) {
	i := slices.Index(c.attrNames, name)
	if i < 0 {
		return 0, false
	}
	if c.spline == nil {
		return 0, true
	}
	return c.spline.Lerp(c.attrValues[i], t), true
}

// At returns the position at t.
func (c *SplineCurve) At(t float64) r3.Vec {
	if c.spline == nil {
		return r3.Vec{}
	}
	return c.spline.At(t)
}

// DiffAt returns the velocity at t.
func (c *SplineCurve) DiffAt(t float64) r3.Vec {
	if c.spline == nil {
		return r3.Vec{}
	}
	return c.spline.DiffAt(t)
}

// Diff2At returns the acceleration at t.
func (c *SplineCurve) Diff2At(t float64) r3.Vec {
	if c.spline == nil {
		return r3.Vec{}
	}
	return c.spline.Diff2At(t)
}

// Diffs returns the velocity and acceleration at t with a single interval
// lookup.
func (c *SplineCurve) Diffs(t float64) (d1, d2 r3.Vec) {
	if c.spline == nil {
		return r3.Vec{}, r3.Vec{}
	}
	return c.spline.Diffs(t)
}

// Tangent returns the unit velocity at t, or the zero vector where the curve
// is stationary.
func (c *SplineCurve) Tangent(t float64) r3.Vec {
	if c.spline == nil {
		return r3.Vec{}
	}
	return c.spline.Tangent(t)
}

// Normal returns the unit acceleration at t, or the zero vector where the
// curve has no curvature. It is not orthogonalised against the tangent; use
// OrthonormalFrame for that.
func (c *SplineCurve) Normal(t float64) r3.Vec {
	if c.spline == nil {
		return r3.Vec{}
	}
	return c.spline.Normal(t)
}

// Binormal returns the unit binormal of the frame at t.
func (c *SplineCurve) Binormal(t float64) r3.Vec {
	if c.spline == nil {
		return r3.Vec{}
	}
	return c.spline.Binormal(t)
}

// OrthonormalFrame returns the moving frame at t. The normal is the
// acceleration with its tangential part removed; on straight pieces it falls
// back to a fixed direction perpendicular to the tangent.
func (c *SplineCurve) OrthonormalFrame(t float64) Frame {
	if c.spline == nil {
		return geom.Identity()
	}
	return c.spline.Frame(t)
}

// Transform maps v through the frame at t. Points (W=1) are placed relative
// to the curve position; directions (W=0) are only rotated.
func (c *SplineCurve) Transform(t float64, v Vec4) Vec4 {
	if c.spline == nil {
		return v
	}
	return c.spline.Transform(t, v)
}
