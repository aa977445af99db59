// Package geom provides the affine frame algebra used by the spline engine on top
// of gonum's r3 vectors.
//
// A [Frame] is a moving orthonormal basis (tangent, normal, binormal) attached to a
// point. Read as a 4x4 homogeneous matrix its columns are (T,0), (N,0), (B,0) and
// (P,1), so it maps local coordinates to world coordinates.
package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateTolerance bounds the norm below which a vector is treated as zero
// when normalising, relative to the magnitude of the vector it was derived from.
const degenerateTolerance = 1e-12

// homogeneousSize is the dimension of the homogeneous frame matrix.
const homogeneousSize = 4

// Axis unit vectors.
var (
	AxisX = r3.Vec{X: 1}
	AxisY = r3.Vec{Y: 1}
	AxisZ = r3.Vec{Z: 1}
)

// Vec4 is a homogeneous coordinate. W is 1 for points and 0 for directions.
type Vec4 struct {
	X, Y, Z, W float64
}

// Point returns the homogeneous point (v, 1).
func Point(v r3.Vec) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: 1}
}

// Direction returns the homogeneous direction (v, 0).
func Direction(v r3.Vec) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec3 drops the homogeneous component.
func (v Vec4) Vec3() r3.Vec {
	return r3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Unit returns v scaled to unit length, or the zero vector if v has no length.
// Unlike r3.Unit it never produces NaN.
func Unit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n == 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}

// Perpendicular returns a unit vector orthogonal to the unit vector u. The
// result is deterministic: u is crossed with the coordinate axis it is least
// aligned with.
func Perpendicular(u r3.Vec) r3.Vec {
	ax, ay, az := math.Abs(u.X), math.Abs(u.Y), math.Abs(u.Z)
	axis := AxisX
	switch {
	case ay <= ax && ay <= az:
		axis = AxisY
	case az <= ax && az <= ay:
		axis = AxisZ
	}
	return Unit(r3.Cross(u, axis))
}

// Frame is an orthonormal moving frame positioned at P.
type Frame struct {
	T r3.Vec // unit tangent
	N r3.Vec // unit normal
	B r3.Vec // unit binormal
	P r3.Vec // position
}

// Identity returns the identity transform.
func Identity() Frame {
	return Frame{T: AxisX, N: AxisY, B: AxisZ}
}

// NewFrame builds the frame at position p from the raw first and second
// derivatives of a curve. The normal is d2 with its tangential component removed
// (Gram-Schmidt), so the frame is orthonormal even when d1 and d2 are not
// perpendicular. Where the curve has no curvature the normal falls back to
// [Perpendicular] of the tangent.
func NewFrame(p, d1, d2 r3.Vec) Frame {
	t := Unit(d1)
	if t == (r3.Vec{}) {
		t = Unit(d2)
		if t == (r3.Vec{}) {
			t = AxisX
		}
	}

	n := r3.Sub(d2, r3.Scale(r3.Dot(t, d2), t))
	if r3.Norm(n) <= degenerateTolerance*math.Max(r3.Norm(d2), 1) {
		n = Perpendicular(t)
	} else {
		n = Unit(n)
		// second pass cleans up cancellation when d2 is nearly parallel to t
		n = Unit(r3.Sub(n, r3.Scale(r3.Dot(t, n), t)))
	}

	return Frame{
		T: t,
		N: n,
		B: Unit(r3.Cross(t, n)),
		P: p,
	}
}

// Apply multiplies the frame matrix with v.
func (f Frame) Apply(v Vec4) Vec4 {
	w := r3.Add(
		r3.Add(r3.Scale(v.X, f.T), r3.Scale(v.Y, f.N)),
		r3.Add(r3.Scale(v.Z, f.B), r3.Scale(v.W, f.P)),
	)
	return Vec4{X: w.X, Y: w.Y, Z: w.Z, W: v.W}
}

// Dense returns the frame as a 4x4 homogeneous matrix with columns
// (T,0), (N,0), (B,0), (P,1).
func (f Frame) Dense() *mat.Dense {
	return mat.NewDense(homogeneousSize, homogeneousSize, []float64{
		f.T.X, f.N.X, f.B.X, f.P.X,
		f.T.Y, f.N.Y, f.B.Y, f.P.Y,
		f.T.Z, f.N.Z, f.B.Z, f.P.Z,
		0, 0, 0, 1,
	})
}

// IsIdentity reports whether f is exactly the identity transform.
func (f Frame) IsIdentity() bool {
	return f == Identity()
}
