package spline

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/geom"
)

// Curve is the evaluation surface shared by every curve in the package.
// A Curve can serve as the reference frame of another curve (see
// [Config.Reference]).
type Curve interface {
	// At returns the position at parameter t.
	At(t float64) r3.Vec

	// DiffAt returns the first derivative (velocity) at t.
	DiffAt(t float64) r3.Vec

	// Diff2At returns the second derivative (acceleration) at t.
	Diff2At(t float64) r3.Vec

	// OrthonormalFrame returns the moving frame at t as an affine transform
	// with columns (T, N, B, P).
	OrthonormalFrame(t float64) Frame

	// Transform maps the local homogeneous vector v through the frame at t.
	Transform(t float64, v Vec4) Vec4
}

// Frame is an orthonormal moving frame: tangent T, normal N and binormal B
// plus the position P. Use [Frame.Dense] for the 4x4 matrix form.
type Frame = geom.Frame

// Vec4 is a homogeneous vector. W is 1 for points and 0 for directions.
type Vec4 = geom.Vec4

// Point lifts a position into homogeneous coordinates.
func Point(v r3.Vec) Vec4 { return geom.Point(v) }

// Direction lifts a direction into homogeneous coordinates.
func Direction(v r3.Vec) Vec4 { return geom.Direction(v) }

// IdentityFrame returns the frame with T, N, B along the coordinate axes at
// the origin.
func IdentityFrame() Frame { return geom.Identity() }

// Identity is the degenerate curve: every position and derivative is the zero
// vector and every frame is the identity, so Transform returns its input.
type Identity struct{}

// At returns the zero vector.
func (Identity) At(float64) r3.Vec { return r3.Vec{} }

// DiffAt returns the zero vector.
func (Identity) DiffAt(float64) r3.Vec { return r3.Vec{} }

// Diff2At returns the zero vector.
func (Identity) Diff2At(float64) r3.Vec { return r3.Vec{} }

// OrthonormalFrame returns the identity frame.
func (Identity) OrthonormalFrame(float64) Frame { return geom.Identity() }

// Transform returns v unchanged.
func (Identity) Transform(_ float64, v Vec4) Vec4 { return v }

var (
	_ Curve = Identity{}
	_ Curve = (*SplineCurve)(nil)
)
