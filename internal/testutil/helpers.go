// Package testutil provides reusable test helper functions for spline tests.
package testutil

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/geom"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance    = 1e-10
	DerivativeTolerance = 1e-6
	FrameTolerance      = 1e-9
)

// ApproxVec compares r3 vectors and frames field-wise within an absolute margin.
func ApproxVec(margin float64) cmp.Option {
	return cmpopts.EquateApprox(0, margin)
}

// AssertVecInDelta verifies that two vectors agree component-wise within tolerance.
func AssertVecInDelta(t *testing.T, expected, actual r3.Vec, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if d := cmp.Diff(expected, actual, ApproxVec(tolerance)); d != "" {
		return assert.Fail(t, "vectors differ (-want +got):\n"+d, msgAndArgs...)
	}
	return true
}

// AssertVecsInDelta verifies two vector slices element-wise.
func AssertVecsInDelta(t *testing.T, expected, actual []r3.Vec, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if d := cmp.Diff(expected, actual, ApproxVec(tolerance)); d != "" {
		return assert.Fail(t, "vector slices differ (-want +got):\n"+d, msgAndArgs...)
	}
	return true
}

// AssertZeroVec verifies that v is exactly the zero vector.
func AssertZeroVec(t *testing.T, v r3.Vec, msgAndArgs ...any) bool {
	t.Helper()
	return assert.Equal(t, r3.Vec{}, v, msgAndArgs...)
}

// AssertFinite verifies that no component of v is NaN or Inf.
func AssertFinite(t *testing.T, v r3.Vec, msgAndArgs ...any) bool {
	t.Helper()
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return assert.Fail(t, fmt.Sprintf("non-finite vector %v", v), msgAndArgs...)
		}
	}
	return true
}

// AssertOrthonormal verifies that the T, N, B columns of f are unit length and
// mutually orthogonal.
func AssertOrthonormal(t *testing.T, f geom.Frame, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	ok := true
	for _, c := range []struct {
		name string
		got  float64
		want float64
	}{
		{"|T|", r3.Norm(f.T), 1},
		{"|N|", r3.Norm(f.N), 1},
		{"|B|", r3.Norm(f.B), 1},
		{"T·N", r3.Dot(f.T, f.N), 0},
		{"T·B", r3.Dot(f.T, f.B), 0},
		{"N·B", r3.Dot(f.N, f.B), 0},
	} {
		if math.Abs(c.got-c.want) > tolerance {
			ok = assert.Fail(t, fmt.Sprintf("frame not orthonormal: %s = %g, want %g", c.name, c.got, c.want),
				msgAndArgs...)
		}
	}
	return ok
}

// AssertRightHanded verifies that B = T × N.
func AssertRightHanded(t *testing.T, f geom.Frame, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	return AssertVecInDelta(t, r3.Cross(f.T, f.N), f.B, tolerance, msgAndArgs...)
}
