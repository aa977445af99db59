package spline

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/simdops"
	"github.com/tphakala/go-spline3d/internal/table"
)

// Load reads a delimited text file with a header row and builds a curve from
// it. The delimiter (comma, tab or semicolon) is detected from the header.
func Load(path string, config *Config) (*SplineCurve, error) {
	t, err := table.Open(path, table.Detect)
	if err != nil {
		return nil, err
	}
	c, err := New(t, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Read is like Load but reads from r.
func Read(r io.Reader, config *Config) (*SplineCurve, error) {
	t, err := table.Read(r, table.Detect)
	if err != nil {
		return nil, err
	}
	return New(t, config)
}

// NewNatural fits a free-ended spline through points at parameters times.
func NewNatural(times []float64, points []r3.Vec) (*SplineCurve, error) {
	return FromPoints(times, points, Natural)
}

// NewCyclic fits a closed spline through points at parameters times. The
// last point should repeat the first.
func NewCyclic(times []float64, points []r3.Vec) (*SplineCurve, error) {
	return FromPoints(times, points, Cyclic)
}

// NewUniform fits a spline through points at parameters 0, step, 2*step, ...
func NewUniform(points []r3.Vec, step float64, boundary Boundary) (*SplineCurve, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: step must be positive", ErrInvalidConfig)
	}
	times := make([]float64, len(points))
	simdops.Ramp(times, step)
	return FromPoints(times, points, boundary)
}
