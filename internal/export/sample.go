// Package export evaluates curves on uniform parameter grids and writes the
// results as frame tables or oscilloscope audio.
package export

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-spline3d/internal/geom"
)

// Curve is the evaluation surface sampled by this package.
type Curve interface {
	OrthonormalFrame(t float64) geom.Frame
}

// AttributeCurve is a Curve carrying interpolated scalar attributes.
type AttributeCurve interface {
	Curve
	Attributes() []string
	AttributeAt(name string, t float64) (float64, bool)
}

// FrameSample is a curve evaluated at one parameter value.
type FrameSample struct {
	T          float64
	Frame      geom.Frame
	Attributes []float64 // in AttributeCurve.Attributes order
}

// Options controls the sampling grid.
type Options struct {
	// Count is the number of samples.
	Count int

	// Start and End bound the grid.
	Start, End float64

	// Closed excludes End from the grid, for cyclic curves where End and
	// Start are the same point.
	Closed bool

	// Parallel evaluates chunks of the grid concurrently.
	Parallel bool

	// Workers bounds the number of goroutines in parallel mode.
	// Zero uses runtime.NumCPU().
	Workers int
}

// ErrNoSamples is returned when Options.Count is not positive.
var ErrNoSamples = errors.New("export: sample count must be positive")

// Grid returns the parameter values selected by opts.
func Grid(opts Options) ([]float64, error) {
	if opts.Count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoSamples, opts.Count)
	}
	if opts.End < opts.Start {
		return nil, fmt.Errorf("export: end %g before start %g", opts.End, opts.Start)
	}
	if opts.Count == 1 {
		return []float64{opts.Start}, nil
	}

	n := opts.Count
	if opts.Closed {
		n++
	}
	grid := floats.Span(make([]float64, n), opts.Start, opts.End)
	return grid[:opts.Count], nil
}

// Sample evaluates c on the grid selected by opts.
func Sample(c Curve, opts Options) ([]FrameSample, error) {
	grid, err := Grid(opts)
	if err != nil {
		return nil, err
	}

	out := make([]FrameSample, len(grid))
	ac, _ := c.(AttributeCurve)

	if !opts.Parallel || len(grid) < minParallelSamples {
		sampleRange(c, ac, grid, out)
		return out, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	chunk := (len(grid) + workers - 1) / workers

	var wg sync.WaitGroup
	for lo := 0; lo < len(grid); lo += chunk {
		hi := min(lo+chunk, len(grid))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			sampleRange(c, ac, grid[lo:hi], out[lo:hi])
		}(lo, hi)
	}
	wg.Wait()

	return out, nil
}

// sampleRange fills out[i] from grid[i]. ac may be nil.
func sampleRange(c Curve, ac AttributeCurve, grid []float64, out []FrameSample) {
	var names []string
	if ac != nil {
		names = ac.Attributes()
	}
	for i, t := range grid {
		out[i] = FrameSample{T: t, Frame: c.OrthonormalFrame(t)}
		if len(names) == 0 {
			continue
		}
		out[i].Attributes = make([]float64, len(names))
		for k, name := range names {
			out[i].Attributes[k], _ = ac.AttributeAt(name, t)
		}
	}
}
