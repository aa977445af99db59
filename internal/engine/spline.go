// Package engine implements the piecewise-cubic spline core: moment solvers for
// natural and periodic boundary conditions, interval location, and closed-form
// evaluation of position, derivatives and moving frames.
package engine

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/geom"
)

// Spline is an immutable interpolating cubic spline in 3D. All methods are
// safe for concurrent use.
type Spline struct {
	t      []float64
	p      []r3.Vec
	m      []r3.Vec
	cyclic bool
	start  float64
	end    float64
}

// NewSpline computes the moments of the spline through p at parameters t and
// returns the evaluator. The slices are retained, not copied.
//
// t must be strictly increasing and len(t) == len(p) >= MinKnots.
func NewSpline(t []float64, p []r3.Vec, cyclic bool) *Spline {
	s := &Spline{
		t:      t,
		p:      p,
		cyclic: cyclic,
		start:  t[0],
		end:    t[len(t)-1],
	}
	if cyclic {
		s.m = CyclicMoments(t, p)
	} else {
		s.m = NaturalMoments(t, p)
	}
	return s
}

// Knots returns the parameter values. The slice must not be modified.
func (s *Spline) Knots() []float64 { return s.t }

// Points returns the knot positions. The slice must not be modified.
func (s *Spline) Points() []r3.Vec { return s.p }

// Moments returns the solved moments. The slice must not be modified.
func (s *Spline) Moments() []r3.Vec { return s.m }

// Cyclic reports whether the spline is periodic.
func (s *Spline) Cyclic() bool { return s.cyclic }

// Start returns the first knot parameter.
func (s *Spline) Start() float64 { return s.start }

// End returns the last knot parameter.
func (s *Spline) End() float64 { return s.end }

// segment is the bracketing interval of a query with the offsets into it.
type segment struct {
	y0, y1 r3.Vec // endpoint positions
	m0, m1 r3.Vec // endpoint moments
	h      float64
	dt0    float64 // t - t0
	dt1    float64 // t1 - t
}

// interval applies the range policy and returns the index of the interval
// containing x together with the reduced query. It reports false for NaN and
// for a natural spline queried outside [start, end].
func (s *Spline) interval(x float64) (int, float64, bool) {
	if math.IsNaN(x) {
		return 0, 0, false
	}
	if s.cyclic {
		x = Wrap(x, s.start, s.end)
	} else if x < s.start || x > s.end {
		return 0, 0, false
	}
	low, _ := Locate(s.t, x)
	return low, x, true
}

// bracket locates the segment containing x.
func (s *Spline) bracket(x float64) (segment, bool) {
	low, x, ok := s.interval(x)
	if !ok {
		return segment{}, false
	}
	high := low + 1
	t0, t1 := s.t[low], s.t[high]
	return segment{
		y0:  s.p[low],
		y1:  s.p[high],
		m0:  s.m[low],
		m1:  s.m[high],
		h:   t1 - t0,
		dt0: x - t0,
		dt1: t1 - x,
	}, true
}

// Lerp linearly interpolates per-knot scalars v at x under the same range
// policy as the evaluators; it returns 0 where they return zero vectors.
// len(v) must equal the number of knots.
func (s *Spline) Lerp(v []float64, x float64) float64 {
	low, x, ok := s.interval(x)
	if !ok {
		return 0
	}
	t0, t1 := s.t[low], s.t[low+1]
	u := (x - t0) / (t1 - t0)
	return v[low] + u*(v[low+1]-v[low])
}

// c and d return the linear-term coefficients y/h - M*h/6 of the two ends.
func (g *segment) c() r3.Vec {
	return r3.Sub(r3.Scale(1/g.h, g.y0), r3.Scale(g.h*sixth, g.m0))
}

func (g *segment) d() r3.Vec {
	return r3.Sub(r3.Scale(1/g.h, g.y1), r3.Scale(g.h*sixth, g.m1))
}

// position evaluates
// M1*(t-t0)³/(6h) + M0*(t1-t)³/(6h) + D*(t-t0) + C*(t1-t).
func (g *segment) position() r3.Vec {
	k := sixth / g.h
	return r3.Add(
		r3.Add(r3.Scale(g.dt0*g.dt0*g.dt0*k, g.m1), r3.Scale(g.dt1*g.dt1*g.dt1*k, g.m0)),
		r3.Add(r3.Scale(g.dt0, g.d()), r3.Scale(g.dt1, g.c())),
	)
}

// velocity evaluates M1*(t-t0)²/(2h) - M0*(t1-t)²/(2h) + D - C.
func (g *segment) velocity() r3.Vec {
	k := half / g.h
	return r3.Add(
		r3.Sub(r3.Scale(g.dt0*g.dt0*k, g.m1), r3.Scale(g.dt1*g.dt1*k, g.m0)),
		r3.Sub(g.d(), g.c()),
	)
}

// acceleration evaluates M1*(t-t0)/h + M0*(t1-t)/h.
func (g *segment) acceleration() r3.Vec {
	return r3.Add(r3.Scale(g.dt0/g.h, g.m1), r3.Scale(g.dt1/g.h, g.m0))
}

// At returns the position at x, or the zero vector outside the range of a
// natural spline.
func (s *Spline) At(x float64) r3.Vec {
	g, ok := s.bracket(x)
	if !ok {
		return r3.Vec{}
	}
	return g.position()
}

// DiffAt returns the first derivative at x.
func (s *Spline) DiffAt(x float64) r3.Vec {
	g, ok := s.bracket(x)
	if !ok {
		return r3.Vec{}
	}
	return g.velocity()
}

// Diff2At returns the second derivative at x.
func (s *Spline) Diff2At(x float64) r3.Vec {
	g, ok := s.bracket(x)
	if !ok {
		return r3.Vec{}
	}
	return g.acceleration()
}

// Diffs returns the raw first and second derivatives at x with a single
// interval lookup.
func (s *Spline) Diffs(x float64) (d1, d2 r3.Vec) {
	g, ok := s.bracket(x)
	if !ok {
		return r3.Vec{}, r3.Vec{}
	}
	return g.velocity(), g.acceleration()
}

// Tangent returns the unit tangent at x.
func (s *Spline) Tangent(x float64) r3.Vec {
	return geom.Unit(s.DiffAt(x))
}

// Normal returns the normalised second derivative at x.
func (s *Spline) Normal(x float64) r3.Vec {
	return geom.Unit(s.Diff2At(x))
}

// Binormal returns the unit binormal of the orthonormal frame at x.
func (s *Spline) Binormal(x float64) r3.Vec {
	g, ok := s.bracket(x)
	if !ok {
		return r3.Vec{}
	}
	return geom.NewFrame(r3.Vec{}, g.velocity(), g.acceleration()).B
}

// Frame returns the orthonormal frame at x, or the identity outside the range
// of a natural spline.
func (s *Spline) Frame(x float64) geom.Frame {
	g, ok := s.bracket(x)
	if !ok {
		return geom.Identity()
	}
	return geom.NewFrame(g.position(), g.velocity(), g.acceleration())
}

// Transform maps v through the frame at x.
func (s *Spline) Transform(x float64, v geom.Vec4) geom.Vec4 {
	return s.Frame(x).Apply(v)
}
