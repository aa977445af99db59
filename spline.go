package spline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/engine"
	"github.com/tphakala/go-spline3d/internal/series"
)

// Source is the tabular input a curve is built from. Absent columns are not
// an error: the configured default is used for every row instead.
type Source interface {
	// Column returns the entries of the named column, or false if absent.
	Column(name string) ([]string, bool)

	// RowCount returns the number of rows.
	RowCount() int
}

// Config holds curve construction parameters.
type Config struct {
	// Columns selects up to three spatial axes (X, Y, Z in order). Axes that
	// are not listed are zero.
	Columns []Column

	// Attributes selects extra scalar columns carried along with every
	// sample, such as colour or width. They are interpolated linearly.
	Attributes []Column

	// Time selects the curve parameter.
	Time TimeSpec

	// Boundary selects free ends or a closed, periodic curve. For a cyclic
	// curve the last sample is the closing sample and should repeat the first
	// position.
	Boundary Boundary

	// Reference, when set, makes the curve ride another curve: every sample
	// is read as a local offset and mapped through the reference's moving
	// frame at the sample's parameter before the spline is fitted.
	Reference Curve
}

// Column selects a named column. When the column is absent from the source,
// or Name is empty, Default is used for every row.
type Column struct {
	Name    string
	Default float64
}

// TimeSpec selects the parameter column. When the column exists its values
// are multiplied by Scale; otherwise the parameter of row i is i * Scale.
type TimeSpec struct {
	Column string
	Scale  float64
}

// Boundary selects the boundary condition of the fitted spline.
type Boundary int

const (
	// Natural leaves both ends free: zero curvature at the first and last
	// knot, and queries outside the knot range evaluate to zero.
	Natural Boundary = iota

	// Cyclic closes the curve: position and both derivatives match at the
	// seam, and queries are wrapped into the knot range.
	Cyclic
)

// String returns the lowercase name of b.
func (b Boundary) String() string {
	switch b {
	case Natural:
		return "natural"
	case Cyclic:
		return "cyclic"
	default:
		return fmt.Sprintf("Boundary(%d)", int(b))
	}
}

// ParseBoundary parses "natural" or "cyclic" (case-insensitive). The empty
// string selects Natural.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "natural", "open":
		return Natural, nil
	case "cyclic", "closed", "periodic":
		return Cyclic, nil
	default:
		return Natural, fmt.Errorf("%w: unknown boundary %q", ErrInvalidConfig, s)
	}
}

// Common errors returned when building curves.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid spline configuration")

	// ErrParse indicates a column entry that is not a number. The wrapped
	// error is a *series.ParseError naming the column and row.
	ErrParse = errors.New("malformed sample")

	// ErrNonMonotonic indicates parameter values that do not strictly
	// increase.
	ErrNonMonotonic = errors.New("parameter values must strictly increase")

	// ErrUnknownReference indicates a reference to a curve that does not exist.
	ErrUnknownReference = errors.New("unknown reference curve")

	// ErrReferenceCycle indicates curves that ride each other in a loop.
	ErrReferenceCycle = errors.New("reference cycle")
)

// DefaultConfig returns the configuration reading columns X, Y, Z (default 0)
// and the parameter from column T with unit scale.
func DefaultConfig() *Config {
	return &Config{
		Columns: []Column{
			{Name: DefaultColumnX},
			{Name: DefaultColumnY},
			{Name: DefaultColumnZ},
		},
		Time:     TimeSpec{Column: DefaultTimeColumn, Scale: DefaultTimeScale},
		Boundary: Natural,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if len(c.Columns) > maxAxes {
		return fmt.Errorf("%w: too many spatial columns (max %d)", ErrInvalidConfig, maxAxes)
	}

	if c.Time.Scale == 0 || math.IsNaN(c.Time.Scale) || math.IsInf(c.Time.Scale, 0) {
		return fmt.Errorf("%w: time scale must be finite and non-zero", ErrInvalidConfig)
	}

	if c.Boundary != Natural && c.Boundary != Cyclic {
		return fmt.Errorf("%w: unknown boundary %d", ErrInvalidConfig, int(c.Boundary))
	}

	seen := make(map[string]bool, len(c.Attributes))
	for _, a := range c.Attributes {
		if a.Name == "" {
			return fmt.Errorf("%w: attribute column without a name", ErrInvalidConfig)
		}
		if seen[a.Name] {
			return fmt.Errorf("%w: duplicate attribute column %q", ErrInvalidConfig, a.Name)
		}
		seen[a.Name] = true
	}

	return nil
}

// New reads the samples selected by config from src and fits a spline through
// them. With fewer than three samples the returned curve is degenerate: it
// evaluates to zero vectors and identity frames (see [SplineCurve.Ready]).
func New(src Source, config *Config) (*SplineCurve, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	s, err := series.Build(src, config.spec())
	if err != nil {
		var pe *series.ParseError
		if errors.As(err, &pe) {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return build(s, config.Boundary, config.Reference, attributeNames(config.Attributes))
}

// FromPoints fits a spline through points at parameters times.
func FromPoints(times []float64, points []r3.Vec, boundary Boundary) (*SplineCurve, error) {
	return FromPointsRiding(times, points, boundary, nil)
}

// FromPointsRiding fits a spline through local offsets that ride reference:
// point i is mapped through the frame of reference at times[i] first. A nil
// reference leaves the points in world space.
func FromPointsRiding(times []float64, locals []r3.Vec, boundary Boundary, reference Curve) (*SplineCurve, error) {
	if len(times) != len(locals) {
		return nil, fmt.Errorf("%w: %d parameter values for %d points", ErrInvalidConfig, len(times), len(locals))
	}
	if boundary != Natural && boundary != Cyclic {
		return nil, fmt.Errorf("%w: unknown boundary %d", ErrInvalidConfig, int(boundary))
	}

	s := &series.Series{
		Times:  append([]float64(nil), times...),
		Points: append([]r3.Vec(nil), locals...),
	}
	if reference != nil {
		s.Ride(reference)
	}

	return build(s, boundary, reference, nil)
}

// build validates the knots of s and solves for the moments.
func build(s *series.Series, boundary Boundary, reference Curve, attrs []string) (*SplineCurve, error) {
	c := &SplineCurve{
		times:      s.Times,
		points:     s.Points,
		attrNames:  attrs,
		attrValues: s.Attributes,
		boundary:   boundary,
		reference:  reference,
	}

	if s.Len() < engine.MinKnots {
		return c, nil
	}

	if i := s.Monotonic(); i >= 0 {
		return nil, fmt.Errorf("%w: sample %d has t=%g after t=%g", ErrNonMonotonic, i, s.Times[i], s.Times[i-1])
	}

	c.spline = engine.NewSpline(s.Times, s.Points, boundary == Cyclic)
	return c, nil
}

func (c *Config) spec() series.Spec {
	spec := series.Spec{
		Axes:       make([]series.Column, len(c.Columns)),
		Attributes: make([]series.Column, len(c.Attributes)),
		Time:       series.Time{Column: c.Time.Column, Scale: c.Time.Scale},
	}
	for i, col := range c.Columns {
		spec.Axes[i] = series.Column{Name: col.Name, Default: col.Default}
	}
	for i, col := range c.Attributes {
		spec.Attributes[i] = series.Column{Name: col.Name, Default: col.Default}
	}
	if c.Reference != nil {
		spec.Reference = c.Reference
	}
	return spec
}

func attributeNames(cols []Column) []string {
	if len(cols) == 0 {
		return nil
	}
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.Name
	}
	return names
}
