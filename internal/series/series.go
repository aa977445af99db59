// Package series turns tabular columns into the knot arrays of a spline: one
// 3D position and one parameter value per row.
package series

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/geom"
	"github.com/tphakala/go-spline3d/internal/simdops"
)

// MaxAxes is the number of spatial axes a series can select.
const MaxAxes = 3

// Source is the tabular input a series is read from.
type Source interface {
	// Column returns the entries of the named column, or false if absent.
	Column(name string) ([]string, bool)

	// RowCount returns the number of rows.
	RowCount() int
}

// Transformer maps local homogeneous coordinates at parameter t to world space.
type Transformer interface {
	Transform(t float64, v geom.Vec4) geom.Vec4
}

// Column selects a named column, falling back to Default for every row when
// the column is absent.
type Column struct {
	Name    string
	Default float64
}

// Time selects the parameter column. When the column exists its values are
// multiplied by Scale; otherwise t[i] = i * Scale.
type Time struct {
	Column string
	Scale  float64
}

// Spec describes how to build a series.
type Spec struct {
	Axes       []Column
	Attributes []Column
	Time       Time

	// Reference, when set, maps each row's local (x, y, z, 1) through its
	// moving frame at the row's parameter value.
	Reference Transformer
}

// Series holds parallel knot arrays.
type Series struct {
	Times      []float64
	Points     []r3.Vec
	Attributes [][]float64 // one slice per Spec.Attributes entry
}

// Len returns the number of knots.
func (s *Series) Len() int {
	return len(s.Times)
}

// ErrTooManyAxes is returned when more than MaxAxes axes are selected.
var ErrTooManyAxes = errors.New("series: too many spatial axes")

// ParseError reports a column entry that is not a number.
type ParseError struct {
	Column string
	Row    int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("series: column %q row %d: cannot parse %q as a number", e.Column, e.Row, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Build reads the series described by spec from src.
func Build(src Source, spec Spec) (*Series, error) {
	if len(spec.Axes) > MaxAxes {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyAxes, len(spec.Axes), MaxAxes)
	}

	rows := src.RowCount()
	s := &Series{
		Times:  make([]float64, rows),
		Points: make([]r3.Vec, rows),
	}

	var axes [MaxAxes][]float64
	for i, col := range spec.Axes {
		vals, err := readColumn(src, col, rows)
		if err != nil {
			return nil, err
		}
		axes[i] = vals
	}
	for r := range rows {
		s.Points[r] = r3.Vec{X: at(axes[0], r), Y: at(axes[1], r), Z: at(axes[2], r)}
	}

	if err := readTime(src, spec.Time, s.Times); err != nil {
		return nil, err
	}

	if len(spec.Attributes) > 0 {
		s.Attributes = make([][]float64, len(spec.Attributes))
		for i, col := range spec.Attributes {
			vals, err := readColumn(src, col, rows)
			if err != nil {
				return nil, err
			}
			s.Attributes[i] = vals
		}
	}

	if spec.Reference != nil {
		s.Ride(spec.Reference)
	}

	return s, nil
}

// Ride replaces every point with its image under ref's frame at the point's
// parameter value, turning local offsets into world coordinates.
func (s *Series) Ride(ref Transformer) {
	for i, p := range s.Points {
		s.Points[i] = ref.Transform(s.Times[i], geom.Point(p)).Vec3()
	}
}

// Monotonic returns the index of the first knot whose parameter does not
// strictly exceed its predecessor, or -1 if the parameters strictly increase.
func (s *Series) Monotonic() int {
	for i := 1; i < len(s.Times); i++ {
		if !(s.Times[i] > s.Times[i-1]) {
			return i
		}
	}
	return -1
}

// readColumn parses a column or fills it with its default.
func readColumn(src Source, col Column, rows int) ([]float64, error) {
	out := make([]float64, rows)
	entries, ok := lookup(src, col.Name)
	if !ok {
		for i := range out {
			out[i] = col.Default
		}
		return out, nil
	}
	for i := range out {
		v, err := parse(col.Name, i, entry(entries, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// readTime fills dst from the time column or synthesizes i * scale.
func readTime(src Source, spec Time, dst []float64) error {
	entries, ok := lookup(src, spec.Column)
	if !ok {
		simdops.Ramp(dst, spec.Scale)
		return nil
	}
	for i := range dst {
		v, err := parse(spec.Column, i, entry(entries, i))
		if err != nil {
			return err
		}
		dst[i] = v
	}
	simdops.Float64Ops().Scale(dst, dst, spec.Scale)
	return nil
}

// lookup treats an empty name as an absent column.
func lookup(src Source, name string) ([]string, bool) {
	if name == "" {
		return nil, false
	}
	return src.Column(name)
}

func parse(column string, row int, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ParseError{Column: column, Row: row, Value: s, Err: err}
	}
	return v, nil
}

// entry tolerates sources whose columns are shorter than RowCount; the
// missing entry then fails to parse.
func entry(entries []string, i int) string {
	if i < len(entries) {
		return entries[i]
	}
	return ""
}

func at(vals []float64, i int) float64 {
	if vals == nil {
		return 0
	}
	return vals[i]
}
