package scene

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	spline "github.com/tphakala/go-spline3d"
	"github.com/tphakala/go-spline3d/internal/testutil"
)

// ringCSV samples the unit circle at eight points and closes it.
func ringCSV() string {
	var b strings.Builder
	b.WriteString("T,X,Y\n")
	for i := 0; i <= 8; i++ {
		a := 2 * math.Pi * float64(i%8) / 8
		b.WriteString(ftoa(float64(i)) + "," + ftoa(math.Cos(a)) + "," + ftoa(math.Sin(a)) + "\n")
	}
	return b.String()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

const demoTemplate = `curves:
  - name: glyph
    reference: coil
    columns:
      - {name: X}
      - {name: Y}
    data: |
      T,X,Y
      0,0,0
      0.5,0.1,0
      1,0,0.1
      1.5,0,0
  - name: coil
    reference: ring
    columns:
      - {name: A}
      - {name: B}
      - {name: C}
    time: {scale: 0.5}
    data: |
      A,B,C
      0,0.2,0
      0,0,0.2
      0,-0.2,0
      0,0,-0.2
      0,0.2,0
  - name: ring
    boundary: cyclic
    data: |
%s
`

func demoScene(t *testing.T) *Scene {
	t.Helper()
	src := strings.Replace(demoTemplate, "%s", indent(ringCSV(), "      "), 1)
	s, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	return s
}

// =============================================================================
// Decoding and validation
// =============================================================================

func TestDecode_Demo(t *testing.T) {
	s := demoScene(t)
	require.Len(t, s.Curves, 3)
	assert.Equal(t, "coil", s.Curves[1].Name)
	assert.Equal(t, "ring", s.Curves[1].Reference)
	require.NotNil(t, s.Curves[1].Time.Scale)
	assert.Equal(t, 0.5, *s.Curves[1].Time.Scale)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
		msg     string
	}{
		{"empty document", "", ErrEmpty, ""},
		{"no curves", "curves: []\n", ErrEmpty, ""},
		{"unknown key", "curves:\n  - name: a\n    data: \"T\\n\"\n    colour: red\n", nil, "colour"},
		{"missing name", "curves:\n  - data: \"T\\n\"\n", nil, "no name"},
		{"duplicate name", "curves:\n  - {name: a, data: \"T\\n\"}\n  - {name: a, data: \"T\\n\"}\n", nil, "duplicate"},
		{"no source", "curves:\n  - {name: a}\n", nil, "exactly one"},
		{"two sources", "curves:\n  - {name: a, data: \"T\\n\", file: a.csv}\n", nil, "exactly one"},
		{"bad boundary", "curves:\n  - {name: a, data: \"T\\n\", boundary: clamped}\n", spline.ErrInvalidConfig, ""},
		{"bad delimiter", "curves:\n  - {name: a, data: \"T\\n\", delimiter: pipe}\n", nil, "delimiter"},
		{"zero scale", "curves:\n  - {name: a, data: \"T\\n\", time: {scale: 0}}\n", spline.ErrInvalidConfig, ""},
		{"unknown reference", "curves:\n  - {name: a, data: \"T\\n\", reference: b}\n", spline.ErrUnknownReference, ""},
		{"self reference", "curves:\n  - {name: a, data: \"T\\n\", reference: a}\n", spline.ErrReferenceCycle, ""},
		{"cycle", "curves:\n  - {name: a, data: \"T\\n\", reference: c}\n  - {name: b, data: \"T\\n\", reference: a}\n  - {name: c, data: \"T\\n\", reference: b}\n", spline.ErrReferenceCycle, "->"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestOrder_ReferencesFirst(t *testing.T) {
	s := demoScene(t)
	order, err := s.Order()
	require.NoError(t, err)

	names := make([]string, len(order))
	for i, idx := range order {
		names[i] = s.Curves[idx].Name
	}
	assert.Equal(t, []string{"ring", "coil", "glyph"}, names)
}

func TestOrder_IndependentCurvesKeepFileOrder(t *testing.T) {
	s := &Scene{Curves: []CurveSpec{
		{Name: "b", Data: "T\n"},
		{Name: "a", Data: "T\n"},
		{Name: "c", Data: "T\n", Reference: "a"},
	}}
	order, err := s.Order()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
}

// =============================================================================
// Building
// =============================================================================

func TestBuild_Demo(t *testing.T) {
	b, err := demoScene(t).Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"ring", "coil", "glyph"}, b.Names)

	ring, coil, glyph := b.Curves["ring"], b.Curves["coil"], b.Curves["glyph"]
	require.True(t, ring.Ready())
	require.True(t, coil.Ready())
	require.True(t, glyph.Ready())

	assert.Equal(t, spline.Cyclic, ring.Boundary())
	assert.Equal(t, spline.Curve(ring), coil.Reference())
	assert.Equal(t, spline.Curve(coil), glyph.Reference())

	// coil samples ride the ring at t = 0, 0.5, 1, ...
	assert.Equal(t, []float64{0, 0.5, 1, 1.5, 2}, coil.Knots())
	for i, x := range coil.Knots() {
		d := r3.Sub(coil.At(x), ring.At(x))
		assert.InDelta(t, 0.2, r3.Norm(d), 1e-9, "sample %d", i)
		assert.InDelta(t, 0, r3.Dot(d, ring.Tangent(x)), 1e-9, "sample %d", i)
	}

	// the glyph's first sample sits on the coil
	testutil.AssertVecInDelta(t, coil.At(0), glyph.At(0), 1e-12)
}

func TestLoad_RelativeFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ring.tsv"), []byte(strings.ReplaceAll(ringCSV(), ",", "\t")), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scene.yaml"), []byte(
		"curves:\n  - name: ring\n    file: ring.tsv\n    delimiter: tab\n    boundary: cyclic\n"), 0o644))

	s, err := Load(filepath.Join(dir, "scene.yaml"))
	require.NoError(t, err)

	b, err := s.Build()
	require.NoError(t, err)
	ring := b.Curves["ring"]
	require.True(t, ring.Ready())
	testutil.AssertVecInDelta(t, r3.Vec{X: 1}, ring.At(0), 1e-12)
	testutil.AssertVecInDelta(t, r3.Vec{Y: 1}, ring.At(2), 1e-12)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestBuild_MissingDataFile(t *testing.T) {
	s := &Scene{Curves: []CurveSpec{{Name: "a", File: "does-not-exist.csv"}}, dir: t.TempDir()}
	_, err := s.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `curve "a"`)
}

func TestBuild_ParseErrorNamesCurve(t *testing.T) {
	s, err := Decode(strings.NewReader("curves:\n  - name: bad\n    data: |\n      T,X\n      0,1\n      1,x\n      2,3\n"))
	require.NoError(t, err)

	_, err = s.Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, spline.ErrParse)
	assert.Contains(t, err.Error(), `curve "bad"`)
}

func TestCurveSpec_Config(t *testing.T) {
	scale := 0.25
	c := CurveSpec{
		Columns:    []ColumnSpec{{Name: "U", Default: 1}},
		Attributes: []ColumnSpec{{Name: "W"}},
		Time:       TimeSpec{Column: "time", Scale: &scale},
		Boundary:   "closed",
	}
	cfg, err := c.Config()
	require.NoError(t, err)

	assert.Equal(t, []spline.Column{{Name: "U", Default: 1}}, cfg.Columns)
	assert.Equal(t, []spline.Column{{Name: "W"}}, cfg.Attributes)
	assert.Equal(t, spline.TimeSpec{Column: "time", Scale: 0.25}, cfg.Time)
	assert.Equal(t, spline.Cyclic, cfg.Boundary)

	def, err := (&CurveSpec{}).Config()
	require.NoError(t, err)
	assert.Equal(t, spline.DefaultConfig(), def)
}
