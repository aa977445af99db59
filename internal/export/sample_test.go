package export

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/tphakala/go-spline3d/internal/geom"
)

// lineCurve moves along (1, 2, -1) and carries one attribute equal to 10t.
type lineCurve struct{}

func (lineCurve) OrthonormalFrame(t float64) geom.Frame {
	return geom.NewFrame(r3.Vec{X: t, Y: 2 * t, Z: -t}, r3.Vec{X: 1, Y: 2, Z: -1}, r3.Vec{})
}

func (lineCurve) Attributes() []string { return []string{"heat"} }

func (lineCurve) AttributeAt(name string, t float64) (float64, bool) {
	if name != "heat" {
		return 0, false
	}
	return 10 * t, true
}

// circleCurve traces the unit circle once per unit of time.
type circleCurve struct{}

func (circleCurve) OrthonormalFrame(t float64) geom.Frame {
	a := 2 * math.Pi * t
	return geom.NewFrame(
		r3.Vec{X: math.Cos(a), Y: math.Sin(a)},
		r3.Vec{X: -math.Sin(a), Y: math.Cos(a)},
		r3.Vec{X: -math.Cos(a), Y: -math.Sin(a)},
	)
}

// =============================================================================
// Grid
// =============================================================================

func TestGrid(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []float64
	}{
		{"inclusive", Options{Count: 5, Start: 0, End: 4}, []float64{0, 1, 2, 3, 4}},
		{"closed", Options{Count: 4, Start: 0, End: 4, Closed: true}, []float64{0, 1, 2, 3}},
		{"single", Options{Count: 1, Start: 2, End: 9}, []float64{2}},
		{"offset", Options{Count: 3, Start: -1, End: 1}, []float64{-1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grid(tt.opts)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-12)
		})
	}
}

func TestGrid_Errors(t *testing.T) {
	_, err := Grid(Options{Count: 0, End: 1})
	assert.ErrorIs(t, err, ErrNoSamples)

	_, err = Grid(Options{Count: 3, Start: 2, End: 1})
	assert.Error(t, err)
}

// =============================================================================
// Sample
// =============================================================================

func TestSample_FillsFramesAndAttributes(t *testing.T) {
	samples, err := Sample(lineCurve{}, Options{Count: 3, Start: 0, End: 1})
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, 0.5, samples[1].T)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 1, Z: -0.5}, samples[1].Frame.P)
	assert.Equal(t, []float64{5}, samples[1].Attributes)
}

func TestSample_NoAttributes(t *testing.T) {
	samples, err := Sample(circleCurve{}, Options{Count: 8, End: 1, Closed: true})
	require.NoError(t, err)
	for _, s := range samples {
		assert.Nil(t, s.Attributes)
	}
}

func TestSample_ParallelMatchesSequential(t *testing.T) {
	opts := Options{Count: 1001, Start: -0.5, End: 2.5}
	seq, err := Sample(circleCurve{}, opts)
	require.NoError(t, err)

	for _, workers := range []int{0, 1, 3, 16} {
		opts.Parallel = true
		opts.Workers = workers
		par, err := Sample(circleCurve{}, opts)
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)
	}
}

func TestSample_PropagatesGridError(t *testing.T) {
	_, err := Sample(circleCurve{}, Options{})
	assert.ErrorIs(t, err, ErrNoSamples)
}

func BenchmarkSample(b *testing.B) {
	for _, parallel := range []bool{false, true} {
		name := "sequential"
		if parallel {
			name = "parallel"
		}
		b.Run(name, func(b *testing.B) {
			opts := Options{Count: 100000, End: 1, Parallel: parallel}
			for b.Loop() {
				if _, err := Sample(circleCurve{}, opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
