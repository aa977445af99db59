package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocate(t *testing.T) {
	knots := []float64{-1, 0, 0.5, 2, 7}

	tests := []struct {
		name      string
		x         float64
		low, high int
	}{
		{"first knot", -1, 0, 1},
		{"inside first interval", -0.5, 0, 1},
		{"interior knot opens its interval", 0, 1, 2},
		{"interior knot", 0.5, 2, 3},
		{"just below knot", math.Nextafter(2, 0), 2, 3},
		{"exact knot", 2, 3, 4},
		{"last knot stays in last interval", 7, 3, 4},
		{"below range clamps low", -5, 0, 1},
		{"above range clamps high", 50, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			low, high := Locate(knots, tt.x)
			assert.Equal(t, tt.low, low)
			assert.Equal(t, tt.high, high)
		})
	}
}

func TestLocate_TwoKnots(t *testing.T) {
	for _, x := range []float64{-1, 0, 0.5, 1, 2} {
		low, high := Locate([]float64{0, 1}, x)
		assert.Equal(t, 0, low, "x=%g", x)
		assert.Equal(t, 1, high, "x=%g", x)
	}
}

func TestLocate_EveryInterval(t *testing.T) {
	knots := make([]float64, 257)
	for i := range knots {
		knots[i] = float64(i) * float64(i) / 16
	}
	for i := 0; i < len(knots)-1; i++ {
		x := (knots[i] + knots[i+1]) / 2
		low, high := Locate(knots, x)
		assert.Equal(t, i, low)
		assert.Equal(t, i+1, high)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name       string
		x          float64
		start, end float64
		want       float64
	}{
		{"inside", 1.5, 0, 4, 1.5},
		{"start", 0, 0, 4, 0},
		{"end wraps to start", 4, 0, 4, 0},
		{"one period over", 5.25, 0, 4, 1.25},
		{"many periods over", 41, 0, 4, 1},
		{"below start", -0.5, 0, 4, 3.5},
		{"many periods under", -10, 0, 4, 2},
		{"offset range", 13, 10, 12, 11},
		{"offset range below", 9.5, 10, 12, 11.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Wrap(tt.x, tt.start, tt.end), 1e-12)
		})
	}
}

func TestWrap_JustPastEndLandsInFirstInterval(t *testing.T) {
	knots := []float64{0, 1, 2, 3, 4}
	x := Wrap(4+1e-9, knots[0], knots[4])
	assert.GreaterOrEqual(t, x, 0.0)
	assert.Less(t, x, 1.0)

	low, high := Locate(knots, x)
	assert.Equal(t, 0, low)
	assert.Equal(t, 1, high)
}

func TestWrap_TinyNegativeStaysInRange(t *testing.T) {
	// -tiny + period rounds to exactly end
	x := Wrap(-1e-300, 0, 4)
	assert.GreaterOrEqual(t, x, 0.0)
	assert.Less(t, x, 4.0)
}

func BenchmarkLocate(b *testing.B) {
	knots := make([]float64, 4096)
	for i := range knots {
		knots[i] = float64(i)
	}
	x := 2717.5
	for b.Loop() {
		_, _ = Locate(knots, x)
	}
}
