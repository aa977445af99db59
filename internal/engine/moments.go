package engine

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// intervals returns the knot spacings h[i] = t[i+1] - t[i].
func intervals(t []float64) []float64 {
	h := make([]float64, len(t)-1)
	for i := range h {
		h[i] = t[i+1] - t[i]
	}
	return h
}

// secondDifference returns (p[i+1]-p[i])/h[i] - (p[i]-p[i-1])/h[i-1], the right
// hand side of the moment equation centred on knot i.
func secondDifference(prev, cur, next r3.Vec, hPrev, hNext float64) r3.Vec {
	return r3.Sub(
		r3.Scale(1/hNext, r3.Sub(next, cur)),
		r3.Scale(1/hPrev, r3.Sub(cur, prev)),
	)
}

// NaturalMoments solves for the moments of the natural cubic spline through
// points p at parameters t. The end moments are zero; the interior moments
// solve a symmetric, strictly diagonally dominant tridiagonal system, so the
// elimination runs without pivoting.
//
// t must be strictly increasing and len(t) == len(p) >= MinKnots.
func NaturalMoments(t []float64, p []r3.Vec) []r3.Vec {
	n := len(t) - 1
	h := intervals(t)
	m := make([]r3.Vec, n+1)

	// diag[i] is the pivot of row i, i = 1..n-1
	diag := make([]float64, n)
	for i := 1; i < n; i++ {
		diag[i] = (h[i-1] + h[i]) * third
		m[i] = secondDifference(p[i-1], p[i], p[i+1], h[i-1], h[i])
	}

	// forward elimination of the sub-diagonal h[i]/6
	for i := 1; i < n-1; i++ {
		off := h[i] * sixth
		ratio := off / diag[i]
		diag[i+1] -= ratio * off
		m[i+1] = r3.Sub(m[i+1], r3.Scale(ratio, m[i]))
	}

	// back substitution
	m[n-1] = r3.Scale(1/diag[n-1], m[n-1])
	for i := n - 2; i >= 1; i-- {
		m[i] = r3.Scale(1/diag[i], r3.Sub(m[i], r3.Scale(h[i]*sixth, m[i+1])))
	}

	return m
}

// CyclicMoments solves for the moments of the periodic cubic spline through
// points p at parameters t. The curve closes up: M[0] == M[n], and the
// equation at the seam couples interval n-1 with interval 0.
//
// The unknowns are M[1..n]. Rows 1..n-1 are tridiagonal plus a column of
// coefficients on M[n] (non-zero in rows 1 and n-1); the seam row n carries
// coefficients on M[1] and M[n-1]. Elimination tracks that extra column and
// the closing row alongside the tridiagonal sweep, so no dense matrix is
// formed. The system is strictly diagonally dominant for every n >= 2.
//
// t must be strictly increasing and len(t) == len(p) >= MinKnots. For a
// closed curve p[n] should equal p[0].
func CyclicMoments(t []float64, p []r3.Vec) []r3.Vec {
	n := len(t) - 1
	h := intervals(t)
	m := make([]r3.Vec, n+1)

	diag := make([]float64, n) // pivot of row i, i = 1..n-1
	col := make([]float64, n)  // coefficient of M[n] in row i
	bot := make([]float64, n)  // coefficient of M[i] in the seam row

	for i := 1; i < n; i++ {
		diag[i] = (h[i-1] + h[i]) * third
		m[i] = secondDifference(p[i-1], p[i], p[i+1], h[i-1], h[i])
	}
	col[1] += h[0] * sixth
	col[n-1] += h[n-1] * sixth
	bot[1] += h[0] * sixth
	bot[n-1] += h[n-1] * sixth
	corner := (h[n-1] + h[0]) * third
	m[n] = secondDifference(p[n-1], p[0], p[1], h[n-1], h[0])

	for i := 1; i < n; i++ {
		// eliminate M[i] from row i+1
		if i+1 < n {
			off := h[i] * sixth
			ratio := off / diag[i]
			diag[i+1] -= ratio * off
			col[i+1] -= ratio * col[i]
			m[i+1] = r3.Sub(m[i+1], r3.Scale(ratio, m[i]))
		}

		// eliminate M[i] from the seam row
		ratio := bot[i] / diag[i]
		if i+1 < n {
			bot[i+1] -= ratio * h[i] * sixth
		}
		corner -= ratio * col[i]
		m[n] = r3.Sub(m[n], r3.Scale(ratio, m[i]))
		bot[i] = 0
	}

	m[n] = r3.Scale(1/corner, m[n])
	m[0] = m[n]

	for i := n - 1; i >= 1; i-- {
		rhs := r3.Sub(m[i], r3.Scale(col[i], m[n]))
		if i+1 < n {
			rhs = r3.Sub(rhs, r3.Scale(h[i]*sixth, m[i+1]))
		}
		m[i] = r3.Scale(1/diag[i], rhs)
	}

	return m
}
