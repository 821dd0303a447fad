// Package approx builds piecewise-polynomial approximations of a smooth
// real function over [-1, 1], fit independently on 2M subintervals using
// Chebyshev-node interpolation. It backs the kernel library's real-space
// evaluators: each kernel family supplies a shape function and gets back
// a fixed-size coefficient table that can be evaluated by Horner's method
// without ever touching the original function again.
//
// The per-subinterval fit is grounded in the classic tabulated-function
// idiom (one coefficient row per subinterval, Horner evaluation from a
// local displacement) generalised from cubic to arbitrary degree, and in
// Chebyshev-node sampling for near-optimal L-infinity error on a smooth
// function without needing a contour-integral evaluator.
package approx

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidDegree is returned when the requested polynomial degree is too
// small to be useful (N must be at least 1).
var ErrInvalidDegree = errors.New("approx: polynomial size N must be >= 1")

// ErrInvalidHalfWidth is returned when the requested half-width is < 1.
var ErrInvalidHalfWidth = errors.New("approx: half-width M must be >= 1")

// ErrArgumentOutOfRange is returned by Eval when the caller passes an
// argument outside the table's domain [-1, 1].
var ErrArgumentOutOfRange = errors.New("approx: argument out of [-1, 1] range")

// Table is an L x N piecewise-polynomial approximation of a function on
// [-1, 1], where L = 2*HalfWidth. Row l holds the ascending-power
// coefficients of the degree-(N-1) polynomial fitting subinterval l.
// Once built, a Table is immutable.
type Table struct {
	halfWidth int
	degree    int
	coeffs    [][]float64 // len L, each of len N, ascending powers
}

// HalfWidth returns M (the table spans L = 2M subintervals).
func (t *Table) HalfWidth() int { return t.halfWidth }

// Degree returns N, the polynomial size (degree N-1).
func (t *Table) Degree() int { return t.degree }

// Subintervals returns L = 2*HalfWidth.
func (t *Table) Subintervals() int { return 2 * t.halfWidth }

// Build fits f on 2*halfWidth subintervals of [-1, 1] with degree-(N-1)
// polynomials, using N Chebyshev nodes per subinterval. Subinterval l
// (l = 0..L-1) is numbered right-to-left: it covers the midpoint
// hl = 1 - (2l+1)/L with half-width delta = 1/L, and approximates
// f(hl + x*delta) for x in [-1, 1].
func Build(f func(float64) float64, halfWidth, degree int) (*Table, error) {
	if halfWidth < 1 {
		return nil, ErrInvalidHalfWidth
	}

	if degree < 1 {
		return nil, ErrInvalidDegree
	}

	l := 2 * halfWidth
	delta := 1.0 / float64(l)

	nodes := chebyshevNodes(degree)
	vand := vandermonde(nodes)

	coeffs := make([][]float64, l)

	for row := 0; row < l; row++ {
		h := 1 - float64(2*row+1)/float64(l)

		y := make([]float64, degree)
		for k, x := range nodes {
			y[k] = f(h + x*delta)
		}

		c, err := solveVandermonde(vand, y)
		if err != nil {
			return nil, fmt.Errorf("approx: fitting subinterval %d: %w", row, err)
		}

		coeffs[row] = c
	}

	return &Table{halfWidth: halfWidth, degree: degree, coeffs: coeffs}, nil
}

// Eval evaluates the approximated function at y in [-1, 1], the same
// coordinate Build samples f at. It locates the owning subinterval by the
// right-to-left numbering Build uses (row 0 nearest +1), recovers the
// row-local variable x in [-1, 1], and evaluates that row's polynomial by
// Horner's method from high to low degree.
func (t *Table) Eval(y float64) (float64, error) {
	l := t.Subintervals()

	const domainSlack = 1e-9
	if y < -1-domainSlack || y > 1+domainSlack {
		return 0, fmt.Errorf("%w: y=%v", ErrArgumentOutOfRange, y)
	}

	w := (1 - y) / 2

	row := int(math.Floor(float64(l) * w))
	if row < 0 {
		row = 0
	}

	if row > l-1 {
		row = l - 1
	}

	h := 1 - float64(2*row+1)/float64(l)
	x := (y - h) * float64(l)

	if x < -1 {
		x = -1
	} else if x > 1 {
		x = 1
	}

	return horner(t.coeffs[row], x), nil
}

func horner(c []float64, x float64) float64 {
	v := c[len(c)-1]
	for i := len(c) - 2; i >= 0; i-- {
		v = v*x + c[i]
	}

	return v
}

// chebyshevNodes returns the N Chebyshev nodes x_k = cos(pi*(k-0.5)/N),
// k = 1..N, in that order.
func chebyshevNodes(n int) []float64 {
	nodes := make([]float64, n)
	for k := 1; k <= n; k++ {
		nodes[k-1] = math.Cos(math.Pi * (float64(k) - 0.5) / float64(n))
	}

	return nodes
}

// vandermonde builds the N x N matrix A with A[i][j] = nodes[i]^j
// (ascending powers, j = 0..N-1), shared across all subintervals since
// the node set does not depend on the subinterval.
func vandermonde(nodes []float64) *mat.Dense {
	n := len(nodes)
	a := mat.NewDense(n, n, nil)

	for i, x := range nodes {
		p := 1.0
		for j := 0; j < n; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}

	return a
}

func solveVandermonde(a *mat.Dense, y []float64) ([]float64, error) {
	n := len(y)

	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(n, y)); err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = c.AtVec(i)
	}

	return out, nil
}
