// Package fftbackend adapts github.com/MeKo-Christian/algo-fft's per-axis
// strided plans into the separable D-dimensional transform the oversampled
// NUFFT grid needs: one 1-D FFT per axis, swept across every fiber of the
// row-major buffer with that axis's natural stride.
package fftbackend

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrUnsupportedSize is returned when a grid has no axes, or a buffer is
// too short for the grid it is supposed to back.
var ErrUnsupportedSize = errors.New("fftbackend: unsupported transform size")

// PlannerMode selects how hard the underlying FFT planner searches for a
// fast transform strategy, mirroring algo-fft's own Estimate/Measure/
// Patient modes. It currently only reaches the real-FFT path
// (NewRealAxisPlanWithMode, RealGrid): the retrieved algo-fft surface for
// the general complex Plan[T] constructor (NewPlanT) takes no options
// argument, so NewAxisPlan/NewGrid always use algo-fft's own default.
type PlannerMode int

const (
	// PlannerEstimate picks a transform strategy quickly without
	// measuring alternatives. The default.
	PlannerEstimate PlannerMode = iota
	// PlannerMeasure times a handful of candidate strategies.
	PlannerMeasure
	// PlannerPatient searches exhaustively for the fastest strategy.
	PlannerPatient
)

func (m PlannerMode) toAlgoFFT() algofft.PlannerMode {
	switch m {
	case PlannerMeasure:
		return algofft.PlannerMeasure
	case PlannerPatient:
		return algofft.PlannerPatient
	default:
		return algofft.PlannerEstimate
	}
}

// AxisPlan performs forward and inverse complex FFTs of a fixed length
// along an arbitrary stride, corresponding to one axis of a separable
// multi-dimensional transform.
type AxisPlan struct {
	n    int
	plan *algofft.Plan[complex128]
}

// NewAxisPlan builds a plan for complex transforms of length n. Mixed-radix
// and Bluestein decomposition inside algofft.Plan mean n need not be a
// power of 2, which matters here since oversampled NUFFT grid sizes are
// chosen from {2,3,5}-smooth products, not powers of 2.
func NewAxisPlan(n int) (*AxisPlan, error) {
	plan, err := algofft.NewPlanT[complex128](n)
	if err != nil {
		return nil, fmt.Errorf("fftbackend: building axis plan of size %d: %w", n, err)
	}

	return &AxisPlan{n: n, plan: plan}, nil
}

// Len returns the axis length.
func (a *AxisPlan) Len() int { return a.n }

// Forward performs an in-place forward FFT on data, read at the given
// stride starting at data[0].
func (a *AxisPlan) Forward(data []complex128, stride int) error {
	return a.plan.ForwardStrided(data, data, stride)
}

// Inverse performs an in-place inverse FFT on data, read at the given
// stride starting at data[0]. algofft's inverse divides by n; Inverse
// multiplies the n transformed samples back by n, so the result is
// unnormalised, which is what the NUFFT driver's type-2 path relies on.
func (a *AxisPlan) Inverse(data []complex128, stride int) error {
	if err := a.plan.InverseStrided(data, data, stride); err != nil {
		return err
	}

	scale := complex(float64(a.n), 0)
	for k := 0; k < a.n; k++ {
		data[k*stride] *= scale
	}

	return nil
}

// RealAxisPlan performs a real-to-complex FFT of a fixed even length,
// used for the axis-0 transform when the caller's non-uniform data is
// real-valued (nufft.WithRealInput).
type RealAxisPlan struct {
	n    int
	plan *algofft.PlanRealT[float64, complex128]
}

// NewRealAxisPlan builds a real FFT plan for n real samples, producing
// n/2+1 complex spectrum bins, using the default PlannerEstimate mode.
func NewRealAxisPlan(n int) (*RealAxisPlan, error) {
	return NewRealAxisPlanWithMode(n, PlannerEstimate)
}

// NewRealAxisPlanWithMode is NewRealAxisPlan with an explicit planner mode.
func NewRealAxisPlanWithMode(n int, mode PlannerMode) (*RealAxisPlan, error) {
	plan, err := algofft.NewPlanReal64WithOptions(n, algofft.PlanOptions{Planner: mode.toAlgoFFT()})
	if err != nil {
		return nil, fmt.Errorf("fftbackend: building real axis plan of size %d: %w", n, err)
	}

	return &RealAxisPlan{n: n, plan: plan}, nil
}

// Len returns the number of real samples.
func (r *RealAxisPlan) Len() int { return r.n }

// SpectrumLen returns the number of complex bins the transform produces.
func (r *RealAxisPlan) SpectrumLen() int { return r.plan.SpectrumLen() }

// Forward computes the real-to-complex FFT of src into dst.
func (r *RealAxisPlan) Forward(dst []complex128, src []float64) error {
	return r.plan.Forward(dst, src)
}

// Inverse computes the complex-to-real inverse FFT of src (the n/2+1
// half spectrum) into dst (n real samples), unnormalised like AxisPlan's
// Inverse (algofft's 1/n factor is multiplied back out).
func (r *RealAxisPlan) Inverse(dst []float64, src []complex128) error {
	if err := r.plan.Inverse(dst, src); err != nil {
		return err
	}

	scale := float64(r.n)
	for i := 0; i < r.n; i++ {
		dst[i] *= scale
	}

	return nil
}

// Grid executes a separable D-dimensional complex FFT over a row-major
// buffer (last axis fastest, C order) by running one AxisPlan per axis
// and sweeping it across every fiber along that axis.
type Grid struct {
	sizes   []int
	axes    []*AxisPlan
	strides []int
	total   int
}

// NewGrid builds per-axis plans for a grid of the given sizes, ordered
// from the slowest-varying axis to the fastest.
func NewGrid(sizes []int) (*Grid, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: grid has no axes", ErrUnsupportedSize)
	}

	axes := make([]*AxisPlan, len(sizes))
	for d, n := range sizes {
		plan, err := NewAxisPlan(n)
		if err != nil {
			return nil, err
		}

		axes[d] = plan
	}

	strides := make([]int, len(sizes))
	stride := 1

	for d := len(sizes) - 1; d >= 0; d-- {
		strides[d] = stride
		stride *= sizes[d]
	}

	return &Grid{sizes: sizes, axes: axes, strides: strides, total: stride}, nil
}

// Sizes returns the grid's per-axis lengths.
func (g *Grid) Sizes() []int { return g.sizes }

// Len returns the total number of complex samples in the grid.
func (g *Grid) Len() int { return g.total }

// Forward performs an in-place D-dimensional forward FFT, one axis at a
// time, over data (which must hold at least Len() complex128 values).
func (g *Grid) Forward(data []complex128) error {
	return g.transform(data, false)
}

// Inverse performs an in-place D-dimensional inverse FFT, one axis at a
// time. Like AxisPlan.Inverse, the result is unnormalised.
func (g *Grid) Inverse(data []complex128) error {
	return g.transform(data, true)
}

func (g *Grid) transform(data []complex128, inverse bool) error {
	return g.transformFrom(data, inverse, 0)
}

// transformFrom sweeps axes[fromAxis:] only, leaving any axes before it
// untouched. RealGrid uses this to complex-transform the axes beyond the
// one already handled by its RealAxisPlan.
func (g *Grid) transformFrom(data []complex128, inverse bool, fromAxis int) error {
	if len(data) < g.total {
		return fmt.Errorf("%w: buffer of length %d shorter than grid of %d", ErrUnsupportedSize, len(data), g.total)
	}

	for d, axis := range g.axes[fromAxis:] {
		d += fromAxis

		stride := g.strides[d]
		n := g.sizes[d]
		blockSize := n * stride
		outerSize := g.total / blockSize

		for outer := 0; outer < outerSize; outer++ {
			base := outer * blockSize

			for inner := 0; inner < stride; inner++ {
				start := base + inner

				var err error
				if inverse {
					err = axis.Inverse(data[start:], stride)
				} else {
					err = axis.Forward(data[start:], stride)
				}

				if err != nil {
					return fmt.Errorf("fftbackend: axis %d, fiber (outer=%d,inner=%d): %w", d, outer, inner, err)
				}
			}
		}
	}

	return nil
}

// RealGrid executes a separable D-dimensional FFT between a real
// row-major buffer and its half-spectrum complex counterpart: axis 0
// (the slowest-varying, matching the spec's "axis 1") is transformed
// real<->complex via a RealAxisPlan, gathered through a contiguous
// scratch fiber since RealAxisPlan performs no strided access; the
// remaining axes are transformed in place on the resulting half-spectrum
// buffer by an ordinary complex Grid sweep that skips axis 0.
type RealGrid struct {
	sizes     []int // real-side sizes (N1, N2, ..., ND)
	axis0     *RealAxisPlan
	rest      *Grid // built over (SpectrumLen(), N2, ..., ND)
	restTotal int    // N2 * ... * ND
}

// NewRealGrid builds a real/half-spectrum grid of the given real-side
// sizes, using the default PlannerEstimate mode for its axis-0 real FFT.
func NewRealGrid(sizes []int) (*RealGrid, error) {
	return NewRealGridWithMode(sizes, PlannerEstimate)
}

// NewRealGridWithMode is NewRealGrid with an explicit planner mode for
// its axis-0 real FFT.
func NewRealGridWithMode(sizes []int, mode PlannerMode) (*RealGrid, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: grid has no axes", ErrUnsupportedSize)
	}

	axis0, err := NewRealAxisPlanWithMode(sizes[0], mode)
	if err != nil {
		return nil, err
	}

	specSizes := make([]int, len(sizes))
	specSizes[0] = axis0.SpectrumLen()
	copy(specSizes[1:], sizes[1:])

	rest, err := NewGrid(specSizes)
	if err != nil {
		return nil, err
	}

	restTotal := 1
	for _, n := range sizes[1:] {
		restTotal *= n
	}

	return &RealGrid{sizes: sizes, axis0: axis0, rest: rest, restTotal: restTotal}, nil
}

// Sizes returns the real-side per-axis lengths.
func (g *RealGrid) Sizes() []int { return g.sizes }

// SpectrumLen returns N1/2+1, the length of axis 0 in the half spectrum.
func (g *RealGrid) SpectrumLen() int { return g.axis0.SpectrumLen() }

// RealLen returns the total number of real samples, N1*N2*...*ND.
func (g *RealGrid) RealLen() int { return g.axis0.Len() * g.restTotal }

// SpectrumTotal returns the total number of complex half-spectrum bins.
func (g *RealGrid) SpectrumTotal() int { return g.rest.Len() }

// Forward computes the half-spectrum FFT of a real buffer (length
// RealLen()) into a complex buffer (length SpectrumTotal()).
func (g *RealGrid) Forward(dst []complex128, src []float64) error {
	if len(src) < g.RealLen() {
		return fmt.Errorf("%w: real buffer of length %d shorter than grid of %d", ErrUnsupportedSize, len(src), g.RealLen())
	}

	if len(dst) < g.SpectrumTotal() {
		return fmt.Errorf("%w: spectrum buffer of length %d shorter than grid of %d", ErrUnsupportedSize, len(dst), g.SpectrumTotal())
	}

	n1 := g.sizes[0]
	spec1 := g.axis0.SpectrumLen()
	fiber := make([]float64, n1)
	bins := make([]complex128, spec1)

	for r := 0; r < g.restTotal; r++ {
		for k1 := 0; k1 < n1; k1++ {
			fiber[k1] = src[k1*g.restTotal+r]
		}

		if err := g.axis0.Forward(bins, fiber); err != nil {
			return fmt.Errorf("fftbackend: real axis 0, fiber %d: %w", r, err)
		}

		for k1 := 0; k1 < spec1; k1++ {
			dst[k1*g.restTotal+r] = bins[k1]
		}
	}

	return g.rest.transformFrom(dst, false, 1)
}

// Inverse computes the real inverse of a half-spectrum buffer (length
// SpectrumTotal()) into a real buffer (length RealLen()). Like Grid's
// Inverse, the result is unnormalised.
func (g *RealGrid) Inverse(dst []float64, src []complex128) error {
	if len(src) < g.SpectrumTotal() {
		return fmt.Errorf("%w: spectrum buffer of length %d shorter than grid of %d", ErrUnsupportedSize, len(src), g.SpectrumTotal())
	}

	if len(dst) < g.RealLen() {
		return fmt.Errorf("%w: real buffer of length %d shorter than grid of %d", ErrUnsupportedSize, len(dst), g.RealLen())
	}

	work := append([]complex128(nil), src[:g.SpectrumTotal()]...)
	if err := g.rest.transformFrom(work, true, 1); err != nil {
		return err
	}

	n1 := g.sizes[0]
	spec1 := g.axis0.SpectrumLen()
	bins := make([]complex128, spec1)
	fiber := make([]float64, n1)

	for r := 0; r < g.restTotal; r++ {
		for k1 := 0; k1 < spec1; k1++ {
			bins[k1] = work[k1*g.restTotal+r]
		}

		if err := g.axis0.Inverse(fiber, bins); err != nil {
			return fmt.Errorf("fftbackend: real axis 0, fiber %d: %w", r, err)
		}

		for k1 := 0; k1 < n1; k1++ {
			dst[k1*g.restTotal+r] = fiber[k1]
		}
	}

	return nil
}
