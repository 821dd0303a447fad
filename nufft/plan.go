// Package nufft is the planner/driver tying the kernel library and the
// spreader/interpolator to an FFT on an oversampled grid: it sizes the
// oversampled grid, constructs one kernel descriptor per axis,
// pre-computes each axis's Fourier-coefficient cache, owns the
// oversampled buffers and FFT plans, and orchestrates the type-1
// (non-uniform -> uniform) and type-2 (uniform -> non-uniform)
// transforms described by the kernel and spread packages.
package nufft

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-nufft/gridindex"
	"github.com/cwbudde/algo-nufft/internal/fftbackend"
	"github.com/cwbudde/algo-nufft/kernel"
)

// Plan owns everything needed to run repeated type-1/type-2 transforms
// between a fixed set of non-oversampled grid sizes and a rebindable set
// of non-uniform points: one kernel.Descriptor per axis, the oversampled
// grid's FFT plan, and the oversampled buffers themselves, reused across
// calls per the teacher's plan-holds-buffers-and-sub-objects shape
// (dsp/resample.Resampler).
type Plan struct {
	ns     []int
	ntilde []int
	sigma  float64

	halfWidth int
	family    kernel.Family
	real      bool

	kernels  []*kernel.Descriptor
	ks       [][]float64
	srcBins  [][]int // per-axis oversampled bin for each entry of ks
	specDims []int   // per-axis length of the oversampled spectrum buffer

	grid     *fftbackend.Grid
	realGrid *fftbackend.RealGrid

	coords    [][]float64
	pointSet  bool
	usC       [][]complex128 // complex-path oversampled grids, one per channel
	usR       [][]float64    // real-path oversampled grids, one per channel
	spectrumR [][]complex128 // real-path spectrum buffers, one per channel
}

// Dim returns the number of axes D.
func (p *Plan) Dim() int { return len(p.ns) }

// Sizes returns the non-oversampled axis lengths N_1..N_D.
func (p *Plan) Sizes() []int { return p.ns }

// OversampledSizes returns the oversampled axis lengths Ñ_1..Ñ_D.
func (p *Plan) OversampledSizes() []int { return p.ntilde }

// Oversampling returns the effective oversampling factor sigma =
// max_d(Ñ_d/N_d), which may exceed the requested WithOversampling value
// once each axis is rounded up to a {2,3,5}-smooth size.
func (p *Plan) Oversampling() float64 { return p.sigma }

// HalfWidth returns the kernel half-width M.
func (p *Plan) HalfWidth() int { return p.halfWidth }

// RealInput reports whether the plan was built WithRealInput(true).
func (p *Plan) RealInput() bool { return p.real }

// CoefficientLen returns the total number of Fourier coefficients a
// single channel's ExecType1/ExecType1Real output (or ExecType2/
// ExecType2Real input) must hold: prod(N_d) for a complex plan, or
// (N_1/2+1)*N_2*...*N_D for a real one.
func (p *Plan) CoefficientLen() int { return productLens(p.ks) }

// NewPlan builds a plan for the given non-oversampled sizes, one per
// axis (1-D, 2-D, or 3-D), applying opts over DefaultOptions. All sizing
// decisions (M, sigma, Ñ) are fixed here, per §4.7: a later ExecType1/
// ExecType2 call only ever fails on a caller-argument size mismatch, not
// on kernel construction.
func NewPlan(ns []int, opts ...Option) (*Plan, error) {
	if len(ns) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrInvalidSizes)
	}

	for _, n := range ns {
		if n < 1 {
			return nil, ErrInvalidSizes
		}
	}

	cfg := applyOptions(opts...)
	if cfg.oversampling < 1 {
		return nil, ErrInvalidOversampling
	}

	if cfg.halfWidth < 1 {
		return nil, ErrInvalidHalfWidth
	}

	ntilde, sigma := oversampledSizes(ns, cfg.oversampling)

	p := &Plan{
		ns:        append([]int(nil), ns...),
		ntilde:    ntilde,
		sigma:     sigma,
		halfWidth: cfg.halfWidth,
		family:    cfg.family,
		real:      cfg.real,
		kernels:   make([]*kernel.Descriptor, len(ns)),
		ks:        make([][]float64, len(ns)),
		srcBins:   make([][]int, len(ns)),
		specDims:  make([]int, len(ns)),
	}

	for d, n := range ntilde {
		if err := gridindex.ValidateHalfWidth(cfg.halfWidth, n); err != nil {
			return nil, fmt.Errorf("%w: axis %d: %v", ErrInvalidHalfWidth, d, err)
		}
	}

	var kernelOpts []kernel.Option
	if cfg.degree >= 1 {
		kernelOpts = append(kernelOpts, kernel.WithDegree(cfg.degree))
	}

	for d, n := range ntilde {
		dx := 2 * math.Pi / float64(n)

		desc, err := kernel.OptimalKernel(cfg.family, cfg.halfWidth, dx, sigma, kernelOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: axis %d: %v", ErrShapeOverflow, d, err)
		}

		half := cfg.real && d == 0
		ks := wavenumbers(ns[d], half)
		desc.PrepareFourierCoefficients(ks)

		specDim := n
		if half {
			specDim = n/2 + 1
		}

		bins := make([]int, len(ks))
		for j, k := range ks {
			if k >= 0 {
				bins[j] = int(k)
			} else {
				bins[j] = n + int(k)
			}
		}

		p.kernels[d] = desc
		p.ks[d] = ks
		p.srcBins[d] = bins
		p.specDims[d] = specDim
	}

	if cfg.real {
		realGrid, err := fftbackend.NewRealGridWithMode(ntilde, cfg.plannerMode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFFTPlanFailed, err)
		}

		p.realGrid = realGrid
	} else {
		grid, err := fftbackend.NewGrid(ntilde)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFFTPlanFailed, err)
		}

		p.grid = grid
	}

	return p, nil
}

// SetPoints rebinds the plan's non-uniform point set to the D coordinate
// vectors in xs (one per axis, all of equal length P). It invalidates
// any previously bound points; point coordinates are canonicalised to
// [0, 2π) lazily, by the spreader/interpolator, rather than here.
func (p *Plan) SetPoints(xs [][]float64) error {
	if len(xs) != p.Dim() {
		return ErrDimensionMismatch
	}

	count := -1

	for _, axis := range xs {
		if count == -1 {
			count = len(axis)
		} else if len(axis) != count {
			return ErrPointCountMismatch
		}
	}

	p.coords = xs
	p.pointSet = true

	return nil
}

// pointCount returns P, or -1 if SetPoints has never been called.
func (p *Plan) pointCount() int {
	if !p.pointSet || len(p.coords) == 0 {
		return -1
	}

	return len(p.coords[0])
}

func (p *Plan) ntildeTotal() int { return productInts(p.ntilde) }

// acquireComplexGrids returns c zeroed oversampled complex grids, each
// of length ntildeTotal, reusing the plan's buffers when the channel
// count matches the previous call.
func (p *Plan) acquireComplexGrids(c int) [][]complex128 {
	total := p.ntildeTotal()

	if len(p.usC) != c || (c > 0 && len(p.usC[0]) != total) {
		p.usC = make([][]complex128, c)
		for i := range p.usC {
			p.usC[i] = make([]complex128, total)
		}

		return p.usC
	}

	for _, g := range p.usC {
		for i := range g {
			g[i] = 0
		}
	}

	return p.usC
}

func (p *Plan) acquireRealGrids(c int) [][]float64 {
	total := p.realGrid.RealLen()

	if len(p.usR) != c || (c > 0 && len(p.usR[0]) != total) {
		p.usR = make([][]float64, c)
		for i := range p.usR {
			p.usR[i] = make([]float64, total)
		}

		return p.usR
	}

	for _, g := range p.usR {
		for i := range g {
			g[i] = 0
		}
	}

	return p.usR
}

func (p *Plan) acquireSpectrumBuffers(c int) [][]complex128 {
	total := p.realGrid.SpectrumTotal()

	if len(p.spectrumR) != c || (c > 0 && len(p.spectrumR[0]) != total) {
		p.spectrumR = make([][]complex128, c)
		for i := range p.spectrumR {
			p.spectrumR[i] = make([]complex128, total)
		}
	}

	return p.spectrumR
}

func productInts(ns []int) int {
	total := 1
	for _, n := range ns {
		total *= n
	}

	return total
}

func productLens(vs [][]float64) int {
	total := 1
	for _, v := range vs {
		total *= len(v)
	}

	return total
}
