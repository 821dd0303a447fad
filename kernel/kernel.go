package kernel

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-nufft/gridindex"
	"github.com/cwbudde/algo-nufft/internal/approx"
)

// Family names one of the four supported kernel shapes.
type Family int

const (
	// BSpline is the centred cardinal B-spline of order 2M.
	BSpline Family = iota
	// Gaussian is the Greengard-Lee spreading kernel.
	Gaussian
	// KaiserBessel is the forward Kaiser-Bessel window.
	KaiserBessel
	// KaiserBesselBackward evaluates the same window at mirrored grid
	// offsets, for drivers that prefer the opposite neighbour ordering.
	KaiserBesselBackward
)

func (f Family) String() string {
	switch f {
	case BSpline:
		return "bspline"
	case Gaussian:
		return "gaussian"
	case KaiserBessel:
		return "kaiser-bessel"
	case KaiserBesselBackward:
		return "kaiser-bessel-backward"
	default:
		return fmt.Sprintf("kernel.Family(%d)", int(f))
	}
}

// Sentinel errors returned by the kernel library.
var (
	// ErrInvalidHalfWidth is returned when M < 1.
	ErrInvalidHalfWidth = errors.New("kernel: half-width M must be >= 1")
	// ErrInvalidGridStep is returned when Δx <= 0.
	ErrInvalidGridStep = errors.New("kernel: grid step must be > 0")
	// ErrInvalidOversampling is returned when σ < 1.
	ErrInvalidOversampling = errors.New("kernel: oversampling sigma must be >= 1")
	// ErrUnknownFamily is returned for a Family value outside the four
	// supported variants.
	ErrUnknownFamily = errors.New("kernel: unknown family")
	// ErrBufferLength is returned by Evaluate when the caller's output
	// slice is not exactly Width() long.
	ErrBufferLength = errors.New("kernel: output buffer must have length 2*M")
	// ErrWavenumberLength is returned by FourierCoefficients when the
	// requested length does not match the cache PrepareFourierCoefficients
	// built (or no cache was built).
	ErrWavenumberLength = errors.New("kernel: wavenumber vector length mismatch")
)

const defaultDegree = 8

// buildConfig holds the options OptimalKernel accepts.
type buildConfig struct {
	degree int
}

// Option configures OptimalKernel beyond its required arguments, following
// the functional-options idiom used throughout this module.
type Option func(*buildConfig)

// WithDegree overrides the piecewise-polynomial size N (polynomials of
// degree N-1) used to fit the kernel's real-space shape. The default,
// N = 8, keeps the approximation
// error below the kernel's own design tolerance for half-widths up to
// about 10; very large M may warrant a higher degree.
func WithDegree(n int) Option {
	return func(c *buildConfig) { c.degree = n }
}

// Descriptor is an immutable, constructed kernel ready to evaluate at
// points on one axis of the oversampled grid. Once built, its
// piecewise-polynomial table never changes; its Fourier-coefficient
// cache is filled exactly once, by PrepareFourierCoefficients, rather
// than mutated lazily on first use.
type Descriptor struct {
	family    Family
	halfWidth int
	dx        float64
	shape     float64 // beta for Kaiser-Bessel families, tau for Gaussian, unused for B-spline
	table     *approx.Table
	ghat      []float64
}

// HalfWidth returns M.
func (d *Descriptor) HalfWidth() int { return d.halfWidth }

// Width returns 2M, the number of contiguous grid cells this kernel
// touches per axis.
func (d *Descriptor) Width() int { return 2 * d.halfWidth }

// GridStep returns the oversampled grid step Δx this descriptor was built
// for.
func (d *Descriptor) GridStep() float64 { return d.dx }

// Family returns the kernel family this descriptor implements.
func (d *Descriptor) Family() Family { return d.family }

// OptimalKernel builds a kernel descriptor for the given family, picking
// shape parameters from the half-width M, the oversampled grid step Δx,
// and the oversampling factor sigma, then fitting the resulting
// real-space shape with a piecewise-polynomial table of 2M subintervals.
func OptimalKernel(family Family, halfWidth int, dx, sigma float64, opts ...Option) (*Descriptor, error) {
	if halfWidth < 1 {
		return nil, ErrInvalidHalfWidth
	}

	if dx <= 0 {
		return nil, ErrInvalidGridStep
	}

	if sigma < 1 {
		return nil, ErrInvalidOversampling
	}

	cfg := buildConfig{degree: defaultDegree}
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Descriptor{family: family, halfWidth: halfWidth, dx: dx}

	var shapeFn func(float64) float64

	switch family {
	case BSpline:
		shapeFn = func(x float64) float64 { return bsplineShape(x, halfWidth) }
	case Gaussian:
		d.shape = gaussianTau(halfWidth, sigma)
		shapeFn = func(x float64) float64 { return gaussianShape(x, halfWidth, d.shape) }
	case KaiserBessel, KaiserBesselBackward:
		d.shape = kaiserBesselBeta(halfWidth, sigma)
		shapeFn = func(x float64) float64 { return kaiserBesselShape(x, d.shape) }
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFamily, family)
	}

	table, err := approx.Build(shapeFn, halfWidth, cfg.degree)
	if err != nil {
		return nil, fmt.Errorf("kernel: fitting %v shape: %w", family, err)
	}

	d.table = table

	return d, nil
}

// Evaluate returns the central cell index i for point coordinate x0 and
// writes the 2M sampled kernel values into out (which must have length
// Width()). For the forward families, out[j-1] corresponds to grid cell
// i-M+j (1-based j); for the backwards Kaiser-Bessel family it
// corresponds to i+M-j instead, reusing the same table values under the
// kernel's even symmetry.
func (d *Descriptor) Evaluate(x0 float64, out []float64) (int, error) {
	if len(out) != d.Width() {
		return 0, fmt.Errorf("%w: got %d, want %d", ErrBufferLength, len(out), d.Width())
	}

	m := float64(d.halfWidth)

	i := gridindex.CentralCell(x0, d.dx)
	x := gridindex.Offset(x0, d.dx, i) // fractional part of x/dx, in [0, 1)
	capitalX := x / m                  // normalised offset inside the central cell, in [0, 1/M)

	for j := 1; j <= d.halfWidth*2; j++ {
		y := capitalX + (m-float64(j))/m

		v, err := d.table.Eval(y)
		if err != nil {
			return 0, fmt.Errorf("kernel: evaluating %v at j=%d: %w", d.family, j, err)
		}

		out[j-1] = v
	}

	return i, nil
}

// Fourier returns the kernel's analytical Fourier transform at wavenumber
// k, used to deconvolve the FFT output.
func (d *Descriptor) Fourier(k float64) float64 {
	switch d.family {
	case BSpline:
		return fourierBSpline(k, d.halfWidth, d.dx)
	case Gaussian:
		return fourierGaussian(k, d.shape, d.dx)
	case KaiserBessel, KaiserBesselBackward:
		return fourierKaiserBessel(k, float64(d.halfWidth)*d.dx, d.shape)
	default:
		return 0
	}
}

// PrepareFourierCoefficients evaluates Fourier at every entry of ks and
// caches the result. It must be called at most once per descriptor,
// before any call to FourierCoefficients; the wavenumber set is fixed by
// the owning plan at construction time, so there is no need to support a
// lazily-mutated cache the way the spec's originating system does.
func (d *Descriptor) PrepareFourierCoefficients(ks []float64) {
	ghat := make([]float64, len(ks))
	for i, k := range ks {
		ghat[i] = d.Fourier(k)
	}

	d.ghat = ghat
}

// FourierCoefficients returns the cache PrepareFourierCoefficients built,
// or an error if it was never called or the caller's wavenumber count no
// longer matches it.
func (d *Descriptor) FourierCoefficients(wantLen int) ([]float64, error) {
	if len(d.ghat) != wantLen {
		return nil, fmt.Errorf("%w: cached %d, want %d", ErrWavenumberLength, len(d.ghat), wantLen)
	}

	return d.ghat, nil
}
