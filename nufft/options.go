package nufft

import (
	"github.com/cwbudde/algo-nufft/internal/fftbackend"
	"github.com/cwbudde/algo-nufft/kernel"
)

// Config holds everything an Option can mutate before NewPlan builds the
// kernels, sizes, and FFT grid from it, in the same default-then-apply
// shape as the teacher's dsp/core.ApplyProcessorOptions.
type Config struct {
	oversampling float64
	halfWidth    int
	family       kernel.Family
	degree       int
	real         bool
	plannerMode  fftbackend.PlannerMode
}

// Option configures NewPlan beyond its required non-oversampled sizes.
type Option func(*Config)

// DefaultOptions returns the configuration NewPlan starts from when no
// Option overrides it: sigma=2, M=4, forward Kaiser-Bessel, complex
// input, the approximator's default polynomial degree, and the FFT
// planner's quick-estimate mode.
func DefaultOptions() Config {
	return Config{
		oversampling: 2.0,
		halfWidth:    4,
		family:       kernel.KaiserBessel,
		degree:       0, // 0 defers to kernel.OptimalKernel's own default
		real:         false,
		plannerMode:  fftbackend.PlannerEstimate,
	}
}

// WithOversampling sets the requested oversampling factor sigma. A value
// < 1 is rejected by NewPlan (ErrInvalidOversampling) rather than here,
// so the caller's mistake surfaces instead of silently falling back to
// the default. The plan's actual sigma, reported by Plan.Oversampling,
// may be larger than requested once Ñ is rounded up to a {2,3,5}-smooth
// size.
func WithOversampling(sigma float64) Option {
	return func(c *Config) { c.oversampling = sigma }
}

// WithHalfSupport sets the kernel half-width M (the kernel spans 2M
// oversampled grid cells per axis). A value < 1 is rejected by NewPlan
// (ErrInvalidHalfWidth) rather than here.
func WithHalfSupport(m int) Option {
	return func(c *Config) { c.halfWidth = m }
}

// WithKernel selects the kernel family.
func WithKernel(family kernel.Family) Option {
	return func(c *Config) {
		c.family = family
	}
}

// WithKernelDegree overrides the piecewise-polynomial degree used to fit
// each axis's kernel shape (see kernel.WithDegree).
func WithKernelDegree(n int) Option {
	return func(c *Config) {
		if n >= 1 {
			c.degree = n
		}
	}
}

// WithRealInput selects the real-valued transform: non-uniform sample
// values and recovered values are real float64 rather than complex128,
// and the oversampled grid uses the axis-0 half-spectrum real FFT
// (fftbackend.RealGrid) instead of a full complex Grid.
func WithRealInput(real bool) Option {
	return func(c *Config) { c.real = real }
}

// WithFFTPlanner overrides the planner search effort used when building
// the oversampled grid's FFT plans. It currently only affects the
// real-input transform's axis-0 real FFT; see PlannerMode's doc comment
// for why the complex path cannot take it yet.
func WithFFTPlanner(mode fftbackend.PlannerMode) Option {
	return func(c *Config) { c.plannerMode = mode }
}

func applyOptions(opts ...Option) Config {
	cfg := DefaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
