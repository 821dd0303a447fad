package nufft

import "errors"

// Sentinel errors returned by the planner/driver, grouped by the three
// kinds §7 of the kernel spec distinguishes: precondition, numerical, and
// resource.

var (
	// ErrInvalidSizes is returned when a requested non-oversampled axis
	// length is not positive.
	ErrInvalidSizes = errors.New("nufft: non-oversampled sizes must all be >= 1")
	// ErrInvalidOversampling is returned when the requested oversampling
	// factor sigma is < 1.
	ErrInvalidOversampling = errors.New("nufft: oversampling sigma must be >= 1")
	// ErrInvalidHalfWidth is returned when the requested half-width M is
	// not a positive integer, or violates M < axisLen/2 on some axis.
	ErrInvalidHalfWidth = errors.New("nufft: half-width M must satisfy 1 <= M < axisLen/2")

	// ErrDimensionMismatch is returned when a caller's point-set,
	// channel, or coefficient arguments disagree with the plan's
	// dimensionality.
	ErrDimensionMismatch = errors.New("nufft: mismatched number of axes")
	// ErrChannelMismatch is returned when a caller's per-channel
	// argument count differs between values and output coefficients.
	ErrChannelMismatch = errors.New("nufft: mismatched number of channels")
	// ErrCoefficientLength is returned when a per-channel coefficient
	// buffer is not exactly Plan.CoefficientLen() long.
	ErrCoefficientLength = errors.New("nufft: coefficient buffer length mismatch")
	// ErrPointsNotSet is returned by ExecType1/ExecType2 when called
	// before SetPoints.
	ErrPointsNotSet = errors.New("nufft: SetPoints must be called before executing a transform")
	// ErrPointCountMismatch is returned when a values/points argument's
	// point count disagrees with the bound point set.
	ErrPointCountMismatch = errors.New("nufft: mismatched point count")

	// ErrShapeOverflow is returned by NewPlan when building an axis's
	// kernel descriptor fails; it wraps whatever error
	// kernel.OptimalKernel returned. No separate overflow check of the
	// shape parameter (Kaiser-Bessel beta, Gaussian tau) is made.
	ErrShapeOverflow = errors.New("nufft: kernel shape parameter overflow")

	// ErrFFTPlanFailed is returned when the FFT collaborator could not
	// build a plan for an oversampled grid size.
	ErrFFTPlanFailed = errors.New("nufft: FFT plan construction failed")

	// ErrWrongInputMode is returned when ExecType1/ExecType2 is called on
	// a plan built WithRealInput(true), or ExecType1Real/ExecType2Real is
	// called on one that was not.
	ErrWrongInputMode = errors.New("nufft: method does not match the plan's real/complex input mode")
)
