// Package kernel implements the smoothing-kernel library the NUFFT
// spreader and interpolator convolve non-uniform points against: a
// B-spline, a Gaussian, a Kaiser-Bessel, and a "backwards" Kaiser-Bessel
// variant, each exposing a real-space evaluator of 2M contiguous values
// around a point, an analytical Fourier transform used to deconvolve the
// FFT output, and a rule for picking shape parameters from the half-width
// M and the oversampling factor sigma.
//
// Every family's real-space shape is tabulated once, at construction
// time, into a piecewise-polynomial approximation (see the internal
// approx package) rather than evaluated directly: the closed forms below
// involve a Bessel function, an alternating binomial sum, or a Gaussian
// exponential, all of which are too slow to call 2M times per
// non-uniform point in the spreader's inner loop.
//
// Example:
//
//	d, err := kernel.OptimalKernel(kernel.KaiserBessel, 4, dx, 2.0)
//	if err != nil {
//		// handle
//	}
//	values := make([]float64, d.Width())
//	i, err := d.Evaluate(x0, values)
package kernel
