// Package besselmath provides the modified Bessel function I0 and the
// Kaiser-Bessel shape-parameter formulas used by the kernel library.
package besselmath

import "math"

const besselSmallArgThreshold = 3.75

// Chebyshev coefficients for I0(x), |x| < 3.75 (Abramowitz & Stegun 9.8.1).
const (
	i0SmallCoeff1 = 3.5156229
	i0SmallCoeff2 = 3.0899424
	i0SmallCoeff3 = 1.2067492
	i0SmallCoeff4 = 0.2659732
	i0SmallCoeff5 = 0.0360768
	i0SmallCoeff6 = 0.0045813
)

// Chebyshev coefficients for the asymptotic expansion, |x| >= 3.75 (9.8.2).
const (
	i0AsympCoeff0 = 0.39894228
	i0AsympCoeff1 = 0.01328592
	i0AsympCoeff2 = 0.00225319
	i0AsympCoeff3 = -0.00157565
	i0AsympCoeff4 = 0.00916281
	i0AsympCoeff5 = -0.02057706
	i0AsympCoeff6 = 0.02635537
	i0AsympCoeff7 = -0.01647633
	i0AsympCoeff8 = 0.00392377
)

// I0 computes the modified Bessel function of the first kind, order zero.
func I0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		y := x / besselSmallArgThreshold
		y *= y

		return 1.0 + y*(i0SmallCoeff1+y*(i0SmallCoeff2+y*(i0SmallCoeff3+
			y*(i0SmallCoeff4+y*(i0SmallCoeff5+y*i0SmallCoeff6)))))
	}

	y := besselSmallArgThreshold / ax

	poly := i0AsympCoeff0 + y*(i0AsympCoeff1+y*(i0AsympCoeff2+
		y*(i0AsympCoeff3+y*(i0AsympCoeff4+y*(i0AsympCoeff5+
			y*(i0AsympCoeff6+y*(i0AsympCoeff7+y*i0AsympCoeff8)))))))

	return math.Exp(ax) * poly / math.Sqrt(ax)
}

// KaiserBesselBeta returns the Kaiser-Bessel shape parameter for a kernel
// of half-width M oversampled by factor sigma, matched to the FINUFFT /
// Shamshirgar-Bagge-Tornberg heuristic beta = gamma*pi*M*(1 - 1/(2*sigma)).
// gamma trades kernel decay for main-lobe width; 0.97 is the empirical
// default used across that family of NUFFT implementations.
func KaiserBesselBeta(halfWidth int, sigma float64) float64 {
	const gamma = 0.97

	return gamma * math.Pi * float64(halfWidth) * (1 - 1/(2*sigma))
}

// EvaluateKernel returns the unnormalised Kaiser-Bessel window value at
// reduced coordinate x in [-1, 1], I0(beta*sqrt(1-x^2)).
func EvaluateKernel(x, beta float64) float64 {
	arg := 1 - x*x
	if arg < 0 {
		arg = 0
	}

	return I0(beta * math.Sqrt(arg))
}

// FourierKaiserBessel evaluates the (unnormalised) analytical Fourier
// transform of the Kaiser-Bessel window of half-width w (in the same
// length units as k^-1) and shape beta, at wavenumber k:
//
//	b = sqrt(beta^2 - (w*k)^2)
//	ghat(k) = 2*w*sinh(b)/b          if beta^2 >= (w*k)^2
//	ghat(k) = 2*w*sin(b')/b'         otherwise, b' = sqrt((w*k)^2 - beta^2)
//
// Both branches are continuous at b == 0, where the ratio is taken as 1.
func FourierKaiserBessel(k, w, beta float64) float64 {
	wk := w * k
	disc := beta*beta - wk*wk

	if disc >= 0 {
		b := math.Sqrt(disc)
		if b < 1e-8 {
			return 2 * w
		}

		return 2 * w * math.Sinh(b) / b
	}

	b := math.Sqrt(-disc)

	return 2 * w * math.Sin(b) / b
}
