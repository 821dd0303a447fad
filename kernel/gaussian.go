package kernel

import "math"

// gaussianTau picks the Gaussian spreading kernel's width parameter from
// the half-width M and oversampling sigma, in the style of Greengard and
// Lee's NUFFT gridding kernel: tau grows with M and also grows as sigma
// approaches its lower bound of 1, giving a wider real-space footprint
// at low oversampling.
func gaussianTau(halfWidth int, sigma float64) float64 {
	return math.Pi * float64(halfWidth) / (sigma * (sigma - 0.5))
}

// gaussianShape evaluates exp(-(M*x)^2/tau) at normalised coordinate x in
// [-1, 1].
func gaussianShape(x float64, halfWidth int, tau float64) float64 {
	t := float64(halfWidth) * x

	return math.Exp(-t * t / tau)
}

// fourierGaussian returns the analytical Fourier transform of the
// physical-space Gaussian exp(-t^2/tauPhys), tauPhys = tau*dx^2, namely
// sqrt(pi*tauPhys) * exp(-k^2*tauPhys/4).
func fourierGaussian(k, tau, dx float64) float64 {
	tauPhys := tau * dx * dx

	return math.Sqrt(math.Pi*tauPhys) * math.Exp(-k*k*tauPhys/4)
}
