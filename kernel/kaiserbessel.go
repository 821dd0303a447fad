package kernel

import "github.com/cwbudde/algo-nufft/internal/besselmath"

// kaiserBesselBeta delegates to internal/besselmath for the FINUFFT /
// Shamshirgar-Bagge-Tornberg shape-parameter heuristic, shared by the
// forward and backwards Kaiser-Bessel families (they differ only in
// which grid cell each evaluated value is assigned to, not in shape).
func kaiserBesselBeta(halfWidth int, sigma float64) float64 {
	return besselmath.KaiserBesselBeta(halfWidth, sigma)
}

// kaiserBesselShape evaluates the unnormalised Kaiser-Bessel window at
// normalised coordinate x in [-1, 1].
func kaiserBesselShape(x, beta float64) float64 {
	return besselmath.EvaluateKernel(x, beta)
}

// fourierKaiserBessel evaluates the analytical Fourier transform of a
// Kaiser-Bessel window of physical half-width w = M*dx and shape beta.
func fourierKaiserBessel(k, w, beta float64) float64 {
	return besselmath.FourierKaiserBessel(k, w, beta)
}
