package nufft

// nextSmooth525 returns the smallest integer >= n that is a product of
// powers of 2, 3, and 5 (a "{2,3,5}-smooth" number), per §4.6's
// oversampled-size rule. n must be >= 1.
func nextSmooth525(n int) int {
	if n <= 1 {
		return 1
	}

	for candidate := n; ; candidate++ {
		if isSmooth525(candidate) {
			return candidate
		}
	}
}

func isSmooth525(n int) bool {
	for _, p := range [...]int{2, 3, 5} {
		for n%p == 0 {
			n /= p
		}
	}

	return n == 1
}

// oversampledSizes computes Ñ_d = nextSmooth525(floor(sigmaWant*N_d)) for
// every axis, and the effective oversampling sigma = max_d(Ñ_d/N_d).
func oversampledSizes(ns []int, sigmaWant float64) (ntilde []int, sigma float64) {
	ntilde = make([]int, len(ns))
	sigma = 1

	for d, n := range ns {
		want := int(sigmaWant * float64(n))
		if want < n {
			want = n
		}

		ntilde[d] = nextSmooth525(want)

		if ratio := float64(ntilde[d]) / float64(n); ratio > sigma {
			sigma = ratio
		}
	}

	return ntilde, sigma
}

// wavenumbers builds the FFT-natural wavenumber vector for an axis of n
// non-oversampled samples on a period-2π domain: real transforms use the
// real-FFT half-spectrum 0..n/2 on axis 0, every other axis (and every
// axis of a complex transform) uses the signed wraparound layout
// 0, 1, ..., n/2-1, -n/2, ..., -1.
func wavenumbers(n int, half bool) []float64 {
	if half {
		ks := make([]float64, n/2+1)
		for k := range ks {
			ks[k] = float64(k)
		}

		return ks
	}

	ks := make([]float64, n)
	for k := range ks {
		if k <= (n-1)/2 {
			ks[k] = float64(k)
		} else {
			ks[k] = float64(k - n)
		}
	}

	return ks
}
