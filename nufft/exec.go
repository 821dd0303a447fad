package nufft

import (
	"fmt"

	"github.com/cwbudde/algo-nufft/spread"
)

// ExecType1 runs the complex-valued non-uniform -> uniform transform:
// spread values onto the oversampled grid, forward-FFT it, then
// deconvolve by each axis's kernel Fourier transform and truncate to
// the non-oversampled coefficient grid. values and out each hold one
// slice per channel; values[c] has length P (the bound point count),
// out[c] has length CoefficientLen(). It requires a plan built without
// WithRealInput.
func (p *Plan) ExecType1(values [][]complex128, out [][]complex128) error {
	if p.real {
		return ErrWrongInputMode
	}

	if err := p.validateComplexArgs(values, out); err != nil {
		return err
	}

	us := p.acquireComplexGrids(len(values))
	pts := &spread.Points{Coords: p.coords, Values: values}

	if err := spread.Type1(p.kernels, p.ntilde, pts, us, spread.Options{}); err != nil {
		return fmt.Errorf("nufft: ExecType1: %w", err)
	}

	for c := range us {
		if err := p.grid.Forward(us[c]); err != nil {
			return fmt.Errorf("%w: %v", ErrFFTPlanFailed, err)
		}

		p.deconvolveForward(us[c], p.ntilde, out[c])
	}

	return nil
}

// ExecType2 runs the complex-valued uniform -> non-uniform transform:
// populate the oversampled spectrum from in, divided by each axis's
// kernel Fourier transform, inverse-FFT it, then interpolate at the
// bound points into values. in and values each hold one slice per
// channel; in[c] has length CoefficientLen(), values[c] has length P.
// It requires a plan built without WithRealInput.
func (p *Plan) ExecType2(in [][]complex128, values [][]complex128) error {
	if p.real {
		return ErrWrongInputMode
	}

	if err := p.validateComplexArgs(values, in); err != nil {
		return err
	}

	us := p.acquireComplexGrids(len(in))

	for c := range us {
		p.populateBackward(in[c], p.ntilde, us[c])

		if err := p.grid.Inverse(us[c]); err != nil {
			return fmt.Errorf("%w: %v", ErrFFTPlanFailed, err)
		}
	}

	pts := &spread.Points{Coords: p.coords, Values: values}

	if err := spread.Type2(p.kernels, p.ntilde, us, pts, spread.Options{}); err != nil {
		return fmt.Errorf("nufft: ExecType2: %w", err)
	}

	return nil
}

// ExecType1Real runs the real-valued non-uniform -> uniform transform,
// using the axis-0 half-spectrum real FFT. values holds one real slice
// per channel (length P); out holds one complex slice per channel
// (length CoefficientLen(), the half-spectrum coefficient count). It
// requires a plan built WithRealInput(true).
func (p *Plan) ExecType1Real(values [][]float64, out [][]complex128) error {
	if !p.real {
		return ErrWrongInputMode
	}

	if err := p.validateRealValues(values); err != nil {
		return err
	}

	if err := p.validateComplexCoefficients(out, len(values)); err != nil {
		return err
	}

	c := len(values)
	us := p.acquireRealGrids(c)
	spectra := p.acquireSpectrumBuffers(c)

	complexValues := make([][]complex128, c)
	for i, v := range values {
		complexValues[i] = make([]complex128, len(v))
		for j, x := range v {
			complexValues[i][j] = complex(x, 0)
		}
	}

	usC := make([][]complex128, c)
	for i := range usC {
		usC[i] = make([]complex128, len(us[i]))
	}

	pts := &spread.Points{Coords: p.coords, Values: complexValues}
	if err := spread.Type1(p.kernels, p.ntilde, pts, usC, spread.Options{}); err != nil {
		return fmt.Errorf("nufft: ExecType1Real: %w", err)
	}

	for i := range us {
		for j, v := range usC[i] {
			us[i][j] = real(v)
		}

		if err := p.realGrid.Forward(spectra[i], us[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrFFTPlanFailed, err)
		}

		p.deconvolveForward(spectra[i], p.specDims, out[i])
	}

	return nil
}

// ExecType2Real runs the real-valued uniform -> non-uniform transform.
// in holds one half-spectrum complex slice per channel (length
// CoefficientLen()); values holds one real slice per channel (length
// P), overwritten with the real part of the interpolated result. It
// requires a plan built WithRealInput(true).
func (p *Plan) ExecType2Real(in [][]complex128, values [][]float64) error {
	if !p.real {
		return ErrWrongInputMode
	}

	if err := p.validateRealValues(values); err != nil {
		return err
	}

	if err := p.validateComplexCoefficients(in, len(values)); err != nil {
		return err
	}

	c := len(in)
	us := p.acquireRealGrids(c)
	spectra := p.acquireSpectrumBuffers(c)

	for i := range in {
		p.populateBackward(in[i], p.specDims, spectra[i])

		if err := p.realGrid.Inverse(us[i], spectra[i]); err != nil {
			return fmt.Errorf("%w: %v", ErrFFTPlanFailed, err)
		}
	}

	usC := make([][]complex128, c)
	for i := range us {
		usC[i] = make([]complex128, len(us[i]))
		for j, v := range us[i] {
			usC[i][j] = complex(v, 0)
		}
	}

	complexValues := make([][]complex128, c)
	for i, v := range values {
		complexValues[i] = make([]complex128, len(v))
	}

	pts := &spread.Points{Coords: p.coords, Values: complexValues}
	if err := spread.Type2(p.kernels, p.ntilde, usC, pts, spread.Options{}); err != nil {
		return fmt.Errorf("nufft: ExecType2Real: %w", err)
	}

	for i, v := range complexValues {
		for j, x := range v {
			values[i][j] = real(x)
		}
	}

	return nil
}

func (p *Plan) validateComplexArgs(values, coeffs [][]complex128) error {
	if len(values) != len(coeffs) {
		return ErrChannelMismatch
	}

	if err := p.validatePointsBound(); err != nil {
		return err
	}

	count := p.pointCount()
	for _, v := range values {
		if len(v) != count {
			return ErrPointCountMismatch
		}
	}

	coefLen := p.CoefficientLen()
	for _, o := range coeffs {
		if len(o) != coefLen {
			return ErrCoefficientLength
		}
	}

	return nil
}

func (p *Plan) validateRealValues(values [][]float64) error {
	if err := p.validatePointsBound(); err != nil {
		return err
	}

	count := p.pointCount()
	for _, v := range values {
		if len(v) != count {
			return ErrPointCountMismatch
		}
	}

	return nil
}

func (p *Plan) validateComplexCoefficients(coeffs [][]complex128, channels int) error {
	if len(coeffs) != channels {
		return ErrChannelMismatch
	}

	coefLen := p.CoefficientLen()
	for _, c := range coeffs {
		if len(c) != coefLen {
			return ErrCoefficientLength
		}
	}

	return nil
}

func (p *Plan) validatePointsBound() error {
	if !p.pointSet {
		return ErrPointsNotSet
	}

	return nil
}

// deconvolveForward divides the oversampled spectrum src (laid out
// row-major over specSizes) by the tensor product of each axis's
// kernel Fourier transform, truncating to the non-oversampled
// coefficient grid dst (row-major over p.ks's lengths).
func (p *Plan) deconvolveForward(src []complex128, specSizes []int, dst []complex128) {
	ghats := p.fourierCoefficients()

	var recurse func(axis, dstFlat, srcFlat int, denom float64)
	recurse = func(axis, dstFlat, srcFlat int, denom float64) {
		if axis == len(p.ks) {
			dst[dstFlat] = src[srcFlat] / complex(denom, 0)
			return
		}

		for j := 0; j < len(p.ks[axis]); j++ {
			recurse(axis+1, dstFlat*len(p.ks[axis])+j, srcFlat*specSizes[axis]+p.srcBins[axis][j], denom*ghats[axis][j])
		}
	}

	recurse(0, 0, 0, 1)
}

// populateBackward zeroes dst (laid out row-major over specSizes) and
// writes src (the non-oversampled coefficient grid, row-major over
// p.ks's lengths) into its truncation subset, dividing by the same
// tensor product deconvolveForward divides by.
func (p *Plan) populateBackward(src []complex128, specSizes []int, dst []complex128) {
	for i := range dst {
		dst[i] = 0
	}

	ghats := p.fourierCoefficients()

	var recurse func(axis, srcFlat, dstFlat int, denom float64)
	recurse = func(axis, srcFlat, dstFlat int, denom float64) {
		if axis == len(p.ks) {
			dst[dstFlat] = src[srcFlat] / complex(denom, 0)
			return
		}

		for j := 0; j < len(p.ks[axis]); j++ {
			recurse(axis+1, srcFlat*len(p.ks[axis])+j, dstFlat*specSizes[axis]+p.srcBins[axis][j], denom*ghats[axis][j])
		}
	}

	recurse(0, 0, 0, 1)
}

func (p *Plan) fourierCoefficients() [][]float64 {
	ghats := make([][]float64, len(p.kernels))

	for d, k := range p.kernels {
		g, err := k.FourierCoefficients(len(p.ks[d]))
		if err != nil {
			// PrepareFourierCoefficients is always called with this exact
			// length at NewPlan time, so this cannot happen.
			panic(fmt.Sprintf("nufft: axis %d: %v", d, err))
		}

		ghats[d] = g
	}

	return ghats
}
