// Package gridindex maps non-uniform point coordinates onto the
// oversampled grid's cell indices, and expands a central cell into its
// 2M periodic or interior neighbours for the spreader and interpolator.
package gridindex

import (
	"errors"
	"fmt"
	"math"
)

// ErrHalfWidthTooLarge is returned when the kernel half-width M does not
// satisfy the precondition M < N/2 for an axis of length N.
var ErrHalfWidthTooLarge = errors.New("gridindex: half-width must be < axisLen/2")

// ErrBufferLength is returned when a caller's destination slice is not
// exactly 2*M long.
var ErrBufferLength = errors.New("gridindex: destination buffer must have length 2*M")

// ToUnitCell reduces x to [0, period) by subtracting whole multiples of
// period, the "to_unit_cell" operation coordinates must pass through
// before indexing if they may fall outside [0, period).
func ToUnitCell(x, period float64) float64 {
	return x - period*math.Floor(x/period)
}

// CentralCell returns the 1-based index i of the grid cell containing x,
// for a grid of step dx: i = floor(x/dx) + 1, with a drift correction
// for the case where floating-point rounding makes x/dx land just below
// an integer even though x >= i*dx, so that the returned i always
// satisfies (i-1)*dx <= x < i*dx.
func CentralCell(x, dx float64) int {
	i := int(math.Floor(x/dx)) + 1
	if float64(i)*dx <= x {
		i++
	}

	return i
}

// Offset returns the fractional position of x within cell i, in [0, 1):
// (x/dx) - (i-1).
func Offset(x, dx float64, i int) float64 {
	return x/dx - float64(i-1)
}

// ValidateHalfWidth checks the precondition M < axisLen/2 required before
// any neighbour expansion on an axis of length axisLen.
func ValidateHalfWidth(halfWidth, axisLen int) error {
	if 2*halfWidth >= axisLen {
		return fmt.Errorf("%w: M=%d, axisLen=%d", ErrHalfWidthTooLarge, halfWidth, axisLen)
	}

	return nil
}

// PeriodicNeighbours writes the 2*halfWidth grid indices
// (i-halfWidth+1)..(i+halfWidth), wrapped modulo axisLen into 1..axisLen,
// into dst. It computes the starting wrapped index once and then emits
// each successor with a single wraparound check, per the branch-light
// requirement of the hot spreading/interpolation loop.
func PeriodicNeighbours(dst []int, i, halfWidth, axisLen int) error {
	if len(dst) != 2*halfWidth {
		return ErrBufferLength
	}

	if err := ValidateHalfWidth(halfWidth, axisLen); err != nil {
		return err
	}

	start := i - halfWidth + 1
	for start < 1 {
		start += axisLen
	}

	for start > axisLen {
		start -= axisLen
	}

	j := start
	for k := range dst {
		dst[k] = j

		if j == axisLen {
			j = 1
		} else {
			j++
		}
	}

	return nil
}

// PeriodicNeighboursBackward writes the mirrored neighbour order the
// backwards Kaiser-Bessel family pairs its Evaluate-ordered weights
// against: dst[j-1] = i+halfWidth-j for j=1..2*halfWidth (i.e. i+M-1,
// i+M-2, ..., i-M), wrapped modulo axisLen into 1..axisLen. This is the
// same neighbourhood as PeriodicNeighbours, walked in the opposite
// direction and starting one cell further out, so that entry j lands in
// cell i+M-j instead of i-M+j.
func PeriodicNeighboursBackward(dst []int, i, halfWidth, axisLen int) error {
	if len(dst) != 2*halfWidth {
		return ErrBufferLength
	}

	if err := ValidateHalfWidth(halfWidth, axisLen); err != nil {
		return err
	}

	start := i + halfWidth - 1
	for start > axisLen {
		start -= axisLen
	}

	for start < 1 {
		start += axisLen
	}

	j := start
	for k := range dst {
		dst[k] = j

		if j == 1 {
			j = axisLen
		} else {
			j--
		}
	}

	return nil
}

// InteriorNeighbours writes the 2*halfWidth grid indices
// (i-halfWidth+1)..(i+halfWidth) into dst without wrapping. It is used
// once the grid has been partitioned into blocks with a halo of
// halfWidth cells on each side, where the caller guarantees every index
// in range without periodic correction.
func InteriorNeighbours(dst []int, i, halfWidth int) error {
	if len(dst) != 2*halfWidth {
		return ErrBufferLength
	}

	start := i - halfWidth + 1
	for k := range dst {
		dst[k] = start + k
	}

	return nil
}
