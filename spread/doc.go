// Package spread implements the NUFFT's two core data-movement
// operations on an oversampled grid: Type1 scatters non-uniform point
// values onto the grid weighted by a tensor product of 1-D kernel
// vectors (spreading), and Type2 gathers grid values back onto
// non-uniform points (interpolation). Both share the same D-nested
// tensor-product inner loop over the 2M neighbours per axis; Type1
// writes and therefore partitions points across per-worker shadow grids
// that are summed at the end, while Type2 only reads and needs no
// coordination between workers.
package spread
