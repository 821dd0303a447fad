package spread

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-nufft/gridindex"
	"github.com/cwbudde/algo-nufft/kernel"
)

// Sentinel errors returned by Type1 and Type2.
var (
	// ErrDimensionMismatch is returned when the number of kernel
	// descriptors, grid sizes, and point coordinate axes disagree.
	ErrDimensionMismatch = errors.New("spread: mismatched number of axes")
	// ErrChannelMismatch is returned when the number of value channels
	// differs between the point set and the grid buffers.
	ErrChannelMismatch = errors.New("spread: mismatched number of channels")
	// ErrPointCountMismatch is returned when a point set's per-axis
	// coordinate slices or per-channel value slices have different
	// lengths.
	ErrPointCountMismatch = errors.New("spread: mismatched point count")
	// ErrGridLength is returned when a grid buffer is shorter than the
	// product of its declared sizes.
	ErrGridLength = errors.New("spread: grid buffer shorter than product of sizes")
)

// Points holds P non-uniform points in D dimensions and C co-located
// sample values per point, stored as structure-of-arrays: Coords[d] and
// Values[c] are each contiguous slices of length P, which keeps the
// per-axis kernel evaluation in Type1/Type2's hot loop reading
// contiguous memory.
type Points struct {
	Coords [][]float64
	Values [][]complex128
}

// Count returns P, the number of points, inferred from Coords[0].
func (p *Points) Count() int {
	if len(p.Coords) == 0 {
		return 0
	}

	return len(p.Coords[0])
}

func validate(kernels []*kernel.Descriptor, sizes []int, pts *Points, grids [][]complex128) error {
	d := len(kernels)
	if len(sizes) != d || len(pts.Coords) != d {
		return ErrDimensionMismatch
	}

	c := len(pts.Values)
	if len(grids) != c {
		return ErrChannelMismatch
	}

	p := pts.Count()
	for _, coords := range pts.Coords {
		if len(coords) != p {
			return ErrPointCountMismatch
		}
	}

	for _, vals := range pts.Values {
		if len(vals) != p {
			return ErrPointCountMismatch
		}
	}

	total := 1
	for _, n := range sizes {
		total *= n
	}

	for _, g := range grids {
		if len(g) < total {
			return ErrGridLength
		}
	}

	return nil
}

// Options configures Type1's concurrency behaviour.
type Options struct {
	// Workers is the number of goroutines to partition points across.
	// Zero (the default) uses runtime.NumCPU().
	Workers int
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}

	return runtime.NumCPU()
}

// Type1 scatters pts onto grids (one oversampled buffer per channel,
// row-major, last axis fastest, already zero-initialised by the
// caller), weighted by the tensor product of each axis's kernel values
// and periodic neighbour wrap. Points are partitioned across Workers
// goroutines, each accumulating into a private shadow copy of grids;
// the shadows are summed into the caller's buffers once every worker
// finishes, which avoids write races over the shared 2M^D neighbourhood
// without needing spatial block partitioning.
func Type1(kernels []*kernel.Descriptor, sizes []int, pts *Points, grids [][]complex128, opts Options) error {
	if err := validate(kernels, sizes, pts, grids); err != nil {
		return err
	}

	p := pts.Count()
	if p == 0 {
		return nil
	}

	workers := opts.workers()
	if workers > p {
		workers = p
	}

	total := 1
	for _, n := range sizes {
		total *= n
	}

	shadows := make([][][]complex128, workers)
	for w := range shadows {
		shadows[w] = make([][]complex128, len(grids))
		for c := range shadows[w] {
			shadows[w][c] = make([]complex128, total)
		}
	}

	var wg sync.WaitGroup

	chunk := (p + workers - 1) / workers
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= p {
			break
		}

		end := start + chunk
		if end > p {
			end = p
		}

		wg.Add(1)

		go func(w, start, end int) {
			defer wg.Done()

			errs[w] = spreadRange(kernels, sizes, pts, shadows[w], start, end)
		}(w, start, end)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	for c := range grids {
		for w := range shadows {
			acc := shadows[w][c]
			for i, v := range acc {
				grids[c][i] += v
			}
		}
	}

	return nil
}

func spreadRange(kernels []*kernel.Descriptor, sizes []int, pts *Points, grids [][]complex128, start, end int) error {
	d := len(kernels)
	widths := make([]int, d)
	indices := make([][]int, d)
	values := make([][]float64, d)
	scales := axisGridStepScales(kernels, widths, indices, values)

	counter := make([]int, d)

	for p := start; p < end; p++ {
		if err := prepareAxes(kernels, sizes, pts, p, indices, values, scales); err != nil {
			return fmt.Errorf("spread: point %d: %w", p, err)
		}

		for i := range counter {
			counter[i] = 0
		}

		scatterGather(sizes, widths, indices, values, counter, func(flatIdx int, weight float64) {
			for c, vals := range pts.Values {
				grids[c][flatIdx] += complex(weight, 0) * vals[p]
			}
		})
	}

	return nil
}

// Type2 gathers grids back onto pts.Values, overwriting them; it is the
// adjoint of Type1's scatter and needs no coordination between workers
// since every point only reads shared state and writes its own output
// slots.
func Type2(kernels []*kernel.Descriptor, sizes []int, grids [][]complex128, pts *Points, opts Options) error {
	if err := validate(kernels, sizes, pts, grids); err != nil {
		return err
	}

	p := pts.Count()
	if p == 0 {
		return nil
	}

	for c := range pts.Values {
		for i := range pts.Values[c] {
			pts.Values[c][i] = 0
		}
	}

	workers := opts.workers()
	if workers > p {
		workers = p
	}

	var wg sync.WaitGroup

	chunk := (p + workers - 1) / workers
	errs := make([]error, workers)

	for w := 0; w < workers; w++ {
		start := w * chunk
		if start >= p {
			break
		}

		end := start + chunk
		if end > p {
			end = p
		}

		wg.Add(1)

		go func(w, start, end int) {
			defer wg.Done()

			errs[w] = interpolateRange(kernels, sizes, grids, pts, start, end)
		}(w, start, end)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	return nil
}

func interpolateRange(kernels []*kernel.Descriptor, sizes []int, grids [][]complex128, pts *Points, start, end int) error {
	d := len(kernels)
	widths := make([]int, d)
	indices := make([][]int, d)
	values := make([][]float64, d)
	scales := axisGridStepScales(kernels, widths, indices, values)

	counter := make([]int, d)
	sums := make([]complex128, len(grids))

	for p := start; p < end; p++ {
		if err := prepareAxes(kernels, sizes, pts, p, indices, values, scales); err != nil {
			return fmt.Errorf("spread: point %d: %w", p, err)
		}

		for i := range counter {
			counter[i] = 0
		}

		for i := range sums {
			sums[i] = 0
		}

		scatterGather(sizes, widths, indices, values, counter, func(flatIdx int, weight float64) {
			for c, g := range grids {
				sums[c] += complex(weight, 0) * g[flatIdx]
			}
		})

		for c := range pts.Values {
			pts.Values[c][p] = sums[c]
		}
	}

	return nil
}

// axisGridStepScales allocates the per-axis index/value scratch slices
// shared across every point in a spreadRange/interpolateRange call, and
// returns one broadcast vector per axis (each entry equal to that axis's
// grid step Δx̃) for vecmath.MulBlockInPlace to scale the kernel values
// by, so the discrete sum approximates the continuous convolution
// integral. The broadcast vectors are built once per worker range, not
// once per point, since Δx̃ never varies across points.
func axisGridStepScales(kernels []*kernel.Descriptor, widths []int, indices [][]int, values [][]float64) [][]float64 {
	scales := make([][]float64, len(kernels))

	for axis, k := range kernels {
		widths[axis] = k.Width()
		indices[axis] = make([]int, widths[axis])
		values[axis] = make([]float64, widths[axis])

		scale := make([]float64, widths[axis])
		for j := range scale {
			scale[j] = k.GridStep()
		}

		scales[axis] = scale
	}

	return scales
}

// prepareAxes evaluates every axis's kernel at point p, scales its 2M
// values by the corresponding grid step via scales, and expands the
// periodic neighbour indices. The backwards Kaiser-Bessel family pairs
// those same values against the mirrored neighbour order
// gridindex.PeriodicNeighboursBackward produces instead of the forward
// ascending order, per kernel.Descriptor.Evaluate's documented
// i+M-j assignment.
func prepareAxes(kernels []*kernel.Descriptor, sizes []int, pts *Points, p int, indices [][]int, values [][]float64, scales [][]float64) error {
	for axis, k := range kernels {
		x := gridindex.ToUnitCell(pts.Coords[axis][p], 2*math.Pi)

		i, err := k.Evaluate(x, values[axis])
		if err != nil {
			return fmt.Errorf("axis %d: %w", axis, err)
		}

		vecmath.MulBlockInPlace(values[axis], scales[axis])

		if k.Family() == kernel.KaiserBesselBackward {
			err = gridindex.PeriodicNeighboursBackward(indices[axis], i, k.HalfWidth(), sizes[axis])
		} else {
			err = gridindex.PeriodicNeighbours(indices[axis], i, k.HalfWidth(), sizes[axis])
		}

		if err != nil {
			return fmt.Errorf("axis %d: %w", axis, err)
		}
	}

	return nil
}

// scatterGather walks the D-nested tensor product of the 2M neighbours
// per axis, calling visit once per combination with the flat row-major
// grid index (last axis fastest) and the product of the per-axis kernel
// weights.
func scatterGather(sizes, widths []int, indices [][]int, values [][]float64, counter []int, visit func(flatIdx int, weight float64)) {
	d := len(sizes)

	var recurse func(axis, flatIdx int, weight float64)
	recurse = func(axis, flatIdx int, weight float64) {
		if axis == d {
			visit(flatIdx, weight)
			return
		}

		for j := 0; j < widths[axis]; j++ {
			cell := indices[axis][j] - 1 // 1-based -> 0-based
			recurse(axis+1, flatIdx*sizes[axis]+cell, weight*values[axis][j])
		}
	}

	recurse(0, 0, 1)
}
