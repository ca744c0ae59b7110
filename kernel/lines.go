// Package kernel implements the per-axis transform flavors dispatched by
// the PlanCache described in spec.md §4.1: complex-to-complex, real-to-complex
// (and its c2r inverse), and real-to-real (DCT/DST family), each batched over
// every line of a local box parallel to the transform axis.
package kernel

import (
	"github.com/MeKo-Tech/specfft/grid"
	"github.com/MeKo-Tech/specfft/internal/par"
)

// lineCount returns the number of lines parallel to axis in shape.
func lineCount(shape grid.Shape, axis int) int {
	o0, o1 := otherAxes(axis)
	return shape[o0] * shape[o1]
}

// lineStart returns the flat start index of the line-th line parallel to
// axis, using shape's row-major strides.
func lineStart(shape grid.Shape, axis, line int) int {
	o0, o1 := otherAxes(axis)
	max0 := shape[o0]
	if max0 <= 0 {
		return 0
	}
	pos0 := line % max0
	pos1 := line / max0
	stride := grid.RowMajorStride(shape)
	return pos0*stride[o0] + pos1*stride[o1]
}

func otherAxes(axis int) (int, int) {
	switch axis {
	case 0:
		return 1, 2
	case 1:
		return 0, 2
	default:
		return 0, 1
	}
}

// forEachLine runs fn(lineStartIn, lineStartOut) for every line of inShape
// (resp. outShape) parallel to axis, distributing lines across workers.
// inShape and outShape must agree on both non-axis extents; they may differ
// along axis itself (r2c/c2r kernels map an N-length real line to an N/2+1
// complex line and back).
func forEachLine(inShape, outShape grid.Shape, axis, workers int, fn func(inStart, outStart int) error) error {
	n := lineCount(inShape, axis)
	workers = par.ClampWorkers(workers, n)
	return par.For(workers, n, func(_ int, start, end int) error {
		for line := start; line < end; line++ {
			if err := fn(lineStart(inShape, axis, line), lineStart(outShape, axis, line)); err != nil {
				return err
			}
		}
		return nil
	})
}
