package kernel

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/MeKo-Tech/specfft/grid"
)

// C2CPlan wraps a complex-to-complex FFT plan for one periodic axis, batched
// over every line of a local box parallel to that axis (spec.md §4.1
// c2c flavor, §4.4's periodic axes). Adapted from the teacher's FFTPlan,
// generalized to take independent worker counts per call instead of a single
// plan-wide setting.
//
// A C2CPlan holds no scratch buffers of its own: TransformLines runs each
// line through algo-fft's TransformStrided entry point, and forEachLine
// spreads those lines across workers concurrently on this one plan.
type C2CPlan struct {
	n       int
	fftPlan *algofft.Plan[complex128]
}

// NewC2CPlan creates a complex FFT plan for axis length n.
func NewC2CPlan(n int) (*C2CPlan, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	fftPlan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("kernel: creating c2c plan: %w", err)
	}
	return &C2CPlan{n: n, fftPlan: fftPlan}, nil
}

// Len returns the transform length.
func (p *C2CPlan) Len() int { return p.n }

// TransformLines applies a forward or inverse complex FFT along every line
// of data (shaped shape) parallel to axis, in place, distributing lines
// across workers.
func (p *C2CPlan) TransformLines(data []complex128, shape grid.Shape, axis int, inverse bool, workers int) error {
	if len(data) != shape.Size() {
		return ErrSizeMismatch
	}
	if shape.N(axis) != p.n {
		return ErrSizeMismatch
	}
	stride := grid.RowMajorStride(shape)[axis]
	return forEachLine(shape, shape, axis, workers, func(start, _ int) error {
		return p.fftPlan.TransformStrided(data[start:], data[start:], stride, inverse)
	})
}
