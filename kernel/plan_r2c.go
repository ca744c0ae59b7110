package kernel

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/MeKo-Tech/specfft/grid"
)

// R2CPlan computes, for one periodic axis of length n, the forward
// real-to-complex transform (producing the n/2+1 non-redundant complex
// bins) and its c2r backward inverse (spec.md §4.1's r2c/c2r flavors).
//
// The teacher's algo-fft dependency exposes shape-specific real transform
// fast paths (PlanReal2D/PlanReal3D) rather than a generic per-axis-batched
// real FFT, so this plan is grounded instead on the teacher's own
// PlanNDPeriodic pattern (poisson/periodic_nd.go), which drives N-dimensional
// periodic solves through the full complex Plan: real input is embedded as
// complex(x,0), transformed with the existing complex FFT plan, and the
// result's conjugate symmetry (X[n-k] = conj(X[k])) is exploited to keep
// only the first n/2+1 bins. The backward direction reverses this: it
// rebuilds the full n-length spectrum from the half spectrum before calling
// Inverse, and returns the real part.
type R2CPlan struct {
	n       int
	half    int
	fftPlan *algofft.Plan[complex128]
}

// HalfLen returns n/2+1, the number of complex bins R2CPlan produces.
func (p *R2CPlan) HalfLen() int { return p.half }

// Len returns the real-domain transform length n.
func (p *R2CPlan) Len() int { return p.n }

// NewR2CPlan creates an r2c/c2r plan pair for real axis length n.
func NewR2CPlan(n int) (*R2CPlan, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	fftPlan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("kernel: creating r2c plan: %w", err)
	}
	return &R2CPlan{n: n, half: n/2 + 1, fftPlan: fftPlan}, nil
}

// ForwardLines transforms every line of realData (shaped realShape) parallel
// to axis into the corresponding line of half (shaped halfShape, whose
// length along axis must be n/2+1), batched across workers.
func (p *R2CPlan) ForwardLines(half []complex128, halfShape grid.Shape, realData []float64, realShape grid.Shape, axis, workers int) error {
	if realShape.N(axis) != p.n || halfShape.N(axis) != p.half {
		return ErrSizeMismatch
	}
	if len(realData) != realShape.Size() || len(half) != halfShape.Size() {
		return ErrSizeMismatch
	}
	realStride := grid.RowMajorStride(realShape)[axis]
	halfStride := grid.RowMajorStride(halfShape)[axis]

	return forEachLine(realShape, halfShape, axis, workers, func(inStart, outStart int) error {
		in := make([]complex128, p.n)
		for i := 0; i < p.n; i++ {
			in[i] = complex(realData[inStart+i*realStride], 0)
		}
		out := make([]complex128, p.n)
		if err := p.fftPlan.Forward(out, in); err != nil {
			return fmt.Errorf("kernel: r2c forward: %w", err)
		}
		for k := 0; k < p.half; k++ {
			half[outStart+k*halfStride] = out[k]
		}
		return nil
	})
}

// BackwardLines reconstructs every real line of realData (shaped realShape)
// from the conjugate-symmetric half spectrum of halfShape, batched across
// workers.
func (p *R2CPlan) BackwardLines(realData []float64, realShape grid.Shape, half []complex128, halfShape grid.Shape, axis, workers int) error {
	if realShape.N(axis) != p.n || halfShape.N(axis) != p.half {
		return ErrSizeMismatch
	}
	if len(realData) != realShape.Size() || len(half) != halfShape.Size() {
		return ErrSizeMismatch
	}
	realStride := grid.RowMajorStride(realShape)[axis]
	halfStride := grid.RowMajorStride(halfShape)[axis]

	return forEachLine(realShape, halfShape, axis, workers, func(inStart, outStart int) error {
		full := make([]complex128, p.n)
		for k := 0; k < p.half; k++ {
			full[k] = half[outStart+k*halfStride]
		}
		for k := p.half; k < p.n; k++ {
			mirror := full[p.n-k]
			full[k] = complex(real(mirror), -imag(mirror))
		}
		out := make([]complex128, p.n)
		if err := p.fftPlan.Inverse(out, full); err != nil {
			return fmt.Errorf("kernel: c2r backward: %w", err)
		}
		for i := 0; i < p.n; i++ {
			realData[inStart+i*realStride] = real(out[i])
		}
		return nil
	})
}
