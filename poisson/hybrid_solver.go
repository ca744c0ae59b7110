package poisson

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/specfft/box"
	"github.com/MeKo-Tech/specfft/dist"
	"github.com/MeKo-Tech/specfft/engine"
	"github.com/MeKo-Tech/specfft/internal/par"
)

// HybridSolver solves a Poisson problem that is periodic in x and y and
// homogeneous Neumann along z, using engine.R2C in batch mode for the
// 2-D periodic transform and a direct per-column Thomas tridiagonal solve
// along z (spec.md §4.7). It binds its R2C engine with a single box
// (engine.WithRanks(1)): the Thomas stage needs a full, unsplit z-line per
// (x,y) column, which box.Decompose's free-axis split could otherwise cut
// across ranks, so this solver parallelizes the z-solve itself (via
// internal/par, over columns) rather than through the engine's own box
// decomposition.
type HybridSolver struct {
	eng  *engine.R2C
	n0, n1, n2 int
	h0, h1, h2 float64
	workers    int
}

// NewHybridSolver builds a periodic-xy / Neumann-z hybrid solver over an
// n0 x n1 x n2 grid with cell spacing h0,h1,h2.
func NewHybridSolver(n0, n1, n2 int, h0, h1, h2 float64, opts ...Option) (*HybridSolver, error) {
	if n0 < 1 || n1 < 1 || n2 < 1 {
		return nil, ErrInvalidSize
	}
	if h0 <= 0 || h1 <= 0 || h2 <= 0 {
		return nil, ErrInvalidSpacing
	}
	options := ApplyOptions(DefaultOptions(), opts)
	workers := effectiveWorkers(options.Workers)

	domain := box.NewBox(3, [3]int{0, 0, 0}, [3]int{n0 - 1, n1 - 1, n2 - 1})
	eng, err := engine.NewR2C(domain, engine.WithBatchMode(true), engine.WithRanks(1), engine.WithWorkers(workers))
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	return &HybridSolver{eng: eng, n0: n0, n1: n1, n2: n2, h0: h0, h1: h1, h2: h2, workers: workers}, nil
}

// Solve computes the solution into dst for right-hand-side rhs, both sized
// n0*n1*n2 in row-major (x,y,z) order.
func (s *HybridSolver) Solve(dst, rhs []float64) error {
	size := s.n0 * s.n1 * s.n2
	if len(dst) != size || len(rhs) != size {
		return ErrSizeMismatch
	}

	domain := box.NewBox(3, [3]int{0, 0, 0}, [3]int{s.n0 - 1, s.n1 - 1, s.n2 - 1})
	boxes := box.BoxArray{domain}
	in := dist.Define[float64](boxes, 1, false)
	copy(in.Data(0), rhs)
	if err := s.eng.Forward(in); err != nil {
		return err
	}

	data, _ := s.eng.GetSpectralData() // internal (y, x, z): Swap01(canonical), z untouched
	buf := data.Data(0)
	b := data.Box(0)
	ny, nxHalf, nz := b.Length(0), b.Length(1), b.Length(2)

	lambdaXY := make([][]float64, ny)
	for iy := range ny {
		lambdaXY[iy] = make([]float64, nxHalf)
		for ix := range nxHalf {
			ay := 2 * math.Pi * float64(iy) / float64(s.n1)
			ax := 2 * math.Pi * float64(ix) / float64(s.n0)
			lambdaXY[iy][ix] = (2.0/(s.h1*s.h1))*(math.Cos(ay)-1.0) + (2.0/(s.h0*s.h0))*(math.Cos(ax)-1.0)
		}
	}

	columns := ny * nxHalf
	if err := par.For(par.ClampWorkers(s.workers, columns), columns, func(_ int, start, end int) error {
		diag := make([]float64, nz)
		super := make([]float64, nz)
		sub := make([]float64, nz)
		rhsRe := make([]float64, nz)
		rhsIm := make([]float64, nz)
		solRe := make([]float64, nz)
		solIm := make([]float64, nz)

		for col := start; col < end; col++ {
			iy, ix := col/nxHalf, col%nxHalf
			base := (iy*nxHalf + ix) * nz
			for k := range nz {
				v := buf[base+k]
				rhsRe[k] = real(v)
				rhsIm[k] = imag(v)
			}

			buildNeumannTridiag(diag, sub, super, nz, s.h2, lambdaXY[iy][ix])

			if iy == 0 && ix == 0 {
				fixGauge(diag, sub, super, rhsRe, rhsIm, nz)
			}

			if err := thomasSolve(diag, sub, super, rhsRe, solRe); err != nil {
				return err
			}
			if err := thomasSolve(diag, sub, super, rhsIm, solIm); err != nil {
				return err
			}

			for k := range nz {
				buf[base+k] = complex(solRe[k], solIm[k])
			}
		}
		return nil
	}); err != nil {
		return err
	}

	out := dist.Define[float64](boxes, 1, false)
	if err := s.eng.Backward(out); err != nil {
		return err
	}
	scale := 1.0 / (float64(s.n0) * float64(s.n1))
	for i, v := range out.Data(0) {
		dst[i] = v * scale
	}
	return nil
}

// buildNeumannTridiag fills the standard homogeneous-Neumann second-
// difference stencil along z (one-sided reflection at both ends), offset by
// the already-transformed x,y symbol lambdaXY so the combined operator's
// spectral value at (x,y,z) is diag+lambdaXY.
func buildNeumannTridiag(diag, sub, super []float64, nz int, hz, lambdaXY float64) {
	invH2 := 1.0 / (hz * hz)
	for k := range nz {
		d := -2.0 * invH2
		if k == 0 || k == nz-1 {
			d = -invH2 // Neumann: one missing neighbor reflected away
		}
		diag[k] = d + lambdaXY
		if k > 0 {
			sub[k] = invH2
		}
		if k < nz-1 {
			super[k] = invH2
		}
	}
}

// fixGauge removes the pure-Neumann nullspace at the (i=0,j=0) column
// (spec.md §4.7 step 2) by doubling the last row's diagonal coefficient,
// leaving its off-diagonal coupling and already-computed right-hand side
// untouched. sub/super and rhsRe/rhsIm are accepted for signature symmetry
// with the rest of the per-column tridiagonal setup but are not modified.
func fixGauge(diag, sub, super, rhsRe, rhsIm []float64, nz int) {
	last := nz - 1
	diag[last] *= 2
}

// thomasSolve runs the standard tridiagonal elimination
// (sub[k]*x[k-1] + diag[k]*x[k] + super[k]*x[k+1] = rhs[k]) on its own
// scratch arrays, leaving the inputs unchanged and writing the result
// into sol.
func thomasSolve(diag, sub, super, rhs, sol []float64) error {
	n := len(diag)
	cPrime := make([]float64, n)
	dPrime := make([]float64, n)

	if diag[0] == 0 {
		return ErrResonant
	}
	cPrime[0] = super[0] / diag[0]
	dPrime[0] = rhs[0] / diag[0]

	for k := 1; k < n; k++ {
		denom := diag[k] - sub[k]*cPrime[k-1]
		if denom == 0 {
			return ErrResonant
		}
		if k < n-1 {
			cPrime[k] = super[k] / denom
		}
		dPrime[k] = (rhs[k] - sub[k]*dPrime[k-1]) / denom
	}

	sol[n-1] = dPrime[n-1]
	for k := n - 2; k >= 0; k-- {
		sol[k] = dPrime[k] - cPrime[k]*sol[k+1]
	}
	return nil
}
