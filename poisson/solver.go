package poisson

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/specfft/bc"
	"github.com/MeKo-Tech/specfft/box"
	"github.com/MeKo-Tech/specfft/dist"
	"github.com/MeKo-Tech/specfft/engine"
)

// Solver inverts a separable Laplacian in spectral space by running
// engine.R2X.ForwardThenBackward with a per-cell symbol division (spec.md
// §4.6). Plan drives engine.R2X the same way with its own positive
// eigenvalue convention; Solver divides by the negative-semidefinite symbol
// Σ (2/h²)(cos α − 1) summed over the axes.
type Solver struct {
	engine *engine.R2X
	n      [3]int
	h      [3]float64
	bcs    [3]BCType
	opts   Options
}

// axisBCPair maps a BCType to the bc.Pair the engine dispatches on.
// Periodic maps to a periodic pair; Neumann (homogeneous, zero normal
// derivative) maps to the teacher's DCT-II convention (even,even); Dirichlet
// (homogeneous, zero value) maps to DST-II (odd,odd), matching
// poisson.Plan.newPlanWithAlpha's own BC->transform choice.
func axisBCPair(t BCType) bc.Pair {
	switch t {
	case Periodic:
		return bc.Pair{Lo: bc.Periodic, Hi: bc.Periodic}
	case Neumann:
		return bc.Pair{Lo: bc.Even, Hi: bc.Even}
	default: // Dirichlet
		return bc.Pair{Lo: bc.Odd, Hi: bc.Odd}
	}
}

// NewSolver builds a distributed Poisson solver over an n0 x n1 x n2 grid
// with cell spacing h and per-axis boundary conditions bcs. Axes beyond dim
// are treated as size-1 (spec.md §4.6's reduced-dimensionality handling).
func NewSolver(dim int, n []int, h []float64, bcs []BCType, opts ...Option) (*Solver, error) {
	if dim < 1 || dim > 3 {
		return nil, &ValidationError{Field: "dim", Message: "must be 1, 2, or 3"}
	}
	if len(n) != dim || len(h) != dim || len(bcs) != dim {
		return nil, &ValidationError{Field: "n/h/bc", Message: "length must match dim"}
	}

	var fullN [3]int = [3]int{1, 1, 1}
	var fullH [3]float64 = [3]float64{1, 1, 1}
	var fullBC [3]BCType = [3]BCType{Periodic, Periodic, Periodic}
	for axis := range dim {
		if n[axis] < 1 {
			return nil, ErrInvalidSize
		}
		if h[axis] <= 0 {
			return nil, ErrInvalidSpacing
		}
		fullN[axis] = n[axis]
		fullH[axis] = h[axis]
		fullBC[axis] = bcs[axis]
	}

	options := ApplyOptions(DefaultOptions(), opts)

	var bcPairs [3]bc.Pair
	for axis := range 3 {
		bcPairs[axis] = axisBCPair(fullBC[axis])
	}

	domain := box.NewBox(3, [3]int{0, 0, 0}, [3]int{fullN[0] - 1, fullN[1] - 1, fullN[2] - 1})
	eng, err := engine.NewR2X(domain, bcPairs, engine.WithWorkers(options.Workers))
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	return &Solver{engine: eng, n: fullN, h: fullH, bcs: fullBC, opts: options}, nil
}

// eigenvalue returns the per-axis spectral eigenvalue alpha_d (spec.md
// §4.6): pi_d = 2*pi for periodic axes, pi for non-periodic; delta_d in
// {0, 0.5, 1} depending on (axis kind, endpoint parity); alpha_d =
// pi_d*(idx+delta_d)/N_d.
func (s *Solver) eigenvalue(axis, idx int) float64 {
	n := s.n[axis]
	if n <= 1 {
		return 0
	}
	switch s.bcs[axis] {
	case Periodic:
		return 2 * math.Pi * float64(idx) / float64(n)
	case Neumann:
		return math.Pi * float64(idx) / float64(n)
	default: // Dirichlet
		return math.Pi * (float64(idx) + 1) / float64(n)
	}
}

// hasNullspace reports whether the zero wavenumber in every axis jointly
// gives a zero spectral symbol: true unless some axis (with more than one
// cell) is Dirichlet, since only periodic and Neumann axes contribute
// exactly zero at their own zero index.
func (s *Solver) hasNullspace() bool {
	for axis := range 3 {
		if s.n[axis] > 1 && s.bcs[axis] == Dirichlet {
			return false
		}
	}
	return true
}

// Solve computes the solution into dst for right-hand-side rhs, both sized
// n0*n1*n2 in row-major order.
func (s *Solver) Solve(dst, rhs []float64) error {
	size := s.n[0] * s.n[1] * s.n[2]
	if len(dst) != size || len(rhs) != size {
		return ErrSizeMismatch
	}

	domain := box.NewBox(3, [3]int{0, 0, 0}, [3]int{s.n[0] - 1, s.n[1] - 1, s.n[2] - 1})
	boxes := box.BoxArray{domain}
	in := dist.Define[float64](boxes, 1, false)
	copy(in.Data(0), rhs)
	out := dist.Define[float64](boxes, 1, false)

	scale := s.engine.ScalingFactor()
	hasNull := s.hasNullspace()

	var symbolErr error
	postFwd := func(i, j, k int, v complex128) complex128 {
		lambda := 0.0
		for axis, idx := range [3]int{i, j, k} {
			if s.n[axis] <= 1 {
				continue
			}
			alpha := s.eigenvalue(axis, idx)
			dsq := s.h[axis] * s.h[axis]
			lambda += (2.0 / dsq) * (math.Cos(alpha) - 1.0)
		}
		if lambda == 0 {
			if hasNull && i == 0 && j == 0 && k == 0 {
				return 0
			}
			symbolErr = ErrResonant
			return v
		}
		return v / complex(lambda, 0)
	}

	if err := s.engine.ForwardThenBackward(in, out, postFwd); err != nil {
		return err
	}
	if symbolErr != nil {
		return symbolErr
	}

	for i, v := range out.Data(0) {
		dst[i] = v * scale
	}
	return nil
}
