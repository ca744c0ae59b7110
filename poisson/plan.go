package poisson

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/specfft/bc"
	"github.com/MeKo-Tech/specfft/box"
	"github.com/MeKo-Tech/specfft/dist"
	"github.com/MeKo-Tech/specfft/engine"
)

// Plan is a reusable Poisson/Helmholtz solver plan with per-axis boundary
// conditions. It is a single-box convenience wrapper around engine.R2X: it
// builds an engine (whose rank count follows the worker count) for the
// caller's (dim, n, h, bc) geometry, passes it one-box arrays, and
// drives ForwardThenBackward with a per-cell eigenvalue division, so callers
// that want mixed boundary conditions on a plain []float64 buffer never have
// to touch box.Box/bc.Pair/dist.Array themselves.
type Plan struct {
	dim     int
	n       [3]int
	h       [3]float64
	bc      [3]BCType
	eng     *engine.R2X
	boxes   box.BoxArray
	opts    Options
	alpha   float64
	scratch []float64
}

// NewPlan creates a new Poisson plan with per-axis boundary conditions.
func NewPlan(dim int, n []int, h []float64, bc []BCType, opts ...Option) (*Plan, error) {
	return newPlanWithAlpha(dim, n, h, bc, 0, opts...)
}

// NewHelmholtzPlan creates a new Helmholtz plan for (alpha - Δ)u = f.
// Negative alpha values are allowed but may lead to singular operators when
// alpha cancels an eigenvalue; Solve will return ErrResonant in that case.
func NewHelmholtzPlan(dim int, n []int, h []float64, bc []BCType, alpha float64, opts ...Option) (*Plan, error) {
	return newPlanWithAlpha(dim, n, h, bc, alpha, opts...)
}

func newPlanWithAlpha(dim int, n []int, h []float64, bcs []BCType, alpha float64, opts ...Option) (*Plan, error) {
	if dim < 1 || dim > 3 {
		return nil, &ValidationError{
			Field:   "dim",
			Message: "must be 1, 2, or 3",
		}
	}

	if len(n) != dim {
		return nil, &ValidationError{
			Field:   "n",
			Message: "length must match dim",
		}
	}

	if len(h) != dim {
		return nil, &ValidationError{
			Field:   "h",
			Message: "length must match dim",
		}
	}

	if len(bcs) != dim {
		return nil, &ValidationError{
			Field:   "bc",
			Message: "length must match dim",
		}
	}

	fullN := [3]int{1, 1, 1}
	fullH := [3]float64{1, 1, 1}
	fullBC := [3]BCType{Periodic, Periodic, Periodic}

	for axis := 0; axis < dim; axis++ {
		if n[axis] < 1 {
			return nil, ErrInvalidSize
		}
		if h[axis] <= 0 {
			return nil, ErrInvalidSpacing
		}

		switch bcs[axis] {
		case Periodic, Dirichlet, Neumann:
		default:
			return nil, &ValidationError{
				Field:   fmt.Sprintf("bc[%d]", axis),
				Message: "unsupported boundary condition",
			}
		}

		fullN[axis] = n[axis]
		fullH[axis] = h[axis]
		fullBC[axis] = bcs[axis]
	}

	options := ApplyOptions(DefaultOptions(), opts)
	options.Workers = effectiveWorkers(options.Workers)

	var bcPairs [3]bc.Pair
	for axis := range 3 {
		bcPairs[axis] = axisBCPair(fullBC[axis])
	}

	domain := box.NewBox(3, [3]int{0, 0, 0}, [3]int{fullN[0] - 1, fullN[1] - 1, fullN[2] - 1})
	eng, err := engine.NewR2X(domain, bcPairs, engine.WithWorkers(options.Workers))
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}

	return &Plan{
		dim:   dim,
		n:     fullN,
		h:     fullH,
		bc:    fullBC,
		eng:   eng,
		boxes: box.BoxArray{domain},
		opts:  options,
		alpha: alpha,
	}, nil
}

// eigenvalue returns the per-axis Laplacian eigenvalue at index idx, using
// the teacher's positive (2-2cos)/h^2 convention throughout: periodic uses
// the whole-sample angle 2*pi*idx/n, Neumann (DCT-II) the half-sample angle
// pi*idx/n, Dirichlet (DST-II, unified onto the same cell-centered grid
// Neumann uses, rather than the teacher's original whole-sample DST-I
// convention, to match the single r2r backend engine.R2X drives both
// through) pi*(idx+1)/n.
func (p *Plan) eigenvalue(axis, idx int) float64 {
	n := p.n[axis]
	if n <= 1 {
		return 0
	}
	h2 := p.h[axis] * p.h[axis]
	switch p.bc[axis] {
	case Periodic:
		return (2 - 2*math.Cos(2*math.Pi*float64(idx)/float64(n))) / h2
	case Neumann:
		return (2 - 2*math.Cos(math.Pi*float64(idx)/float64(n))) / h2
	default: // Dirichlet
		return (2 - 2*math.Cos(math.Pi*(float64(idx)+1)/float64(n))) / h2
	}
}

// Solve computes the solution into dst for a given RHS.
func (p *Plan) Solve(dst, rhs []float64) error {
	if dst == nil || rhs == nil {
		return ErrNilBuffer
	}

	size := p.size()
	if len(dst) != size || len(rhs) != size {
		return ErrSizeMismatch
	}

	hasNullspace := p.hasNullspace()
	if hasNullspace && p.opts.Nullspace == NullspaceError {
		return ErrNullspace
	}

	offset := 0.0
	if hasNullspace {
		mean, maxAbs := meanAndMaxAbs(rhs)
		if p.opts.Nullspace == NullspaceZeroMode && !meanWithinTolerance(mean, maxAbs) {
			return ErrNonZeroMean
		}
		if p.opts.Nullspace == NullspaceSubtractMean {
			offset = mean
		}
	}

	in := dist.Define[float64](p.boxes, 1, false)
	inData := in.Data(0)
	for i, v := range rhs {
		inData[i] = v - offset
	}
	out := dist.Define[float64](p.boxes, 1, false)

	var solveErr error
	postFwd := func(i, j, k int, v complex128) complex128 {
		denom := p.alpha
		for axis, idx := range [3]int{i, j, k} {
			denom += p.eigenvalue(axis, idx)
		}
		if denom == 0 {
			if hasNullspace && i == 0 && j == 0 && k == 0 {
				return 0
			}
			solveErr = ErrResonant
			return v
		}
		return v / complex(denom, 0)
	}

	if err := p.eng.ForwardThenBackward(in, out, postFwd); err != nil {
		return err
	}
	if solveErr != nil {
		return solveErr
	}

	scale := p.eng.ScalingFactor()
	addMean := 0.0
	if hasNullspace && p.opts.SolutionMean != nil {
		addMean = *p.opts.SolutionMean
	}

	outData := out.Data(0)
	for i := range dst {
		dst[i] = outData[i]*scale + addMean
	}

	return nil
}

// SolveInPlace solves the system in-place, overwriting buf with the solution.
func (p *Plan) SolveInPlace(buf []float64) error {
	return p.Solve(buf, buf)
}

// WorkBytes returns the size of the plan's scratch buffer in bytes, i.e.
// the extra memory SolveWithBC allocates for the RHS preprocessing copy.
func (p *Plan) WorkBytes() int {
	return len(p.scratch) * 8
}

func (p *Plan) size() int {
	size := 1
	for axis := 0; axis < p.dim; axis++ {
		size *= p.n[axis]
	}
	return size
}

func (p *Plan) hasNullspace() bool {
	if p.alpha != 0 {
		return false
	}

	for axis := 0; axis < p.dim; axis++ {
		if !p.bc[axis].HasNullspace() {
			return false
		}
	}
	return true
}
