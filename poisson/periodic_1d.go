package poisson

import "math"

const meanTol = 1e-12

// Plan1DPeriodic is a reusable plan for solving 1D periodic Poisson problems.
// It solves -Δu = f on a periodic grid with spacing h. It is a thin
// convenience wrapper: internally it is just Plan with dim=1 and a periodic
// axis, since the 1-D periodic case never had a dedicated real-FFT fast
// path to preserve.
type Plan1DPeriodic struct {
	n    int
	plan *Plan
}

// NewPlan1DPeriodic creates a new 1D periodic Poisson plan.
func NewPlan1DPeriodic(nx int, hx float64, opts ...Option) (*Plan1DPeriodic, error) {
	if nx < 1 {
		return nil, ErrInvalidSize
	}

	if hx <= 0 {
		return nil, ErrInvalidSpacing
	}

	plan, err := NewPlan(1, []int{nx}, []float64{hx}, []BCType{Periodic}, opts...)
	if err != nil {
		return nil, err
	}

	return &Plan1DPeriodic{n: nx, plan: plan}, nil
}

// Solve computes the solution into dst for a given RHS.
func (p *Plan1DPeriodic) Solve(dst, rhs []float64) error {
	return p.plan.Solve(dst, rhs)
}

// SolveInPlace solves the system in-place, overwriting buf with the solution.
func (p *Plan1DPeriodic) SolveInPlace(buf []float64) error {
	return p.plan.Solve(buf, buf)
}

func meanAndMaxAbs(values []float64) (mean, maxAbs float64) {
	if len(values) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
		abs := math.Abs(v)
		if abs > maxAbs {
			maxAbs = abs
		}
	}

	return sum / float64(len(values)), maxAbs
}

func meanWithinTolerance(mean, maxAbs float64) bool {
	return math.Abs(mean) <= meanTol*(1.0+maxAbs)
}
