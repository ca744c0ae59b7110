package poisson

import (
	"fmt"
	"log"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Plan3DPeriodic is a reusable plan for solving 3D periodic Poisson problems.
// It solves -Δu = f on a periodic grid with spacing hx, hy, hz. When
// UseRealFFT is enabled and the grid shape qualifies (even nz, power-of-two
// nx/ny/nz), it runs algo-fft's dedicated PlanReal3D on float32 buffers
// instead; otherwise it falls back to a dim=3 Plan (engine.R2X, all three
// axes periodic).
type Plan3DPeriodic struct {
	nx, ny, nz int
	eigX       []float64
	eigY       []float64
	eigZ       []float64
	plan       *Plan
	rfft       *algofft.PlanReal3D
	rbuf       []float32
	rspec      []complex64
	rhalf      int
	useR       bool
	opts       Options
}

// NewPlan3DPeriodic creates a new 3D periodic Poisson plan.
func NewPlan3DPeriodic(nx, ny, nz int, hx, hy, hz float64, opts ...Option) (*Plan3DPeriodic, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, ErrInvalidSize
	}

	if hx <= 0 || hy <= 0 || hz <= 0 {
		return nil, ErrInvalidSpacing
	}

	options := ApplyOptions(DefaultOptions(), opts)
	options.Workers = effectiveWorkers(options.Workers)

	var (
		rfft  *algofft.PlanReal3D
		rbuf  []float32
		rspec []complex64
		rhalf int
		useR  bool
	)

	if options.UseRealFFT {
		if nz%2 != 0 || nz < 2 || !isPowerOfTwo(nx) || !isPowerOfTwo(ny) || !isPowerOfTwo(nz) {
			log.Printf("poisson: real FFT disabled for 3D plan (nx=%d, ny=%d, nz=%d): requires even nz and power-of-two sizes", nx, ny, nz)
		} else {
			plan, err := algofft.NewPlanReal3D(nx, ny, nz)
			if err != nil {
				log.Printf("poisson: real FFT disabled for 3D plan (nx=%d, ny=%d, nz=%d): %v", nx, ny, nz, err)
			} else {
				rfft = plan
				rhalf = nz/2 + 1
				rbuf = make([]float32, nx*ny*nz)
				rspec = make([]complex64, nx*ny*rhalf)
				useR = true
			}
		}
	}

	var plan *Plan
	if !useR {
		var err error
		plan, err = NewPlan(3, []int{nx, ny, nz}, []float64{hx, hy, hz}, []BCType{Periodic, Periodic, Periodic}, opts...)
		if err != nil {
			return nil, err
		}
	}

	return &Plan3DPeriodic{
		nx:    nx,
		ny:    ny,
		nz:    nz,
		eigX:  eigenvaluesPeriodic(nx, hx),
		eigY:  eigenvaluesPeriodic(ny, hy),
		eigZ:  eigenvaluesPeriodic(nz, hz),
		plan:  plan,
		rfft:  rfft,
		rbuf:  rbuf,
		rspec: rspec,
		rhalf: rhalf,
		useR:  useR,
		opts:  options,
	}, nil
}

// Solve computes the solution into dst for a given RHS.
func (p *Plan3DPeriodic) Solve(dst, rhs []float64) error {
	if dst == nil || rhs == nil {
		return ErrNilBuffer
	}

	if len(dst) != p.nx*p.ny*p.nz || len(rhs) != p.nx*p.ny*p.nz {
		return ErrSizeMismatch
	}

	if !p.useR {
		return p.plan.Solve(dst, rhs)
	}

	if p.opts.Nullspace == NullspaceError {
		return ErrNullspace
	}

	mean, maxAbs := meanAndMaxAbs(rhs)
	if p.opts.Nullspace == NullspaceZeroMode && !meanWithinTolerance(mean, maxAbs) {
		return ErrNonZeroMean
	}

	offset := 0.0
	if p.opts.Nullspace == NullspaceSubtractMean {
		offset = mean
	}

	for i, v := range rhs {
		p.rbuf[i] = float32(v - offset)
	}

	if err := p.rfft.Forward(p.rspec, p.rbuf); err != nil {
		return fmt.Errorf("real FFT forward: %w", err)
	}

	workers := clampWorkers(p.opts.Workers, p.nx)
	if err := parallelFor(workers, p.nx, func(_ int, start, end int) error {
		for i := start; i < end; i++ {
			baseXY := i * p.ny * p.rhalf
			for j := range p.ny {
				base := baseXY + j*p.rhalf
				xy := p.eigX[i] + p.eigY[j]
				for k := range p.rhalf {
					denom := xy + p.eigZ[k]
					if denom == 0 {
						p.rspec[base+k] = 0
						continue
					}
					p.rspec[base+k] /= complex(float32(denom), 0)
				}
			}
		}
		return nil
	}); err != nil {
		return err
	}

	if err := p.rfft.Inverse(p.rbuf, p.rspec); err != nil {
		return fmt.Errorf("real FFT inverse: %w", err)
	}

	addMean := 0.0
	if p.opts.SolutionMean != nil {
		addMean = *p.opts.SolutionMean
	}

	for i := range p.nx * p.ny * p.nz {
		dst[i] = float64(p.rbuf[i]) + addMean
	}

	return nil
}

// SolveInPlace solves the system in-place, overwriting buf with the solution.
func (p *Plan3DPeriodic) SolveInPlace(buf []float64) error {
	return p.Solve(buf, buf)
}
