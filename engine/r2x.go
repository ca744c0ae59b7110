package engine

import (
	"fmt"

	"github.com/MeKo-Tech/specfft/bc"
	"github.com/MeKo-Tech/specfft/box"
	"github.com/MeKo-Tech/specfft/dist"
	"github.com/MeKo-Tech/specfft/grid"
	"github.com/MeKo-Tech/specfft/internal/par"
	"github.com/MeKo-Tech/specfft/kernel"
	"github.com/MeKo-Tech/specfft/redistribute"
)

// R2X is the generalized engine keyed on (N0,N1,N2,BC0,BC1,BC2) (spec.md
// §4.5). Every axis before the first periodic axis runs r2r in place; the
// first periodic axis (if any) runs r2c, shrinking its local length to
// N/2+1; every axis after it runs c2c. This module requires periodicity to
// be a suffix of the axis order (once an axis is periodic, every later axis
// must be too) — the one structure spec.md's four enumerated execution
// paths actually describe; any other mix of periodic/non-periodic axes is
// rejected as InvalidBoundary at construction.
type R2X struct {
	domain box.IndexBox
	bcs    [3]bc.Pair
	kinds  [3]axisKind
	trans  int // index of the first periodic axis, or 3 if none
	opts   Options
	workers int

	boxes    [3]box.BoxArray // boxes[d] is the box layout for phase d (axis d local)
	realArr  [3]*dist.Array[float64]
	cplxArr  [3]*dist.Array[complex128]

	r2rPlans [3][]*kernel.R2RPlan
	r2cPlans [3]*r2cPhase // only set at phase == trans when trans < 3
	c2cPlans [3][]*kernel.C2CPlan

	redistMeta [2]redistribute.Metadata // [0]: phase0->phase1 (Swap01), [1]: phase1->phase2 (Swap02)
	redistIsComplex [2]bool             // whether that redistribution moves complex data

	scalingFactor float64
}

type axisKind int

const (
	axisR2R axisKind = iota
	axisR2C
	axisC2C
)

type r2cPhase struct {
	plans []*kernel.R2CPlan
}

// NewR2X constructs an R2X engine over domain for the given per-axis
// boundary conditions (spec.md §4.5).
func NewR2X(domain box.IndexBox, bcs [3]bc.Pair, opts ...Option) (*R2X, error) {
	if domain.Lo != [3]int{0, 0, 0} {
		return nil, ErrInvalidDomain
	}
	for d := range 3 {
		if err := bcs[d].Validate(); err != nil {
			return nil, fmt.Errorf("%w: axis %d: %v", ErrInvalidBoundary, d, err)
		}
	}

	trans := 3
	for d := range 3 {
		if bcs[d].IsPeriodic() {
			trans = d
			break
		}
	}
	for d := trans + 1; d < 3; d++ {
		if !bcs[d].IsPeriodic() {
			return nil, fmt.Errorf("%w: periodic axis %d followed by non-periodic axis %d", ErrInvalidBoundary, trans, d)
		}
	}

	var kinds [3]axisKind
	for d := range 3 {
		switch {
		case d < trans:
			kinds[d] = axisR2R
		case d == trans:
			kinds[d] = axisR2C
		default:
			kinds[d] = axisC2C
		}
	}

	o := ApplyOptions(DefaultOptions(), opts)
	workers := par.EffectiveWorkers(o.Workers)
	ranks := o.Ranks
	if ranks <= 0 {
		ranks = workers
	}

	e := &R2X{domain: domain, bcs: bcs, kinds: kinds, trans: trans, opts: o, workers: workers}

	if err := e.buildBoxesAndArrays(ranks); err != nil {
		return nil, err
	}
	if err := e.buildPlans(); err != nil {
		return nil, err
	}
	e.scalingFactor = computeScalingFactor(domain, bcs)
	return e, nil
}

// logicalShape returns the box that phase d's array occupies, in the
// permuted coordinate order that phase sees (its own transform axis first).
func (e *R2X) logicalShape(d int, n [3]int) box.IndexBox {
	hi := [3]int{n[0] - 1, n[1] - 1, n[2] - 1}
	if e.kinds[d] == axisR2C {
		hi[0] = n[0]/2
	}
	return box.NewBox(3, [3]int{0, 0, 0}, hi)
}

func (e *R2X) buildBoxesAndArrays(ranks int) error {
	n0, n1, n2 := e.domain.Length(0), e.domain.Length(1), e.domain.Length(2)

	shapes := [3][3]int{{n0, n1, n2}, {n1, n0, n2}, {n2, n0, n1}}
	for d := range 3 {
		logical := e.logicalShape(d, shapes[d])
		boxes, err := box.Decompose(logical, ranks, [3]bool{true, false, false})
		if err != nil {
			return err
		}
		e.boxes[d] = boxes

		switch e.kinds[d] {
		case axisR2R:
			e.realArr[d] = dist.Define[float64](boxes, 1, false)
		case axisR2C:
			// The phase-d input is real at full length; its output (what later
			// phases and redistributions see) is the shrunk complex array.
			fullHi := [3]int{shapes[d][0] - 1, shapes[d][1] - 1, shapes[d][2] - 1}
			fullBoxes, err := box.Decompose(box.NewBox(3, [3]int{0, 0, 0}, fullHi), ranks, [3]bool{true, false, false})
			if err != nil {
				return err
			}
			e.realArr[d] = dist.Define[float64](fullBoxes, 1, false)
			e.cplxArr[d] = dist.Define[complex128](boxes, 1, false)
		case axisC2C:
			e.cplxArr[d] = dist.Define[complex128](boxes, 1, false)
		}
	}

	if e.trans == 0 {
		e.redistIsComplex[0] = true
	}
	if e.trans <= 1 {
		e.redistIsComplex[1] = true
	}

	if e.redistIsComplex[0] {
		e.redistMeta[0] = redistribute.Build(e.boxes[1], e.boxes[0], box.Swap01)
	} else {
		e.redistMeta[0] = redistribute.Build(e.realInputBoxes(1), e.boxes[0], box.Swap01)
	}
	if e.redistIsComplex[1] {
		e.redistMeta[1] = redistribute.Build(e.boxes[2], e.boxes[1], box.Swap02)
	} else {
		e.redistMeta[1] = redistribute.Build(e.realInputBoxes(2), e.boxes[1], box.Swap02)
	}
	return nil
}

// realInputBoxes returns the box array a real-valued redistribution target
// uses: the full-length boxes backing realArr[d], which equal boxes[d]
// itself unless phase d is the r2c transition (whose realArr sits over a
// separately-decomposed full-length box array).
func (e *R2X) realInputBoxes(d int) box.BoxArray {
	if e.kinds[d] == axisR2C {
		return e.realArr[d].Boxes()
	}
	return e.boxes[d]
}

func (e *R2X) buildPlans() error {
	for d := range 3 {
		switch e.kinds[d] {
		case axisR2R:
			boxes := e.boxes[d]
			plans := make([]*kernel.R2RPlan, len(boxes))
			variant := e.bcs[d].R2RVariant()
			if err := par.Ranks(len(boxes), func(r int) error {
				p, err := kernel.NewR2RPlan(variant, boxes[r].Length(0))
				if err != nil {
					return fmt.Errorf("%w: axis %d rank %d: %v", ErrBackendFailure, d, r, err)
				}
				plans[r] = p
				return nil
			}); err != nil {
				return err
			}
			e.r2rPlans[d] = plans

		case axisR2C:
			boxes := e.realArr[d].Boxes()
			plans := make([]*kernel.R2CPlan, len(boxes))
			if err := par.Ranks(len(boxes), func(r int) error {
				p, err := kernel.NewR2CPlan(boxes[r].Length(0))
				if err != nil {
					return fmt.Errorf("%w: axis %d rank %d: %v", ErrBackendFailure, d, r, err)
				}
				plans[r] = p
				return nil
			}); err != nil {
				return err
			}
			e.r2cPlans[d] = &r2cPhase{plans: plans}

		case axisC2C:
			boxes := e.boxes[d]
			plans := make([]*kernel.C2CPlan, len(boxes))
			if err := par.Ranks(len(boxes), func(r int) error {
				p, err := kernel.NewC2CPlan(boxes[r].Length(0))
				if err != nil {
					return fmt.Errorf("%w: axis %d rank %d: %v", ErrBackendFailure, d, r, err)
				}
				plans[r] = p
				return nil
			}); err != nil {
				return err
			}
			e.c2cPlans[d] = plans
		}
	}
	return nil
}

// computeScalingFactor implements spec.md §4.5's scaling formula: the
// unique factor making forward-then-backward the identity when no spectral
// modification occurs, given unnormalised FFTW-convention kernels plus the
// 2N expansion each DCT/DST's 2N-normalized round trip contributes
// (kernel.R2RPlan.NormalizationFactor, r2r.DCT3Plan/DST3Plan/DCT4Plan/
// DST4Plan.NormalizationFactor).
func computeScalingFactor(domain box.IndexBox, bcs [3]bc.Pair) float64 {
	factor := 1.0
	for d := range 3 {
		n := domain.Length(d)
		factor *= float64(n)
		if !bcs[d].IsPeriodic() && n > 1 {
			factor *= 2.0
		}
	}
	return 1.0 / factor
}

// ScalingFactor returns the factor forward_then_backward must apply to
// recover the identity (spec.md §8 invariant 5).
func (e *R2X) ScalingFactor() float64 { return e.scalingFactor }

func localShapeR2X(b box.IndexBox) grid.Shape {
	return grid.NewShape3D(b.Length(0), b.Length(1), b.Length(2))
}

// ForwardThenBackward is the only exposed round trip (spec.md §4.5).
// postFwd(i,j,k,value) is invoked in canonical (x,y,z) coordinates over the
// spectral array produced by the forward pass; when the transform's
// effective dimensionality is less than 3 (N1 or N2 == 1), the callback
// naturally iterates the correspondingly reduced index space since those
// axes' boxes are never split wider than length 1.
func (e *R2X) ForwardThenBackward(in *dist.Array[float64], out *dist.Array[float64], postFwd func(i, j, k int, v complex128) complex128) error {
	if err := e.copyInR2X(in); err != nil {
		return err
	}
	if err := e.forwardR2X(); err != nil {
		return err
	}
	if err := e.applyCallback(postFwd); err != nil {
		return err
	}
	if err := e.backwardR2X(); err != nil {
		return err
	}
	return e.copyOutR2X(out)
}

func (e *R2X) copyInR2X(in *dist.Array[float64]) error {
	meta := redistribute.Build(e.realInputBoxes(0), in.Boxes(), box.Identity)
	return redistribute.ParallelCopy(e.realArr[0], in, meta, e.workers)
}

func (e *R2X) copyOutR2X(out *dist.Array[float64]) error {
	meta := redistribute.Build(out.Boxes(), e.realInputBoxes(0), box.Identity)
	return redistribute.ParallelCopy(out, e.realArr[0], meta, e.workers)
}

func (e *R2X) forwardR2X() error {
	if err := e.runForwardPhase(0); err != nil {
		return err
	}
	if err := e.redistributeForward(0); err != nil {
		return err
	}
	if err := e.runForwardPhase(1); err != nil {
		return err
	}
	if err := e.redistributeForward(1); err != nil {
		return err
	}
	return e.runForwardPhase(2)
}

func (e *R2X) backwardR2X() error {
	if err := e.runBackwardPhase(2); err != nil {
		return err
	}
	if err := e.redistributeBackward(1); err != nil {
		return err
	}
	if err := e.runBackwardPhase(1); err != nil {
		return err
	}
	if err := e.redistributeBackward(0); err != nil {
		return err
	}
	return e.runBackwardPhase(0)
}

func (e *R2X) runForwardPhase(d int) error {
	switch e.kinds[d] {
	case axisR2R:
		boxes := e.boxes[d]
		return par.Ranks(len(boxes), func(r int) error {
			return e.r2rPlans[d][r].ForwardLines(e.realArr[d].Data(r), localShapeR2X(boxes[r]), 0, e.workers)
		})
	case axisR2C:
		realBoxes := e.realArr[d].Boxes()
		cplxBoxes := e.boxes[d]
		return par.Ranks(len(realBoxes), func(r int) error {
			return e.r2cPlans[d].plans[r].ForwardLines(e.cplxArr[d].Data(r), localShapeR2X(cplxBoxes[r]), e.realArr[d].Data(r), localShapeR2X(realBoxes[r]), 0, e.workers)
		})
	default: // axisC2C
		boxes := e.boxes[d]
		return par.Ranks(len(boxes), func(r int) error {
			return e.c2cPlans[d][r].TransformLines(e.cplxArr[d].Data(r), localShapeR2X(boxes[r]), 0, false, e.workers)
		})
	}
}

func (e *R2X) runBackwardPhase(d int) error {
	switch e.kinds[d] {
	case axisR2R:
		boxes := e.boxes[d]
		return par.Ranks(len(boxes), func(r int) error {
			return e.r2rPlans[d][r].BackwardLines(e.realArr[d].Data(r), localShapeR2X(boxes[r]), 0, e.workers)
		})
	case axisR2C:
		realBoxes := e.realArr[d].Boxes()
		cplxBoxes := e.boxes[d]
		return par.Ranks(len(realBoxes), func(r int) error {
			return e.r2cPlans[d].plans[r].BackwardLines(e.realArr[d].Data(r), localShapeR2X(realBoxes[r]), e.cplxArr[d].Data(r), localShapeR2X(cplxBoxes[r]), 0, e.workers)
		})
	default: // axisC2C
		boxes := e.boxes[d]
		return par.Ranks(len(boxes), func(r int) error {
			return e.c2cPlans[d][r].TransformLines(e.cplxArr[d].Data(r), localShapeR2X(boxes[r]), 0, true, e.workers)
		})
	}
}

func (e *R2X) redistributeForward(idx int) error {
	if e.redistIsComplex[idx] {
		return redistribute.ParallelCopy(e.cplxArr[idx+1], e.cplxArr[idx], e.redistMeta[idx], e.workers)
	}
	return redistribute.ParallelCopy(e.realDestArr(idx+1), e.realArr[idx], e.redistMeta[idx], e.workers)
}

func (e *R2X) redistributeBackward(idx int) error {
	if e.redistIsComplex[idx] {
		return redistribute.ParallelCopy(e.cplxArr[idx], e.cplxArr[idx+1], e.redistMeta[idx].Inverse(), e.workers)
	}
	return redistribute.ParallelCopy(e.realArr[idx], e.realDestArr(idx+1), e.redistMeta[idx].Inverse(), e.workers)
}

// realDestArr returns the real array phase d reads as input, i.e. its
// full-length realArr regardless of whether d itself is the r2c phase.
func (e *R2X) realDestArr(d int) *dist.Array[float64] {
	return e.realArr[d]
}

func (e *R2X) applyCallback(postFwd func(i, j, k int, v complex128) complex128) error {
	if e.trans == 3 {
		// All axes non-periodic (case 4): there is no complex array beyond a
		// stub, so the spectral values the callback sees are the real r2r
		// coefficients at phase 2, wrapped as complex(v,0) for a uniform
		// callback signature across every variant.
		data := e.realArr[2]
		t := e.canonicalTransform(2)
		for r, b := range data.Boxes() {
			buf := data.Data(r)
			shape := localShapeR2X(b)
			for idx := range buf {
				I, J, K := grid.FromIndex3D(idx, shape)
				gi, gj, gk := I+b.Lo[0], J+b.Lo[1], K+b.Lo[2]
				ci, cj, ck := t.Apply(gi, gj, gk)
				buf[idx] = real(postFwd(ci, cj, ck, complex(buf[idx], 0)))
			}
		}
		return nil
	}

	lastComplexPhase := 2
	for lastComplexPhase >= 0 && e.kinds[lastComplexPhase] == axisR2R {
		lastComplexPhase--
	}
	data := e.cplxArr[lastComplexPhase]
	t := e.canonicalTransform(lastComplexPhase)
	for r, b := range data.Boxes() {
		buf := data.Data(r)
		shape := localShapeR2X(b)
		for idx := range buf {
			I, J, K := grid.FromIndex3D(idx, shape)
			gi, gj, gk := I+b.Lo[0], J+b.Lo[1], K+b.Lo[2]
			ci, cj, ck := t.Apply(gi, gj, gk)
			buf[idx] = postFwd(ci, cj, ck, buf[idx])
		}
	}
	return nil
}

// canonicalTransform returns the transform mapping phase d's internal
// coordinates back to canonical (x,y,z), mirroring R2C's permutation logic.
func (e *R2X) canonicalTransform(d int) box.IndexTransform {
	switch d {
	case 0:
		return box.Identity
	case 1:
		return box.Swap01
	default:
		return box.RotateBackward
	}
}
