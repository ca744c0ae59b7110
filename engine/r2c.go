package engine

import (
	"fmt"

	"github.com/MeKo-Tech/specfft/box"
	"github.com/MeKo-Tech/specfft/dist"
	"github.com/MeKo-Tech/specfft/grid"
	"github.com/MeKo-Tech/specfft/internal/par"
	"github.com/MeKo-Tech/specfft/kernel"
	"github.com/MeKo-Tech/specfft/redistribute"
)

// R2C is the all-periodic real-to-complex engine (spec.md §4.4): three
// phases of 1-D transforms along x, y, z, each local to the rank that owns
// the relevant pencil, joined by redistributions that make the next axis
// local. Construction is collective: every rank that will call Forward/
// Backward must build an R2C over the same domain and options.
type R2C struct {
	domain box.IndexBox
	opts   Options
	workers int

	rxBoxes, cxBoxes, cyBoxes, czBoxes box.BoxArray

	rx *dist.Array[float64]
	cx *dist.Array[complex128]
	cy *dist.Array[complex128]
	cz *dist.Array[complex128]

	xPlans []*kernel.R2CPlan
	yPlans []*kernel.C2CPlan
	zPlans []*kernel.C2CPlan

	xyMeta redistribute.Metadata // cx -> cy, Swap01
	yzMeta redistribute.Metadata // cy -> cz, Swap02

	dim3 bool // true when z has more than one cell and batch mode is off
}

// NewR2C constructs an R2C engine over domain (spec.md §4.4 construction
// steps 1-5). domain.Lo must be the origin; N0 = domain.Length(0) must
// exceed 1; in the non-batch 3-D case N1 must exceed 1 whenever N2 does.
func NewR2C(domain box.IndexBox, opts ...Option) (*R2C, error) {
	if domain.Lo != [3]int{0, 0, 0} {
		return nil, ErrInvalidDomain
	}
	n0, n1, n2 := domain.Length(0), domain.Length(1), domain.Length(2)
	if n0 <= 1 {
		return nil, ErrInvalidDomain
	}
	o := ApplyOptions(DefaultOptions(), opts)
	if !o.BatchMode && n2 > 1 && n1 <= 1 {
		return nil, ErrInvalidDomain
	}

	workers := par.EffectiveWorkers(o.Workers)
	ranks := o.Ranks
	if ranks <= 0 {
		ranks = workers
	}
	dim3 := !o.BatchMode && n2 > 1

	e := &R2C{domain: domain, opts: o, workers: workers, dim3: dim3}

	rxBoxes, err := box.Decompose(domain, ranks, [3]bool{true, false, false})
	if err != nil {
		return nil, err
	}
	e.rxBoxes = rxBoxes

	sx := box.NewBox(3, [3]int{0, 0, 0}, [3]int{n0 / 2, n1 - 1, n2 - 1})
	cxBoxes, err := box.Decompose(sx, ranks, [3]bool{true, false, false})
	if err != nil {
		return nil, err
	}
	e.cxBoxes = cxBoxes

	sy := box.NewBox(3, [3]int{0, 0, 0}, [3]int{n1 - 1, n0 / 2, n2 - 1})
	cyBoxes, err := box.Decompose(sy, ranks, [3]bool{true, false, false})
	if err != nil {
		return nil, err
	}
	e.cyBoxes = cyBoxes

	if dim3 {
		sz := box.NewBox(3, [3]int{0, 0, 0}, [3]int{n2 - 1, n0 / 2, n1 - 1})
		czBoxes, err := box.Decompose(sz, ranks, [3]bool{true, false, false})
		if err != nil {
			return nil, err
		}
		e.czBoxes = czBoxes
	}

	e.rx = dist.Define[float64](e.rxBoxes, 1, false)
	e.cx = dist.Define[complex128](e.cxBoxes, 1, false)
	e.cy = dist.Define[complex128](e.cyBoxes, 1, false)
	if dim3 {
		e.cz = dist.Define[complex128](e.czBoxes, 1, false)
	}

	e.xyMeta = redistribute.Build(e.cyBoxes, e.cxBoxes, box.Swap01)
	if dim3 {
		e.yzMeta = redistribute.Build(e.czBoxes, e.cyBoxes, box.Swap02)
	}

	if err := e.buildPlans(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *R2C) buildPlans() error {
	e.xPlans = make([]*kernel.R2CPlan, len(e.rxBoxes))
	if err := par.Ranks(len(e.rxBoxes), func(r int) error {
		p, err := kernel.NewR2CPlan(e.rxBoxes[r].Length(0))
		if err != nil {
			return fmt.Errorf("%w: x-axis rank %d: %v", ErrBackendFailure, r, err)
		}
		e.xPlans[r] = p
		return nil
	}); err != nil {
		return err
	}

	e.yPlans = make([]*kernel.C2CPlan, len(e.cyBoxes))
	if err := par.Ranks(len(e.cyBoxes), func(r int) error {
		p, err := kernel.NewC2CPlan(e.cyBoxes[r].Length(0))
		if err != nil {
			return fmt.Errorf("%w: y-axis rank %d: %v", ErrBackendFailure, r, err)
		}
		e.yPlans[r] = p
		return nil
	}); err != nil {
		return err
	}

	if !e.dim3 {
		return nil
	}

	e.zPlans = make([]*kernel.C2CPlan, len(e.czBoxes))
	return par.Ranks(len(e.czBoxes), func(r int) error {
		p, err := kernel.NewC2CPlan(e.czBoxes[r].Length(0))
		if err != nil {
			return fmt.Errorf("%w: z-axis rank %d: %v", ErrBackendFailure, r, err)
		}
		e.zPlans[r] = p
		return nil
	})
}

func localShape(b box.IndexBox) grid.Shape {
	return grid.NewShape3D(b.Length(0), b.Length(1), b.Length(2))
}

// Forward runs the full x -> y -> z forward pipeline (spec.md §4.4).
// in must be laid out over a BoxArray identical in cell coverage to the
// engine's rx layout; its contents are copied into rx via an Identity
// redistribution before transforming.
func (e *R2C) Forward(in *dist.Array[float64]) error {
	if err := e.copyIn(in); err != nil {
		return err
	}
	return e.forwardLocked()
}

func (e *R2C) copyIn(in *dist.Array[float64]) error {
	meta := redistribute.Build(e.rxBoxes, in.Boxes(), box.Identity)
	return redistribute.ParallelCopy(e.rx, in, meta, e.workers)
}

func (e *R2C) forwardLocked() error {
	if err := par.Ranks(len(e.rxBoxes), func(r int) error {
		return e.xPlans[r].ForwardLines(e.cx.Data(r), localShape(e.cxBoxes[r]), e.rx.Data(r), localShape(e.rxBoxes[r]), 0, e.workers)
	}); err != nil {
		return err
	}

	if err := redistribute.ParallelCopy(e.cy, e.cx, e.xyMeta, e.workers); err != nil {
		return err
	}

	if err := par.Ranks(len(e.cyBoxes), func(r int) error {
		return e.yPlans[r].TransformLines(e.cy.Data(r), localShape(e.cyBoxes[r]), 0, false, e.workers)
	}); err != nil {
		return err
	}

	if !e.dim3 {
		return nil
	}

	if err := redistribute.ParallelCopy(e.cz, e.cy, e.yzMeta, e.workers); err != nil {
		return err
	}

	return par.Ranks(len(e.czBoxes), func(r int) error {
		return e.zPlans[r].TransformLines(e.cz.Data(r), localShape(e.czBoxes[r]), 0, false, e.workers)
	})
}

// Backward runs the full z -> y -> x backward pipeline and copies the
// result into out (spec.md §4.4). The output is unnormalised: a Forward
// followed by a Backward returns the input scaled by N0*N1*N2 (invariant 1).
func (e *R2C) Backward(out *dist.Array[float64]) error {
	if err := e.backwardLocked(); err != nil {
		return err
	}
	meta := redistribute.Build(out.Boxes(), e.rxBoxes, box.Identity)
	return redistribute.ParallelCopy(out, e.rx, meta, e.workers)
}

func (e *R2C) backwardLocked() error {
	if e.dim3 {
		if err := par.Ranks(len(e.czBoxes), func(r int) error {
			return e.zPlans[r].TransformLines(e.cz.Data(r), localShape(e.czBoxes[r]), 0, true, e.workers)
		}); err != nil {
			return err
		}

		if err := redistribute.ParallelCopy(e.cy, e.cz, e.yzMeta.Inverse(), e.workers); err != nil {
			return err
		}
	}

	if err := par.Ranks(len(e.cyBoxes), func(r int) error {
		return e.yPlans[r].TransformLines(e.cy.Data(r), localShape(e.cyBoxes[r]), 0, true, e.workers)
	}); err != nil {
		return err
	}

	if err := redistribute.ParallelCopy(e.cx, e.cy, e.xyMeta.Inverse(), e.workers); err != nil {
		return err
	}

	return par.Ranks(len(e.rxBoxes), func(r int) error {
		return e.xPlans[r].BackwardLines(e.rx.Data(r), localShape(e.rxBoxes[r]), e.cx.Data(r), localShape(e.cxBoxes[r]), 0, e.workers)
	})
}

// ForwardThenBackward runs Forward, invokes postFwd once per spectral cell
// with canonical (x,y,z) indices and the cell's current value (the return
// value is written back before Backward runs), then runs Backward into out
// (spec.md §4.4's forward_then_backward). No redistribution is performed
// purely for the callback: it observes the engine's current internal
// layout, translating indices to canonical order as it iterates.
//
// When opts.BatchMode is set, the callback fires once per (spectral x,
// spectral y, batch-z) tuple, per this module's resolution of spec.md §9's
// open question about the callback's batch-mode contract (SPEC_FULL.md §4).
func (e *R2C) ForwardThenBackward(in *dist.Array[float64], out *dist.Array[float64], postFwd func(i, j, k int, v complex128) complex128) error {
	if err := e.copyIn(in); err != nil {
		return err
	}
	if err := e.forwardLocked(); err != nil {
		return err
	}

	data, perm := e.spectralDataLocked()
	canon := canonicalizer(perm)
	for r, b := range data.Boxes() {
		buf := data.Data(r)
		shape := localShape(b)
		for idx := 0; idx < len(buf); idx++ {
			I, J, K := grid.FromIndex3D(idx, shape)
			gi, gj, gk := I+b.Lo[0], J+b.Lo[1], K+b.Lo[2]
			ci, cj, ck := canon(gi, gj, gk)
			buf[idx] = postFwd(ci, cj, ck, buf[idx])
		}
	}

	if err := e.backwardLocked(); err != nil {
		return err
	}
	meta := redistribute.Build(out.Boxes(), e.rxBoxes, box.Identity)
	return redistribute.ParallelCopy(out, e.rx, meta, e.workers)
}

// ForwardToSpectral runs Forward, then redistributes the internal spectral
// array into outSpectral's (caller-supplied) layout in canonical (x,y,z)
// order (spec.md §4.4's forward(in, out_spectral)).
func (e *R2C) ForwardToSpectral(in *dist.Array[float64], outSpectral *dist.Array[complex128]) error {
	if err := e.copyIn(in); err != nil {
		return err
	}
	if err := e.forwardLocked(); err != nil {
		return err
	}
	data, perm := e.spectralDataLocked()
	t := permToTransform(perm).Inverse() // RotateBackward (z-phase) or Swap01 (y-phase), spec.md §4.4
	meta := redistribute.Build(outSpectral.Boxes(), data.Boxes(), t)
	return redistribute.ParallelCopy(outSpectral, data, meta, e.workers)
}

// GetSpectralData returns the innermost spectral DistArray and the
// axis-permutation vector describing how its stored axes map to canonical
// (x,y,z): perm[d] is the canonical axis held at internal axis d.
func (e *R2C) GetSpectralData() (*dist.Array[complex128], [3]int) {
	return e.spectralDataLocked()
}

func (e *R2C) spectralDataLocked() (*dist.Array[complex128], [3]int) {
	if e.dim3 {
		return e.cz, [3]int{2, 0, 1}
	}
	return e.cy, [3]int{1, 0, 2}
}

// GetSpectralLayout returns the spectral BoxArray and RankMap in canonical
// (x,y,z) order, by unpermuting the internal layout (spec.md §4.4).
func (e *R2C) GetSpectralLayout() (box.BoxArray, box.RankMap) {
	data, perm := e.spectralDataLocked()
	t := permToTransform(perm).Inverse()
	out := make(box.BoxArray, len(data.Boxes()))
	for i, b := range data.Boxes() {
		out[i] = t.ApplyBox(b)
	}
	return out, box.IotaRankMap(len(out))
}

// permToTransform returns the IndexTransform T such that T.Apply(canonical)
// == internal, for the two permutations this engine produces: (1,0,2) after
// one Swap01 (y-phase only, batch mode) and (2,0,1) after Swap01 then
// Swap02 (full z-phase), matching spec.md §4.4's "RotateBackward (from
// z-phase) or Swap01 (from y-phase)" description of forward(in,out_spectral).
func permToTransform(perm [3]int) box.IndexTransform {
	if perm == [3]int{2, 0, 1} {
		return box.RotateForward
	}
	return box.Swap01
}

// canonicalizer returns a function mapping internal (I,J,K) global indices
// to canonical (x,y,z) indices for the given permutation.
func canonicalizer(perm [3]int) func(i, j, k int) (int, int, int) {
	t := permToTransform(perm).Inverse()
	return t.Apply
}
