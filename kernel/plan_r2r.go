package kernel

import (
	"fmt"

	"github.com/MeKo-Tech/specfft/bc"
	"github.com/MeKo-Tech/specfft/grid"
	"github.com/MeKo-Tech/specfft/r2r"
)

// r2rLine1D is the common shape of a single-line real-to-real transform:
// one src/dst pair of length n, operating in place or out of place.
type r2rLine1D interface {
	Len() int
	Forward(dst, src []float64) error
}

// r2rBackward1D is the backward half of an R2RPlan: a distinct DCT-III or
// DST-III plan for the type II variants, or a selfInverseAdapter around the
// shared plan for the self-inverse type IV variants.
type r2rBackward1D interface {
	r2rLine1D
	NormalizationFactor() float64
}

// R2RPlan batches a real-to-real transform (spec.md §4.1's r2r flavor) over
// every line of a local box parallel to one axis, dispatching on the axis's
// bc.Variant to the matching pair of r2r plans. DCT-II/DCT-III and
// DST-II/DST-III use distinct forward and backward plan objects; DCT-IV and
// DST-IV are self-inverse and share one.
type R2RPlan struct {
	n       int
	variant bc.Variant
	fwd     r2rLine1D
	bwd     r2rBackward1D
	norm    float64
}

// NewR2RPlan creates an r2r plan for the given variant and axis length n.
func NewR2RPlan(variant bc.Variant, n int) (*R2RPlan, error) {
	switch variant {
	case bc.DCT2:
		fwd, err := r2r.NewDCT2Plan(n)
		if err != nil {
			return nil, err
		}
		bwd, err := r2r.NewDCT3Plan(n)
		if err != nil {
			return nil, err
		}
		return &R2RPlan{n: n, variant: variant, fwd: fwd, bwd: bwd, norm: bwd.NormalizationFactor()}, nil
	case bc.DST2:
		fwd, err := r2r.NewDST2Plan(n)
		if err != nil {
			return nil, err
		}
		bwd, err := r2r.NewDST3Plan(n)
		if err != nil {
			return nil, err
		}
		return &R2RPlan{n: n, variant: variant, fwd: fwd, bwd: bwd, norm: bwd.NormalizationFactor()}, nil
	case bc.DCT4:
		p, err := r2r.NewDCT4Plan(n)
		if err != nil {
			return nil, err
		}
		return &R2RPlan{n: n, variant: variant, fwd: p, bwd: selfInverseAdapter{p}, norm: p.NormalizationFactor()}, nil
	case bc.DST4:
		p, err := r2r.NewDST4Plan(n)
		if err != nil {
			return nil, err
		}
		return &R2RPlan{n: n, variant: variant, fwd: p, bwd: selfInverseAdapter{p}, norm: p.NormalizationFactor()}, nil
	default:
		return nil, fmt.Errorf("kernel: unknown r2r variant %v", variant)
	}
}

// selfInverseAdapter exposes a self-inverse plan's Forward method as the
// "backward" half of R2RPlan, with its own NormalizationFactor.
type selfInverseAdapter struct {
	p interface {
		Forward(dst, src []float64) error
		NormalizationFactor() float64
	}
}

func (a selfInverseAdapter) Len() int                     { return 0 }
func (a selfInverseAdapter) Forward(dst, src []float64) error { return a.p.Forward(dst, src) }
func (a selfInverseAdapter) NormalizationFactor() float64 { return a.p.NormalizationFactor() }

// Len returns the transform size.
func (p *R2RPlan) Len() int { return p.n }

// Variant returns the boundary-condition variant this plan implements.
func (p *R2RPlan) Variant() bc.Variant { return p.variant }

// NormalizationFactor returns the scale by which a ForwardLines call
// followed by a BackwardLines call multiplies the original signal; the
// caller (the engine layer) folds this into its overall scalingFactor
// instead of dividing it out here, matching the unnormalized FFTW-style
// convention the c2c/r2c kernels also use.
func (p *R2RPlan) NormalizationFactor() float64 { return p.norm }

// ForwardLines applies the forward transform along every line of data
// (shaped shape) parallel to axis, distributed across workers.
func (p *R2RPlan) ForwardLines(data []float64, shape grid.Shape, axis, workers int) error {
	return p.transformLines(data, shape, axis, workers, p.fwd.Forward)
}

// BackwardLines applies the backward transform along every line of data
// (shaped shape) parallel to axis, distributed across workers.
func (p *R2RPlan) BackwardLines(data []float64, shape grid.Shape, axis, workers int) error {
	return p.transformLines(data, shape, axis, workers, p.bwd.Forward)
}

func (p *R2RPlan) transformLines(data []float64, shape grid.Shape, axis, workers int, fn func(dst, src []float64) error) error {
	if len(data) != shape.Size() || shape.N(axis) != p.n {
		return ErrSizeMismatch
	}
	stride := grid.RowMajorStride(shape)[axis]

	return forEachLine(shape, shape, axis, workers, func(start, _ int) error {
		line := make([]float64, p.n)
		for i := 0; i < p.n; i++ {
			line[i] = data[start+i*stride]
		}
		out := make([]float64, p.n)
		if err := fn(out, line); err != nil {
			return err
		}
		for i := 0; i < p.n; i++ {
			data[start+i*stride] = out[i]
		}
		return nil
	})
}
