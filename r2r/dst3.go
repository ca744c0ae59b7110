package r2r

import "math"

// DST3Plan is a Discrete Sine Transform plan (Type III), the inverse kernel
// of DST-II, promoted the same way DCT3Plan promotes DCT2Plan's inverse:
// for input X[0..N-1],
//
//	x[n] = 2 * (X[N-1] * (-1)^n + 2 * Σ X[k] * sin(π(n+1/2)(k+1)/N)) for k = 0..N-2
//
// using DST2Coefficient(n, k, N), the same kernel DST2Plan.Inverse sums
// over. The outer factor of 2 matches DCT3Plan's.
//
// Thread safety: a DST3Plan instance is not safe for concurrent use.
type DST3Plan struct {
	n    int
	opts Options
}

// NewDST3Plan creates a new DST-III plan for the given size. n must be at least 1.
func NewDST3Plan(n int, opts ...Option) (*DST3Plan, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	return &DST3Plan{n: n, opts: applyOptions(opts)}, nil
}

// Len returns the transform size.
func (p *DST3Plan) Len() int { return p.n }

// Forward computes the DST-III transform. dst and src must have length n.
//
// Output normalization: the output is NOT normalized; a DST2Plan.Forward
// followed by a DST3Plan.Forward returns the original signal scaled by 2N.
// The NormOrtho output is the orthonormal DST-III without the factor of 2.
func (p *DST3Plan) Forward(dst, src []float64) error {
	if len(dst) != p.n || len(src) != p.n {
		return ErrSizeMismatch
	}

	srcData := src
	if len(src) > 0 && len(dst) > 0 && &src[0] == &dst[0] {
		srcData = make([]float64, p.n)
		copy(srcData, src)
	}

	last := p.n - 1
	for n := range p.n {
		sign := 1.0
		if n%2 == 1 {
			sign = -1.0
		}
		sum := srcData[last] * sign
		for k := 0; k < last; k++ {
			sum += 2.0 * srcData[k] * DST2Coefficient(n, k, p.n)
		}
		sum *= 2.0
		if p.opts.Normalization == NormOrtho {
			sum = srcData[last] * sign / math.Sqrt(float64(p.n))
			for k := 0; k < last; k++ {
				sum += math.Sqrt(2.0/float64(p.n)) * srcData[k] * DST2Coefficient(n, k, p.n)
			}
		}
		dst[n] = sum
	}

	return nil
}

// NormalizationFactor returns the factor by which values are scaled after a
// DST2Plan.Forward followed by a DST3Plan.Forward: 2N, for the same reason
// DCT3Plan.NormalizationFactor is 2N rather than N.
func (p *DST3Plan) NormalizationFactor() float64 {
	if p.opts.Normalization == NormOrtho {
		return 1.0
	}
	return 2.0 * float64(p.n)
}

// DST4Plan is a Discrete Sine Transform plan (Type IV), self-inverse up to
// scaling. For input x[0..N-1]:
//
//	X[k] = Σ x[n] * sin(π(n+1/2)(k+1/2)/N) for k = 0..N-1
//
// Used for the (odd,even) boundary pair: a Dirichlet endpoint at one end of
// the axis and a Neumann endpoint at the other (spec.md §4.3). Computed by
// direct O(N^2) summation, for the same reason DCT4Plan is: see its
// follow-up TODO.
type DST4Plan struct {
	n    int
	opts Options
}

// NewDST4Plan creates a new DST-IV plan for the given size. n must be at least 1.
func NewDST4Plan(n int, opts ...Option) (*DST4Plan, error) {
	if n < 1 {
		return nil, ErrInvalidSize
	}
	return &DST4Plan{n: n, opts: applyOptions(opts)}, nil
}

// Len returns the transform size.
func (p *DST4Plan) Len() int { return p.n }

// Forward computes the DST-IV transform. dst and src must have length n.
//
// Carries the same extra factor of 2 DCT4Plan.Forward does, so that
// Forward∘Forward = 2N·I, matching DCT-II/DCT-III's 2N convention.
func (p *DST4Plan) Forward(dst, src []float64) error {
	if len(dst) != p.n || len(src) != p.n {
		return ErrSizeMismatch
	}

	srcData := src
	if len(src) > 0 && len(dst) > 0 && &src[0] == &dst[0] {
		srcData = make([]float64, p.n)
		copy(srcData, src)
	}

	scale := 2.0
	if p.opts.Normalization == NormOrtho {
		scale = math.Sqrt(2.0 / float64(p.n))
	}

	for k := range p.n {
		sum := 0.0
		for n := range p.n {
			sum += srcData[n] * DST4Coefficient(n, k, p.n)
		}
		dst[k] = sum * scale
	}

	return nil
}

// Inverse computes the inverse DST-IV transform. DST-IV is self-inverse up
// to a scale of 1/(2N).
func (p *DST4Plan) Inverse(dst, src []float64) error {
	if err := p.Forward(dst, src); err != nil {
		return err
	}
	if p.opts.Normalization == NormOrtho {
		return nil
	}
	scale := 1.0 / (2.0 * float64(p.n))
	for i := range p.n {
		dst[i] *= scale
	}
	return nil
}

// NormalizationFactor returns the factor by which values are scaled after a
// Forward followed by an Inverse transform (or two Forward calls): 2N.
func (p *DST4Plan) NormalizationFactor() float64 {
	if p.opts.Normalization == NormOrtho {
		return 1.0
	}
	return 2.0 * float64(p.n)
}

// DST4Coefficient returns the DST-IV basis function sin(π(n+1/2)(k+1/2)/size).
func DST4Coefficient(n, k, size int) float64 {
	if size <= 0 {
		return 0
	}
	return math.Sin(math.Pi * (float64(n) + 0.5) * (float64(k) + 0.5) / float64(size))
}
