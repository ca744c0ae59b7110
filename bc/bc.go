// Package bc describes the per-axis boundary conditions the generalized
// engine dispatches on: periodic, or a (low,high) pair of even/odd
// endpoints selecting a real-to-real DCT/DST variant (spec.md §4.3, §4.5).
package bc

import "errors"

// ErrMixedPeriodic is returned when exactly one endpoint of an axis is
// periodic: spec.md's invariant "if either endpoint is periodic, both must
// be" (§4.5), surfaced as InvalidBoundary.
var ErrMixedPeriodic = errors.New("bc: periodic boundary must apply to both endpoints of an axis")

// Endpoint is one boundary endpoint's condition.
type Endpoint int

const (
	// Even endpoint (Neumann-like, zero normal derivative).
	Even Endpoint = iota
	// Odd endpoint (Dirichlet-like, zero value).
	Odd
	// Periodic endpoint; valid only when the opposite endpoint is also Periodic.
	Periodic
)

func (e Endpoint) String() string {
	switch e {
	case Even:
		return "even"
	case Odd:
		return "odd"
	case Periodic:
		return "periodic"
	default:
		return "unknown"
	}
}

// Pair is the boundary condition for one axis: its low and high endpoints.
type Pair struct {
	Lo, Hi Endpoint
}

// Validate checks the periodic-must-match-periodic invariant.
func (p Pair) Validate() error {
	loP, hiP := p.Lo == Periodic, p.Hi == Periodic
	if loP != hiP {
		return ErrMixedPeriodic
	}
	return nil
}

// IsPeriodic reports whether the axis is periodic.
func (p Pair) IsPeriodic() bool {
	return p.Lo == Periodic
}

// Variant identifies the real-to-real transform family an (Even/Odd) pair
// selects (spec.md §4.3).
type Variant int

const (
	// DCT2 is used for (even,even): DCT-II forward, DCT-III backward.
	DCT2 Variant = iota
	// DST2 is used for (odd,odd): DST-II forward, DST-III backward.
	DST2
	// DCT4 is used for (even,odd): self-inverse up to scaling.
	DCT4
	// DST4 is used for (odd,even): self-inverse up to scaling.
	DST4
)

// R2RVariant maps a non-periodic boundary pair to its transform variant.
// p must not be periodic (callers route periodic axes to r2c/c2c instead).
func (p Pair) R2RVariant() Variant {
	switch {
	case p.Lo == Even && p.Hi == Even:
		return DCT2
	case p.Lo == Odd && p.Hi == Odd:
		return DST2
	case p.Lo == Even && p.Hi == Odd:
		return DCT4
	default: // Odd, Even
		return DST4
	}
}

// SelfInverse reports whether the variant's forward and backward plans are
// the same handle (self-inverse up to scaling): DCT-IV and DST-IV are;
// DCT-II/DCT-III and DST-II/DST-III are not.
func (v Variant) SelfInverse() bool {
	return v == DCT4 || v == DST4
}
