// Package engine implements R2C and R2X (spec.md §4.4, §4.5): the
// distributed forward/backward pipelines that orchestrate box decomposition,
// redistribution, and per-axis kernel plans into a complete transform.
package engine

import "errors"

var (
	// ErrInvalidDomain is returned when a domain's lo corner is non-zero, or
	// a required extent is too small for the requested engine shape.
	ErrInvalidDomain = errors.New("engine: invalid domain")
	// ErrInvalidBoundary is returned when an axis mixes a periodic endpoint
	// with a non-periodic one.
	ErrInvalidBoundary = errors.New("engine: invalid boundary: periodic endpoints must match")
	// ErrBackendFailure wraps an unrecoverable plan construction or
	// execution failure from the kernel layer.
	ErrBackendFailure = errors.New("engine: backend failure")
)
