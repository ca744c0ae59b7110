package kernel

import "errors"

var (
	// ErrInvalidSize is returned when a plan is constructed for a
	// non-positive or otherwise unsupported transform length.
	ErrInvalidSize = errors.New("kernel: invalid transform size")
	// ErrSizeMismatch is returned when a buffer or shape's extent along the
	// transform axis does not match the plan it is passed to.
	ErrSizeMismatch = errors.New("kernel: size mismatch")
)
