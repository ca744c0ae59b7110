package box

import "errors"

// ErrInvalidDomain is returned by Decompose when n_pieces < 1 or every
// dimension is locked against splitting (spec.md §4.1, §7 InvalidDomain).
var ErrInvalidDomain = errors.New("box: invalid domain: cannot decompose under given constraints")
