package dist

import "errors"

// ErrOutOfMemory is returned by Arena.Alloc when the arena's soft budget
// would be exceeded (spec.md §7 OutOfMemory).
var ErrOutOfMemory = errors.New("dist: arena allocation exceeds budget")

// Arena is a process-wide byte-buffer allocator modeling spec.md §5/§6's
// external allocator ("alloc(n_bytes)/free(ptr)" plus an accelerator
// stream accessor). It tracks a soft byte budget over the plain byte
// slices it hands out. The engines do not draw from an Arena: they allocate
// every working array through Define, each with its own storage, so no two
// phase arrays share a buffer.
//
// budgetBytes <= 0 means unbounded, matching the teacher's convention of
// 0 meaning "use the default" elsewhere in this module (e.g. Options.Workers).
type Arena struct {
	budgetBytes int64
	usedBytes   int64
}

// NewArena creates an Arena with the given soft byte budget (0 = unbounded).
func NewArena(budgetBytes int64) *Arena {
	return &Arena{budgetBytes: budgetBytes}
}

// Alloc returns a zeroed byte buffer of the requested size, tracked against
// the arena's budget.
func (a *Arena) Alloc(nBytes int) ([]byte, error) {
	if a.budgetBytes > 0 && a.usedBytes+int64(nBytes) > a.budgetBytes {
		return nil, ErrOutOfMemory
	}
	a.usedBytes += int64(nBytes)
	return make([]byte, nBytes), nil
}

// Free releases a previously allocated buffer's accounted size. Go's GC
// reclaims the memory itself; Free only keeps the budget accounting
// consistent with repeated Alloc/Free cycles across many engine
// invocations.
func (a *Arena) Free(buf []byte) {
	a.usedBytes -= int64(len(buf))
	if a.usedBytes < 0 {
		a.usedBytes = 0
	}
}

// UsedBytes reports the arena's current accounted usage.
func (a *Arena) UsedBytes() int64 { return a.usedBytes }
