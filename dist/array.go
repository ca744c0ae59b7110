// Package dist implements the DistArray<T> abstraction from spec.md §3 and
// §6: a logical array over a box.BoxArray with per-box flat storage.
//
// The real collaborator (block decomposition, per-rank fabrication, halo
// exchange) is declared out of scope in spec.md §1 and consumed only
// through this narrow interface. This package provides the one in-process
// implementation the engines are built and tested against: every rank's
// storage lives in the same Go process, addressed by rank id, and rank
// advancement is modeled by internal/par's goroutine-per-rank execution
// rather than a real network fabric.
package dist

import "github.com/MeKo-Tech/specfft/box"

// Array is a distributed array of element type T over a BoxArray, with an
// iota RankMap (box i -> rank i, spec.md §3).
type Array[T any] struct {
	boxes box.BoxArray
	ncomp int
	data  [][]T // data[rank] is the flat, row-major storage for boxes[rank]
}

// Define allocates a new Array over the given boxes with ncomp components
// per cell (spec.md §6, DistArray<T>::define). noAlloc skips storage
// allocation, leaving Data(rank) empty until the caller binds an aliased
// buffer via Bind.
func Define[T any](boxes box.BoxArray, ncomp int, noAlloc bool) *Array[T] {
	a := &Array[T]{boxes: boxes, ncomp: ncomp, data: make([][]T, len(boxes))}
	if noAlloc {
		return a
	}
	for r, b := range boxes {
		a.data[r] = make([]T, b.Size()*ncomp)
	}
	return a
}

// NumRanks returns the number of ranks participating in this array (K).
func (a *Array[T]) NumRanks() int { return len(a.boxes) }

// Box returns the subbox owned by rank.
func (a *Array[T]) Box(rank int) box.IndexBox { return a.boxes[rank] }

// Boxes returns the full BoxArray backing this array.
func (a *Array[T]) Boxes() box.BoxArray { return a.boxes }

// NComp returns the number of components per cell.
func (a *Array[T]) NComp() int { return a.ncomp }

// Data returns the flat per-rank storage, row-major over (Box(rank), ncomp).
func (a *Array[T]) Data(rank int) []T { return a.data[rank] }

// Bind attaches externally-owned storage (e.g. an aliased arena view) as
// rank's backing buffer, replacing whatever was previously allocated.
func (a *Array[T]) Bind(rank int, buf []T) { a.data[rank] = buf }

// At returns the flat index of cell (i,j,k), component c, within rank's
// local box, in row-major order.
func (a *Array[T]) At(rank, i, j, k, c int) int {
	b := a.boxes[rank]
	ny, nz := b.Length(1), b.Length(2)
	li, lj, lk := i-b.Lo[0], j-b.Lo[1], k-b.Lo[2]
	return ((li*ny+lj)*nz+lk)*a.ncomp + c
}
