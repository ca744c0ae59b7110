// Package box provides the index-space primitives the distributed FFT
// engine is built on: index boxes, box arrays, rank maps, and the domain
// decomposer that splits a rectangular domain into per-rank subboxes.
//
// It generalizes the fixed [3]int grid.Shape the teacher's single-process
// solver uses into a distributed, multi-box description of the same
// logically rectangular domain.
package box

import "fmt"

// IndexBox is a closed integer hyper-rectangle [Lo, Hi] in up to 3 dims.
// Cell-centered: a box with Lo[d] == Hi[d] contains exactly one cell along
// axis d.
type IndexBox struct {
	Lo [3]int
	Hi [3]int
}

// NewBox constructs an IndexBox from explicit bounds. dim selects how many
// of the 3 axes are active; inactive axes are pinned to [0,0].
func NewBox(dim int, lo, hi [3]int) IndexBox {
	b := IndexBox{Lo: lo, Hi: hi}
	for d := dim; d < 3; d++ {
		b.Lo[d] = 0
		b.Hi[d] = 0
	}
	return b
}

// Length returns hi[d]-lo[d]+1, the number of cells along axis d.
func (b IndexBox) Length(d int) int {
	return b.Hi[d] - b.Lo[d] + 1
}

// Size returns the total cell count of the box.
func (b IndexBox) Size() int {
	return b.Length(0) * b.Length(1) * b.Length(2)
}

// Contains reports whether (i,j,k) lies within the box.
func (b IndexBox) Contains(i, j, k int) bool {
	return i >= b.Lo[0] && i <= b.Hi[0] &&
		j >= b.Lo[1] && j <= b.Hi[1] &&
		k >= b.Lo[2] && k <= b.Hi[2]
}

// Intersect returns the overlap of two boxes and whether it is non-empty.
func (b IndexBox) Intersect(o IndexBox) (IndexBox, bool) {
	var r IndexBox
	for d := 0; d < 3; d++ {
		lo := b.Lo[d]
		if o.Lo[d] > lo {
			lo = o.Lo[d]
		}
		hi := b.Hi[d]
		if o.Hi[d] < hi {
			hi = o.Hi[d]
		}
		if lo > hi {
			return IndexBox{}, false
		}
		r.Lo[d] = lo
		r.Hi[d] = hi
	}
	return r, true
}

// Valid reports whether Lo <= Hi componentwise.
func (b IndexBox) Valid() bool {
	for d := 0; d < 3; d++ {
		if b.Lo[d] > b.Hi[d] {
			return false
		}
	}
	return true
}

func (b IndexBox) String() string {
	return fmt.Sprintf("[(%d,%d,%d):(%d,%d,%d)]", b.Lo[0], b.Lo[1], b.Lo[2], b.Hi[0], b.Hi[1], b.Hi[2])
}

// BoxArray is an ordered, disjoint sequence of IndexBoxes. The slice index
// is the global box id, 0..K-1.
type BoxArray []IndexBox

// Size returns the number of boxes (K).
func (a BoxArray) Size() int { return len(a) }

// TotalCells sums the cell counts of every box.
func (a BoxArray) TotalCells() int {
	total := 0
	for _, b := range a {
		total += b.Size()
	}
	return total
}

// RankMap is a total function box-id -> rank. The engines always build an
// iota map: box i belongs to rank i, so the first K ranks each own exactly
// one box (spec.md §3).
type RankMap []int

// IotaRankMap returns the rank map box i -> rank i for k boxes.
func IotaRankMap(k int) RankMap {
	m := make(RankMap, k)
	for i := range m {
		m[i] = i
	}
	return m
}

// Rank returns the owning rank of box id.
func (m RankMap) Rank(boxID int) int { return m[boxID] }
