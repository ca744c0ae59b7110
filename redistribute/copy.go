package redistribute

import (
	"github.com/MeKo-Tech/specfft/dist"
	"github.com/MeKo-Tech/specfft/internal/par"
)

// ParallelCopy executes a previously built Metadata: for every destination
// cell, dst(i,j,k) = src(T^-1(i,j,k)) (spec.md §4.2 execute-time). The
// transform is applied to indices only; values (including complex numbers)
// are copied verbatim, with no conjugation.
//
// Guarantees matching spec.md §4.2: at-most-once send per source cell and
// at-most-once receive per destination cell, since Build emits exactly one
// entry per (destination cell, owning source box) pair; synchronous on
// return, as ParallelCopy blocks until every worker goroutine completes.
func ParallelCopy[T any](dst, src *dist.Array[T], meta Metadata, workers int) error {
	workers = par.ClampWorkers(workers, len(meta))
	return par.For(workers, len(meta), func(_ int, start, end int) error {
		for idx := start; idx < end; idx++ {
			e := meta[idx]
			s := src.Data(e.SrcRank)
			d := dst.Data(e.DstRank)
			copy(d[e.DstOffset:e.DstOffset+e.Extent], s[e.SrcOffset:e.SrcOffset+e.Extent])
		}
		return nil
	})
}
