// Package redistribute implements the data-redistribution choreography of
// spec.md §4.2: given a source and destination distributed array plus an
// index-space box.IndexTransform, it computes communication metadata once
// (Build) and replays it on every subsequent call (ParallelCopy).
//
// It generalizes grid.LineIterator's per-line local indexing to cross-rank,
// cross-box index-space intersection.
package redistribute

import "github.com/MeKo-Tech/specfft/box"

// Entry is one (src-rank, src-offset, dst-rank, dst-offset, extent) copy
// descriptor (spec.md §3 CommMetadata). Extent is a run of contiguous
// elements in both the source and destination flat storage.
type Entry struct {
	SrcRank, DstRank     int
	SrcOffset, DstOffset int
	Extent               int
}

// Metadata is the full set of copy descriptors for one redistribution.
// Order is irrelevant to correctness; Build emits entries in box-id order
// for determinism.
type Metadata []Entry

// Build enumerates every destination cell, maps it back through T^-1 into
// source coordinates, intersects with each source box, and emits a copy
// descriptor per maximal contiguous run (spec.md §4.2 build-time). Runs are
// batched along the destination's fastest axis when T keeps that axis's
// identity across the transform (e.g. Identity, Swap01); otherwise entries
// are emitted per cell, since the transform interleaves the fastest and a
// slower axis and no single contiguous run exists on both sides at once.
func Build(dstBoxes, srcBoxes box.BoxArray, t box.IndexTransform) Metadata {
	inv := t.Inverse()
	batchable := lineBatchable(t)

	var meta Metadata
	for dstRank, dstBox := range dstBoxes {
		srcCandidate := inv.ApplyBox(dstBox)

		for srcRank, srcBox := range srcBoxes {
			region, ok := srcCandidate.Intersect(srcBox)
			if !ok {
				continue
			}
			meta = appendRegion(meta, region, srcBox, srcRank, dstBox, dstRank, t, batchable)
		}
	}
	return meta
}

// lineBatchable reports whether stepping the source's fastest axis (axis 2)
// by one also steps the destination's fastest axis by one, leaving the
// other two destination coordinates fixed — the condition under which a
// full src line can be copied as one contiguous destination run.
func lineBatchable(t box.IndexTransform) bool {
	a0, a1, a2 := t.Apply(0, 0, 0)
	b0, b1, b2 := t.Apply(0, 0, 1)
	return b0 == a0 && b1 == a1 && b2 == a2+1
}

func appendRegion(
	meta Metadata,
	region, srcBox box.IndexBox,
	srcRank int,
	dstBox box.IndexBox,
	dstRank int,
	t box.IndexTransform,
	batchable bool,
) Metadata {
	srcNy, srcNz := srcBox.Length(1), srcBox.Length(2)
	dstNy, dstNz := dstBox.Length(1), dstBox.Length(2)

	for i := region.Lo[0]; i <= region.Hi[0]; i++ {
		for j := region.Lo[1]; j <= region.Hi[1]; j++ {
			k := region.Lo[2]
			for k <= region.Hi[2] {
				run := 1
				if batchable {
					run = region.Hi[2] - k + 1
				}

				di, dj, dk := t.Apply(i, j, k)
				srcOff := srcIndex(i-srcBox.Lo[0], j-srcBox.Lo[1], k-srcBox.Lo[2], srcNy, srcNz)
				dstOff := srcIndex(di-dstBox.Lo[0], dj-dstBox.Lo[1], dk-dstBox.Lo[2], dstNy, dstNz)

				meta = append(meta, Entry{
					SrcRank: srcRank, DstRank: dstRank,
					SrcOffset: srcOff, DstOffset: dstOff,
					Extent: run,
				})

				k += run
			}
		}
	}
	return meta
}

func srcIndex(li, lj, lk, ny, nz int) int {
	return (li*ny+lj)*nz + lk
}

// Inverse returns the metadata for the reverse copy: each entry's source and
// destination swap. Since every Entry already records the exact bijective
// correspondence between one source run and one destination run, reversing
// the copy direction needs no re-intersection of boxes, for any transform
// (self-inverse or not) the original Metadata was built from.
func (m Metadata) Inverse() Metadata {
	inv := make(Metadata, len(m))
	for i, e := range m {
		inv[i] = Entry{
			SrcRank: e.DstRank, DstRank: e.SrcRank,
			SrcOffset: e.DstOffset, DstOffset: e.SrcOffset,
			Extent: e.Extent,
		}
	}
	return inv
}
