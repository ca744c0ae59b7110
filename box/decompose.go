package box

// Decompose splits domain into at most nPieces disjoint subboxes, never
// splitting along an axis d where keepDims[d] is true (spec.md §4.1).
//
// Tie-break: among splittable axes, higher-indexed axes are split first;
// each split bisects the box as evenly as possible. Exact load balancing
// across the resulting boxes is not guaranteed or required — vendor 1-D
// FFTs tolerate varying batch counts per rank.
func Decompose(domain IndexBox, nPieces int, keepDims [3]bool) (BoxArray, error) {
	if nPieces < 1 {
		return nil, ErrInvalidDomain
	}
	if keepDims[0] && keepDims[1] && keepDims[2] {
		return nil, ErrInvalidDomain
	}

	boxes := BoxArray{domain}
	for len(boxes) < nPieces {
		idx, axis, ok := pickSplit(boxes, keepDims)
		if !ok {
			break
		}
		lo, hi := splitBox(boxes[idx], axis)
		boxes = append(boxes[:idx], append(BoxArray{lo, hi}, boxes[idx+1:]...)...)
	}
	return boxes, nil
}

// pickSplit finds the box/axis pair to split next: the box with the
// largest extent along the highest-indexed unlocked, splittable axis.
func pickSplit(boxes BoxArray, keepDims [3]bool) (boxIdx, axis int, ok bool) {
	bestLen := 1
	boxIdx, axis, ok = -1, -1, false

	for a := 2; a >= 0; a-- {
		if keepDims[a] {
			continue
		}
		for i, b := range boxes {
			l := b.Length(a)
			if l > bestLen {
				bestLen = l
				boxIdx, axis, ok = i, a, true
			}
		}
		if ok {
			// Prefer the highest-indexed axis that has anything to split;
			// don't fall through to lower axes once one has candidates.
			break
		}
	}
	return boxIdx, axis, ok
}

// splitBox bisects b along axis into two boxes covering its full extent.
func splitBox(b IndexBox, axis int) (IndexBox, IndexBox) {
	lo, hi := b.Lo[axis], b.Hi[axis]
	mid := lo + (hi-lo)/2

	left, right := b, b
	left.Hi[axis] = mid
	right.Lo[axis] = mid + 1
	return left, right
}
