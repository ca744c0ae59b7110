package box

import "testing"

func TestDecomposeCoversDomainWithoutOverlap(t *testing.T) {
	domain := NewBox(3, [3]int{0, 0, 0}, [3]int{7, 7, 7})
	boxes, err := Decompose(domain, 4, [3]bool{false, false, false})
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}

	total := 0
	for _, b := range boxes {
		total += b.Size()
	}
	if total != domain.Size() {
		t.Errorf("decomposed boxes cover %d cells, want %d", total, domain.Size())
	}

	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if _, ok := boxes[i].Intersect(boxes[j]); ok {
				t.Errorf("boxes %d and %d overlap: %v, %v", i, j, boxes[i], boxes[j])
			}
		}
	}
}

func TestDecomposeRespectsKeepDims(t *testing.T) {
	domain := NewBox(3, [3]int{0, 0, 0}, [3]int{7, 7, 7})
	boxes, err := Decompose(domain, 4, [3]bool{true, false, false})
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	for _, b := range boxes {
		if b.Length(0) != domain.Length(0) {
			t.Errorf("axis 0 should stay whole, got length %d", b.Length(0))
		}
	}
}

func TestDecomposeRejectsAllDimsKept(t *testing.T) {
	domain := NewBox(3, [3]int{0, 0, 0}, [3]int{7, 7, 7})
	if _, err := Decompose(domain, 2, [3]bool{true, true, true}); err != ErrInvalidDomain {
		t.Errorf("expected ErrInvalidDomain with all dims kept, got %v", err)
	}
}

func TestDecomposeRejectsNonPositivePieces(t *testing.T) {
	domain := NewBox(3, [3]int{0, 0, 0}, [3]int{7, 7, 7})
	if _, err := Decompose(domain, 0, [3]bool{false, false, false}); err != ErrInvalidDomain {
		t.Errorf("expected ErrInvalidDomain for nPieces=0, got %v", err)
	}
}

func TestDecomposeStopsWhenNoLongerSplittable(t *testing.T) {
	domain := NewBox(3, [3]int{0, 0, 0}, [3]int{0, 0, 0})
	boxes, err := Decompose(domain, 8, [3]bool{false, false, false})
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(boxes) != 1 {
		t.Errorf("single-cell domain should not split, got %d boxes", len(boxes))
	}
}

func TestDecomposePrefersHighestIndexedAxis(t *testing.T) {
	domain := NewBox(3, [3]int{0, 0, 0}, [3]int{3, 3, 3})
	boxes, err := Decompose(domain, 2, [3]bool{false, false, false})
	if err != nil {
		t.Fatalf("Decompose() error: %v", err)
	}
	if len(boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(boxes))
	}
	// axis 2 is highest-indexed and should be split first when all axes tie.
	if boxes[0].Length(2) == domain.Length(2) {
		t.Error("expected axis 2 to be split first among equal-length axes")
	}
}
