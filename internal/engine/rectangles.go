package engine

import "sudoku-state/internal/core"

// Rectangle is an unordered pair of rows and of columns whose four
// intersecting cells are all unsolved and share at least one candidate.
// Corners are clockwise from the upper-left: UL=(r1,c1), UR=(r1,c2),
// LR=(r2,c2), LL=(r2,c1), with r1<r2 and c1<c2.
type Rectangle struct {
	Candidates CandidateSet
	UL, UR, LR, LL core.CellRef
}

// FindRectangles scans every coordinate (r,c) with r<8, c<8 as a candidate
// upper-left corner and unions the anchored results. required, if nonzero,
// restricts results to rectangles whose shared candidate set is a superset
// of it. The global mode silently skips the last row/column as anchors,
// unlike the anchored mode below which rejects them with BadCorner.
func (s *State) FindRectangles(required CandidateSet) []Rectangle {
	var out []Rectangle
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out = append(out, s.rectanglesFrom(r, c, required)...)
		}
	}
	return out
}

// FindRectanglesAt finds every rectangle whose upper-left corner is corner.
// corner must have row < 8 and col < 8; otherwise BadCorner.
func (s *State) FindRectanglesAt(corner core.CellRef, required CandidateSet) ([]Rectangle, error) {
	if err := validateKey(corner); err != nil {
		return nil, err
	}
	if corner.Row >= 8 || corner.Col >= 8 {
		return nil, badCornerf("engine: FindRectanglesAt: %v is in the last row or column", corner)
	}
	return s.rectanglesFrom(corner.Row, corner.Col, required), nil
}

// rectanglesFrom runs the corner-anchored search: ascending c2 outer,
// ascending r2 inner, each step narrowing the shared
// candidate mask and bailing as soon as it can no longer satisfy required.
func (s *State) rectanglesFrom(r, c int, required CandidateSet) []Rectangle {
	ulCell := s.cells[core.CellRef{Row: r, Col: c}.Index()]
	if ulCell.isSolved() {
		return nil
	}
	ulMask := ulCell.mask

	var out []Rectangle
	for c2 := c + 1; c2 < 9; c2++ {
		urCell := s.cells[core.CellRef{Row: r, Col: c2}.Index()]
		if urCell.isSolved() {
			continue
		}
		m1 := ulMask.Intersect(urCell.mask)
		if m1.IsZero() || !required.LessOrEqual(m1) {
			continue
		}

		for r2 := r + 1; r2 < 9; r2++ {
			llCell := s.cells[core.CellRef{Row: r2, Col: c}.Index()]
			if llCell.isSolved() {
				continue
			}
			m2 := m1.Intersect(llCell.mask)
			if m2.IsZero() || !required.LessOrEqual(m2) {
				continue
			}

			lrCell := s.cells[core.CellRef{Row: r2, Col: c2}.Index()]
			if lrCell.isSolved() {
				continue
			}
			m3 := m2.Intersect(lrCell.mask)
			if m3.IsZero() || !required.LessOrEqual(m3) {
				continue
			}

			out = append(out, Rectangle{
				Candidates: m3,
				UL:         core.CellRef{Row: r, Col: c},
				UR:         core.CellRef{Row: r, Col: c2},
				LR:         core.CellRef{Row: r2, Col: c2},
				LL:         core.CellRef{Row: r2, Col: c},
			})
		}
	}
	return out
}
