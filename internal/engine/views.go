package engine

import "sudoku-state/internal/core"

// Clues is a live, dictionary-like façade over a state's solved cells.
// It holds only a *State reference (no backreference the other way — the
// state never learns about views handed out over it, avoiding cyclic
// ownership between a state and its views.
type Clues struct {
	state *State
}

// CluesView returns a live clues façade over s.
func (s *State) CluesView() Clues { return Clues{state: s} }

// Len is solved_total.
func (v Clues) Len() int { return v.state.solvedTotal }

// Get returns the digit at coord, or NotSolved if coord is unsolved.
func (v Clues) Get(coordRef core.CellRef) (int, error) {
	return v.state.DigitAt(coordRef)
}

// Set delegates to AssignClue: coord must currently be unsolved.
func (v Clues) Set(coordRef core.CellRef, digit int) error {
	return v.state.AssignClue(coordRef, digit)
}

// Delete delegates to DeleteClue: coord must currently be solved.
func (v Clues) Delete(coordRef core.CellRef) error {
	return v.state.DeleteClue(coordRef)
}

// Iter returns an iterator over solved coordinates — order_solved.
func (v Clues) Iter() *KeyIterator { return v.state.OrderSolved() }

// AsMap materializes a detached coordinate-to-digit map.
func (v Clues) AsMap() map[core.CellRef]int {
	out := make(map[core.CellRef]int, v.state.solvedTotal)
	it := v.Iter()
	for {
		coordRef, ok := it.Next()
		if !ok {
			return out
		}
		d, _ := v.state.DigitAt(coordRef)
		out[coordRef] = d
	}
}

// Candidates is a live, dictionary-like façade over a state's unsolved
// cells.
type Candidates struct {
	state *State
}

// CandidatesView returns a live candidates façade over s.
func (s *State) CandidatesView() Candidates { return Candidates{state: s} }

// Len is 81 - solved_total.
func (v Candidates) Len() int { return v.state.NumRemaining() }

// Get returns the candidate mask at coord, or Solved if coord is solved.
func (v Candidates) Get(coordRef core.CellRef) (CandidateSet, error) {
	if err := validateKey(coordRef); err != nil {
		return CandidateSet{}, err
	}
	cl := v.state.cells[coordRef.Index()]
	if cl.isSolved() {
		return CandidateSet{}, ErrSolved
	}
	return cl.mask, nil
}

// Set delegates to SetCandidatesAt.
func (v Candidates) Set(coordRef core.CellRef, set CandidateSet) error {
	return v.state.SetCandidatesAt(coordRef, set)
}

// Delete is equivalent to assigning the empty set.
func (v Candidates) Delete(coordRef core.CellRef) error {
	return v.state.SetCandidatesAt(coordRef, ZeroCandidateSet)
}

// Iter returns an iterator over unsolved coordinates — order_simple.
func (v Candidates) Iter() *KeyIterator { return v.state.OrderSimple() }

// Fill re-runs fill_pencilmarks.
func (v Candidates) Fill() { v.state.FillPencilmarks() }

// Clear runs clear_all_candidates.
func (v Candidates) Clear() { v.state.ClearAllCandidates() }

// AsMap materializes a detached coordinate-to-CandidateSet map. When
// includeSolved is true, solved cells whose preserved mask is nonzero are
// also included.
func (v Candidates) AsMap(includeSolved bool) map[core.CellRef]CandidateSet {
	out := make(map[core.CellRef]CandidateSet, v.state.NumRemaining())
	for i := range v.state.cells {
		cl := v.state.cells[i]
		if cl.isSolved() {
			if includeSolved && !cl.mask.IsZero() {
				out[core.CellRefFromIndex(i)] = cl.mask
			}
			continue
		}
		out[core.CellRefFromIndex(i)] = cl.mask
	}
	return out
}
