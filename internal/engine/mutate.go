package engine

import "sudoku-state/internal/core"

// CandidateChange pairs a coordinate with a candidate set. AddCandidates and
// RemoveCandidates take an ordered slice of these rather than a map: applying
// per-coordinate effects in a caller-declared order has no meaning over a Go
// map, whose iteration order is unspecified, so the slice preserves the
// order the caller wants the effects applied in.
type CandidateChange struct {
	Coord core.CellRef
	Set   CandidateSet
}

// AssignClue marks coord solved with digit. coord must currently be
// unsolved and in range; digit must be in 0..8.
func (s *State) AssignClue(coordRef core.CellRef, digit int) error {
	if err := validateKey(coordRef); err != nil {
		return err
	}
	if digit < 0 || digit >= digitCount {
		return badDigitf("engine: AssignClue digit %d out of range", digit)
	}
	i := coordRef.Index()
	cl := &s.cells[i]
	if cl.isSolved() {
		return keyConflictWrap("engine: AssignClue: %v is already solved", coordRef)
	}

	priorMask := cl.mask
	cl.value = uint16(digit)

	s.solvedIdx[i] = struct{}{}
	s.solvedTotal++
	s.digitTotals[digit]++
	s.forEachHouse(i, func(h *house) {
		h.addSolved()
		h.removeCandidates(priorMask)
	})
	return nil
}

// DeleteClue moves a solved cell back to the unsolved variant, retaining its
// previously preserved candidate mask (observable again via the candidates
// view). There is only one unsolved variant — no distinction from a cell that
// was never solved.
func (s *State) DeleteClue(coordRef core.CellRef) error {
	if err := validateKey(coordRef); err != nil {
		return err
	}
	i := coordRef.Index()
	cl := &s.cells[i]
	if !cl.isSolved() {
		return keyConflictWrap("engine: DeleteClue: %v is not solved", coordRef)
	}

	digit := cl.digit()
	cl.value = uint16(unsolvedValue)

	delete(s.solvedIdx, i)
	s.solvedTotal--
	s.digitTotals[digit]--
	preserved := cl.mask
	s.forEachHouse(i, func(h *house) {
		h.removeSolved()
		h.addCandidates(preserved)
	})
	return nil
}

// AddCandidates applies every change in order. All coordinates must be
// unsolved and in range; content never fails (no contradiction is possible
// when adding).
func (s *State) AddCandidates(changes []CandidateChange) error {
	for _, ch := range changes {
		if err := validateKey(ch.Coord); err != nil {
			return err
		}
		i := ch.Coord.Index()
		if s.cells[i].isSolved() {
			return keyConflictWrap("engine: AddCandidates: %v is solved", ch.Coord)
		}
	}

	for _, ch := range changes {
		i := ch.Coord.Index()
		cl := &s.cells[i]
		old := cl.mask
		add := ch.Set
		newlyIntroduced := add.Difference(old)
		cl.mask = old.Union(add)
		if !newlyIntroduced.IsZero() {
			s.forEachHouse(i, func(h *house) { h.addCandidates(newlyIntroduced) })
		}
	}
	return nil
}

// RemoveCandidates applies every change in order. If any resulting cell
// mask goes empty, the coordinate is recorded as a contradiction site and
// processing continues; after the full pass, if any contradiction occurred,
// ContradictionError is returned naming the *last* site observed. The
// mutation is not rolled back — partial effects persist; callers wanting
// rollback must snapshot beforehand.
func (s *State) RemoveCandidates(changes []CandidateChange) error {
	for _, ch := range changes {
		if err := validateKey(ch.Coord); err != nil {
			return err
		}
		i := ch.Coord.Index()
		if s.cells[i].isSolved() {
			return keyConflictWrap("engine: RemoveCandidates: %v is solved", ch.Coord)
		}
	}

	var lastContradiction *core.CellRef
	for _, ch := range changes {
		i := ch.Coord.Index()
		cl := &s.cells[i]
		old := cl.mask
		rem := ch.Set
		toRemove := rem.Intersect(old)
		cl.mask = old.Difference(rem)
		if !toRemove.IsZero() {
			s.forEachHouse(i, func(h *house) { h.removeCandidates(toRemove) })
		}
		if cl.mask.IsZero() {
			coord := ch.Coord
			lastContradiction = &coord
		}
	}

	if lastContradiction != nil {
		return &ContradictionError{Coord: *lastContradiction}
	}
	return nil
}

// SetCandidatesAt overwrites a single unsolved cell's candidate set,
// adjusting house aggregates by the exact delta. Used by the candidates
// map view's item-assign; deletion is modeled as assigning ZeroCandidateSet.
func (s *State) SetCandidatesAt(coordRef core.CellRef, newSet CandidateSet) error {
	if err := validateKey(coordRef); err != nil {
		return err
	}
	i := coordRef.Index()
	cl := &s.cells[i]
	if cl.isSolved() {
		return keyConflictWrap("engine: SetCandidatesAt: %v is solved", coordRef)
	}

	old := cl.mask
	cl.mask = newSet
	s.forEachHouse(i, func(h *house) {
		h.removeCandidates(old)
		h.addCandidates(newSet)
	})
	return nil
}

// ClearAllCandidates zeroes every cell's mask. Only unsolved cells with a
// nonzero prior mask participate in house bookkeeping — a solved cell's
// preserved mask never contributed to cand_count in the first place.
func (s *State) ClearAllCandidates() {
	for i := range s.cells {
		cl := &s.cells[i]
		if cl.mask.IsZero() {
			continue
		}
		if !cl.isSolved() {
			prior := cl.mask
			s.forEachHouse(i, func(h *house) { h.removeCandidates(prior) })
		}
		cl.mask = ZeroCandidateSet
	}
}

// FillPencilmarks recomputes every unsolved cell's candidates from the
// current set of solved peers. Solved cells are left untouched.
func (s *State) FillPencilmarks() {
	for i := range s.cells {
		cl := &s.cells[i]
		if cl.isSolved() {
			continue
		}
		var solvedPeerDigits CandidateSet
		for _, peer := range s.cfg.Peers[i].Union {
			pc := &s.cells[peer.Index()]
			if pc.isSolved() {
				solvedPeerDigits = solvedPeerDigits.Union(mustCandidateSet(pc.digit()))
			}
		}
		computed := solvedPeerDigits.Complement()
		old := cl.mask
		cl.mask = computed
		toAdd := computed.Difference(old)
		toRemove := old.Difference(computed)
		if !toAdd.IsZero() {
			s.forEachHouse(i, func(h *house) { h.addCandidates(toAdd) })
		}
		if !toRemove.IsZero() {
			s.forEachHouse(i, func(h *house) { h.removeCandidates(toRemove) })
		}
	}
}
