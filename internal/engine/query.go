package engine

import (
	"sudoku-state/internal/core"
	"sudoku-state/pkg/constants"
)

// CandidateInKeyset returns the coordinates in keyset whose cell is
// unsolved and has digit as a candidate, preserving keyset's order. O(|keyset|).
func (s *State) CandidateInKeyset(digit int, keyset []core.CellRef) ([]core.CellRef, error) {
	if digit < 0 || digit >= digitCount {
		return nil, badDigitf("engine: CandidateInKeyset digit %d out of range", digit)
	}
	var out []core.CellRef
	for _, coordRef := range keyset {
		cl := s.cells[coordRef.Index()]
		if !cl.isSolved() && cl.mask.Contains(digit) {
			out = append(out, coordRef)
		}
	}
	return out, nil
}

// CandidatesFromKeyset returns the union of candidate masks of every
// unsolved coordinate in keyset. O(|keyset|).
func (s *State) CandidatesFromKeyset(keyset []core.CellRef) CandidateSet {
	var union CandidateSet
	for _, coordRef := range keyset {
		cl := s.cells[coordRef.Index()]
		if !cl.isSolved() {
			union = union.Union(cl.mask)
		}
	}
	return union
}

// HouseCounts is the (box_count, col_count, row_count) triple returned by
// CandidateInHouses.
type HouseCounts struct {
	Box, Col, Row int
}

// CandidateInHouses returns, for a coordinate and digit, how many unsolved
// cells in its box/column/row carry that digit as a candidate, read
// directly from the precomputed house aggregates. O(1).
func (s *State) CandidateInHouses(coordRef core.CellRef, digit int) (HouseCounts, error) {
	if err := validateKey(coordRef); err != nil {
		return HouseCounts{}, err
	}
	if digit < 0 || digit >= digitCount {
		return HouseCounts{}, badDigitf("engine: CandidateInHouses digit %d out of range", digit)
	}
	box, col, row := s.houseIndices(coordRef.Index())
	return HouseCounts{
		Box: s.houses[box].candCount[digit],
		Col: s.houses[col].candCount[digit],
		Row: s.houses[row].candCount[digit],
	}, nil
}

// CandidatesFromHouse returns the 9-entry cand_count vector of a house by
// its ABI index (0..8 boxes, 9..17 columns, 18..26 rows). O(1).
func (s *State) CandidatesFromHouse(houseIdx int) ([digitCount]int, error) {
	if houseIdx < 0 || houseIdx >= constants.NumHouses {
		return [digitCount]int{}, badKeyf("engine: house index %d out of range", houseIdx)
	}
	return s.houses[houseIdx].candCount, nil
}

// CandidatesAt returns the current candidate mask of coordRef, regardless of
// solved state (a solved cell's preserved mask is returned unchanged).
func (s *State) CandidatesAt(coordRef core.CellRef) (CandidateSet, error) {
	if err := validateKey(coordRef); err != nil {
		return CandidateSet{}, err
	}
	return s.cells[coordRef.Index()].mask, nil
}

// IsSolved reports whether coordRef currently holds a clue.
func (s *State) IsSolved(coordRef core.CellRef) (bool, error) {
	if err := validateKey(coordRef); err != nil {
		return false, err
	}
	return s.cells[coordRef.Index()].isSolved(), nil
}

// DigitAt returns the solved digit at coordRef, or NotSolved.
func (s *State) DigitAt(coordRef core.CellRef) (int, error) {
	if err := validateKey(coordRef); err != nil {
		return 0, err
	}
	cl := s.cells[coordRef.Index()]
	if !cl.isSolved() {
		return 0, ErrNotSolved
	}
	return cl.digit(), nil
}
