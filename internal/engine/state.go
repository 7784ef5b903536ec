// Package engine is the Sudoku puzzle state engine: an in-memory,
// mutation-safe, O(1)-lookup representation of a 9x9 grid, consumed by
// solver tactics that live outside this package. It never performs I/O and
// never imports a transport, persistence, or CLI package.
package engine

import (
	"sudoku-state/internal/core"
	"sudoku-state/internal/gridconfig"
	"sudoku-state/pkg/constants"
)

// State owns the cell table and house aggregates by value (fixed-size,
// inline-storable) plus a shared-by-reference configuration handle. It is
// not safe for concurrent mutation.
type State struct {
	cfg *gridconfig.Config

	cells  [constants.TotalCells]cell
	houses [constants.NumHouses]house

	solvedTotal int
	digitTotals [digitCount]int
	solvedIdx   map[int]struct{}

	movehookSlot *any
	payload      any
}

// New constructs a state from a clues map and an optional grconfig. A nil
// cfg installs the shared default 3x3-boxing singleton by reference; a
// non-nil cfg is adopted as-is (the caller is assumed
// to have produced it via gridconfig.Compute, or to be reusing a previously
// computed Config).
func New(clues map[core.CellRef]int, dofill bool, cfg *gridconfig.Config) (*State, error) {
	if cfg == nil {
		cfg = gridconfig.Default()
	}

	s := &State{
		cfg:       cfg,
		solvedIdx: make(map[int]struct{}),
	}
	for i := 0; i < constants.TotalCells; i++ {
		s.cells[i] = newUnsolvedCell(uint8(cfg.GroupOf[i]))
	}

	for key, digit := range clues {
		if err := validateKey(key); err != nil {
			return nil, err
		}
		if digit < 0 || digit >= digitCount {
			return nil, badDigitf("engine: clue digit %d out of range", digit)
		}
		i := key.Index()
		s.cells[i].value = uint16(digit)
		s.solvedIdx[i] = struct{}{}
		s.solvedTotal++
		s.digitTotals[digit]++
		s.forEachHouse(i, func(h *house) { h.addSolved() })
	}

	if dofill {
		s.FillPencilmarks()
	}

	return s, nil
}

// houseIndices returns the three house-table indices (box, col, row) a
// cell's index belongs to, per the ABI-fixed bands in pkg/constants.
func (s *State) houseIndices(i int) (box, col, row int) {
	r, c := i/constants.GridSize, i%constants.GridSize
	return constants.HouseBoxBase + int(s.cfg.GroupOf[i]), constants.HouseColBase + c, constants.HouseRowBase + r
}

func (s *State) houseAt(i int) *house {
	box, _, _ := s.houseIndices(i)
	return &s.houses[box]
}

func (s *State) forEachHouse(i int, fn func(h *house)) {
	box, col, row := s.houseIndices(i)
	fn(&s.houses[box])
	fn(&s.houses[col])
	fn(&s.houses[row])
}

func validateKey(key core.CellRef) error {
	if key.Row < 0 || key.Row >= constants.GridSize || key.Col < 0 || key.Col >= constants.GridSize {
		return badKeyf("engine: coordinate %v out of range", key)
	}
	return nil
}

// Config returns the grconfig this state was built with — the external
// configuration collaborator, shared by reference.
func (s *State) Config() *gridconfig.Config { return s.cfg }

// HasDefaultConfig reports whether this state uses the shared default
// 3x3-boxing singleton rather than a custom layout.
func (s *State) HasDefaultConfig() bool { return s.cfg == gridconfig.Default() }

// NumSolved is solved_total.
func (s *State) NumSolved() int { return s.solvedTotal }

// NumRemaining is 81 - solved_total.
func (s *State) NumRemaining() int { return constants.TotalCells - s.solvedTotal }

// NumValues returns digit_count[0..8] by value, a detached copy.
func (s *State) NumValues() [digitCount]int { return s.digitTotals }

// Done reports whether every cell is solved.
func (s *State) Done() bool { return s.solvedTotal == constants.TotalCells }

// SolvedKeys materializes solved_keys as a detached set of coordinates, in
// row-major order.
func (s *State) SolvedKeys() []core.CellRef {
	out := make([]core.CellRef, 0, len(s.solvedIdx))
	for i := 0; i < constants.TotalCells; i++ {
		if _, ok := s.solvedIdx[i]; ok {
			out = append(out, core.CellRefFromIndex(i))
		}
	}
	return out
}

// Oneset returns the per-cell union-of-peers keyset from the configuration.
func (s *State) Oneset(key core.CellRef) []core.CellRef {
	return s.cfg.OneSet[key.Index()]
}

// Peers returns the box/row/col/union peer keysets of a cell.
func (s *State) Peers(key core.CellRef) gridconfig.PeerSet {
	return s.cfg.Peers[key.Index()]
}

// RowSubgroups returns, for a given row, the per-group intersections with it.
func (s *State) RowSubgroups(row int) [constants.GridSize][]core.CellRef {
	return s.cfg.RowSubgroups[row]
}

// ColSubgroups returns, for a given column, the per-group intersections with it.
func (s *State) ColSubgroups(col int) [constants.GridSize][]core.CellRef {
	return s.cfg.ColSubgroups[col]
}

// HouseKeyset returns the coordinate keyset of house index houseIdx (0..8
// boxes, 9..17 columns, 18..26 rows).
func (s *State) HouseKeyset(houseIdx int) []core.CellRef {
	return s.cfg.HouseKeys.Houses[houseIdx]
}
