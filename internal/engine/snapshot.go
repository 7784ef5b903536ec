package engine

import (
	"sudoku-state/internal/core"
	"sudoku-state/internal/gridconfig"
)

// Snapshot is the lossless serialized form of a state: every solved
// coordinate's digit, every cell's candidate mask (including solved cells
// with a nonzero preserved mask), and an opaque payload the host may have
// attached.
type Snapshot struct {
	Clues      map[core.CellRef]int
	Candidates map[core.CellRef]CandidateSet
	Payload    any
}

// Snapshot captures the current state as a detached Snapshot value.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Clues:      s.CluesView().AsMap(),
		Candidates: s.CandidatesView().AsMap(true),
		Payload:    s.payload,
	}
}

// Restore reconstructs a state from a Snapshot:
// 1. build a fresh state from Clues with dofill=false (and cfg, or the
//    default if cfg is nil);
// 2. overwrite every cell's candidate mask from Candidates, bumping house
//    cand_count for each unsolved entry;
// 3. reattach Payload.
func Restore(snap Snapshot, cfg *gridconfig.Config) (*State, error) {
	s, err := New(snap.Clues, false, cfg)
	if err != nil {
		return nil, err
	}
	for coordRef, set := range snap.Candidates {
		if err := validateKey(coordRef); err != nil {
			return nil, err
		}
		i := coordRef.Index()
		cl := &s.cells[i]
		cl.mask = set
		if !cl.isSolved() {
			s.forEachHouse(i, func(h *house) { h.addCandidates(set) })
		}
	}
	s.payload = snap.Payload
	return s, nil
}

// Take reads and clears the movehook mailbox in one step: the slot is
// cleared before the prior value is returned, so a second call without an
// intervening Put sees (nil, false).
func (s *State) Take() (any, bool) {
	if s.movehookSlot == nil {
		return nil, false
	}
	v := *s.movehookSlot
	s.movehookSlot = nil
	return v, true
}

// Put stores v in the movehook mailbox, overwriting any previously stored,
// unread value.
func (s *State) Put(v any) {
	s.movehookSlot = &v
}

// Payload returns the currently attached opaque user payload.
func (s *State) Payload() any { return s.payload }

// SetPayload attaches an opaque user payload, carried through future
// snapshots.
func (s *State) SetPayload(v any) { s.payload = v }
