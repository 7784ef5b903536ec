package engine

import (
	"math/rand"
	"testing"

	"sudoku-state/internal/core"
)

func TestSnapshotRestoreRoundTripPreservesEverything(t *testing.T) {
	// Property 3: snapshot then restore is the identity on the cell table,
	// house aggregates, grid aggregates, and the solved-keys set.
	rng := rand.New(rand.NewSource(11))
	solution := oracleFullSolution(rng)
	holes := make(map[int]bool, 50)
	for len(holes) < 50 {
		holes[rng.Intn(81)] = true
	}
	clues := oracleCluesFromSolution(solution, holes)

	s, err := New(clues, true, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// Mutate a handful of candidate masks manually so the snapshot isn't just
	// the construction-time fill.
	it := s.OrderSimple()
	mutated := 0
	for mutated < 5 {
		c, ok := it.Next()
		if !ok {
			break
		}
		cands, err := s.CandidatesAt(c)
		if err != nil {
			t.Fatalf("CandidatesAt: %v", err)
		}
		if cands.Size() < 2 {
			continue
		}
		d, _ := cands.Iterator().Next()
		if err := s.RemoveCandidates([]CandidateChange{{Coord: c, Set: mustCandidateSet(d)}}); err != nil {
			t.Fatalf("RemoveCandidates: %v", err)
		}
		mutated++
	}
	assertInvariants(t, s)

	snap := s.Snapshot()
	restored, err := Restore(snap, s.Config())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	assertInvariants(t, restored)

	if restored.NumSolved() != s.NumSolved() {
		t.Errorf("NumSolved mismatch after restore: %d vs %d", restored.NumSolved(), s.NumSolved())
	}
	if restored.NumRemaining() != s.NumRemaining() {
		t.Errorf("NumRemaining mismatch after restore: %d vs %d", restored.NumRemaining(), s.NumRemaining())
	}
	if restored.NumValues() != s.NumValues() {
		t.Errorf("NumValues mismatch after restore: %v vs %v", restored.NumValues(), s.NumValues())
	}
	if restored.houses != s.houses {
		t.Errorf("house aggregates mismatch after restore")
	}

	origSolved := s.SolvedKeys()
	restSolved := restored.SolvedKeys()
	if len(origSolved) != len(restSolved) {
		t.Fatalf("solved-keys set size mismatch: %d vs %d", len(origSolved), len(restSolved))
	}
	origSet := make(map[core.CellRef]bool, len(origSolved))
	for _, k := range origSolved {
		origSet[k] = true
	}
	for _, k := range restSolved {
		if !origSet[k] {
			t.Errorf("restored solved-keys set has extra key %v", k)
		}
	}

	allIt := s.OrderSimple()
	for {
		c, ok := allIt.Next()
		if !ok {
			break
		}
		origC, _ := s.CandidatesAt(c)
		restC, err := restored.CandidatesAt(c)
		if err != nil {
			t.Fatalf("CandidatesAt on restored: %v", err)
		}
		if !origC.Equal(restC) {
			t.Errorf("candidate mask mismatch at %v: %v vs %v", c, origC, restC)
		}
	}
}

func TestSnapshotRestorePreservesPayload(t *testing.T) {
	s, err := New(map[core.CellRef]int{{Row: 0, Col: 0}: 0}, true, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.SetPayload("some opaque move-log blob")

	snap := s.Snapshot()
	restored, err := Restore(snap, s.Config())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Payload() != "some opaque move-log blob" {
		t.Errorf("Payload() after restore = %v, want preserved value", restored.Payload())
	}
}

func TestSnapshotAfterMixedMutationsAnswersQueriesIdentically(t *testing.T) {
	// E6: snapshot after a mix of assigns/adds/removes, restore, then every
	// query from the read surface must answer identically on both states.
	s, err := New(nil, true, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.AssignClue(core.CellRef{Row: 2, Col: 2}, 5); err != nil {
		t.Fatalf("AssignClue: %v", err)
	}
	if err := s.AddCandidates([]CandidateChange{{Coord: core.CellRef{Row: 0, Col: 0}, Set: mustCandidateSet(1)}}); err != nil {
		t.Fatalf("AddCandidates: %v", err)
	}
	cands, _ := s.CandidatesAt(core.CellRef{Row: 3, Col: 3})
	if d, ok := cands.Iterator().Next(); ok {
		if err := s.RemoveCandidates([]CandidateChange{{Coord: core.CellRef{Row: 3, Col: 3}, Set: mustCandidateSet(d)}}); err != nil {
			t.Fatalf("RemoveCandidates: %v", err)
		}
	}

	snap := s.Snapshot()
	restored, err := Restore(snap, s.Config())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	checkAt := []core.CellRef{
		{Row: 2, Col: 2}, {Row: 0, Col: 0}, {Row: 3, Col: 3}, {Row: 8, Col: 8},
	}
	for _, k := range checkAt {
		origSolved, origErr := s.IsSolved(k)
		restSolved, restErr := restored.IsSolved(k)
		if (origErr == nil) != (restErr == nil) || origSolved != restSolved {
			t.Errorf("IsSolved(%v) mismatch: (%v,%v) vs (%v,%v)", k, origSolved, origErr, restSolved, restErr)
		}
		if !origSolved {
			origC, _ := s.CandidatesAt(k)
			restC, _ := restored.CandidatesAt(k)
			if !origC.Equal(restC) {
				t.Errorf("CandidatesAt(%v) mismatch: %v vs %v", k, origC, restC)
			}
		} else {
			origD, _ := s.DigitAt(k)
			restD, _ := restored.DigitAt(k)
			if origD != restD {
				t.Errorf("DigitAt(%v) mismatch: %d vs %d", k, origD, restD)
			}
		}
	}
	if restored.NumSolved() != s.NumSolved() || restored.NumRemaining() != s.NumRemaining() {
		t.Errorf("aggregate mismatch after restore")
	}
}

func TestTakeClearsTheMailboxSlot(t *testing.T) {
	s, err := New(nil, false, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if v, ok := s.Take(); ok {
		t.Errorf("Take on empty mailbox = (%v, true), want ok=false", v)
	}
	s.Put("first move")
	v, ok := s.Take()
	if !ok || v != "first move" {
		t.Errorf("Take() = (%v, %v), want (\"first move\", true)", v, ok)
	}
	if _, ok := s.Take(); ok {
		t.Error("Take after a prior Take should be empty")
	}
	s.Put("a")
	s.Put("b")
	v, ok = s.Take()
	if !ok || v != "b" {
		t.Errorf("Put overwrites the slot: Take() = (%v, %v), want (\"b\", true)", v, ok)
	}
}
