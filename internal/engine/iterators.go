package engine

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/exp/slices"

	"sudoku-state/internal/core"
	"sudoku-state/pkg/constants"
)

// KeyIterator is a single-pass, finite cursor over coordinates. It holds a
// strong reference to the State it was built from, keeping it alive for the
// iterator's lifetime; mutating the state's solved set or candidate sizes
// while an iterator from it is in flight produces unspecified output.
type KeyIterator struct {
	state *State
	next  func() (core.CellRef, bool)
}

// Next returns the next coordinate and true, or a zero value and false once
// the iterator is exhausted. Exhausted iterators keep returning false.
func (it *KeyIterator) Next() (core.CellRef, bool) {
	return it.next()
}

func newScanIterator(s *State, keep func(i int) bool) *KeyIterator {
	pos := 0
	return &KeyIterator{
		state: s,
		next: func() (core.CellRef, bool) {
			for pos < constants.TotalCells {
				i := pos
				pos++
				if keep(i) {
					return core.CellRefFromIndex(i), true
				}
			}
			return core.CellRef{}, false
		},
	}
}

func newSeqIterator(s *State, seq []core.CellRef) *KeyIterator {
	pos := 0
	return &KeyIterator{
		state: s,
		next: func() (core.CellRef, bool) {
			if pos >= len(seq) {
				return core.CellRef{}, false
			}
			c := seq[pos]
			pos++
			return c, true
		},
	}
}

// OrderSimple visits every unsolved cell, row-major, lazily.
func (s *State) OrderSimple() *KeyIterator {
	return newScanIterator(s, func(i int) bool { return !s.cells[i].isSolved() })
}

// OrderSolved visits every solved cell, row-major, lazily.
func (s *State) OrderSolved() *KeyIterator {
	return newScanIterator(s, func(i int) bool { return s.cells[i].isSolved() })
}

// OrderExactlyN visits unsolved cells whose candidate count equals k,
// row-major, lazily. k must be in 1..8; 0 and values >= 9 are BadCount.
func (s *State) OrderExactlyN(k int) (*KeyIterator, error) {
	if k < 1 || k >= digitCount {
		return nil, fmt.Errorf("engine: OrderExactlyN(%d) out of range 1..8: %w", k, ErrBadCount)
	}
	return newScanIterator(s, func(i int) bool {
		return !s.cells[i].isSolved() && s.cells[i].mask.Size() == k
	}), nil
}

// unsolvedRowMajor returns the indices of every unsolved cell in ascending
// (row-major) order — the starting sequence order_by_num_candidates sorts.
func (s *State) unsolvedRowMajor() []int {
	out := make([]int, 0, s.NumRemaining())
	for i := 0; i < constants.TotalCells; i++ {
		if !s.cells[i].isSolved() {
			out = append(out, i)
		}
	}
	return out
}

// OrderByNumCandidates visits unsolved cells grouped by ascending
// candidate-set size, ties broken by row-major order. The sequence is a
// snapshot taken when this iterator is constructed — later mutation doesn't
// reorder an iterator already handed out. Uses golang.org/x/exp/slices' stable
// sort rather than a counting pass bucketed by candidate count.
func (s *State) OrderByNumCandidates() *KeyIterator {
	idx := s.unsolvedRowMajor()
	slices.SortStableFunc(idx, func(a, b int) int {
		return s.cells[a].mask.Size() - s.cells[b].mask.Size()
	})
	seq := make([]core.CellRef, len(idx))
	for i, v := range idx {
		seq[i] = core.CellRefFromIndex(v)
	}
	return newSeqIterator(s, seq)
}

// OrderByNumCandidatesRev walks the exact reverse of the sequence
// OrderByNumCandidates would produce right now.
func (s *State) OrderByNumCandidatesRev() *KeyIterator {
	idx := s.unsolvedRowMajor()
	slices.SortStableFunc(idx, func(a, b int) int {
		return s.cells[a].mask.Size() - s.cells[b].mask.Size()
	})
	seq := make([]core.CellRef, len(idx))
	for i, v := range idx {
		seq[len(idx)-1-i] = core.CellRefFromIndex(v)
	}
	return newSeqIterator(s, seq)
}

// probeModulus is the 0..127 range order_random's probe recurrence walks;
// 128 = 2^7 gives the linear congruential step 5k+1 a full period under the
// Hull-Dobell conditions, guaranteeing every residue (and so every valid
// cell index < 81) is eventually reached.
const probeModulus = 128

// OrderRandom visits every unsolved cell exactly once in an order seeded
// from OS entropy: a small ⌈n/6⌉+1 byte buffer read from a CSPRNG seeds the
// first few tries (byte mod 81, skipping seen/solved cells), then the
// recurrence key <- (5*key+1) mod 128 takes over, skipping any value >= 81,
// already seen, or solved, until every unsolved cell has been visited.
func (s *State) OrderRandom() (*KeyIterator, error) {
	n := s.NumRemaining()
	seq := make([]core.CellRef, 0, n)
	if n == 0 {
		return newSeqIterator(s, seq), nil
	}

	emitted := make(map[int]bool, n)
	numTries := (n+5)/6 + 1
	buf := make([]byte, numTries)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("engine: OrderRandom entropy read failed: %v: %w", err, ErrOsRngUnavailable)
	}

	key := 0
	for _, b := range buf {
		key = int(b)
		idx := key % constants.TotalCells
		if !emitted[idx] && !s.cells[idx].isSolved() {
			emitted[idx] = true
			seq = append(seq, core.CellRefFromIndex(idx))
		}
	}

	key &= probeModulus - 1
	for len(seq) < n {
		key = (5*key + 1) & (probeModulus - 1)
		if key >= constants.TotalCells {
			continue
		}
		if emitted[key] || s.cells[key].isSolved() {
			continue
		}
		emitted[key] = true
		seq = append(seq, core.CellRefFromIndex(key))
	}

	return newSeqIterator(s, seq), nil
}
