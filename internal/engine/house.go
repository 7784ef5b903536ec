package engine

// house is a per-house mirror of the cell table that must be kept in exact
// lock-step across every mutation so queries over a house stay O(1). Indexed
// 0..8 boxes, 9..17 columns, 18..26 rows — fixed by the external ABI.
//
// This type replaces a linear row/col/box duplicate scan with incremental
// maintenance, trading an O(n) recompute on every query for O(1) lookups and
// O(1) updates per mutation.
type house struct {
	solvedCount int
	candCount   [digitCount]int
}

func (h *house) addSolved() { h.solvedCount++ }

func (h *house) removeSolved() { h.solvedCount-- }

// addCandidates bumps candCount for exactly the digits in add.
func (h *house) addCandidates(add CandidateSet) {
	it := add.Iterator()
	for {
		d, ok := it.Next()
		if !ok {
			return
		}
		h.candCount[d]++
	}
}

// removeCandidates decrements candCount for exactly the digits in rem.
func (h *house) removeCandidates(rem CandidateSet) {
	it := rem.Iterator()
	for {
		d, ok := it.Next()
		if !ok {
			return
		}
		h.candCount[d]--
	}
}
