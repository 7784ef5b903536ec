package engine

import "sudoku-state/internal/core"

// unsolvedValue is the sentinel stored in cell.value while the cell is
// unsolved, used uniformly whether the cell started unsolved at construction
// or was driven back to unsolved by DeleteClue. All sixteen bits are set, a
// value no digit 0..8 can take.
const unsolvedValue uint16 = 0xFFFF

// cell is the fixed per-position record: either solved (value in 0..8) or
// unsolved (value == unsolvedValue), always carrying a candidate mask and a
// constant-after-construction group index, folding the "is this cell solved"
// question into a single sentinel-bearing value field instead of parallel
// arrays.
type cell struct {
	value uint16 // unsolvedValue's bit pattern, or a digit 0..8
	mask  CandidateSet
	group uint8
}

func newUnsolvedCell(group uint8) cell {
	return cell{value: uint16(unsolvedValue), group: group}
}

func (c cell) isSolved() bool { return c.value != uint16(unsolvedValue) }

func (c cell) digit() int { return int(c.value) }

// coord is a convenience alias used throughout the engine package.
type coord = core.CellRef
