// Package gridconfig computes the read-only tables the engine treats as an
// external collaborator: per-cell group assignment, peer keysets, row/col
// subgroups, per-house keysets, and the per-cell union-of-peers set.
//
// These tables are generalized from a hardwired 9x9 boxing into a
// construction-time value derived from an arbitrary cell-to-group
// assignment, so a caller can hand the engine an irregular ("jigsaw") region
// layout instead of the default 3x3 boxing.
package gridconfig

import (
	"errors"
	"fmt"
	"sort"

	"sudoku-state/internal/core"
	"sudoku-state/pkg/constants"
)

const gridSize = constants.GridSize
const totalCells = constants.TotalCells

// ErrConfigError is the sentinel the external configuration computer fails
// with when groupOf does not partition the grid into nine groups of nine.
// internal/engine re-exports this as its own ConfigError kind rather than
// defining a parallel sentinel, so errors.Is works across the package
// boundary without double-wrapping.
var ErrConfigError = errors.New("gridconfig: invalid group layout")

// Coordinate is the (row, col) pair every table below is keyed by.
type Coordinate = core.CellRef

// PeerSet is the box/row/col/union keysets of a single cell's peers, in the
// deterministic row-major order every keyset in this package uses.
type PeerSet struct {
	Box   []Coordinate
	Row   []Coordinate
	Col   []Coordinate
	Union []Coordinate
}

// HouseKeys is the 3-tuple of (boxes, cols, rows) keysets, indexed by the
// house indexing convention fixed by the external ABI: 0..8 boxes, 9..17
// columns, 18..26 rows.
type HouseKeys struct {
	Houses [27][]Coordinate
}

// Config holds the full set of precomputed, read-only tables the engine
// consumes as opaque input. Two Configs built from the same groupOf are
// interchangeable; the default is shared by reference across every State
// that doesn't ask for a custom layout.
type Config struct {
	GroupOf [totalCells]int
	Peers   [totalCells]PeerSet
	// RowSubgroups[row][group] is the (possibly empty) intersection of that
	// row with that group. ColSubgroups is the column analogue.
	RowSubgroups [gridSize][gridSize][]Coordinate
	ColSubgroups [gridSize][gridSize][]Coordinate
	HouseKeys    HouseKeys
	OneSet       [totalCells][]Coordinate
}

var defaultConfig = computeDefault()

// Default returns the process-wide singleton for the standard 3x3 boxing.
// It is shared by reference: every State constructed without an explicit
// grconfig points at the same Config value.
func Default() *Config {
	return defaultConfig
}

func computeDefault() *Config {
	var groupOf [totalCells]int
	for r := 0; r < gridSize; r++ {
		for c := 0; c < gridSize; c++ {
			groupOf[r*gridSize+c] = (r/3)*3 + c/3
		}
	}
	cfg, err := Compute(groupOf)
	if err != nil {
		panic(fmt.Sprintf("gridconfig: default layout is not a valid partition: %v", err))
	}
	return cfg
}

// Compute builds a Config from an arbitrary cell-to-group assignment.
// groupOf[i] must partition the 81 cells into exactly nine groups of nine
// cells each; any other shape fails with ConfigError.
func Compute(groupOf [totalCells]int) (*Config, error) {
	counts := make(map[int]int, gridSize)
	for i, g := range groupOf {
		if g < 0 || g >= gridSize {
			return nil, fmt.Errorf("gridconfig: cell %d has out-of-range group %d: %w", i, g, ErrConfigError)
		}
		counts[g]++
	}
	if len(counts) != gridSize {
		return nil, fmt.Errorf("gridconfig: groupOf names %d distinct groups, want %d: %w", len(counts), gridSize, ErrConfigError)
	}
	for g, n := range counts {
		if n != gridSize {
			return nil, fmt.Errorf("gridconfig: group %d has %d cells, want %d: %w", g, n, gridSize, ErrConfigError)
		}
	}

	cfg := &Config{GroupOf: groupOf}

	var rowIndices, colIndices, groupIndices [gridSize][]int
	for i := 0; i < totalCells; i++ {
		r, c := i/gridSize, i%gridSize
		rowIndices[r] = append(rowIndices[r], i)
		colIndices[c] = append(colIndices[c], i)
		groupIndices[groupOf[i]] = append(groupIndices[groupOf[i]], i)
	}

	for i := 0; i < totalCells; i++ {
		r, c := i/gridSize, i%gridSize
		g := groupOf[i]

		box := coordsExcluding(groupIndices[g], i)
		row := coordsExcluding(rowIndices[r], i)
		col := coordsExcluding(colIndices[c], i)

		seen := make(map[int]bool, len(box)+len(row)+len(col))
		var unionIdx []int
		for _, set := range [][]int{groupIndices[g], rowIndices[r], colIndices[c]} {
			for _, idx := range set {
				if idx == i || seen[idx] {
					continue
				}
				seen[idx] = true
				unionIdx = append(unionIdx, idx)
			}
		}
		sort.Ints(unionIdx)

		cfg.Peers[i] = PeerSet{
			Box:   box,
			Row:   row,
			Col:   col,
			Union: toCoords(unionIdx),
		}
		cfg.OneSet[i] = toCoords(unionIdx)
	}

	for r := 0; r < gridSize; r++ {
		for g := 0; g < gridSize; g++ {
			cfg.RowSubgroups[r][g] = intersectCoords(rowIndices[r], groupIndices[g])
		}
	}
	for c := 0; c < gridSize; c++ {
		for g := 0; g < gridSize; g++ {
			cfg.ColSubgroups[c][g] = intersectCoords(colIndices[c], groupIndices[g])
		}
	}

	for g := 0; g < gridSize; g++ {
		cfg.HouseKeys.Houses[constants.HouseBoxBase+g] = toCoords(groupIndices[g])
	}
	for c := 0; c < gridSize; c++ {
		cfg.HouseKeys.Houses[constants.HouseColBase+c] = toCoords(colIndices[c])
	}
	for r := 0; r < gridSize; r++ {
		cfg.HouseKeys.Houses[constants.HouseRowBase+r] = toCoords(rowIndices[r])
	}

	return cfg, nil
}

func coordsExcluding(indices []int, self int) []Coordinate {
	out := make([]Coordinate, 0, len(indices))
	for _, idx := range indices {
		if idx == self {
			continue
		}
		out = append(out, core.CellRefFromIndex(idx))
	}
	return out
}

func intersectCoords(a, b []int) []Coordinate {
	inB := make(map[int]bool, len(b))
	for _, idx := range b {
		inB[idx] = true
	}
	var out []Coordinate
	for _, idx := range a {
		if inB[idx] {
			out = append(out, core.CellRefFromIndex(idx))
		}
	}
	return out
}

func toCoords(indices []int) []Coordinate {
	out := make([]Coordinate, len(indices))
	for i, idx := range indices {
		out[i] = core.CellRefFromIndex(idx)
	}
	return out
}
