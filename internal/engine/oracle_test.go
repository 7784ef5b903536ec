package engine

import (
	"math/rand"

	"sudoku-state/internal/core"
)

// This file is a small, test-only brute-force validity oracle used to build
// valid random grid instances for the property tests in this package. It is
// kept unexported and never promoted to a public solving API: a real solver
// is a solver tactic, explicitly out of this module's scope.

// oracleConflicts reports whether placing digit at index i of grid would
// duplicate an existing value in its row, column, or box.
func oracleConflicts(grid [81]int, i, digit int) bool {
	row, col := i/9, i%9
	for c := 0; c < 9; c++ {
		if grid[row*9+c] == digit {
			return true
		}
	}
	for r := 0; r < 9; r++ {
		if grid[r*9+col] == digit {
			return true
		}
	}
	boxRow, boxCol := (row/3)*3, (col/3)*3
	for r := boxRow; r < boxRow+3; r++ {
		for c := boxCol; c < boxCol+3; c++ {
			if grid[r*9+c] == digit {
				return true
			}
		}
	}
	return false
}

// oracleFullSolution produces a complete, valid 81-cell assignment via
// randomized backtracking, digits 0..8 (this module's zero-based digit
// universe, unlike the traditional 1..9 printed grid).
func oracleFullSolution(rng *rand.Rand) [81]int {
	var grid [81]int
	for i := range grid {
		grid[i] = -1
	}
	if !oracleFill(&grid, 0, rng) {
		panic("oracle: backtracking failed to produce a full solution")
	}
	return grid
}

func oracleFill(grid *[81]int, i int, rng *rand.Rand) bool {
	if i == 81 {
		return true
	}
	if grid[i] != -1 {
		return oracleFill(grid, i+1, rng)
	}
	order := rng.Perm(9)
	for _, digit := range order {
		if oracleConflicts(*grid, i, digit) {
			continue
		}
		grid[i] = digit
		if oracleFill(grid, i+1, rng) {
			return true
		}
		grid[i] = -1
	}
	return false
}

// oracleCluesFromSolution extracts a clues map holding every cell whose
// index is not in the given holes set (0-based cell indices to leave blank).
func oracleCluesFromSolution(grid [81]int, holes map[int]bool) map[core.CellRef]int {
	clues := make(map[core.CellRef]int)
	for i, d := range grid {
		if holes[i] {
			continue
		}
		clues[core.CellRefFromIndex(i)] = d
	}
	return clues
}
