package engine

import (
	"errors"
	"fmt"

	"sudoku-state/internal/core"
	"sudoku-state/internal/gridconfig"
)

// Error kind sentinels. Callers compare with errors.Is, never string matching
// — this is the idiomatic replacement for the reference implementation's
// exception-class taxonomy.
var (
	// ErrBadKey: coordinate not a valid (row, col) in 0..8.
	ErrBadKey = errors.New("engine: bad key")
	// ErrBadDigit: digit outside 0..8.
	ErrBadDigit = errors.New("engine: bad digit")
	// ErrBadCount: candidate-set size outside 1..8 where one was required.
	ErrBadCount = errors.New("engine: bad count")
	// ErrBadCorner: rectangle corner in the last row or last column.
	ErrBadCorner = errors.New("engine: bad corner")
	// ErrKeyConflict: operation required the opposite solved/unsolved state.
	ErrKeyConflict = errors.New("engine: key conflict")
	// ErrNotSolved: view lookup on an unsolved key via the clues view.
	ErrNotSolved = errors.New("engine: not solved")
	// ErrSolved: view lookup on a solved key via the candidates view.
	ErrSolved = errors.New("engine: solved")
	// ErrTypeMismatch: a value was supplied where a CandidateSet was required.
	ErrTypeMismatch = errors.New("engine: type mismatch")
	// ErrOsRngUnavailable: the OS entropy source failed.
	ErrOsRngUnavailable = errors.New("engine: os rng unavailable")
	// ErrConfigError is re-exported from gridconfig rather than duplicated,
	// so errors.Is(err, engine.ErrConfigError) matches configuration failures
	// that originate in internal/gridconfig.
	ErrConfigError = gridconfig.ErrConfigError
)

// ContradictionError reports the coordinate at which RemoveCandidates
// observed an empty resulting candidate mask. When a batch removes
// candidates across several coordinates and more than one goes empty, the
// *last* one observed is reported — the mutation itself is not rolled back.
type ContradictionError struct {
	Coord core.CellRef
}

func (e *ContradictionError) Error() string {
	return fmt.Sprintf("engine: contradiction at %v", e.Coord)
}

// ErrContradiction lets callers write errors.Is(err, engine.ErrContradiction)
// without naming a specific coordinate.
var ErrContradiction = errors.New("engine: contradiction")

func (e *ContradictionError) Unwrap() error { return ErrContradiction }

func badKeyf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBadKey)...)
}

func badDigitf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBadDigit)...)
}

func keyConflictWrap(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrKeyConflict)...)
}

func badCornerf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrBadCorner)...)
}
