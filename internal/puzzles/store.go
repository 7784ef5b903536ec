// Package puzzles persists named engine.Snapshot records to a JSON file and
// serves them back out, either by name or by a deterministic seed hash.
package puzzles

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"os"
	"sync"

	"sudoku-state/internal/core"
	"sudoku-state/internal/engine"
)

// entry is the on-disk shape of one saved snapshot.
type entry struct {
	Name       string                     `json:"name"`
	Clues      map[string]int             `json:"clues"`
	Candidates map[string][2]int          `json:"candidates"`
	Payload    any                        `json:"payload,omitempty"`
}

// file is the top-level JSON document written to and read from disk.
type file struct {
	Version int     `json:"version"`
	Entries []entry `json:"entries"`
}

const storeVersion = 1

// Store holds a set of named snapshots loaded from a file, safe for
// concurrent reads and writes across goroutines.
type Store struct {
	mu      sync.RWMutex
	order   []string
	entries map[string]engine.Snapshot
}

// New returns an empty store, for building up snapshots before a first Save.
func New() *Store {
	return &Store{entries: make(map[string]engine.Snapshot)}
}

// LoadFile reads a Store from path.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("puzzles: read %s: %w", path, err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("puzzles: parse %s: %w", path, err)
	}
	s := New()
	for _, e := range f.Entries {
		snap, err := decodeEntry(e)
		if err != nil {
			return nil, fmt.Errorf("puzzles: entry %q: %w", e.Name, err)
		}
		s.putLocked(e.Name, snap)
	}
	return s, nil
}

// Save writes every snapshot currently in the store to path, in insertion
// order.
func (s *Store) Save(path string) error {
	s.mu.RLock()
	f := file{Version: storeVersion, Entries: make([]entry, 0, len(s.order))}
	for _, name := range s.order {
		f.Entries = append(f.Entries, encodeEntry(name, s.entries[name]))
	}
	s.mu.RUnlock()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("puzzles: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("puzzles: write %s: %w", path, err)
	}
	return nil
}

// Get returns the named snapshot, if present.
func (s *Store) Get(name string) (engine.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.entries[name]
	return snap, ok
}

// Put adds or overwrites the named snapshot.
func (s *Store) Put(name string, snap engine.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(name, snap)
}

func (s *Store) putLocked(name string, snap engine.Snapshot) {
	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	s.entries[name] = snap
}

// Count reports how many snapshots are currently held.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetBySeed deterministically maps seed to one of the stored snapshots via an
// FNV-1a hash of the seed string.
func (s *Store) GetBySeed(seed string) (engine.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.order) == 0 {
		return engine.Snapshot{}, false
	}
	h := fnv.New64a()
	h.Write([]byte(seed))
	idx := int(h.Sum64() % uint64(len(s.order))) //nolint:gosec // bounded by slice length
	name := s.order[idx]
	return s.entries[name], true
}

func encodeEntry(name string, snap engine.Snapshot) entry {
	e := entry{
		Name:       name,
		Clues:      make(map[string]int, len(snap.Clues)),
		Candidates: make(map[string][2]int, len(snap.Candidates)),
		Payload:    snap.Payload,
	}
	for coord, digit := range snap.Clues {
		e.Clues[coordKey(coord)] = digit
	}
	for coord, cs := range snap.Candidates {
		mask, iterPos := cs.Marshal()
		e.Candidates[coordKey(coord)] = [2]int{mask, iterPos}
	}
	return e
}

func decodeEntry(e entry) (engine.Snapshot, error) {
	snap := engine.Snapshot{
		Clues:      make(map[core.CellRef]int, len(e.Clues)),
		Candidates: make(map[core.CellRef]engine.CandidateSet, len(e.Candidates)),
		Payload:    e.Payload,
	}
	for key, digit := range e.Clues {
		coord, err := parseCoordKey(key)
		if err != nil {
			return engine.Snapshot{}, err
		}
		snap.Clues[coord] = digit
	}
	for key, pair := range e.Candidates {
		coord, err := parseCoordKey(key)
		if err != nil {
			return engine.Snapshot{}, err
		}
		cs, err := engine.UnmarshalCandidateSet(pair[0], pair[1])
		if err != nil {
			return engine.Snapshot{}, fmt.Errorf("candidates[%s]: %w", key, err)
		}
		snap.Candidates[coord] = cs
	}
	return snap, nil
}

func coordKey(c core.CellRef) string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

func parseCoordKey(key string) (core.CellRef, error) {
	var row, col int
	if _, err := fmt.Sscanf(key, "%d,%d", &row, &col); err != nil {
		return core.CellRef{}, fmt.Errorf("malformed coordinate key %q: %w", key, err)
	}
	return core.CellRef{Row: row, Col: col}, nil
}
