// Command sudoku-state-gen fills complete, valid boards using the engine's
// randomized ordering and assigns them digit by digit, backtracking via
// snapshot/restore whenever a cell is driven to zero candidates.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"sudoku-state/internal/core"
	"sudoku-state/internal/engine"
	"sudoku-state/internal/puzzles"
)

func main() {
	count := flag.Int("n", 100, "number of states to generate")
	output := flag.String("o", "snapshots.json", "output file path")
	workers := flag.Int("w", 0, "number of worker goroutines (default: num CPUs)")
	flag.Parse()

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}

	fmt.Printf("Generating %d states with %d workers...\n", *count, *workers)
	start := time.Now()

	store := puzzles.New()
	var mu sync.Mutex
	var generated int64

	work := make(chan int, *count)
	for i := 0; i < *count; i++ {
		work <- i
	}
	close(work)

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				g := atomic.LoadInt64(&generated)
				elapsed := time.Since(start)
				rate := float64(g) / elapsed.Seconds()
				fmt.Printf("  Progress: %d/%d (%.1f/sec)\n", g, *count, rate)
			case <-done:
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < *workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range work {
				snap, err := generateFullBoard()
				if err != nil {
					fmt.Fprintf(os.Stderr, "worker: generate state %d: %v\n", idx, err)
					continue
				}
				mu.Lock()
				store.Put(fmt.Sprintf("state-%06d", idx), snap)
				mu.Unlock()
				atomic.AddInt64(&generated, 1)
			}
		}()
	}

	wg.Wait()
	close(done)

	elapsed := time.Since(start)
	fmt.Printf("Generated %d states in %v (%.1f/sec)\n", store.Count(), elapsed, float64(store.Count())/elapsed.Seconds())

	if err := store.Save(*output); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	info, _ := os.Stat(*output)
	fmt.Printf("Done! Wrote %s (%.2f MB)\n", *output, float64(info.Size())/1024/1024)
}

// generateFullBoard builds a complete, contradiction-free 81-cell assignment
// by walking cells in OrderRandom's order and backtracking via
// snapshot/restore whenever a cell's candidate set is exhausted before it is
// reached.
func generateFullBoard() (engine.Snapshot, error) {
	s, err := engine.New(nil, true, nil)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("new state: %w", err)
	}

	it, err := s.OrderRandom()
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("order_random: %w", err)
	}
	var order []core.CellRef
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		order = append(order, c)
	}

	final, ok := fillInOrder(s, order, 0)
	if !ok {
		return engine.Snapshot{}, fmt.Errorf("no completion found for this cell order")
	}
	return final.Snapshot(), nil
}

func fillInOrder(s *engine.State, order []core.CellRef, idx int) (*engine.State, bool) {
	if idx == len(order) {
		return s, true
	}
	coord := order[idx]
	cands, err := s.CandidatesAt(coord)
	if err != nil {
		return s, false
	}
	digits := cands.ToSlice()
	rand.Shuffle(len(digits), func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })

	snap := s.Snapshot()
	for _, d := range digits {
		if err := s.AssignClue(coord, d); err != nil {
			continue
		}
		single, _ := engine.NewCandidateSet(d)
		var changes []engine.CandidateChange
		for _, p := range s.Peers(coord).Union {
			if solved, _ := s.IsSolved(p); !solved {
				changes = append(changes, engine.CandidateChange{Coord: p, Set: single})
			}
		}
		if err := s.RemoveCandidates(changes); err == nil {
			if next, ok := fillInOrder(s, order, idx+1); ok {
				return next, true
			}
		}
		restored, err := engine.Restore(snap, s.Config())
		if err != nil {
			return s, false
		}
		s = restored
	}
	return s, false
}
