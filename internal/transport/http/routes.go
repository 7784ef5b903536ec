// Package http exposes internal/engine.State over a small JSON API: each
// route parses its request, calls into the domain layer, and maps errors to
// status codes via a single dispatch table.
package http

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"sudoku-state/internal/core"
	"sudoku-state/internal/engine"
	"sudoku-state/internal/puzzles"
	"sudoku-state/pkg/constants"
)

var store *puzzles.Store

// RegisterRoutes wires the engine's operations onto r, storing constructed
// states in store.
func RegisterRoutes(r *gin.Engine, s *puzzles.Store) {
	store = s

	r.GET("/health", healthHandler)

	api := r.Group("/states")
	{
		api.POST("", createStateHandler)
		api.GET("/:name", getStateHandler)
		api.POST("/:name/assign", assignHandler)
		api.POST("/:name/candidates/remove", removeCandidatesHandler)
		api.GET("/:name/rectangles", rectanglesHandler)
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": constants.APIVersion})
}

// writeEngineError maps an internal/engine error to an HTTP status using the
// taxonomy in engine/errors.go: bad input is 400, conflicts with current
// state are 409, and anything the caller could not have prevented (entropy
// source failure, an invalid grid layout) is 500.
func writeEngineError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, engine.ErrBadKey),
		errors.Is(err, engine.ErrBadDigit),
		errors.Is(err, engine.ErrBadCount),
		errors.Is(err, engine.ErrBadCorner),
		errors.Is(err, engine.ErrTypeMismatch):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrKeyConflict),
		errors.Is(err, engine.ErrNotSolved),
		errors.Is(err, engine.ErrSolved),
		errors.Is(err, engine.ErrContradiction):
		status = http.StatusConflict
	case errors.Is(err, engine.ErrOsRngUnavailable),
		errors.Is(err, engine.ErrConfigError):
		status = http.StatusInternalServerError
	}

	body := gin.H{"error": err.Error()}
	var ce *engine.ContradictionError
	if errors.As(err, &ce) {
		body["cell"] = gin.H{"row": ce.Coord.Row, "col": ce.Coord.Col}
	}
	c.JSON(status, body)
}

func newStateName() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate state name: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

type createStateRequest struct {
	Clues  map[string]int `json:"clues"`
	Dofill bool           `json:"dofill"`
}

func createStateHandler(c *gin.Context) {
	var req createStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	clues := make(map[core.CellRef]int, len(req.Clues))
	for key, digit := range req.Clues {
		var row, col int
		if _, err := fmt.Sscanf(key, "%d,%d", &row, &col); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("malformed cell key %q", key)})
			return
		}
		clues[core.CellRef{Row: row, Col: col}] = digit
	}
	if len(clues) > 0 && len(clues) < constants.MinGivens {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too few givens: got %d, need at least %d for a uniquely solvable puzzle", len(clues), constants.MinGivens),
		})
		return
	}

	s, err := engine.New(clues, req.Dofill, nil)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	name, err := newStateName()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	store.Put(name, s.Snapshot())

	c.JSON(http.StatusOK, gin.H{
		"name":      name,
		"solved":    s.NumSolved(),
		"remaining": s.NumRemaining(),
	})
}

func loadNamedState(c *gin.Context) (*engine.State, string, bool) {
	name := c.Param("name")
	snap, ok := store.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such state", "name": name})
		return nil, "", false
	}
	s, err := engine.Restore(snap, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, "", false
	}
	return s, name, true
}

func getStateHandler(c *gin.Context) {
	s, _, ok := loadNamedState(c)
	if !ok {
		return
	}
	snap := s.Snapshot()

	clues := make(map[string]int, len(snap.Clues))
	for coord, digit := range snap.Clues {
		clues[fmt.Sprintf("%d,%d", coord.Row, coord.Col)] = digit
	}
	candidates := make(map[string][]int, len(snap.Candidates))
	for coord, cs := range snap.Candidates {
		candidates[fmt.Sprintf("%d,%d", coord.Row, coord.Col)] = cs.ToSlice()
	}

	c.JSON(http.StatusOK, gin.H{"clues": clues, "candidates": candidates})
}

type assignRequest struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Digit int `json:"digit"`
}

func assignHandler(c *gin.Context) {
	s, name, ok := loadNamedState(c)
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.AssignClue(core.CellRef{Row: req.Row, Col: req.Col}, req.Digit); err != nil {
		writeEngineError(c, err)
		return
	}
	store.Put(name, s.Snapshot())
	c.JSON(http.StatusOK, gin.H{"solved": s.NumSolved(), "remaining": s.NumRemaining()})
}

type removeCandidatesChange struct {
	Row    int   `json:"row"`
	Col    int   `json:"col"`
	Digits []int `json:"digits"`
}

type removeCandidatesRequest struct {
	Changes []removeCandidatesChange `json:"changes"`
}

func removeCandidatesHandler(c *gin.Context) {
	s, name, ok := loadNamedState(c)
	if !ok {
		return
	}
	var req removeCandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := make([]engine.CandidateChange, 0, len(req.Changes))
	for _, rc := range req.Changes {
		set, err := engine.NewCandidateSet(rc.Digits...)
		if err != nil {
			writeEngineError(c, err)
			return
		}
		changes = append(changes, engine.CandidateChange{
			Coord: core.CellRef{Row: rc.Row, Col: rc.Col},
			Set:   set,
		})
	}

	if err := s.RemoveCandidates(changes); err != nil {
		store.Put(name, s.Snapshot())
		writeEngineError(c, err)
		return
	}
	store.Put(name, s.Snapshot())
	c.JSON(http.StatusOK, gin.H{"solved": s.NumSolved(), "remaining": s.NumRemaining()})
}

func rectanglesHandler(c *gin.Context) {
	s, _, ok := loadNamedState(c)
	if !ok {
		return
	}

	digits, err := parseRequiredQuery(c.Query("required"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	required, err := engine.NewCandidateSet(digits...)
	if err != nil {
		writeEngineError(c, err)
		return
	}

	rects := s.FindRectangles(required)
	out := make([]gin.H, 0, len(rects))
	for _, r := range rects {
		out = append(out, gin.H{
			"candidates": r.Candidates.ToSlice(),
			"ul":         gin.H{"row": r.UL.Row, "col": r.UL.Col},
			"ur":         gin.H{"row": r.UR.Row, "col": r.UR.Col},
			"lr":         gin.H{"row": r.LR.Row, "col": r.LR.Col},
			"ll":         gin.H{"row": r.LL.Row, "col": r.LL.Col},
		})
	}
	c.JSON(http.StatusOK, gin.H{"rectangles": out})
}

// parseRequiredQuery parses a comma-separated digit list like "1,2"; an
// empty string yields no required digits (FindRectangles with the empty set
// reports every rectangle regardless of candidate content).
func parseRequiredQuery(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	digits := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("malformed digit %q in required query", p)
		}
		digits = append(digits, d)
	}
	return digits, nil
}
