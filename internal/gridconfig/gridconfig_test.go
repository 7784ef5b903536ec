package gridconfig

import (
	"errors"
	"testing"

	"sudoku-state/internal/core"
)

func TestDefaultPeersExcludeSelfAndHaveExpectedSizes(t *testing.T) {
	cfg := Default()

	tests := []struct {
		row, col int
	}{
		{0, 0},
		{4, 4},
		{8, 8},
	}

	for _, test := range tests {
		i := core.CellRef{Row: test.row, Col: test.col}.Index()
		ps := cfg.Peers[i]
		if len(ps.Box) != 8 {
			t.Errorf("Peers[%d].Box has %d entries, want 8", i, len(ps.Box))
		}
		if len(ps.Row) != 8 {
			t.Errorf("Peers[%d].Row has %d entries, want 8", i, len(ps.Row))
		}
		if len(ps.Col) != 8 {
			t.Errorf("Peers[%d].Col has %d entries, want 8", i, len(ps.Col))
		}
		if len(ps.Union) != 20 {
			t.Errorf("Peers[%d].Union has %d entries, want 20", i, len(ps.Union))
		}
		for _, c := range ps.Union {
			if c.Index() == i {
				t.Errorf("Peers[%d].Union contains self", i)
			}
		}
	}
}

func TestDefaultGroupOfIsStandardBoxing(t *testing.T) {
	cfg := Default()
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			want := (r/3)*3 + c/3
			got := cfg.GroupOf[r*9+c]
			if got != want {
				t.Errorf("GroupOf[%d,%d] = %d, want %d", r, c, got, want)
			}
		}
	}
}

func TestComputeRejectsUnevenPartition(t *testing.T) {
	var groupOf [81]int
	for i := range groupOf {
		groupOf[i] = 0 // every cell in group 0 — not a partition at all
	}
	_, err := Compute(groupOf)
	if err == nil {
		t.Fatal("Compute(degenerate groupOf) = nil error, want ConfigError")
	}
	if !errors.Is(err, ErrConfigError) {
		t.Errorf("Compute(degenerate groupOf) error = %v, want wrapping ErrConfigError", err)
	}
}

func TestComputeRejectsOutOfRangeGroup(t *testing.T) {
	groupOf := Default().GroupOf
	groupOf[0] = 9
	_, err := Compute(groupOf)
	if !errors.Is(err, ErrConfigError) {
		t.Errorf("Compute(out-of-range group) error = %v, want wrapping ErrConfigError", err)
	}
}

func TestHouseKeysHouseBandsMatchABIConvention(t *testing.T) {
	cfg := Default()
	// Box 0 is the default layout's top-left 3x3 region.
	box0 := cfg.HouseKeys.Houses[0]
	if len(box0) != 9 {
		t.Fatalf("box 0 keyset has %d entries, want 9", len(box0))
	}
	for _, coord := range box0 {
		if coord.Row >= 3 || coord.Col >= 3 {
			t.Errorf("box 0 contains %v, outside the top-left 3x3 region", coord)
		}
	}

	col0 := cfg.HouseKeys.Houses[9]
	for _, coord := range col0 {
		if coord.Col != 0 {
			t.Errorf("house 9 (first column) contains %v with col != 0", coord)
		}
	}

	row0 := cfg.HouseKeys.Houses[18]
	for _, coord := range row0 {
		if coord.Row != 0 {
			t.Errorf("house 18 (first row) contains %v with row != 0", coord)
		}
	}
}

func TestRowSubgroupsIntersectRowAndGroup(t *testing.T) {
	cfg := Default()
	sub := cfg.RowSubgroups[0][0]
	if len(sub) != 3 {
		t.Fatalf("RowSubgroups[0][0] has %d entries, want 3", len(sub))
	}
	for _, coord := range sub {
		if coord.Row != 0 || coord.Col >= 3 {
			t.Errorf("RowSubgroups[0][0] contains %v, want row 0 cols 0-2", coord)
		}
	}

	// Row 0 has no cells in group 4 (the center box) under the default boxing.
	if empty := cfg.RowSubgroups[0][4]; len(empty) != 0 {
		t.Errorf("RowSubgroups[0][4] = %v, want empty", empty)
	}
}
