package board

import (
	"errors"
	"math/rand"
	"testing"
)

// newGrid makes a grid with the given cells set to Alive
func newGrid(t *testing.T, width, height int, alive ...[2]int) *Grid {
	t.Helper()
	g, err := NewGrid(width, height)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range alive {
		if err := g.Toggle(c[0], c[1]); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestNewGridRejectsBadSizes(t *testing.T) {
	for _, size := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {3, -1}} {
		if _, err := NewGrid(size[0], size[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d, %d) error = %v, want ErrInvalidSize", size[0], size[1], err)
		}
	}
}

func TestNewGridIsDead(t *testing.T) {
	g := newGrid(t, 4, 3)
	if g.Width() != 4 || g.Height() != 3 || g.Len() != 12 {
		t.Fatalf("got %dx%d with %d cells", g.Width(), g.Height(), g.Len())
	}
	for i, s := range g.Cells() {
		if s != Dead {
			t.Errorf("cell %d = %v, want Dead", i, s)
		}
	}
}

func TestGetOutsideIsDead(t *testing.T) {
	g := newGrid(t, 2, 2, [2]int{0, 0}, [2]int{1, 0}, [2]int{0, 1}, [2]int{1, 1})
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {-1, -1}, {2, 2}} {
		if g.Get(c[0], c[1]) {
			t.Errorf("Get(%d, %d) = true outside the grid", c[0], c[1])
		}
		if g.At(c[0], c[1]) != Dead {
			t.Errorf("At(%d, %d) = %v outside the grid", c[0], c[1], g.At(c[0], c[1]))
		}
	}
}

func TestToggle(t *testing.T) {
	g := newGrid(t, 3, 3)
	if err := g.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if g.At(1, 2) != Alive || !g.Get(1, 2) {
		t.Fatalf("after toggle cell is %v", g.At(1, 2))
	}
	if got := g.Cells()[2*3+1]; got != Alive {
		t.Fatalf("cell is not stored at y*width+x, got %v", got)
	}
	if err := g.Toggle(1, 2); err != nil {
		t.Fatal(err)
	}
	if g.At(1, 2) != Dead {
		t.Fatalf("second toggle left %v", g.At(1, 2))
	}
	for _, c := range [][2]int{{3, 0}, {0, 3}, {-1, 1}} {
		if err := g.Toggle(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Toggle(%d, %d) error = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
}

func TestToggleKillsChangedCell(t *testing.T) {
	g := newGrid(t, 1, 1)
	if err := g.SetCells([]CellState{AliveChanged}); err != nil {
		t.Fatal(err)
	}
	if err := g.Toggle(0, 0); err != nil {
		t.Fatal(err)
	}
	if g.At(0, 0) != Dead {
		t.Fatalf("toggling AliveChanged gave %v, want Dead", g.At(0, 0))
	}
}

func TestAliveNeighboursAtCorner(t *testing.T) {
	full := newGrid(t, 3, 3)
	full.Each(func(x, y int, s CellState) {
		full.Toggle(x, y)
	})

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 3},
		{2, 0, 3},
		{0, 2, 3},
		{2, 2, 3},
		{1, 0, 5},
		{1, 1, 8},
	}
	for _, test := range tests {
		if got := full.AliveNeighbours(test.x, test.y); got != test.want {
			t.Errorf("AliveNeighbours(%d, %d) = %d, want %d", test.x, test.y, got, test.want)
		}
	}

	// A lone corner cell has no neighbours, and its own state is not counted
	lone := newGrid(t, 5, 5, [2]int{0, 0})
	if got := lone.AliveNeighbours(0, 0); got != 0 {
		t.Errorf("lone corner cell has %d neighbours", got)
	}
	if got := lone.AliveNeighbours(1, 1); got != 1 {
		t.Errorf("diagonal of corner has %d neighbours, want 1", got)
	}
}

func TestBlockIsStill(t *testing.T) {
	g := newGrid(t, 4, 4, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2}, [2]int{2, 2})
	before := g.Cells()

	if g.AdvanceGeneration() {
		t.Fatal("block changed")
	}
	if g.Changed() {
		t.Fatal("Changed() = true for a still life")
	}
	after := g.Cells()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("cell %d went from %v to %v", i, before[i], after[i])
		}
	}
}

func TestBlinkerOscillates(t *testing.T) {
	g := newGrid(t, 5, 5, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2})

	if !g.AdvanceGeneration() || !g.Changed() {
		t.Fatal("first generation reported no change")
	}
	// Vertical: the ends were born, the centre never flipped
	want := map[[2]int]CellState{{2, 1}: AliveChanged, {2, 2}: Alive, {2, 3}: AliveChanged}
	checkCells(t, g, want)

	if !g.AdvanceGeneration() || !g.Changed() {
		t.Fatal("second generation reported no change")
	}
	want = map[[2]int]CellState{{1, 2}: AliveChanged, {2, 2}: Alive, {3, 2}: AliveChanged}
	checkCells(t, g, want)
}

// checkCells asserts that exactly the cells in want are non-dead, with the given states
func checkCells(t *testing.T, g *Grid, want map[[2]int]CellState) {
	t.Helper()
	g.Each(func(x, y int, s CellState) {
		w, ok := want[[2]int{x, y}]
		if !ok {
			w = Dead
		}
		if s != w {
			t.Errorf("cell (%d, %d) = %v, want %v", x, y, s, w)
		}
	})
}

func TestChangedMarkStaysUntilFlipped(t *testing.T) {
	// An L of three cells fills in to a block on the first generation
	g := newGrid(t, 4, 4, [2]int{1, 1}, [2]int{2, 1}, [2]int{1, 2})
	if !g.AdvanceGeneration() {
		t.Fatal("L did not change")
	}
	if g.At(2, 2) != AliveChanged {
		t.Fatalf("born cell is %v, want AliveChanged", g.At(2, 2))
	}

	// The block is still, the born cell keeps its mark
	if g.AdvanceGeneration() {
		t.Fatal("block changed")
	}
	if g.At(2, 2) != AliveChanged {
		t.Fatalf("unflipped born cell is %v, want AliveChanged", g.At(2, 2))
	}
	if g.At(1, 1) != Alive {
		t.Fatalf("first cell is %v, want Alive", g.At(1, 1))
	}
}

// nextLiveness computes a generation straight from the rules, for comparison
func nextLiveness(alive []bool, width, height int) []bool {
	next := make([]bool, len(alive))
	get := func(x, y int) bool {
		if x < 0 || y < 0 || x >= width || y >= height {
			return false
		}
		return alive[y*width+x]
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && get(x+dx, y+dy) {
						n++
					}
				}
			}
			next[y*width+x] = n == 3 || (n == 2 && get(x, y))
		}
	}
	return next
}

func liveness(cells []CellState) []bool {
	alive := make([]bool, len(cells))
	for i, s := range cells {
		alive[i] = s.IsAlive()
	}
	return alive
}

func TestAdvanceMatchesRules(t *testing.T) {
	const width, height = 20, 15
	g := newGrid(t, width, height)
	g.Randomise(rand.New(rand.NewSource(42)), 0.35)

	for gen := 0; gen < 30; gen++ {
		before := g.Cells()
		want := nextLiveness(liveness(before), width, height)

		changed := g.AdvanceGeneration()
		after := g.Cells()

		flipped := false
		for i, s := range after {
			if s.IsAlive() != want[i] {
				t.Fatalf("generation %d: cell %d alive = %v, want %v", gen, i, s.IsAlive(), want[i])
			}
			if before[i].IsAlive() != s.IsAlive() {
				flipped = true
				if s.IsAlive() && s != AliveChanged {
					t.Fatalf("generation %d: born cell %d is %v", gen, i, s)
				}
			} else if s != before[i] {
				t.Fatalf("generation %d: unflipped cell %d went from %v to %v", gen, i, before[i], s)
			}
		}
		if changed != flipped {
			t.Fatalf("generation %d: changed = %v, cells flipped = %v", gen, changed, flipped)
		}
	}
}

func TestCountAlive(t *testing.T) {
	g := newGrid(t, 12, 9)
	g.Randomise(rand.New(rand.NewSource(7)), 0.4)
	g.Toggle(0, 0)
	g.Toggle(11, 8)

	for gen := 0; gen < 10; gen++ {
		want := 0
		for _, s := range g.Cells() {
			if s == Alive || s == AliveChanged {
				want++
			}
		}
		if got := g.CountAlive(); got != want {
			t.Fatalf("generation %d: CountAlive() = %d, want %d", gen, got, want)
		}
		if got := len(g.AliveCells()); got != want {
			t.Fatalf("generation %d: len(AliveCells()) = %d, want %d", gen, got, want)
		}
		g.AdvanceGeneration()
	}
}

func TestClear(t *testing.T) {
	g := newGrid(t, 3, 3, [2]int{0, 0}, [2]int{1, 1})
	g.Clear()
	if g.CountAlive() != 0 {
		t.Fatalf("%d cells alive after Clear", g.CountAlive())
	}
}

func TestSetCells(t *testing.T) {
	g := newGrid(t, 2, 2)
	if err := g.SetCells(make([]CellState, 3)); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("SetCells with 3 cells error = %v", err)
	}
	cells := []CellState{Dead, Alive, AliveChanged, Reserved}
	if err := g.SetCells(cells); err != nil {
		t.Fatal(err)
	}
	// Later edits to the argument must not reach the grid
	cells[1] = Dead
	if g.At(1, 0) != Alive || g.At(0, 1) != AliveChanged || g.At(1, 1) != Reserved {
		t.Fatalf("cells = %v", g.Cells())
	}
	if g.CountAlive() != 2 {
		t.Fatalf("CountAlive() = %d, Reserved must not count", g.CountAlive())
	}
}

func TestEachIsRowMajor(t *testing.T) {
	g := newGrid(t, 3, 2)
	i := 0
	g.Each(func(x, y int, s CellState) {
		if y*3+x != i {
			t.Fatalf("visit %d was (%d, %d)", i, x, y)
		}
		i++
	})
	if i != 6 {
		t.Fatalf("visited %d cells", i)
	}
}

func TestRandomiseOnlyWritesAlive(t *testing.T) {
	g := newGrid(t, 10, 10)
	g.Randomise(rand.New(rand.NewSource(1)), 0.5)
	for _, s := range g.Cells() {
		if s != Dead && s != Alive {
			t.Fatalf("Randomise wrote %v", s)
		}
	}
	g.Randomise(rand.New(rand.NewSource(1)), 0)
	if g.CountAlive() != 0 {
		t.Fatalf("ratio 0 left %d alive", g.CountAlive())
	}
}

func TestCellStateString(t *testing.T) {
	names := map[CellState]string{
		Dead:         "Dead",
		Alive:        "Alive",
		AliveChanged: "AliveChanged",
		Reserved:     "Reserved",
		CellState(9): "Incorrect CellState",
	}
	for s, want := range names {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}
