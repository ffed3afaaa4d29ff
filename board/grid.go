// Package board holds the Game of Life grid and the rules that advance it.
package board

import (
	"errors"
	"math/rand"

	"github.com/teemleader/gameoflife/util"
)

var (
	// ErrInvalidSize is returned when a grid is created with a non-positive dimension.
	ErrInvalidSize = errors.New("grid dimensions must be positive")
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("cell outside the grid")
	// ErrSizeMismatch is returned when a cell array does not fit the grid.
	ErrSizeMismatch = errors.New("cell count does not match grid size")
)

// Grid stores a fixed size board of cells in row-major order (index y*width+x).
// The area outside the board is permanently dead, edges do not wrap.
// A Grid is not safe for concurrent use.
type Grid struct {
	width  int
	height int
	cells  []CellState

	// flips is reused between generations to hold the indices that change
	flips   []int
	changed bool
}

// NewGrid allocates a width x height grid with every cell dead.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]CellState, width*height),
	}, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Len is the number of cells, width*height.
func (g *Grid) Len() int { return len(g.cells) }

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Get reports whether the cell at (x, y) is alive.
// Anything outside the grid is dead.
func (g *Grid) Get(x, y int) bool {
	return g.At(x, y).IsAlive()
}

// At returns the raw state of the cell at (x, y), Dead outside the grid.
func (g *Grid) At(x, y int) CellState {
	if !g.inside(x, y) {
		return Dead
	}
	return g.cells[y*g.width+x]
}

// Toggle flips a dead cell to Alive and any other cell to Dead.
func (g *Grid) Toggle(x, y int) error {
	if !g.inside(x, y) {
		return ErrOutOfBounds
	}
	idx := y*g.width + x
	if g.cells[idx] == Dead {
		g.cells[idx] = Alive
	} else {
		g.cells[idx] = Dead
	}
	return nil
}

// CountAlive returns the number of alive cells on the board.
func (g *Grid) CountAlive() int {
	count := 0
	for _, cell := range g.cells {
		if cell.IsAlive() {
			count++
		}
	}
	return count
}

// Clear kills every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Dead
	}
}

// AliveNeighbours counts the alive cells in the 8 cells around (x, y).
// Neighbours beyond the edge count as dead.
func (g *Grid) AliveNeighbours(x, y int) int {
	numNeighbours := 0

	// Count all alive cells in a 1 cell radius of the centre
	for dx := -1; dx < 2; dx++ {
		for dy := -1; dy < 2; dy++ {
			// Ignore the centre cell
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Get(x+dx, y+dy) {
				numNeighbours++
			}
		}
	}
	return numNeighbours
}

// flipsNextGeneration reports whether the cell at (x, y) changes liveness
// in the next generation:
//
//	any live cell with fewer than two live neighbours dies
//	any live cell with two or three live neighbours is unaffected
//	any live cell with more than three live neighbours dies
//	any dead cell with exactly three live neighbours becomes alive
func (g *Grid) flipsNextGeneration(x, y int) bool {
	adj := g.AliveNeighbours(x, y)
	if g.Get(x, y) {
		return adj != 2 && adj != 3
	}
	return adj == 3
}

// AdvanceGeneration moves the board forward one generation and reports
// whether any cell changed.
//
// Every decision is taken against the board as it was before the call, then
// all flips are applied together. A cell that flips to alive is marked
// AliveChanged. Cells that do not flip keep their state, so an AliveChanged
// cell stays marked until it dies or the board is reloaded.
func (g *Grid) AdvanceGeneration() bool {
	g.flips = g.flips[:0]

	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.flipsNextGeneration(x, y) {
				g.flips = append(g.flips, y*g.width+x)
			}
		}
	}

	for _, idx := range g.flips {
		if g.cells[idx].IsAlive() {
			g.cells[idx] = Dead
		} else {
			g.cells[idx] = AliveChanged
		}
	}

	g.changed = len(g.flips) > 0
	return g.changed
}

// Changed reports whether the last AdvanceGeneration flipped any cell.
func (g *Grid) Changed() bool { return g.changed }

// Cells returns a copy of the board in row-major order.
func (g *Grid) Cells() []CellState {
	cells := make([]CellState, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y int, s CellState)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.cells[y*g.width+x])
		}
	}
}

// SetCells overwrites the whole board, typically with a decoded stage.
func (g *Grid) SetCells(cells []CellState) error {
	if len(cells) != len(g.cells) {
		return ErrSizeMismatch
	}
	copy(g.cells, cells)
	return nil
}

// AliveCells returns the coordinates of every alive cell.
func (g *Grid) AliveCells() []util.Cell {
	aliveCells := make([]util.Cell, 0)
	g.Each(func(x, y int, s CellState) {
		if s.IsAlive() {
			aliveCells = append(aliveCells, util.Cell{X: x, Y: y})
		}
	})
	return aliveCells
}

// Randomise replaces the board with random Alive cells, each cell being alive
// with probability ratio.
func (g *Grid) Randomise(rng *rand.Rand, ratio float64) {
	for i := range g.cells {
		if rng.Float64() < ratio {
			g.cells[i] = Alive
		} else {
			g.cells[i] = Dead
		}
	}
}
