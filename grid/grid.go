// Package grid models the square cell grid in row-major order
package grid

import "fmt"

// Grid is an N×N set of cells, index = y*N + x
// Size is fixed at construction
type Grid struct {
	size  int
	cells []Cell
}

// New creates an all-empty n×n grid, panics on n < 1
func New(n int) *Grid {
	if n < 1 {
		panic(fmt.Sprintf("grid: invalid size %d", n))
	}
	return &Grid{
		size:  n,
		cells: make([]Cell, n*n),
	}
}

// Size returns the side length N
func (g *Grid) Size() int {
	return g.size
}

// Len returns the cell count N²
func (g *Grid) Len() int {
	return len(g.cells)
}

// Index converts a position to a cell index
func (g *Grid) Index(x, y int) int {
	if x < 0 || x >= g.size || y < 0 || y >= g.size {
		panic(fmt.Sprintf("grid: position (%d,%d) outside %dx%d", x, y, g.size, g.size))
	}
	return y*g.size + x
}

// Pos converts a cell index to its position
func (g *Grid) Pos(i int) (x, y int) {
	g.check(i)
	return i % g.size, i / g.size
}

// At returns the cell at index i
func (g *Grid) At(i int) Cell {
	g.check(i)
	return g.cells[i]
}

// Set replaces the cell at index i
func (g *Grid) Set(i int, c Cell) {
	g.check(i)
	g.cells[i] = c
}

// AllEmpty reports whether no cell is painted
func (g *Grid) AllEmpty() bool {
	for _, c := range g.cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// PaintedCount returns the number of painted cells
func (g *Grid) PaintedCount() int {
	n := 0
	for _, c := range g.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Clear resets every cell to empty
func (g *Grid) Clear() {
	clear(g.cells)
}

// Snapshot returns a copy of all cells
func (g *Grid) Snapshot() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

func (g *Grid) check(i int) {
	if i < 0 || i >= len(g.cells) {
		panic(fmt.Sprintf("grid: index %d outside [0,%d)", i, len(g.cells)))
	}
}
