package engine

import (
	"github.com/lixenwraith/pixelweave/grid"
	"github.com/lixenwraith/pixelweave/palette"
	"github.com/lixenwraith/pixelweave/pattern"
)

// Surface realizes engine state on screen
// The engine never reads state back from it
type Surface interface {
	// SetGridDimensions resets the surface to an all-empty n×n grid
	SetGridDimensions(n int)
	// PaintCell shows cell at index
	PaintCell(index int, cell grid.Cell)
}

// Listener receives engine notifications on the engine goroutine
type Listener interface {
	Generated(plan *pattern.Plan)
	Toggled(index int, color palette.Color)
	Cleared()
}

// NopSurface discards all paints
type NopSurface struct{}

func (NopSurface) SetGridDimensions(int) {}
func (NopSurface) PaintCell(int, grid.Cell) {}
