package grid

import (
	"fmt"

	"github.com/lixenwraith/pixelweave/palette"
)

// Cell is either empty or painted with a palette color
// The zero value is empty
type Cell struct {
	color   palette.Color
	painted bool
}

// Empty returns an unpainted cell
func Empty() Cell {
	return Cell{}
}

// Painted returns a cell holding c, panics if c is not a palette color
func Painted(c palette.Color) Cell {
	if !c.Valid() {
		panic(fmt.Sprintf("grid: color %d outside palette", c))
	}
	return Cell{color: c, painted: true}
}

// IsEmpty reports whether the cell was never painted
func (c Cell) IsEmpty() bool {
	return !c.painted
}

// Color returns the cell color and whether the cell is painted
func (c Cell) Color() (palette.Color, bool) {
	return c.color, c.painted
}

func (c Cell) String() string {
	if !c.painted {
		return "empty"
	}
	return c.color.String()
}
