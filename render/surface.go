// Package render draws the pattern grid, palette strip and status line on a tcell screen
package render

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/engine"
	"github.com/lixenwraith/pixelweave/grid"
	"github.com/lixenwraith/pixelweave/palette"
)

// TargetKind identifies what a screen position points at
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetCell
	TargetSwatch
)

// Target is the result of a hit test
type Target struct {
	Kind  TargetKind
	Index int
}

// Status is the per-frame text shown under the grid
type Status struct {
	Pattern  string
	Pending  int
	Paused   bool
	Muted    bool
	Selected palette.Color
	HasColor bool
	Message  string
}

var (
	white     = colorful.Color{R: 1, G: 1, B: 1}
	textStyle = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	helpStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	markStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Bold(true)
)

// Renderer implements engine.Surface on a tcell screen
// Paints are buffered; Draw composes the buffer into the screen
type Renderer struct {
	screen tcell.Screen
	mode   ColorMode
	clock  engine.Clock

	size  int
	cells []grid.Cell
	flash []time.Time // Flash deadline per cell, zero when idle
}

// NewRenderer creates a renderer, clock drives flash fade-out
func NewRenderer(screen tcell.Screen, mode ColorMode, clock engine.Clock) *Renderer {
	if clock == nil {
		clock = engine.NewTimeProvider()
	}
	return &Renderer{
		screen: screen,
		mode:   mode,
		clock:  clock,
	}
}

// SetGridDimensions resets the buffer to an all-empty n×n grid
func (r *Renderer) SetGridDimensions(n int) {
	r.size = n
	r.cells = make([]grid.Cell, n*n)
	r.flash = make([]time.Time, n*n)
}

// PaintCell buffers cell and starts its flash
func (r *Renderer) PaintCell(index int, cell grid.Cell) {
	if index < 0 || index >= len(r.cells) {
		panic(fmt.Sprintf("render: cell %d outside %dx%d grid", index, r.size, r.size))
	}
	r.cells[index] = cell
	r.flash[index] = r.clock.Now().Add(constants.FlashDuration)
}

// Size returns the grid side length
func (r *Renderer) Size() int {
	return r.size
}

// Cell returns the buffered state of index
func (r *Renderer) Cell(index int) grid.Cell {
	return r.cells[index]
}

// Animating reports whether index is still flashing
func (r *Renderer) Animating(index int) bool {
	return r.clock.Now().Before(r.flash[index])
}

// CellColor returns the on-screen color of index including flash highlight
func (r *Renderer) CellColor(index int) colorful.Color {
	base := palette.Empty()
	if c, ok := r.cells[index].Color(); ok {
		base = c.Swatch()
	}

	remaining := r.flash[index].Sub(r.clock.Now())
	if remaining <= 0 {
		return base
	}
	t := constants.FlashStrength * float64(remaining) / float64(constants.FlashDuration)
	return base.BlendRgb(white, t)
}

// Draw composes grid, palette strip and status line and shows the frame
func (r *Renderer) Draw(st Status) {
	r.screen.Clear()

	title := fmt.Sprintf("pixelweave  %s  %dx%d", st.Pattern, r.size, r.size)
	r.drawText(constants.GridOriginX, 0, title, textStyle)

	for i := range r.cells {
		x, y := r.cellOrigin(i)
		style := tcell.StyleDefault.Background(ToTcell(r.CellColor(i), r.mode))
		for dx := 0; dx < constants.CellWidth; dx++ {
			r.screen.SetContent(x+dx, y, ' ', nil, style)
		}
	}

	swatchY := r.swatchRow()
	for _, c := range palette.All() {
		x := r.swatchX(int(c))
		style := markStyle.Background(ToTcell(c.Swatch(), r.mode))
		mark := ' '
		if st.HasColor && st.Selected == c {
			mark = '*'
		}
		for dx := 0; dx < constants.SwatchWidth; dx++ {
			ch := ' '
			if dx == constants.SwatchWidth/2 {
				ch = mark
			}
			r.screen.SetContent(x+dx, swatchY, ch, nil, style)
		}
	}

	colorName := "random"
	if st.HasColor {
		colorName = st.Selected.Hex()
	}
	line := fmt.Sprintf("color: %s  pending: %d", colorName, st.Pending)
	if st.Paused {
		line += "  [paused]"
	}
	if st.Muted {
		line += "  [muted]"
	}
	if st.Message != "" {
		line += "  " + st.Message
	}
	r.drawText(constants.GridOriginX, swatchY+2, line, textStyle)
	r.drawText(constants.GridOriginX, swatchY+3,
		"space generate  c clear  1-5 pattern  +/- size  [/] color  x random  p pause  m mute  q quit", helpStyle)

	r.screen.Show()
}

// HitTest maps a screen position to a grid cell or palette swatch
func (r *Renderer) HitTest(x, y int) Target {
	gx := x - constants.GridOriginX
	gy := y - constants.GridOriginY
	if gx >= 0 && gy >= 0 && gx < r.size*constants.CellWidth && gy < r.size {
		return Target{Kind: TargetCell, Index: gy*r.size + gx/constants.CellWidth}
	}

	if y == r.swatchRow() {
		sx := x - constants.GridOriginX
		if sx < 0 {
			return Target{}
		}
		stride := constants.SwatchWidth + constants.SwatchGap
		if sx%stride >= constants.SwatchWidth {
			return Target{}
		}
		if idx := sx / stride; idx < palette.Size {
			return Target{Kind: TargetSwatch, Index: idx}
		}
	}
	return Target{}
}

// cellOrigin returns the screen position of the left column of index
func (r *Renderer) cellOrigin(index int) (int, int) {
	x, y := index%r.size, index/r.size
	return constants.GridOriginX + x*constants.CellWidth, constants.GridOriginY + y
}

func (r *Renderer) swatchRow() int {
	return constants.GridOriginY + r.size + 1
}

func (r *Renderer) swatchX(i int) int {
	return constants.GridOriginX + i*(constants.SwatchWidth+constants.SwatchGap)
}

func (r *Renderer) drawText(x, y int, s string, style tcell.Style) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
