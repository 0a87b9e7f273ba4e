// Package engine owns the pattern grid and reveals generated patterns on a Surface
package engine

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixelweave/constants"
	"github.com/lixenwraith/pixelweave/grid"
	"github.com/lixenwraith/pixelweave/palette"
	"github.com/lixenwraith/pixelweave/pattern"
)

// Config holds engine construction parameters
type Config struct {
	Size    int
	Pattern pattern.Kind
	// Stagger reveals generated cells over time; false applies plans at once
	Stagger bool
	Rand    *rand.Rand
	Clock   Clock
	Logger  zerolog.Logger
}

// PatternEngine computes patterns for an N×N grid and schedules their reveal
// All methods must be called from a single goroutine
type PatternEngine struct {
	grid    *grid.Grid
	surface Surface
	sched   *Scheduler
	clock   Clock
	rng     *rand.Rand
	log     zerolog.Logger

	listeners []Listener

	// generation invalidates pending reveal tasks when bumped
	generation uint64

	pattern  pattern.Kind
	selected palette.Color
	hasColor bool
	stagger  bool
	lastPlan *pattern.Plan
}

// New creates an engine with an empty grid and announces its size to surface
func New(surface Surface, cfg Config) *PatternEngine {
	if surface == nil {
		surface = NopSurface{}
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.Clock == nil {
		cfg.Clock = NewTimeProvider()
	}
	if !cfg.Pattern.Valid() {
		panic(fmt.Sprintf("engine: invalid pattern %d", cfg.Pattern))
	}
	checkSize(cfg.Size)

	e := &PatternEngine{
		surface: surface,
		sched:   NewScheduler(),
		clock:   cfg.Clock,
		rng:     cfg.Rand,
		log:     cfg.Logger,
		pattern: cfg.Pattern,
		stagger: cfg.Stagger,
	}
	e.rebuild(cfg.Size)
	return e
}

// AddListener registers l for notifications
func (e *PatternEngine) AddListener(l Listener) {
	e.listeners = append(e.listeners, l)
}

// Size returns the grid side length
func (e *PatternEngine) Size() int {
	return e.grid.Size()
}

// Cell returns the model state of the cell at index
func (e *PatternEngine) Cell(index int) grid.Cell {
	return e.grid.At(index)
}

// Snapshot returns a copy of all cells
func (e *PatternEngine) Snapshot() []grid.Cell {
	return e.grid.Snapshot()
}

// Generation returns the current generation id
func (e *PatternEngine) Generation() uint64 {
	return e.generation
}

// Pattern returns the active pattern
func (e *PatternEngine) Pattern() pattern.Kind {
	return e.pattern
}

// SelectPattern sets the pattern used by the next Generate
func (e *PatternEngine) SelectPattern(k pattern.Kind) {
	if !k.Valid() {
		panic(fmt.Sprintf("engine: invalid pattern %d", k))
	}
	e.pattern = k
}

// SelectColor sets the explicit color for cell toggles
func (e *PatternEngine) SelectColor(c palette.Color) {
	if !c.Valid() {
		panic(fmt.Sprintf("engine: color %d outside palette", c))
	}
	e.selected, e.hasColor = c, true
}

// ClearSelectedColor returns cell toggles to random colors
func (e *PatternEngine) ClearSelectedColor() {
	e.hasColor = false
}

// SelectedColor returns the explicit toggle color if one is set
func (e *PatternEngine) SelectedColor() (palette.Color, bool) {
	return e.selected, e.hasColor
}

// LastPlan returns the most recent generated plan, nil before the first Generate
func (e *PatternEngine) LastPlan() *pattern.Plan {
	return e.lastPlan
}

// Pending returns the number of reveal tasks not yet applied
func (e *PatternEngine) Pending() int {
	return e.sched.Len()
}

// Generate fills the grid with the active pattern
// An all-empty grid is rebuilt first; any reveal still pending from an earlier call is cancelled
func (e *PatternEngine) Generate() *pattern.Plan {
	if e.grid.AllEmpty() {
		e.rebuild(e.grid.Size())
	} else {
		e.supersede()
	}

	plan := pattern.Generate(e.pattern, e.grid.Size(), e.rng)
	e.lastPlan = &plan

	ops := slices.Clone(plan.Ops)
	slices.SortStableFunc(ops, func(a, b pattern.Op) int {
		return cmp.Compare(a.Delay, b.Delay)
	})

	e.log.Debug().
		Uint64("generation", e.generation).
		Str("pattern", plan.Kind.String()).
		Int("size", plan.Size).
		Int("ops", len(ops)).
		Str("direction", plan.Direction.String()).
		Str("shape", plan.Shape.String()).
		Int("clusters", len(plan.Clusters)).
		Int("seeds", len(plan.Seeds)).
		Msg("generate")

	if !e.stagger {
		for _, op := range ops {
			e.apply(op)
		}
	} else {
		gen := e.generation
		start := e.clock.Now().Add(constants.RevealLeadIn)
		for _, op := range ops {
			e.sched.Schedule(gen, start.Add(op.Delay), func() { e.apply(op) })
		}
	}

	for _, l := range e.listeners {
		l.Generated(&plan)
	}
	return &plan
}

// ToggleCell paints the cell with the selected color, or a random one when none is selected
func (e *PatternEngine) ToggleCell(index int) palette.Color {
	c := e.selected
	if !e.hasColor {
		c = palette.Random(e.rng)
	}
	e.ToggleCellWith(index, c)
	return c
}

// ToggleCellWith paints the cell with c regardless of its state
func (e *PatternEngine) ToggleCellWith(index int, c palette.Color) {
	cell := grid.Painted(c)
	e.grid.Set(index, cell)
	e.surface.PaintCell(index, cell)

	for _, l := range e.listeners {
		l.Toggled(index, c)
	}
}

// Clear empties every cell and cancels pending reveal
// The surface is swept back to empty over time when staggering
func (e *PatternEngine) Clear() {
	e.grid.Clear()
	e.supersede()

	n := e.grid.Len()
	if !e.stagger {
		for i := 0; i < n; i++ {
			e.surface.PaintCell(i, grid.Empty())
		}
	} else {
		// Only the latest sweep stays pending
		e.sched.Cancel(AnyGeneration)
		start := e.clock.Now()
		for i := 0; i < n; i++ {
			e.sched.Schedule(AnyGeneration, start.Add(time.Duration(i)*constants.ClearStep), func() { e.repaint(i) })
		}
	}

	e.log.Debug().Uint64("generation", e.generation).Msg("clear")
	for _, l := range e.listeners {
		l.Cleared()
	}
}

// Resize rebuilds the grid as an all-empty n×n grid
// n outside [MinGridSize, MaxGridSize] panics
func (e *PatternEngine) Resize(n int) {
	checkSize(n)
	e.rebuild(n)
	e.log.Debug().Int("size", n).Uint64("generation", e.generation).Msg("resize")
}

// Tick applies every reveal task that is due
func (e *PatternEngine) Tick() int {
	return e.sched.Tick(e.clock.Now(), e.generation)
}

// Flush applies every pending reveal task now
func (e *PatternEngine) Flush() int {
	return e.sched.Flush(e.generation)
}

func (e *PatternEngine) apply(op pattern.Op) {
	if op.Mode == pattern.FillEmpty && !e.grid.At(op.Index).IsEmpty() {
		return
	}
	cell := grid.Painted(op.Color)
	e.grid.Set(op.Index, cell)
	e.surface.PaintCell(op.Index, cell)
}

// repaint pushes current model state for index, ignoring indices a rebuild removed
func (e *PatternEngine) repaint(index int) {
	if index >= e.grid.Len() {
		return
	}
	e.surface.PaintCell(index, e.grid.At(index))
}

func (e *PatternEngine) rebuild(n int) {
	e.grid = grid.New(n)
	e.supersede()
	e.surface.SetGridDimensions(n)
}

// supersede starts a new generation and drops stale reveal tasks
func (e *PatternEngine) supersede() {
	e.generation++
	if e.generation == AnyGeneration {
		e.generation++
	}
	if dropped := e.sched.Prune(e.generation); dropped > 0 {
		e.log.Debug().Int("dropped", dropped).Uint64("generation", e.generation).Msg("reveal superseded")
	}
}

func checkSize(n int) {
	if n < constants.MinGridSize || n > constants.MaxGridSize {
		panic(fmt.Sprintf("engine: grid size %d outside [%d,%d]", n, constants.MinGridSize, constants.MaxGridSize))
	}
}
