package constants

import "time"

// Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// EventChannelSize is the buffered capacity between the input poller and the loop
	EventChannelSize = 256
)

// Grid Limits
const (
	// MinGridSize is the smallest selectable grid side
	MinGridSize = 10

	// MaxGridSize is the largest selectable grid side
	MaxGridSize = 50

	// DefaultGridSize is the grid side used when none is configured
	DefaultGridSize = 30

	// GridSizeStep is the change applied by the grow/shrink keys
	GridSizeStep = 5
)

// Reveal Timing
const (
	// RevealLeadIn delays the first cell of every generated pattern
	RevealLeadIn = 100 * time.Millisecond

	// ClearStep is the per-cell stagger of the clear sweep
	ClearStep = 2 * time.Millisecond
)
