package constants

import "time"

// UI Layout Constants
const (
	// CellWidth is the terminal columns per grid cell, two keeps cells roughly square
	CellWidth = 2

	// GridOriginX is the left margin of the grid
	GridOriginX = 2

	// GridOriginY is the top margin of the grid
	GridOriginY = 1

	// SwatchWidth is the terminal columns per palette swatch
	SwatchWidth = 4

	// SwatchGap is the space between palette swatches
	SwatchGap = 1
)

// UI Timing Constants
const (
	// FlashDuration is how long a freshly painted cell stays highlighted
	FlashDuration = 300 * time.Millisecond

	// FlashStrength is the initial blend factor toward white for a flashing cell
	FlashStrength = 0.6
)
