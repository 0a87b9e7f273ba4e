// Package input translates tcell events into semantic intents for the app loop
package input

import "github.com/lixenwraith/pixelweave/pattern"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit   // q, Esc, Ctrl+C
	IntentPause  // p
	IntentMute   // m
	IntentResize // Terminal resize event

	// Grid intents
	IntentGenerate      // Space, Enter
	IntentClear         // c, C
	IntentSelectPattern // 1-5
	IntentGrow          // +
	IntentShrink        // -

	// Palette intents
	IntentNextColor   // ]
	IntentPrevColor   // [
	IntentRandomColor // x

	// Mouse intents, coordinates are screen cells
	IntentMouseLeftDown
	IntentMouseRightDown
)

// Intent is a parsed user action
type Intent struct {
	Type    IntentType
	Pattern pattern.Kind // IntentSelectPattern only
	X, Y    int          // Mouse intents only
}
